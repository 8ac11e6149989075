// Command citygen writes a synthetic city dataset as newline-delimited JSON.
//
// Usage:
//
//	go run ./cmd/citygen --output cities.ndjson
//	go run ./cmd/citygen validate cities.ndjson
//
// Settings can also come from a YAML file (--config) or CITYGEN_* environment
// variables, e.g. CITYGEN_MAX_COUNT=5000.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}
