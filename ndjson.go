package citygen

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// Encoder writes city records as newline-delimited JSON.
type Encoder struct {
	enc *json.Encoder
}

// NewEncoder returns an Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &Encoder{enc: enc}
}

// Encode writes r as one compact JSON object followed by a newline.
// Keys appear in the order city, description, population.
func (e *Encoder) Encode(r CityRecord) error {
	return e.enc.Encode(r)
}

// WriteNDJSON writes each record on its own line.
func WriteNDJSON(w io.Writer, records []CityRecord) error {
	enc := NewEncoder(w)
	for i, r := range records {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encoding record %d: %w", i+1, err)
		}
	}
	return nil
}

// WriteFile creates or truncates path and writes records to it as NDJSON.
// On failure the partially written file is removed.
func WriteFile(path string, records []CityRecord) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteNDJSON(w, records)
	})
}

// writeFile creates path, hands a buffered writer to fill and flushes it.
// The file is removed if fill, the flush, or the close fails.
func writeFile(path string, fill func(w io.Writer) error) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", path, err)
	}

	success := false
	defer func() {
		out.Close()
		if !success {
			os.Remove(path)
		}
	}()

	bw := bufio.NewWriter(out)
	if err := fill(bw); err != nil {
		return fmt.Errorf("writing file %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing file %s: %w", path, err)
	}
	// Close explicitly so a failed final write is reported, not dropped.
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing file %s: %w", path, err)
	}
	success = true
	return nil
}

// Summary describes a generated or validated dataset.
type Summary struct {
	Path      string
	Records   int
	Reference int // Records taken from the reference table
	Fake      int // Records with a synthesized name
}

// Run draws a record count, generates that many records and writes each one
// to the configured output path as soon as it is drawn. ctx is checked
// between records; on cancellation the output file is removed.
func (g *Generator) Run(ctx context.Context) (Summary, error) {
	start := time.Now()
	sum := Summary{Path: g.cfg.OutputPath}
	n := g.Count()

	g.cfg.Logger.DebugContext(ctx, "generating city records",
		"path", sum.Path,
		"records", n,
		"real_ratio", g.cfg.RealRatio,
		"min_population", g.cfg.MinPopulation,
		"max_population", g.cfg.MaxPopulation,
	)

	err := writeFile(sum.Path, func(w io.Writer) error {
		enc := NewEncoder(w)
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, fromReference := g.record()
			if err := enc.Encode(r); err != nil {
				return fmt.Errorf("encoding record %d: %w", i+1, err)
			}
			sum.Records++
			if fromReference {
				sum.Reference++
			} else {
				sum.Fake++
			}
		}
		return nil
	})
	if err != nil {
		return sum, err
	}

	g.cfg.Logger.DebugContext(ctx, "city records written",
		"path", sum.Path,
		"records", sum.Records,
		"reference", sum.Reference,
		"fake", sum.Fake,
		"elapsed", time.Since(start),
	)
	return sum, nil
}
