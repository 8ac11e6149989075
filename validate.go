package citygen

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// ErrInvalidDataset is wrapped by every dataset validation error.
var ErrInvalidDataset = errors.New("invalid dataset")

// recordKeys are the only keys allowed in a dataset line.
var recordKeys = []string{"city", "description", "population"}

// maxSuggestDistance bounds how far a bad city name may be from a
// reference name for the error to suggest it.
const maxSuggestDistance = 2

// maxLineLen bounds a single NDJSON line read by the validator.
const maxLineLen = 1 << 20

// ValidateFile checks a dataset on disk against the configuration that
// produced it. See Validate.
func ValidateFile(path string, opts ...Option) (Summary, error) {
	fi, err := os.Open(path)
	if err != nil {
		return Summary{Path: path}, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer fi.Close()

	sum, err := Validate(fi, opts...)
	sum.Path = path
	if err != nil {
		return sum, fmt.Errorf("%s: %w", path, err)
	}
	return sum, nil
}

// Validate reads NDJSON city records from r and checks that:
//   - every line is an object with exactly the keys city, description, population
//   - descriptions fit the configured length and populations the configured range
//   - reference cities carry their reference description
//   - every other city is a synthesized name with the fictional description
//   - the number of records lies in the configured count range
//
// The first violation is returned wrapping ErrInvalidDataset.
func Validate(r io.Reader, opts ...Option) (Summary, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return Summary{}, err
	}
	refs := referenceIndex(cfg.Reference)
	fakeDesc := truncate(FictionalDescription, cfg.MaxDescriptionLen)

	var sum Summary
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineLen)

	line := 0
	for scanner.Scan() {
		line++
		rec, err := decodeRecord(scanner.Bytes())
		if err != nil {
			return sum, fmt.Errorf("%w: line %d: %w", ErrInvalidDataset, line, err)
		}
		fromReference, err := checkRecord(cfg, refs, fakeDesc, rec)
		if err != nil {
			return sum, fmt.Errorf("%w: line %d: %w", ErrInvalidDataset, line, err)
		}
		sum.Records++
		if fromReference {
			sum.Reference++
		} else {
			sum.Fake++
		}
	}
	if err := scanner.Err(); err != nil {
		return sum, fmt.Errorf("reading records: %w", err)
	}

	if sum.Records < cfg.MinCount || sum.Records > cfg.MaxCount {
		return sum, fmt.Errorf("%w: %d records, want between %d and %d",
			ErrInvalidDataset, sum.Records, cfg.MinCount, cfg.MaxCount)
	}
	return sum, nil
}

// decodeRecord parses one line, rejecting missing, extra or mistyped keys.
func decodeRecord(b []byte) (CityRecord, error) {
	var rec CityRecord

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return rec, fmt.Errorf("not a JSON object: %w", err)
	}
	for _, k := range recordKeys {
		if _, ok := fields[k]; !ok {
			return rec, fmt.Errorf("missing key %q", k)
		}
	}
	for k := range fields {
		if !slices.Contains(recordKeys, k) {
			return rec, fmt.Errorf("unexpected key %q", k)
		}
	}

	if err := json.Unmarshal(fields["city"], &rec.City); err != nil {
		return rec, fmt.Errorf("city: %w", err)
	}
	if err := json.Unmarshal(fields["description"], &rec.Description); err != nil {
		return rec, fmt.Errorf("description: %w", err)
	}
	if err := json.Unmarshal(fields["population"], &rec.Population); err != nil {
		return rec, fmt.Errorf("population: %w", err)
	}
	return rec, nil
}

// checkRecord applies the field constraints and reports whether rec is a
// reference city.
func checkRecord(cfg *Config, refs map[string]string, fakeDesc string, rec CityRecord) (bool, error) {
	if n := utf8.RuneCountInString(rec.Description); n > cfg.MaxDescriptionLen {
		return false, fmt.Errorf("description of %q has %d characters, max %d", rec.City, n, cfg.MaxDescriptionLen)
	}
	if rec.Population < cfg.MinPopulation || rec.Population > cfg.MaxPopulation {
		return false, fmt.Errorf("population %d of %q outside [%d, %d]",
			rec.Population, rec.City, cfg.MinPopulation, cfg.MaxPopulation)
	}

	if desc, ok := refs[rec.City]; ok {
		if want := truncate(desc, cfg.MaxDescriptionLen); rec.Description != want {
			return false, fmt.Errorf("reference city %q has description %q, want %q", rec.City, rec.Description, want)
		}
		return true, nil
	}

	if !IsFakeCityName(rec.City) {
		if suggestion := closestReference(cfg.Reference, rec.City); suggestion != "" {
			return false, fmt.Errorf("unknown city %q (did you mean %q?)", rec.City, suggestion)
		}
		return false, fmt.Errorf("unknown city %q", rec.City)
	}
	if rec.Description != fakeDesc {
		return false, fmt.Errorf("fictional city %q has description %q, want %q", rec.City, rec.Description, fakeDesc)
	}
	return false, nil
}

// closestReference returns the reference name nearest to name by edit
// distance, or "" when none is within maxSuggestDistance.
// Ties go to the earlier table entry.
func closestReference(cities []ReferenceCity, name string) string {
	best, bestDist := "", maxSuggestDistance+1
	for _, c := range cities {
		if d := levenshtein.ComputeDistance(name, c.Name); d < bestDist {
			best, bestDist = c.Name, d
		}
	}
	return best
}
