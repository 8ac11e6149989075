package citygen

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	lineRome = `{"city":"Rome","description":"Italian capital with ancient ruins","population":2800000}`
	lineFake = `{"city":"Lake Polis","description":"A fictional city with a vibrant community and scenic views","population":150000}`
)

func validateLines(t *testing.T, lines []string, opts ...Option) (Summary, error) {
	t.Helper()
	opts = append([]Option{WithCountRange(0, 100)}, opts...)
	return Validate(strings.NewReader(strings.Join(lines, "\n")+"\n"), opts...)
}

func TestValidate_Valid(t *testing.T) {
	sum, err := validateLines(t, []string{lineRome, lineFake, lineRome})
	require.NoError(t, err)
	assert.Equal(t, Summary{Records: 3, Reference: 2, Fake: 1}, sum)
}

func TestValidate_Violations(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		wantErr string
	}{
		{
			name:    "not json",
			line:    `city=Rome`,
			wantErr: "line 2: not a JSON object",
		},
		{
			name:    "json array",
			line:    `["Rome"]`,
			wantErr: "line 2: not a JSON object",
		},
		{
			name:    "missing population",
			line:    `{"city":"Rome","description":"Italian capital with ancient ruins"}`,
			wantErr: `missing key "population"`,
		},
		{
			name:    "extra key",
			line:    `{"city":"Rome","description":"Italian capital with ancient ruins","population":2800000,"country":"IT"}`,
			wantErr: `unexpected key "country"`,
		},
		{
			name:    "population not an integer",
			line:    `{"city":"Rome","description":"Italian capital with ancient ruins","population":2.5}`,
			wantErr: "population:",
		},
		{
			name:    "city not a string",
			line:    `{"city":7,"description":"Italian capital with ancient ruins","population":2800000}`,
			wantErr: "city:",
		},
		{
			name:    "population too small",
			line:    `{"city":"Rome","description":"Italian capital with ancient ruins","population":99999}`,
			wantErr: "population 99999",
		},
		{
			name:    "population too large",
			line:    `{"city":"Rome","description":"Italian capital with ancient ruins","population":5000001}`,
			wantErr: "population 5000001",
		},
		{
			name:    "description too long",
			line:    `{"city":"Rome","description":"` + strings.Repeat("x", 101) + `","population":2800000}`,
			wantErr: "101 characters",
		},
		{
			name:    "wrong reference description",
			line:    `{"city":"Rome","description":"Eternal city","population":2800000}`,
			wantErr: `reference city "Rome"`,
		},
		{
			name:    "fake city with reference-style description",
			line:    `{"city":"Port Ville","description":"Italian capital with ancient ruins","population":2800000}`,
			wantErr: `fictional city "Port Ville"`,
		},
		{
			name:    "unknown city near a reference name",
			line:    `{"city":"Berln","description":"German capital known for history and nightlife","population":2800000}`,
			wantErr: `unknown city "Berln" (did you mean "Berlin"?)`,
		},
		{
			name:    "unknown city",
			line:    `{"city":"Atlantis","description":"A fictional city with a vibrant community and scenic views","population":2800000}`,
			wantErr: `unknown city "Atlantis"`,
		},
		{
			name:    "blank line",
			line:    ``,
			wantErr: "line 2: not a JSON object",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sum, err := validateLines(t, []string{lineRome, tt.line, lineFake})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidDataset)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, 1, sum.Records, "records before the bad line are counted")
		})
	}
}

func TestValidate_WrapsDecodeError(t *testing.T) {
	_, err := validateLines(t, []string{
		lineRome,
		`{"city":"Rome","description":"Italian capital with ancient ruins","population":2.5}`,
	})
	require.ErrorIs(t, err, ErrInvalidDataset)
	assert.Contains(t, err.Error(), "line 2")

	var typeErr *json.UnmarshalTypeError
	require.True(t, errors.As(err, &typeErr), "error %v does not wrap a *json.UnmarshalTypeError", err)
	assert.Equal(t, "number 2.5", typeErr.Value)
}

func TestValidate_CountRange(t *testing.T) {
	_, err := Validate(strings.NewReader(lineRome+"\n"+lineFake+"\n"), WithCountRange(3, 5))
	require.ErrorIs(t, err, ErrInvalidDataset)
	assert.Contains(t, err.Error(), "2 records, want between 3 and 5")

	_, err = Validate(strings.NewReader(lineRome+"\n"+lineFake+"\n"), WithCountRange(0, 1))
	require.ErrorIs(t, err, ErrInvalidDataset)

	sum, err := Validate(strings.NewReader(""), WithCountRange(0, 1))
	require.NoError(t, err)
	assert.Zero(t, sum.Records)
}

func TestValidate_CustomSettings(t *testing.T) {
	refs := []ReferenceCity{{Name: "Longtown", Description: "A description that is longer than twenty characters"}}
	lines := []string{
		`{"city":"Longtown","description":"A description that ","population":10}`,
		`{"city":"West Ham","description":"A fictional city wi","population":20}`,
	}

	sum, err := validateLines(t, lines,
		WithReferenceCities(refs),
		WithMaxDescriptionLen(19),
		WithPopulationRange(10, 20),
	)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Reference)
	assert.Equal(t, 1, sum.Fake)
}

func TestValidate_InvalidConfig(t *testing.T) {
	_, err := Validate(strings.NewReader(lineRome+"\n"), WithCountRange(5, 1))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cities.ndjson")
	require.NoError(t, os.WriteFile(path, []byte(lineRome+"\n"+"{}\n"), 0644))

	sum, err := ValidateFile(path, WithCountRange(0, 10))
	require.ErrorIs(t, err, ErrInvalidDataset)
	assert.Contains(t, err.Error(), path)
	assert.Equal(t, path, sum.Path)

	_, err = ValidateFile(filepath.Join(dir, "missing.ndjson"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestClosestReference(t *testing.T) {
	refs := ReferenceCities()
	tests := []struct {
		name string
		want string
	}{
		{"Berln", "Berlin"},
		{"Lima", "Lima"},
		{"Oslo!", "Oslo"},
		{"Sydney", ""},
		{"Porta Ville", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, closestReference(refs, tt.name))
		})
	}
}
