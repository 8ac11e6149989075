// Package citygen generates synthetic city datasets in newline-delimited JSON.
//
// Each record is either one of a small table of real cities with a short
// description, or a made-up place name such as "Port Ville" paired with a
// generic description. Every record carries a random population figure.
//
//	g, err := citygen.NewGenerator(citygen.WithOutputPath("cities.ndjson"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	summary, err := g.Run(context.Background())
package citygen

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
)

// ErrInvalidConfig is wrapped by every configuration validation error.
var ErrInvalidConfig = errors.New("invalid config")

// FictionalDescription is the description given to every fake city.
const FictionalDescription = "A fictional city with a vibrant community and scenic views"

// Defaults used when no option overrides them.
const (
	DefaultOutputPath        = "./cities.ndjson"
	DefaultMinCount          = 3001
	DefaultMaxCount          = 4567
	DefaultRealRatio         = 0.7
	DefaultMinPopulation     = 100_000
	DefaultMaxPopulation     = 5_000_000
	DefaultMaxDescriptionLen = 100
)

// Source is the randomness a Generator draws from.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	// Float64 returns a fraction in [0, 1).
	Float64() float64
	// IntN returns an integer in [0, n). n is always > 0.
	IntN(n int) int
}

// Config contains the generation settings.
type Config struct {
	OutputPath        string          // Destination file (default: "./cities.ndjson")
	MinCount          int             // Smallest record count drawn per run
	MaxCount          int             // Largest record count drawn per run
	RealRatio         float64         // Probability a record comes from the reference table
	MinPopulation     int             // Inclusive lower population bound
	MaxPopulation     int             // Inclusive upper population bound
	MaxDescriptionLen int             // Descriptions are cut to this many characters
	Seed              uint64          // Seed for the default source; 0 picks a random seed
	Source            Source          // Overrides Seed when set
	Reference         []ReferenceCity // Real cities to sample from
	Logger            *slog.Logger
}

// Option is a functional option for configuring a Generator.
type Option func(*Config)

// WithOutputPath sets the file Run writes to.
func WithOutputPath(path string) Option {
	return func(c *Config) {
		c.OutputPath = path
	}
}

// WithCountRange sets the inclusive range the record count is drawn from.
func WithCountRange(minCount, maxCount int) Option {
	return func(c *Config) {
		c.MinCount = minCount
		c.MaxCount = maxCount
	}
}

// WithRealRatio sets the probability that a record is a reference city.
func WithRealRatio(ratio float64) Option {
	return func(c *Config) {
		c.RealRatio = ratio
	}
}

// WithPopulationRange sets the inclusive population bounds.
func WithPopulationRange(minPop, maxPop int) Option {
	return func(c *Config) {
		c.MinPopulation = minPop
		c.MaxPopulation = maxPop
	}
}

// WithMaxDescriptionLen sets the description length limit in characters.
func WithMaxDescriptionLen(n int) Option {
	return func(c *Config) {
		c.MaxDescriptionLen = n
	}
}

// WithSeed makes the default random source deterministic.
func WithSeed(seed uint64) Option {
	return func(c *Config) {
		c.Seed = seed
	}
}

// WithSource replaces the random source entirely.
func WithSource(src Source) Option {
	return func(c *Config) {
		c.Source = src
	}
}

// WithReferenceCities replaces the reference table.
func WithReferenceCities(cities []ReferenceCity) Option {
	return func(c *Config) {
		c.Reference = cities
	}
}

// WithLogger sets the logger used for run diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

func defaultConfig() *Config {
	return &Config{
		OutputPath:        DefaultOutputPath,
		MinCount:          DefaultMinCount,
		MaxCount:          DefaultMaxCount,
		RealRatio:         DefaultRealRatio,
		MinPopulation:     DefaultMinPopulation,
		MaxPopulation:     DefaultMaxPopulation,
		MaxDescriptionLen: DefaultMaxDescriptionLen,
		Reference:         ReferenceCities(),
	}
}

func newConfig(opts ...Option) (*Config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first setting that would make generation impossible
// or produce records outside their documented bounds.
func (c *Config) Validate() error {
	switch {
	case c.OutputPath == "":
		return fmt.Errorf("%w: output path is empty", ErrInvalidConfig)
	case c.MinCount < 0:
		return fmt.Errorf("%w: min count %d is negative", ErrInvalidConfig, c.MinCount)
	case c.MinCount > c.MaxCount:
		return fmt.Errorf("%w: min count %d exceeds max count %d", ErrInvalidConfig, c.MinCount, c.MaxCount)
	case c.MaxCount-c.MinCount >= math.MaxInt:
		return fmt.Errorf("%w: count range [%d, %d] is too wide", ErrInvalidConfig, c.MinCount, c.MaxCount)
	case math.IsNaN(c.RealRatio) || c.RealRatio < 0 || c.RealRatio > 1:
		return fmt.Errorf("%w: real ratio %v outside [0, 1]", ErrInvalidConfig, c.RealRatio)
	case c.MinPopulation < 0:
		return fmt.Errorf("%w: min population %d is negative", ErrInvalidConfig, c.MinPopulation)
	case c.MinPopulation > c.MaxPopulation:
		return fmt.Errorf("%w: min population %d exceeds max population %d", ErrInvalidConfig, c.MinPopulation, c.MaxPopulation)
	case c.MaxPopulation-c.MinPopulation >= math.MaxInt:
		return fmt.Errorf("%w: population range [%d, %d] is too wide", ErrInvalidConfig, c.MinPopulation, c.MaxPopulation)
	case c.MaxDescriptionLen < 1:
		return fmt.Errorf("%w: max description length %d must be positive", ErrInvalidConfig, c.MaxDescriptionLen)
	case len(c.Reference) == 0 && c.RealRatio > 0:
		return fmt.Errorf("%w: reference table is empty but real ratio is %v", ErrInvalidConfig, c.RealRatio)
	}
	if name := duplicateReference(c.Reference); name != "" {
		return fmt.Errorf("%w: reference city %q is listed more than once", ErrInvalidConfig, name)
	}
	return nil
}

// CityRecord is one line of the generated dataset.
type CityRecord struct {
	City        string `json:"city"`
	Description string `json:"description"`
	Population  int    `json:"population"`
}

// Generator produces city records. Not safe for concurrent use.
type Generator struct {
	cfg *Config
	rng Source
}

// NewGenerator validates the configuration and returns a Generator.
//
//	g, err := NewGenerator(WithSeed(42), WithCountRange(10, 20))
func NewGenerator(opts ...Option) (*Generator, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	rng := cfg.Source
	if rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = rand.Uint64()
		}
		rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	return &Generator{cfg: cfg, rng: rng}, nil
}

// Config returns a copy of the generator's configuration.
func (g *Generator) Config() Config {
	return *g.cfg
}

// Count draws the number of records for one run.
func (g *Generator) Count() int {
	return g.intBetween(g.cfg.MinCount, g.cfg.MaxCount)
}

// Record draws a single city record.
func (g *Generator) Record() CityRecord {
	r, _ := g.record()
	return r
}

// record draws a record and reports whether it came from the reference table.
// Draw order: fraction, then reference index or fake-name parts, then population.
func (g *Generator) record() (CityRecord, bool) {
	var r CityRecord
	fromReference := g.rng.Float64() < g.cfg.RealRatio
	if fromReference {
		ref := g.cfg.Reference[g.rng.IntN(len(g.cfg.Reference))]
		r.City, r.Description = ref.Name, ref.Description
	} else {
		r.City, r.Description = g.FakeCityName(), FictionalDescription
	}
	r.Description = truncate(r.Description, g.cfg.MaxDescriptionLen)
	r.Population = g.intBetween(g.cfg.MinPopulation, g.cfg.MaxPopulation)
	return r, fromReference
}

// Records draws n records in sequence.
func (g *Generator) Records(n int) []CityRecord {
	records := make([]CityRecord, 0, max(n, 0))
	for i := 0; i < n; i++ {
		records = append(records, g.Record())
	}
	return records
}

// Generate draws a record count and that many records.
func (g *Generator) Generate() []CityRecord {
	return g.Records(g.Count())
}

// intBetween returns a uniform integer in [lo, hi].
// Config.Validate keeps hi-lo+1 from overflowing.
func (g *Generator) intBetween(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}

// truncate cuts s to at most n runes so multi-byte names stay valid UTF-8.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if runes := []rune(s); len(runes) > n {
		return string(runes[:n])
	}
	return s
}
