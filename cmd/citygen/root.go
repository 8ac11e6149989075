package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/andreiashu/citygen"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "CITYGEN"

// app carries the state shared by the root command and its subcommands.
type app struct {
	v      *viper.Viper
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: slog.Default()}

	cmd := &cobra.Command{
		Use:   "citygen",
		Short: "Generate a synthetic city dataset",
		Long: `citygen writes newline-delimited JSON city records: real cities with a
short description mixed with made-up place names, each with a random population.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE:              a.generate,
	}

	flags := cmd.PersistentFlags()
	flags.String("config", "", "config file (default is ./citygen.yaml if present)")
	flags.StringP("output", "o", citygen.DefaultOutputPath, "dataset file")
	flags.Int("min-count", citygen.DefaultMinCount, "smallest number of records per run")
	flags.Int("max-count", citygen.DefaultMaxCount, "largest number of records per run")
	flags.Float64("real-ratio", citygen.DefaultRealRatio, "probability a record is a real city")
	flags.Int("min-population", citygen.DefaultMinPopulation, "smallest population")
	flags.Int("max-population", citygen.DefaultMaxPopulation, "largest population")
	flags.Int("max-description", citygen.DefaultMaxDescriptionLen, "description length limit in characters")
	flags.Uint64("seed", 0, "random seed (0 picks one)")
	flags.String("log-format", "text", "log format: text or json")
	flags.BoolP("verbose", "v", false, "enable debug logging")
	cobra.CheckErr(a.v.BindPFlags(flags))

	cmd.AddCommand(newValidateCmd(a))
	return cmd
}

// setup loads the config file and environment, then sets up logging.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if cfgFile := a.v.GetString("config"); cfgFile != "" {
		a.v.SetConfigFile(cfgFile)
	} else {
		a.v.AddConfigPath(".")
		a.v.SetConfigName("citygen")
		a.v.SetConfigType("yaml")
	}
	if err := a.v.ReadInConfig(); err != nil {
		// No config file is fine; flags and defaults still apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	logger, err := newLogger(cmd.ErrOrStderr(), a.v.GetString("log-format"), a.v.GetBool("verbose"))
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

// options translates the bound settings into generator options.
func (a *app) options() []citygen.Option {
	return []citygen.Option{
		citygen.WithOutputPath(a.v.GetString("output")),
		citygen.WithCountRange(a.v.GetInt("min-count"), a.v.GetInt("max-count")),
		citygen.WithRealRatio(a.v.GetFloat64("real-ratio")),
		citygen.WithPopulationRange(a.v.GetInt("min-population"), a.v.GetInt("max-population")),
		citygen.WithMaxDescriptionLen(a.v.GetInt("max-description")),
		citygen.WithSeed(a.v.GetUint64("seed")),
		citygen.WithLogger(a.logger),
	}
}

func (a *app) generate(cmd *cobra.Command, _ []string) error {
	g, err := citygen.NewGenerator(a.options()...)
	if err != nil {
		return err
	}

	sum, err := g.Run(cmd.Context())
	if err != nil {
		return err
	}
	a.logger.Info("dataset generated", "path", sum.Path, "records", sum.Records)
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d city records to %s (%d real, %d fictional)\n",
		sum.Records, sum.Path, sum.Reference, sum.Fake)
	return nil
}
