package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/frankigoes6/ProjetFoncier/internal/buildinfo"
	"github.com/frankigoes6/ProjetFoncier/internal/cleaner"
	"github.com/frankigoes6/ProjetFoncier/internal/config"
	"github.com/frankigoes6/ProjetFoncier/internal/loader"
	"github.com/frankigoes6/ProjetFoncier/internal/logging"
	"github.com/frankigoes6/ProjetFoncier/internal/model"
)

// app carries the state resolved before a subcommand runs.
type app struct {
	cfgPath   string
	envFile   string
	logLevel  string
	logFormat string

	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "dvfclean",
		Short:   "Load and clean DVF property transaction files",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgPath, "config", "", "config file (default "+config.DefaultFile+" if present)")
	flags.StringVar(&a.envFile, "env-file", ".env", "dotenv file loaded before reading DVF_* variables")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&a.logFormat, "log-format", "", "log format: text or json")

	rootCmd.AddCommand(newLoadCommand(a))
	rootCmd.AddCommand(newCleanCommand(a))
	rootCmd.AddCommand(newSummaryCommand(a))
	rootCmd.AddCommand(newConfigCommand(a))

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	if a.envFile != "" {
		if err := godotenv.Load(a.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", a.envFile, err)
		}
	}

	cfg, err := config.Resolve(a.cfgPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Logging.Format = a.logFormat
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

func (a *app) loader() (*loader.Loader, error) {
	opts := []loader.Option{loader.WithLogger(a.logger)}
	if len(a.cfg.Encodings) > 0 {
		encs := make([]loader.Encoding, 0, len(a.cfg.Encodings))
		for _, name := range a.cfg.Encodings {
			enc, err := loader.EncodingByName(name)
			if err != nil {
				return nil, fmt.Errorf("config encodings: %w", err)
			}
			encs = append(encs, enc)
		}
		opts = append(opts, loader.WithEncodings(encs...))
	}
	return loader.New(opts...), nil
}

func (a *app) load(path string) (model.Table, error) {
	l, err := a.loader()
	if err != nil {
		return model.Table{}, err
	}
	return l.Load(path)
}

// loadAndClean loads path and cleans it with cfg.
func (a *app) loadAndClean(path string, cfg cleaner.Config) (model.CleanedTable, *cleaner.Report, error) {
	tbl, err := a.load(path)
	if err != nil {
		return model.CleanedTable{}, nil, err
	}
	return cleaner.New(cfg, a.logger).Clean(tbl)
}
