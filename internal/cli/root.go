package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/autograde/internal/config"
	"github.com/roach88/autograde/internal/logger"
	"github.com/roach88/autograde/internal/programs"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	EnvFiles []string

	// Populated by the root command before a subcommand runs. Commands
	// built directly in tests fall back to defaults.
	Config   *config.Config
	Logger   *zap.Logger
	Registry *programs.Registry
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the autograde CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "autograde",
		Short: "autograde - compare submissions against reference solutions",
		Long: `Grade student submissions by running them next to a reference solution
on the same inputs, and report the first difference in a form students can act on.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return opts.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.Logger != nil {
				_ = opts.Logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringSliceVar(&opts.EnvFiles, "env-file", []string{".env"}, "dotenv files to seed the environment from")

	cmd.AddCommand(NewGradeCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewDiffCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewProgramsCommand(opts))

	return cmd
}

// setup loads configuration and builds the diagnostic logger.
func (o *RootOptions) setup() error {
	cfg, err := config.Load(o.EnvFiles...)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load configuration", err)
	}
	o.Config = cfg

	level := cfg.LogLevel
	if o.Verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Config{
		Level:      level,
		Format:     cfg.LogFormat,
		OutputPath: cfg.LogOutput,
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to create logger", err)
	}
	o.Logger = log
	return nil
}

func (o *RootOptions) settings() *config.Config {
	if o.Config == nil {
		o.Config = config.Default()
	}
	return o.Config
}

func (o *RootOptions) log() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func (o *RootOptions) registry() *programs.Registry {
	if o.Registry == nil {
		o.Registry = programs.Builtin()
	}
	return o.Registry
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
