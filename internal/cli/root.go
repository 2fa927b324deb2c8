package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"gorm.io/jdql"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigFile string
	Format     string // "json" | "text"
	LogLevel   string
	Logger     string

	config *Config
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the jdql CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "jdql",
		Short:         "jdql - query by method name",
		Long:          "Parse repository method names and render them as JDQL queries.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}

			config, err := LoadConfig(opts.ConfigFile)
			if err != nil {
				return WrapExitError(ExitCommandError, "load config", err)
			}

			// flags win over the config file
			if cmd.Flags().Changed("log-level") || config.LogLevel == "" {
				config.LogLevel = opts.LogLevel
			}
			if cmd.Flags().Changed("logger") || config.Logger == "" {
				config.Logger = opts.Logger
			}
			opts.config = config
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigFile, "config", "c", "", "config file (yaml)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "silent", "log level (silent|error|warn|info)")
	cmd.PersistentFlags().StringVar(&opts.Logger, "logger", "std", "logger (std|zerolog|logrus|zap|slog)")

	cmd.AddCommand(NewParseCommand(opts))
	cmd.AddCommand(NewRenderCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))

	return cmd
}

// open jdql db from the loaded config, logs are written to cmd's stderr
func (opts *RootOptions) open(cmd *cobra.Command) (*jdql.DB, error) {
	config := opts.config
	if config == nil {
		config = &Config{LogLevel: opts.LogLevel, Logger: opts.Logger}
	}

	dbLogger, err := NewLogger(config.Logger, config.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "logger", err)
	}

	db := jdql.Open(config.Options(dbLogger)...)
	for entity, attributes := range config.Entities {
		db.RegisterAttributes(entity, attributes...)
	}
	return db, nil
}

// entity the --entity flag, or the config file default
func (opts *RootOptions) entity(flag string) string {
	if flag == "" && opts.config != nil {
		return opts.config.Entity
	}
	return flag
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
