// Package cli implements the jqlfmt command line.
package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hugr-lab/jql-go/filter"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	LogLevel   string

	// Filter is populated from the config file before a subcommand runs.
	Filter *filter.Options
}

// NewRootCommand creates the root command for the jqlfmt CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "jqlfmt",
		Short: "Render and pack JQL filter documents",
		Long: `jqlfmt compiles JSON or YAML filter documents into JQL query text.

Documents can also be packed into a compact base64 form for transport and
unpacked back into query text.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := parseLevel(opts.LogLevel)
			if err != nil {
				return err
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			cfg := &Config{}
			if opts.ConfigPath != "" {
				if cfg, err = LoadConfig(opts.ConfigPath); err != nil {
					return err
				}
				logger.Debug("Config loaded", "path", opts.ConfigPath,
					"field_mapping", len(cfg.FieldMapping), "custom_fields", len(cfg.CustomFields))
			}
			opts.Filter = cfg.FilterOptions(logger)
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "YAML config with field_mapping and custom_fields")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "warn", "log level (debug|info|warn|error)")

	cmd.AddCommand(NewRenderCommand(opts))
	cmd.AddCommand(NewPackCommand(opts))
	cmd.AddCommand(NewUnpackCommand(opts))

	return cmd
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", s)
	}
	return level, nil
}
