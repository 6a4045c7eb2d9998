package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/philipp01105/nlogconf/factory"
	"github.com/philipp01105/nlogconf/logger"
)

const (
	defaultConfigPath   = "nlog.yaml"
	defaultFallbackPath = "nlog.dist.yaml"
)

// commandContext carries the persistent flags to subcommands.
type commandContext struct {
	configPath   string
	fallbackPath string
	verbose      bool
}

func (c *commandContext) diagnostics() (*zap.Logger, error) {
	if !c.verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

// openFactory loads the document. Error sinks are never installed: the
// tool must not hijack its own output.
func (c *commandContext) openFactory() (*factory.Factory, *zap.Logger, error) {
	diag, err := c.diagnostics()
	if err != nil {
		return nil, nil, err
	}
	f, err := factory.NewFromFiles(c.configPath, c.fallbackPath,
		factory.WithDiagnostics(diag),
		factory.WithErrorSink(func(l *logger.Logger) {
			diag.Debug("skipping error sink registration", zap.String("channel", l.Name()))
		}),
	)
	if err != nil {
		_ = diag.Sync()
		return nil, nil, err
	}
	return f, diag, nil
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "nlogcheck",
		Short:         "Inspect and validate NLog channel configuration",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&ctx.configPath, "config", "c", defaultConfigPath, "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&ctx.fallbackPath, "fallback", defaultFallbackPath, "Configuration used when --config does not exist")
	rootCmd.PersistentFlags().BoolVarP(&ctx.verbose, "verbose", "v", false, "Log factory diagnostics to stderr")

	rootCmd.AddCommand(newValidateCommand(ctx))
	rootCmd.AddCommand(newChannelsCommand(ctx))
	rootCmd.AddCommand(newTargetsCommand())

	return rootCmd
}
