package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/philipp01105/nlogconf/factory"
)

var errInvalid = errors.New("configuration is invalid")

func newValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [channel...]",
		Short: "Build channels and report configuration errors",
		Long:  "Build the named channels, or every declared channel when none are given, and report each failure.",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, diag, err := ctx.openFactory()
			if err != nil {
				return err
			}
			defer func() { _ = diag.Sync() }()

			names := args
			if len(names) == 0 {
				names = f.Channels()
			}

			out := cmd.OutOrStdout()
			var failed int
			for _, name := range names {
				if _, err := f.GetLogger(name); err != nil {
					failed++
					fmt.Fprintf(out, "FAIL %s: %s\n", displayName(name), summarize(err))
					continue
				}
				fmt.Fprintf(out, "ok   %s\n", displayName(name))
			}

			if err := f.Close(); err != nil {
				return fmt.Errorf("close handlers: %w", err)
			}
			if failed > 0 {
				return fmt.Errorf("%w: %d of %d channels failed", errInvalid, failed, len(names))
			}
			return nil
		},
	}
}

func displayName(name string) string {
	if name == "" {
		return factory.DefaultChannel
	}
	return name
}

// summarize drops the document dump, which the CLI user already has.
func summarize(err error) string {
	var ce *factory.ConfigError
	if !errors.As(err, &ce) {
		return err.Error()
	}
	msg := ce.Msg
	for _, cause := range multierr.Errors(ce.Err) {
		msg += ": " + cause.Error()
	}
	return msg
}
