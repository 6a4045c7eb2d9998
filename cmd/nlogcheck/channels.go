package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/philipp01105/nlogconf/config"
	"github.com/philipp01105/nlogconf/factory"
)

func newChannelsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "channels",
		Short: "List declared channels and their inheritance",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, diag, err := ctx.openFactory()
			if err != nil {
				return err
			}
			defer func() { _ = diag.Sync() }()
			defer f.Close()

			doc := f.Document()
			rows := make([][]string, 0, len(f.Channels()))
			for _, name := range f.Channels() {
				def, _ := doc.Lookup(config.Channels, name)
				extends, _ := def.String("extends")

				handlers, processors := "-", "-"
				if l, err := f.GetLogger(name); err == nil {
					handlers = strconv.Itoa(len(l.Handlers()))
					processors = strconv.Itoa(len(l.Processors()))
				}
				rows = append(rows, []string{name, extends, handlers, processors, chain(doc, name)})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Channel", "Extends", "Handlers", "Processors", "Chain"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}
}

// chain renders the inheritance path of name, marking a cycle instead of
// following it.
func chain(doc *config.Document, name string) string {
	seen := map[string]bool{}
	path := []string{}
	for name != "" {
		if seen[name] {
			path = append(path, name+" (cycle)")
			break
		}
		seen[name] = true
		path = append(path, name)

		def, ok := doc.Lookup(config.Channels, name)
		if !ok {
			if name != factory.DefaultChannel {
				name = factory.DefaultChannel
				continue
			}
			break
		}
		name, _ = def.String("extends")
	}
	return strings.Join(path, " -> ")
}
