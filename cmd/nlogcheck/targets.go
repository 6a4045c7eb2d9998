package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/philipp01105/nlogconf/factory"
	"github.com/philipp01105/nlogconf/registry"
)

func newTargetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List built-in handler and processor targets",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := registry.New(factory.Builtins()...)
			rows := make([][]string, 0)
			for _, t := range r.Targets() {
				rows = append(rows, []string{t.Name, describeParams(t.Params)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Target", "Parameters"}, rows, nil))
			return nil
		},
	}
}

func describeParams(params []registry.Param) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		if p.HasDefault {
			parts = append(parts, fmt.Sprintf("%s=%v", p.Name, p.Default))
		} else {
			parts = append(parts, p.Name)
		}
	}
	return strings.Join(parts, ", ")
}
