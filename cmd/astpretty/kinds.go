package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"astpretty/internal/frontend"
)

func newKindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds [frontend]",
		Short: "List front-ends, or the node kinds one of them produces",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := frontend.Builtin()
			if len(args) == 0 {
				return listFrontends(cmd, reg)
			}
			return listKinds(cmd, reg, args[0])
		},
	}
}

func listFrontends(cmd *cobra.Command, reg *frontend.Registry) error {
	t := newTable("FRONTEND", "EXTENSIONS", "KINDS")
	for _, name := range reg.Names() {
		f, err := reg.Lookup(name)
		if err != nil {
			return err
		}
		t.Row(name, strings.Join(f.Extensions(), " "), fmt.Sprint(f.Catalog().Len()))
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), t.Render())
	return err
}

func listKinds(cmd *cobra.Command, reg *frontend.Registry, name string) error {
	f, err := reg.Lookup(name)
	if err != nil {
		return err
	}
	t := newTable("KIND", "FIELDS", "ATTRS", "MARKER")
	for _, spec := range f.Catalog().Specs() {
		marker := ""
		if spec.Context {
			marker = "yes"
		}
		t.Row(spec.Name, strings.Join(spec.Fields, ", "), strings.Join(spec.Attrs, ", "), marker)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), t.Render())
	return err
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderRow(false).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == 0 {
				return lipgloss.NewStyle().Bold(true).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

func frontendNames() []string {
	return frontend.Builtin().Names()
}
