package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"astpretty/internal/version"
)

// newRootCmd builds the command tree. The root command prints a tree; the
// subcommands inspect front-ends and build metadata.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "astpretty [flags] <path>",
		Short: "Print syntax trees as indented text",
		Long: `astpretty parses a file, or every recognised file in a directory, and prints
its syntax tree. Leaf nodes fit on one line; everything else is laid out one
field per line.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runPrint,
	}
	rootCmd.Version = version.Version

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().String("config", "", "path to astpretty.toml (default: nearest one above the working directory)")
	addTraceFlags(rootCmd)
	addProfileFlags(rootCmd)

	addPrintFlags(rootCmd)

	rootCmd.AddCommand(newKindsCmd())
	rootCmd.AddCommand(newCleanCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("error:", err)
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
