package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/alexiusacademia/gofastener/internal/version"
	"github.com/spf13/cobra"
)

var verbose bool

// logger traces the solve stages; silent unless --verbose is given
var logger = log.New(io.Discard, "gofastener: ", 0)

var rootCmd = &cobra.Command{
	Use:   "gofastener",
	Short: "Fastener Group Load Distribution Tool",
	Long: `gofastener - Go Fastener Joint Analyzer

A CLI tool that distributes in-plane loads over a group of rivets,
bolts or spot welds using the elastic method.

This tool helps structural engineers:
  - Locate the center of resistance of a fastener pattern
  - Transfer applied forces and moments to the joint centroid
  - Compute direct and moment-induced shear on every fastener
  - Find the critical fastener of the joint

Inputs are CSV files or XLSX workbooks, results are written as CSV
with optional XLSX, PDF and SQLite outputs.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logger.SetOutput(os.Stderr)
			logger.SetFlags(log.Ltime | log.Lmicroseconds)
		} else {
			logger.SetOutput(io.Discard)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintf(out, "  ║   gofastener v%-44s║\n", version.Version)
		fmt.Fprintln(out, "  ║   Go Fastener Joint Analyzer                              ║")
		fmt.Fprintln(out, "  ║   Alexius S. Academia ©  2025                             ║")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintln(out, "  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Distributes in-plane loads over a fastener group")
		fmt.Fprintln(out, "  using the elastic method.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Features:")
		fmt.Fprintln(out, "    • Joint centroid and polar moment of the fastener pattern")
		fmt.Fprintln(out, "    • Load transfer to the centroid")
		fmt.Fprintln(out, "    • Direct and moment shear per fastener, critical fastener")
		fmt.Fprintln(out, "    • CSV/XLSX input, CSV/XLSX/PDF/SQLite output, joint diagrams")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Use 'gofastener --help' to see available commands.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ─────────────────────────────────────────────────────────────")
		fmt.Fprintf(out, "  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Fprintln(out)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log solve stages to stderr")
}
