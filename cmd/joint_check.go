package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/alexiusacademia/gofastener/internal/ingest"
	"github.com/spf13/cobra"
)

var (
	checkJointFile string
	checkLoadsFile string
)

var jointCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Read and check the joint and loads files",
	Long: `Read the joint and loads files and report:
  - headers that do not follow the standard column layout (warning)
  - missing columns (error)
  - empty, NaN or non-numeric cells, by row and column (error)

Examples:
  gofastener joint check --joint joint.csv --loads loads.csv
  gofastener joint check -j splice.xlsx -l splice.xlsx`,
	Run: runJointCheck,
}

func init() {
	jointCmd.AddCommand(jointCheckCmd)

	jointCheckCmd.Flags().StringVarP(&checkJointFile, "joint", "j", "", "Path to joint file (.csv or .xlsx) [required]")
	jointCheckCmd.Flags().StringVarP(&checkLoadsFile, "loads", "l", "", "Path to loads file (.csv or .xlsx) [required]")

	jointCheckCmd.MarkFlagRequired("joint")
	jointCheckCmd.MarkFlagRequired("loads")
}

func runJointCheck(cmd *cobra.Command, args []string) {
	out := cmd.OutOrStdout()
	report := ingest.Check(checkJointFile, checkLoadsFile)

	fmt.Fprintln(out)
	fmt.Fprintln(out, "INPUT CHECK:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	printCheckReport(out, report)

	if report.OK() {
		fmt.Fprintf(out, "  Joint: %d fastener(s) ✓\n", len(report.Fasteners))
		fmt.Fprintf(out, "  Loads: %d load(s) ✓\n", len(report.Loads))
	}
	fmt.Fprintln(out)
}

// printCheckReport prints the warnings, missing cells and file errors of a
// read/check pass
func printCheckReport(out io.Writer, report *ingest.Report) {
	for _, w := range report.Warnings {
		fmt.Fprintf(out, "  Warning: %s\n", w.Message)
	}
	for _, c := range report.Cells() {
		fmt.Fprintf(out, "  %s\n", c)
	}
	if report.JointError != nil {
		fmt.Fprintf(out, "  Error: %s\n", describeInputError("joint", report.JointError))
	}
	if report.LoadsError != nil {
		fmt.Fprintf(out, "  Error: %s\n", describeInputError("loads", report.LoadsError))
	}
}

func describeInputError(source string, err error) string {
	var missing *ingest.MissingDataError
	if errors.As(err, &missing) {
		return fmt.Sprintf("Missed data in %s file.", source)
	}
	return err.Error()
}
