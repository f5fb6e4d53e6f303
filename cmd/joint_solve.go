package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/alexiusacademia/gofastener/internal/config"
	"github.com/alexiusacademia/gofastener/internal/diagram"
	"github.com/alexiusacademia/gofastener/internal/fastener"
	"github.com/alexiusacademia/gofastener/internal/ingest"
	"github.com/alexiusacademia/gofastener/internal/sink"
	"github.com/spf13/cobra"
)

var (
	// Inputs
	solveJointFile string
	solveLoadsFile string
	solveAreaMode  string

	// Outputs
	solveOutputFile   string
	solveWorkbookFile string
	solveReportFile   string
	solveDatabaseFile string
	solveRunName      string
	solvePrecision    int

	// Diagram options
	solveShowDiagram bool
	solveExportFile  string
)

var jointSolveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Distribute the applied loads over the fasteners",
	Long: `Calculate the shear load on every fastener of a joint using the
elastic method:

  1. Centroid of the fastener areas (center of resistance)
  2. Transfer of every load to the centroid: Mz,c = Mz + Px·ry − Py·rx
  3. Direct shear: the net force split equally over the fasteners
  4. Moment shear: Pm = Mz,c·r / Σr², normal to the radius
  5. Resultant of direct and moment shear

The area formula defaults to π·d ("literal"), which reproduces the
historical calculation. "physical" uses π·d²/4. With equal diameters
both give the same centroid.

Results are written to fastener_loads.csv unless --output is given.
Defaults can be set in .env or the environment (GOFASTENER_OUTPUT,
GOFASTENER_PRECISION, GOFASTENER_AREA_MODE, GOFASTENER_DB).

Examples:
  gofastener joint solve --joint joint.csv --loads loads.csv
  gofastener joint solve -j joint.csv -l loads.csv --diagram --precision 3
  gofastener joint solve -j splice.xlsx -l splice.xlsx --xlsx out.xlsx --pdf out.pdf
  gofastener joint solve -j joint.csv -l loads.csv --db history.db --name "wing splice"`,
	Run: runJointSolve,
}

func init() {
	jointCmd.AddCommand(jointSolveCmd)

	// Input flags
	jointSolveCmd.Flags().StringVarP(&solveJointFile, "joint", "j", "", "Path to joint file (.csv or .xlsx) [required]")
	jointSolveCmd.Flags().StringVarP(&solveLoadsFile, "loads", "l", "", "Path to loads file (.csv or .xlsx) [required]")
	jointSolveCmd.Flags().StringVar(&solveAreaMode, "area-mode", "literal", "Fastener area formula: literal (π·d) or physical (π·d²/4)")

	// Output flags
	jointSolveCmd.Flags().StringVarP(&solveOutputFile, "output", "o", "fastener_loads.csv", "Results CSV file")
	jointSolveCmd.Flags().StringVar(&solveWorkbookFile, "xlsx", "", "Also write results and intermediate tables to an XLSX workbook")
	jointSolveCmd.Flags().StringVar(&solveReportFile, "pdf", "", "Also write a PDF calculation report")
	jointSolveCmd.Flags().StringVar(&solveDatabaseFile, "db", "", "Store the solve in a SQLite history database")
	jointSolveCmd.Flags().StringVar(&solveRunName, "name", "", "Run name stored in the history (default: joint file name)")
	jointSolveCmd.Flags().IntVarP(&solvePrecision, "precision", "p", -1, "Decimals written to result files (-1 = full precision)")

	// Diagram flags
	jointSolveCmd.Flags().BoolVar(&solveShowDiagram, "diagram", false, "Show ASCII joint plan")
	jointSolveCmd.Flags().StringVar(&solveExportFile, "export", "", "Export joint diagram to file (png, svg, pdf)")

	jointSolveCmd.MarkFlagRequired("joint")
	jointSolveCmd.MarkFlagRequired("loads")
}

func runJointSolve(cmd *cobra.Command, args []string) {
	out := cmd.OutOrStdout()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return
	}
	applyConfigDefaults(cmd, cfg)
	if err := config.CheckPrecision(solvePrecision); err != nil {
		fmt.Fprintf(out, "Error: --precision: %v\n", err)
		return
	}

	mode, err := fastener.ParseAreaMode(solveAreaMode)
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return
	}

	// Read and check inputs
	logger.Printf("reading %s and %s", solveJointFile, solveLoadsFile)
	report := ingest.Check(solveJointFile, solveLoadsFile)
	if !report.OK() || len(report.Warnings) > 0 {
		fmt.Fprintln(out)
		printCheckReport(out, report)
	}
	if !report.OK() {
		fmt.Fprintln(out, "Error: Check input data. Use 'gofastener joint check' for details.")
		return
	}

	// Solve
	logger.Printf("solving %d fastener(s), %d load(s), area mode %s", len(report.Fasteners), len(report.Loads), mode)
	sol, err := fastener.Analyze(report.Fasteners, report.Loads, fastener.WithAreaMode(mode))
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return
	}
	logger.Printf("centroid (%g, %g), polar moment %g", sol.Geometry.Centroid.X, sol.Geometry.Centroid.Y, sol.Geometry.PolarMoment)

	printSolution(out, sol)

	if solveShowDiagram {
		fmt.Fprintln(out, diagram.DrawJointPlan(diagram.FromSolution(sol)))
	}

	// Outputs
	fmt.Fprintln(out, "OUTPUT:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")

	if err := sink.SaveCSV(solveOutputFile, sol.Results, solvePrecision); err != nil {
		fmt.Fprintf(out, "  Error writing results: %v\n", err)
	} else {
		fmt.Fprintf(out, "  Results written to: %s\n", solveOutputFile)
	}

	if solveWorkbookFile != "" {
		if err := sink.SaveWorkbook(solveWorkbookFile, sol, solvePrecision); err != nil {
			fmt.Fprintf(out, "  Error writing workbook: %v\n", err)
		} else {
			fmt.Fprintf(out, "  Workbook written to: %s\n", solveWorkbookFile)
		}
	}

	if solveReportFile != "" {
		meta := sink.ReportMeta{JointFile: solveJointFile, LoadsFile: solveLoadsFile}
		if err := sink.SavePDFReport(solveReportFile, sol, meta); err != nil {
			fmt.Fprintf(out, "  Error writing report: %v\n", err)
		} else {
			fmt.Fprintf(out, "  Report written to: %s\n", solveReportFile)
		}
	}

	if solveExportFile != "" {
		if err := diagram.ExportJointDiagram(diagram.FromSolution(sol), solveExportFile); err != nil {
			fmt.Fprintf(out, "  Error exporting diagram: %v\n", err)
		} else {
			fmt.Fprintf(out, "  Diagram exported to: %s\n", solveExportFile)
		}
	}

	if solveDatabaseFile != "" {
		id, err := saveRun(cmd.Context(), sol)
		if err != nil {
			fmt.Fprintf(out, "  Error storing run: %v\n", err)
		} else {
			fmt.Fprintf(out, "  Stored as run #%d in: %s\n", id, solveDatabaseFile)
		}
	}
	fmt.Fprintln(out)
}

// applyConfigDefaults fills the flags the user did not set from the config
func applyConfigDefaults(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if !flags.Changed("output") {
		solveOutputFile = cfg.Output
	}
	if !flags.Changed("precision") {
		solvePrecision = cfg.Precision
	}
	if !flags.Changed("area-mode") {
		solveAreaMode = cfg.AreaMode
	}
	if !flags.Changed("db") {
		solveDatabaseFile = cfg.Database
	}
}

func saveRun(ctx context.Context, sol *fastener.Solution) (int64, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := sink.OpenStore(ctx, solveDatabaseFile)
	if err != nil {
		return 0, err
	}
	defer store.Close()

	name := solveRunName
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(solveJointFile), filepath.Ext(solveJointFile))
	}
	return store.SaveRun(ctx, name, sol)
}

func printSolution(out io.Writer, sol *fastener.Solution) {
	g := sol.Geometry
	net := sol.Loads.Net

	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out, "     FASTENER JOINT LOAD DISTRIBUTION - ELASTIC METHOD")
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out)

	// Input summary
	fmt.Fprintln(out, "INPUT DATA:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Joint file:\t%s\n", solveJointFile)
	fmt.Fprintf(w, "  Loads file:\t%s\n", solveLoadsFile)
	fmt.Fprintf(w, "  Fasteners:\t%d\n", len(g.Fasteners))
	fmt.Fprintf(w, "  Loads:\t%d\n", len(sol.Loads.Loads))
	fmt.Fprintf(w, "  Area formula:\t%s\n", areaFormula(g.Mode))
	w.Flush()
	fmt.Fprintln(out)

	// Geometry
	fmt.Fprintln(out, "JOINT GEOMETRY:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  ID\tx\ty\tØ\tArea\tr\n")
	fmt.Fprintf(w, "  ──\t─\t─\t─\t────\t─\n")
	for _, f := range g.Fasteners {
		fmt.Fprintf(w, "  %s\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\n", f.ID, f.X, f.Y, f.Diameter, f.Area, f.R)
	}
	w.Flush()
	fmt.Fprintln(out)
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Centroid (x, y):\t(%.4f, %.4f)\n", g.Centroid.X, g.Centroid.Y)
	fmt.Fprintf(w, "  Total area (ΣA):\t%.4f\n", g.TotalArea)
	fmt.Fprintf(w, "  Polar moment (Σr²):\t%.4f\n", g.PolarMoment)
	w.Flush()
	fmt.Fprintln(out)

	// Loads at centroid
	fmt.Fprintln(out, "LOADS TRANSFERRED TO CENTROID:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  ID\tx\ty\tPx\tPy\tMz\tMz,c\n")
	fmt.Fprintf(w, "  ──\t─\t─\t──\t──\t──\t────\n")
	for _, l := range sol.Loads.Loads {
		fmt.Fprintf(w, "  %s\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\n", l.ID, l.X, l.Y, l.Px, l.Py, l.Mz, l.MzC)
	}
	fmt.Fprintf(w, "  Net\t\t\t%.3f\t%.3f\t\t%.3f\n", net.Px, net.Py, net.Mz)
	w.Flush()
	fmt.Fprintln(out)

	// Results
	fmt.Fprintln(out, "FASTENER LOADS:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "  ID\tPx\tPy\tPm\tPm,x\tPm,y\tP,hor\tP,ver\tP\t\n")
	for _, r := range sol.Results {
		fmt.Fprintf(w, "  %s\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t\n",
			r.ID, r.Px, r.Py, r.Pm, r.PmX, r.PmY, r.PHorizontal, r.PVertical, r.Resultant)
	}
	w.Flush()
	fmt.Fprintln(out)

	if idx, critical := sol.Critical(); idx >= 0 {
		fmt.Fprint(out, diagram.DrawSummaryBox(
			fmt.Sprintf("CRITICAL FASTENER: %s", critical.ID),
			[]string{
				fmt.Sprintf("Resultant load P = %.3f", critical.Resultant),
				fmt.Sprintf("Horizontal = %.3f, Vertical = %.3f", critical.PHorizontal, critical.PVertical),
			},
		))
		fmt.Fprintln(out)
	}
}

func areaFormula(mode fastener.AreaMode) string {
	if mode == fastener.AreaPhysical {
		return "physical (π·d²/4)"
	}
	return "literal (π·d)"
}
