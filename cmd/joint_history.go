package cmd

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/alexiusacademia/gofastener/internal/sink"
	"github.com/spf13/cobra"
)

var (
	historyDatabaseFile string
	historyRunID        int64
)

var jointHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List solves stored in a SQLite history",
	Long: `List the runs stored by 'gofastener joint solve --db', or show the
fastener loads of one run.

Examples:
  gofastener joint history --db history.db
  gofastener joint history --db history.db --run 3`,
	Run: runJointHistory,
}

func init() {
	jointCmd.AddCommand(jointHistoryCmd)

	jointHistoryCmd.Flags().StringVar(&historyDatabaseFile, "db", "", "Path to SQLite history [required]")
	jointHistoryCmd.Flags().Int64Var(&historyRunID, "run", 0, "Show the fastener loads of this run")

	jointHistoryCmd.MarkFlagRequired("db")
}

func runJointHistory(cmd *cobra.Command, args []string) {
	out := cmd.OutOrStdout()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := sink.OpenStore(ctx, historyDatabaseFile)
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return
	}
	defer store.Close()

	fmt.Fprintln(out)

	if historyRunID > 0 {
		results, err := store.RunResults(ctx, historyRunID)
		if errors.Is(err, sink.ErrRunNotFound) {
			fmt.Fprintf(out, "Error: run #%d is not in %s\n", historyRunID, historyDatabaseFile)
			return
		} else if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return
		}

		fmt.Fprintf(out, "RUN #%d FASTENER LOADS:\n", historyRunID)
		fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintf(w, "  ID\tP,hor\tP,ver\tP\t\n")
		for _, r := range results {
			fmt.Fprintf(w, "  %s\t%.3f\t%.3f\t%.3f\t\n", r.ID, r.PHorizontal, r.PVertical, r.Resultant)
		}
		w.Flush()
		fmt.Fprintln(out)
		return
	}

	runs, err := store.ListRuns(ctx)
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "  No runs stored.")
		fmt.Fprintln(out)
		return
	}

	fmt.Fprintln(out, "STORED RUNS:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  #\tName\tDate\tFasteners\tMz,c\tCritical\tP max\n")
	fmt.Fprintf(w, "  ─\t────\t────\t─────────\t────\t────────\t─────\n")
	for _, r := range runs {
		fmt.Fprintf(w, "  %d\t%s\t%s\t%d\t%.3f\t%s\t%.3f\n",
			r.ID, r.Name, r.CreatedAt.Local().Format("2006-01-02 15:04"), r.Fasteners,
			r.Net.Mz, r.CriticalFastener, r.MaxResultant)
	}
	w.Flush()
	fmt.Fprintln(out)
}
