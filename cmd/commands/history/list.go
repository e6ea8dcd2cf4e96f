package history

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"nathanbeddoewebdev/sigdata/internal/history"

	"github.com/spf13/cobra"
)

func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs",
		Long: `List recent convert and deploy runs stored locally.

Examples:
  sigdata history list
  sigdata history list --limit 50
  sigdata history list --command "sigdata convert"
  sigdata history list -o json`,
		RunE:         runList,
		SilenceUsage: true,
	}

	cmd.Flags().Int("limit", 25, "Number of runs to display")
	cmd.Flags().String("command", "", "Filter by exact command path")
	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		return fmt.Errorf("limit must be greater than 0")
	}

	filter, _ := cmd.Flags().GetString("command")
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = "table"
	}
	if output != "table" && output != "json" {
		return fmt.Errorf("unsupported output format %q", output)
	}

	repo, err := history.Open()
	if err != nil {
		return err
	}
	defer repo.Close()

	var runs []history.Run
	if filter != "" {
		runs, err = repo.ListByCommand(filter, limit)
	} else {
		runs, err = repo.List(limit)
	}
	if err != nil {
		return err
	}

	if output == "json" {
		if runs == nil {
			runs = []history.Run{}
		}
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tCOMMAND\tOUTCOME\tDURATION\tFILES\tENTRIES\tDETAIL")
	fmt.Fprintln(w, "----\t-------\t-------\t--------\t-----\t-------\t------")
	for _, run := range runs {
		timeStr := run.Timestamp.Local().Format("2006-01-02 15:04:05")
		detail := run.Detail
		if detail == "" {
			detail = "-"
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			timeStr,
			run.Command,
			run.Outcome,
			formatDuration(run.DurationMs),
			formatCounts(run),
			run.Entries,
			detail,
		)
	}
	return w.Flush()
}

func formatDuration(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	d := time.Duration(ms) * time.Millisecond
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	return fmt.Sprintf("%dh", int(d.Hours()))
}

// formatCounts renders converted/skipped/failed, e.g. "26/2/0".
func formatCounts(run history.Run) string {
	return fmt.Sprintf("%d/%d/%d", run.Converted, run.Skipped, run.Failed)
}
