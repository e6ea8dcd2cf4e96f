package deploy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"nathanbeddoewebdev/sigdata/internal/config"
	"nathanbeddoewebdev/sigdata/internal/deploy"
	"nathanbeddoewebdev/sigdata/internal/history"
	"nathanbeddoewebdev/sigdata/internal/styles"

	"github.com/spf13/cobra"
)

// ErrCopyFailed is returned after every file was attempted when at least one
// could not be copied.
var ErrCopyFailed = errors.New("some files could not be copied")

// NewCommand returns the "deploy" command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Copy converted lookup files into the test assets",
		Long: `Copy the converted services, characteristics, descriptors and company
identifier files into the app's test assets directory. Each copy is
reloaded and its entry count reported. Missing files are reported as
warnings. A file that cannot be copied does not stop the other copies, but
the command exits non-zero once all files have been attempted.

Examples:
  sigdata deploy
  sigdata deploy --output-dir ./converted_sig_data --assets-dir ./test/assets/sig_data`,
		Args:         cobra.NoArgs,
		RunE:         runDeploy,
		SilenceUsage: true,
	}

	cmd.Flags().String("output-dir", "", "Directory holding converted JSON files (default from config or "+config.DefaultOutputDir+")")
	cmd.Flags().String("assets-dir", "", "Directory to copy files into (default from config or "+config.DefaultAssetsDir+")")

	return cmd
}

func runDeploy(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	settings := cfg.WithDefaults()
	if v, _ := cmd.Flags().GetString("output-dir"); v != "" {
		settings.OutputDir = v
	}
	if v, _ := cmd.Flags().GetString("assets-dir"); v != "" {
		settings.AssetsDir = v
	}

	out := cmd.OutOrStdout()
	rs := styles.For(out)

	fmt.Fprintln(out, rs.Render(styles.Title, "Copying SIG database files"))
	fmt.Fprintf(out, "%s %s\n", rs.Render(styles.Label, "Source:"), settings.OutputDir)
	fmt.Fprintf(out, "%s %s\n\n", rs.Render(styles.Label, "Destination:"), settings.AssetsDir)

	d := &deploy.Deployer{
		SourceDir: settings.OutputDir,
		TargetDir: settings.AssetsDir,
		Logger:    slog.Default(),
	}

	start := time.Now()
	results, err := d.Run()
	elapsed := time.Since(start)
	printResults(out, rs, results)
	record(cmd, settings, results, elapsed, err)
	if err != nil {
		return err
	}
	if n := countFailed(results); n > 0 {
		return fmt.Errorf("%w: %d of %d", ErrCopyFailed, n, len(results))
	}

	printNextSteps(out, rs)
	return nil
}

func countFailed(results []deploy.Result) int {
	n := 0
	for _, r := range results {
		if r.Status == deploy.StatusFailed {
			n++
		}
	}
	return n
}

func printResults(w io.Writer, rs styles.Renderer, results []deploy.Result) {
	for _, r := range results {
		status := rs.Render(styles.StatusStyle(statusStyleName(r.Status)), fmt.Sprintf("%-7s", r.Status))
		switch r.Status {
		case deploy.StatusCopied:
			fmt.Fprintf(w, "  %s  %s (%d entries)\n", status, r.File, r.Entries)
		default:
			fmt.Fprintf(w, "  %s  %s: %v\n", status, r.File, r.Err)
		}
	}
}

func statusStyleName(s deploy.Status) string {
	if s == deploy.StatusInvalid {
		return "warning"
	}
	return string(s)
}

func printNextSteps(w io.Writer, rs styles.Renderer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, rs.Render(styles.Heading, "Next steps:"))
	fmt.Fprintln(w, "  1. Run the app on a device or emulator")
	fmt.Fprintln(w, "  2. Find the app data directory with sigService.getDatabasePath()")
	fmt.Fprintln(w, "  3. Copy these files to that directory:")
	for _, name := range deploy.DefaultFiles {
		fmt.Fprintf(w, "       - %s\n", name)
	}
	fmt.Fprintln(w, "  4. Call sigService.refreshDatabases() to load the extended data")
}

func record(cmd *cobra.Command, settings config.Config, results []deploy.Result, elapsed time.Duration, runErr error) {
	run := &history.Run{
		Command:    cmd.CommandPath(),
		SourceDir:  settings.OutputDir,
		OutputDir:  settings.AssetsDir,
		DurationMs: elapsed.Milliseconds(),
	}

	var problems []string
	for _, r := range results {
		switch r.Status {
		case deploy.StatusCopied:
			run.Converted++
			run.Entries += r.Entries
		case deploy.StatusMissing:
			run.Skipped++
			problems = append(problems, r.File+" missing")
		default:
			run.Failed++
			problems = append(problems, r.File+" "+string(r.Status))
		}
	}

	switch {
	case runErr != nil:
		run.Outcome = history.OutcomeError
		run.Detail = runErr.Error()
	case countFailed(results) > 0:
		run.Outcome = history.OutcomeError
		run.Detail = strings.Join(problems, ", ")
	case len(problems) > 0:
		run.Outcome = history.OutcomeWarning
		run.Detail = strings.Join(problems, ", ")
	default:
		run.Outcome = history.OutcomeSuccess
	}

	if err := history.Record(context.WithoutCancel(cmd.Context()), run); err != nil {
		slog.Warn("failed to record run history", "error", err)
	}
}
