package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"nathanbeddoewebdev/sigdata/internal/config"
	"nathanbeddoewebdev/sigdata/internal/convert"
	"nathanbeddoewebdev/sigdata/internal/history"
	"nathanbeddoewebdev/sigdata/internal/manifest"
	"nathanbeddoewebdev/sigdata/internal/normalize"
	"nathanbeddoewebdev/sigdata/internal/styles"

	"github.com/spf13/cobra"
)

// ErrIncomplete is returned with --strict when any entry was skipped or
// failed.
var ErrIncomplete = errors.New("conversion incomplete")

// NewCommand returns the "convert" command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert SIG YAML tables to JSON lookup files",
		Long: `Convert the Bluetooth SIG assigned-numbers YAML tables into flat JSON
key/name dictionaries, one file per manifest entry.

Missing or malformed source files are skipped and reported; the remaining
files are still converted. Use --strict to exit non-zero when anything was
skipped.

Examples:
  sigdata convert
  sigdata convert --source-dir ./SIG --output-dir ./converted_sig_data
  sigdata convert --manifest my-manifest.yaml --workers 8
  sigdata convert --appearance-keys flat`,
		Args:         cobra.NoArgs,
		RunE:         runConvert,
		SilenceUsage: true,
	}

	cmd.Flags().String("source-dir", "", "Directory holding the SIG YAML tables (default from config or "+config.DefaultSourceDir+")")
	cmd.Flags().String("output-dir", "", "Directory to write JSON files to (default from config or "+config.DefaultOutputDir+")")
	cmd.Flags().String("manifest", "", "YAML manifest to use instead of the built-in one")
	cmd.Flags().Int("workers", 0, fmt.Sprintf("Files converted in parallel (default from config or %d)", convert.DefaultWorkers))
	cmd.Flags().Bool("strict", false, "Exit non-zero if any source file was skipped or failed")
	cmd.Flags().String("appearance-keys", "", "Appearance subcategory keys: composite or flat")

	return cmd
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	settings := cfg.WithDefaults()

	if v, _ := cmd.Flags().GetString("source-dir"); v != "" {
		settings.SourceDir = v
	}
	if v, _ := cmd.Flags().GetString("output-dir"); v != "" {
		settings.OutputDir = v
	}
	if cmd.Flags().Changed("workers") {
		workers, _ := cmd.Flags().GetInt("workers")
		if workers <= 0 {
			return fmt.Errorf("--workers must be greater than 0")
		}
		settings.Workers = workers
	}
	if v, _ := cmd.Flags().GetString("appearance-keys"); v != "" {
		settings.AppearanceKeys = v
	}

	scheme, err := normalize.ParseAppearanceScheme(settings.AppearanceKeys)
	if err != nil {
		return err
	}

	entries := manifest.Default()
	if path, _ := cmd.Flags().GetString("manifest"); path != "" {
		entries, err = manifest.Load(path)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	rs := styles.For(out)

	fmt.Fprintln(out, rs.Render(styles.Title, "Converting SIG YAML tables"))
	fmt.Fprintf(out, "%s %s\n", rs.Render(styles.Label, "Source:"), settings.SourceDir)
	fmt.Fprintf(out, "%s %s\n\n", rs.Render(styles.Label, "Output:"), settings.OutputDir)

	converter := &convert.Converter{
		SourceDir: settings.SourceDir,
		OutputDir: settings.OutputDir,
		Workers:   settings.Workers,
		Options:   normalize.Options{Appearance: scheme},
		Logger:    slog.Default(),
	}

	start := time.Now()
	summary, err := converter.Run(cmd.Context(), entries)
	if err != nil {
		record(cmd, settings, nil, time.Since(start), err)
		return err
	}

	printSummary(out, rs, summary)
	record(cmd, settings, summary, summary.Duration, nil)

	strict, _ := cmd.Flags().GetBool("strict")
	if strict && summary.Skipped+summary.Failed > 0 {
		return fmt.Errorf("%w: %d skipped, %d failed", ErrIncomplete, summary.Skipped, summary.Failed)
	}
	return nil
}

func printSummary(w io.Writer, rs styles.Renderer, s *convert.Summary) {
	for _, r := range s.Results {
		status := rs.Render(styles.StatusStyle(string(r.Status)), fmt.Sprintf("%-9s", r.Status))
		switch r.Status {
		case convert.StatusConverted:
			fmt.Fprintf(w, "  %s  %s -> %s (%d entries)\n", status, r.Entry.Source, r.Entry.Target, r.Entries)
		default:
			fmt.Fprintf(w, "  %s  %s: %v\n", status, r.Entry.Source, r.Err)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %d converted, %d skipped, %d failed (%d entries) in %s\n",
		rs.Render(styles.Heading, "Summary:"),
		s.Converted, s.Skipped, s.Failed, s.TotalEntries(), s.Duration.Round(time.Millisecond))

	if created := s.Created(); len(created) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, rs.Render(styles.Heading, "Created files:"))
		for _, path := range created {
			fmt.Fprintf(w, "  %s\n", filepath.ToSlash(path))
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, rs.Render(styles.Heading, "Next steps:"))
	fmt.Fprintln(w, "  sigdata compare   "+rs.Render(styles.MutedText, "# see how far the converted tables extend the built-in ones"))
	fmt.Fprintln(w, "  sigdata deploy    "+rs.Render(styles.MutedText, "# copy the lookup files into the test assets"))
}

// record stores the run in the local history. Failures are logged and
// never fail the command.
func record(cmd *cobra.Command, settings config.Config, s *convert.Summary, elapsed time.Duration, runErr error) {
	run := &history.Run{
		Command:    cmd.CommandPath(),
		SourceDir:  settings.SourceDir,
		OutputDir:  settings.OutputDir,
		DurationMs: elapsed.Milliseconds(),
	}

	switch {
	case runErr != nil:
		run.Outcome = history.OutcomeError
		run.Detail = runErr.Error()
	case s.Skipped+s.Failed > 0:
		run.Outcome = history.OutcomeWarning
		run.Detail = skipDetail(s)
	default:
		run.Outcome = history.OutcomeSuccess
	}
	if s != nil {
		run.Converted = s.Converted
		run.Skipped = s.Skipped
		run.Failed = s.Failed
		run.Entries = s.TotalEntries()
	}

	if err := history.Record(context.WithoutCancel(cmd.Context()), run); err != nil {
		slog.Warn("failed to record run history", "error", err)
	}
}

func skipDetail(s *convert.Summary) string {
	var sources []string
	for _, r := range s.Results {
		if r.Status != convert.StatusConverted {
			sources = append(sources, r.Entry.Source)
		}
	}
	return "not converted: " + strings.Join(sources, ", ")
}
