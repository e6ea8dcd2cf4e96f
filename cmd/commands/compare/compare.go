package compare

import (
	"fmt"

	"nathanbeddoewebdev/sigdata/internal/compare"
	"nathanbeddoewebdev/sigdata/internal/config"
	"nathanbeddoewebdev/sigdata/internal/styles"

	"github.com/spf13/cobra"
)

// NewCommand returns the "compare" command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare converted data with the built-in lookup tables",
		Long: `Compare the converted services, characteristics, descriptors and company
identifiers with the UUIDs the app resolved before conversion, and show
examples of newly covered entries.

A missing converted file is reported for its category; the other
categories are still compared and the command exits non-zero.

Examples:
  sigdata compare
  sigdata compare --output-dir ./converted_sig_data
  sigdata compare -o json`,
		Args:         cobra.NoArgs,
		RunE:         runCompare,
		SilenceUsage: true,
	}

	cmd.Flags().String("output-dir", "", "Directory holding converted JSON files (default from config or "+config.DefaultOutputDir+")")
	cmd.Flags().StringP("output", "o", "text", "Output format: text or json")

	return cmd
}

func runCompare(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("output")
	if format != "text" && format != "json" {
		return fmt.Errorf("unsupported output format %q", format)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	outputDir := cfg.WithDefaults().OutputDir
	if v, _ := cmd.Flags().GetString("output-dir"); v != "" {
		outputDir = v
	}

	report, runErr := compare.Run(outputDir)

	if format == "json" {
		err = compare.WriteJSON(cmd.OutOrStdout(), report)
	} else {
		err = compare.WriteText(cmd.OutOrStdout(), report, styles.For(cmd.OutOrStdout()))
	}
	if err != nil {
		return err
	}
	return runErr
}
