package manifest

import (
	"fmt"
	"text/tabwriter"

	"nathanbeddoewebdev/sigdata/internal/manifest"

	"github.com/spf13/cobra"
)

// NewCommand returns the "manifest" command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Show the conversion manifest",
		Long: `Print the manifest convert uses: each source table, the JSON file it
produces and the schema used to read it.

The YAML output can be edited and passed back with convert --manifest.

Examples:
  sigdata manifest
  sigdata manifest -o yaml > manifest.yaml
  sigdata manifest --manifest manifest.yaml`,
		Args:         cobra.NoArgs,
		RunE:         runManifest,
		SilenceUsage: true,
	}

	cmd.Flags().String("manifest", "", "Show this manifest file instead of the built-in one")
	cmd.Flags().StringP("output", "o", "table", "Output format: table or yaml")

	return cmd
}

func runManifest(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	if output != "table" && output != "yaml" {
		return fmt.Errorf("unsupported output format %q", output)
	}

	entries := manifest.Default()
	if path, _ := cmd.Flags().GetString("manifest"); path != "" {
		var err error
		entries, err = manifest.Load(path)
		if err != nil {
			return err
		}
	}

	if output == "yaml" {
		data, err := manifest.Marshal(entries)
		if err != nil {
			return fmt.Errorf("failed to encode manifest: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SOURCE\tTARGET\tSCHEMA\tLIST KEY")
	fmt.Fprintln(w, "------\t------\t------\t--------")
	for _, e := range entries {
		listKey := e.ListKey
		if listKey == "" {
			listKey = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Source, e.Target, e.Kind, listKey)
	}
	return w.Flush()
}
