package config

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"nathanbeddoewebdev/sigdata/internal/config"

	"github.com/spf13/cobra"
)

// GetCommand returns the "config get" command.
func GetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get [key]",
		Short: "Get a configuration value",
		Long: "Get a persistent configuration value.\n\n" +
			"Without a key, every setting is listed together with the value\n" +
			"commands will use when it is not set.\n\n" +
			config.KeysHelp() +
			"\nExamples:\n" +
			"  sigdata config get              # list all settings\n" +
			"  sigdata config get output-dir   # print a single value",
		Args:         cobra.MaximumNArgs(1),
		RunE:         runGet,
		SilenceUsage: true,
	}

	return cmd
}

func runGet(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if len(args) == 0 {
		effective := cfg.WithDefaults()
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "KEY\tVALUE\tEFFECTIVE")
		fmt.Fprintln(w, "---\t-----\t---------")
		for _, spec := range config.Keys {
			value := spec.Get(cfg)
			if value == "" {
				value = "(not set)"
			}
			shown := spec.Get(&effective)
			if shown == "" {
				shown = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", spec.Name, value, shown)
		}
		return w.Flush()
	}

	spec := config.Lookup(args[0])
	if spec == nil {
		return fmt.Errorf("unknown configuration key %q (valid: %s)", args[0], strings.Join(config.KeyNames(), ", "))
	}

	value := spec.Get(cfg)
	if value == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "not set")
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), value)
	}
	return nil
}
