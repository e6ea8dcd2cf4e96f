package config

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/sigdata/internal/config"

	"github.com/spf13/cobra"
)

// SetCommand returns the "config set" command.
func SetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: "Set a persistent configuration value.\n\n" +
			config.KeysHelp() +
			"\nExamples:\n" +
			"  sigdata config set source-dir ./SIG\n" +
			"  sigdata config set workers 8\n" +
			"  sigdata config set appearance-keys flat",
		Args:         cobra.ExactArgs(2),
		RunE:         runSet,
		SilenceUsage: true,
	}

	return cmd
}

func runSet(cmd *cobra.Command, args []string) error {
	value := strings.TrimSpace(args[1])

	spec := config.Lookup(args[0])
	if spec == nil {
		return fmt.Errorf("unknown configuration key %q (valid: %s)", args[0], strings.Join(config.KeyNames(), ", "))
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := spec.Apply(cfg, value); err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s set to %q\n", spec.Name, spec.Get(cfg))
	return nil
}
