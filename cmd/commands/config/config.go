package config

import (
	"nathanbeddoewebdev/sigdata/internal/config"

	"github.com/spf13/cobra"
)

// NewCommand returns the "config" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage sigdata configuration",
		Long: "View and modify persistent sigdata settings.\n\n" +
			"Configuration is stored at ~/.config/sigdata/config.json.\n" +
			"Command-line flags take precedence over stored values.\n\n" +
			config.KeysHelp(),
	}

	cmd.AddCommand(SetCommand())
	cmd.AddCommand(GetCommand())

	return cmd
}
