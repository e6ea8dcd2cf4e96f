package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"nathanbeddoewebdev/sigdata/cmd/commands/compare"
	cfgcmd "nathanbeddoewebdev/sigdata/cmd/commands/config"
	"nathanbeddoewebdev/sigdata/cmd/commands/convert"
	"nathanbeddoewebdev/sigdata/cmd/commands/deploy"
	"nathanbeddoewebdev/sigdata/cmd/commands/history"
	"nathanbeddoewebdev/sigdata/cmd/commands/manifest"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
func rootCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "sigdata",
		Short: "Convert Bluetooth SIG assigned numbers into JSON lookup files",
		Long: `sigdata converts the Bluetooth SIG assigned-numbers YAML tables into flat
JSON key/name dictionaries used to show readable names for services,
characteristics, descriptors, manufacturers and more.

Quick start:
  sigdata convert                  # SIG/*.yaml -> converted_sig_data/*.json
  sigdata compare                  # show what the conversion added
  sigdata deploy                   # copy lookup files into test/assets/sig_data
  sigdata history list             # review previous runs`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			slog.SetDefault(newLogger(cmd, verbose))
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(convert.NewCommand())
	cmd.AddCommand(compare.NewCommand())
	cmd.AddCommand(deploy.NewCommand())
	cmd.AddCommand(manifest.NewCommand())
	cmd.AddCommand(cfgcmd.NewCommand())
	cmd.AddCommand(history.NewCommand())

	return cmd
}

// newLogger returns a text logger on the command's stderr. Only warnings
// are shown unless verbose is set.
func newLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var root = rootCmd()
	err := root.ExecuteContext(ctx)
	if err != nil {
		stop()
		os.Exit(1)
	}
}
