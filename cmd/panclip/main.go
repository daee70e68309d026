// panclip: copy files and text to and from the system clipboard.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags "-X main.Version=x.y.z".
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "panclip",
		Short: "Copy files and text to and from the system clipboard",
		Long: `panclip reads and writes the native clipboard: file lists the way a file
manager copies them (CF_HDROP on Windows, file URLs on macOS, text/uri-list
on Linux), plain text, and the raw bytes behind them.

On Linux the xclip helper is used when found on PATH (or given with
--helper); without it only text can be read back.

Config file search order (first found wins):
  /etc/panclip/panclip.toml
  $HOME/.config/panclip/panclip.toml
  path supplied via --config

All flags can be set via PANCLIP_<FLAG> env vars or config-file keys.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newCopyCmd(),
		newPasteCmd(),
		newPathsCmd(),
		newRawCmd(),
		newSnapshotCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "panclip %s\n", Version)
		},
	}
}
