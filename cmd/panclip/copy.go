package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/panclip/internal/clip"
)

func newCopyCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "copy [path...]",
		Short: "Put files on the clipboard, as a file manager's copy does",
		Long: `Resolves each path to its absolute, symlink-free form and replaces the
clipboard contents with the resulting file list.

With --policy strict (the default) nothing is written if any path cannot be
resolved. With --policy best-effort unresolvable paths are skipped with a
warning, as long as at least one remains. Copying no paths leaves the
clipboard untouched.

On Linux without xclip the clipboard is served by this process, so copy stays
running until another application copies something; interrupting it drops the
file list.`,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(cmd *cobra.Command, args []string) error { return runCopy(cmd.Context(), v, args) },
	}

	cmd.Flags().String("policy", string(clip.PolicyStrict), "unresolvable paths: strict|best-effort")
	addClipboardFlags(cmd)

	return cmd
}

func runCopy(ctx context.Context, v *viper.Viper, paths []string) error {
	policy, err := clip.ParsePolicy(v.GetString("policy"))
	if err != nil {
		return err
	}
	return copyPaths(ctx, openClipboard(v), paths, policy)
}

// copyPaths writes paths and, for adapters that serve the clipboard from this
// process, waits until the selection is taken over.
func copyPaths(ctx context.Context, a clip.Adapter, paths []string, policy clip.Policy) error {
	if err := clip.WritePaths(a, paths, policy); err != nil {
		return err
	}
	return clip.Hold(ctx, a)
}
