package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/panclip/internal/snapshot"
)

func newSnapshotCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Show the clipboard's file list and text together",
		Long: `Reads the file list and the text slot independently and prints both.
Fails only when neither could be read; if the file list is unreadable the raw
payload is tried as text.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(cmd *cobra.Command, _ []string) error { return runSnapshot(cmd.OutOrStdout(), v) },
	}

	cmd.Flags().Bool("json", false, "output JSON")
	addClipboardFlags(cmd)

	return cmd
}

func runSnapshot(w io.Writer, v *viper.Viper) error {
	s, err := snapshot.Read(openClipboard(v))
	if err != nil {
		return err
	}
	if v.GetBool("json") {
		return writeJSON(w, s)
	}

	fmt.Fprintf(w, "Paths (%d):\n", len(s.Paths))
	for _, p := range s.Paths {
		fmt.Fprintf(w, "  %s\n", p)
	}
	if s.Text == nil {
		fmt.Fprintln(w, "Text: -")
		return nil
	}
	fmt.Fprintf(w, "Text:\n%s\n", *s.Text)
	return nil
}
