package main

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/panclip/internal/clip"
)

func newPasteCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "paste",
		Short: "Print the clipboard text to stdout (like pbpaste)",
		Long: `Writes the clipboard's plain-text content to stdout as is.

If the clipboard holds no text, nothing is printed (exit 0).`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(cmd *cobra.Command, _ []string) error { return runPaste(cmd.OutOrStdout(), v) },
	}

	addClipboardFlags(cmd)

	return cmd
}

func runPaste(w io.Writer, v *viper.Viper) error {
	text, err := openClipboard(v).ReadText()
	if clip.IsNotFound(err) {
		return nil
	}
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, text)
	return err
}
