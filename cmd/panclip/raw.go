package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/panclip/internal/clip"
	"go.klb.dev/panclip/internal/preview"
)

func newRawCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "raw",
		Short: "Dump the clipboard's raw bytes",
		Long: `Writes the bytes held under the platform's default clipboard format to
stdout. When the clipboard only holds a file list, the paths are written
newline-separated instead. An empty clipboard prints nothing (exit 0).

--inspect describes the bytes instead: size, guessed MIME type, a hex dump of
the first 100 bytes and a printable preview.

  panclip raw --inspect --json`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(cmd *cobra.Command, _ []string) error { return runRaw(cmd.OutOrStdout(), v) },
	}

	f := cmd.Flags()
	f.Bool("inspect", false, "describe the bytes instead of writing them")
	f.Bool("json", false, "with --inspect, output JSON")
	addClipboardFlags(cmd)

	return cmd
}

func runRaw(w io.Writer, v *viper.Viper) error {
	data, err := clip.ReadRaw(openClipboard(v))
	if err != nil && !clip.IsNotFound(err) {
		return err
	}

	if !v.GetBool("inspect") {
		_, err = w.Write(data)
		return err
	}

	r := preview.Inspect(data)
	if v.GetBool("json") {
		return writeJSON(w, r)
	}
	printReadable(w, r)
	return nil
}

func printReadable(w io.Writer, r preview.Readable) {
	tw := tabwriter.NewWriter(w, 1, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Size:\t%d bytes\n", r.Size)
	fmt.Fprintf(tw, "MIME:\t%s\n", orDash(r.MIME))
	fmt.Fprintf(tw, "Preview:\t%s\n", orDash(r.Preview))
	fmt.Fprintf(tw, "Hex:\t%s\n", orDash(r.HexView))
	_ = tw.Flush()
	if r.TextView != "" {
		fmt.Fprintf(w, "\n%s\n", r.TextView)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
