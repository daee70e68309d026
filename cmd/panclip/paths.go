package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newPathsCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "paths",
		Short: "List the files on the clipboard",
		Long: `Prints the file paths on the clipboard, one per line. A clipboard without
a file list prints nothing.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(cmd *cobra.Command, _ []string) error { return runPaths(cmd.OutOrStdout(), v) },
	}

	cmd.Flags().Bool("json", false, "output a JSON array")
	addClipboardFlags(cmd)

	return cmd
}

func runPaths(w io.Writer, v *viper.Viper) error {
	paths, err := openClipboard(v).ReadPaths()
	if err != nil {
		return err
	}
	if v.GetBool("json") {
		return writeJSON(w, paths)
	}
	for _, p := range paths {
		if _, err := fmt.Fprintln(w, p); err != nil {
			return err
		}
	}
	return nil
}
