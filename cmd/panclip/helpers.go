package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// envKeys maps flag names to env var suffixes: log-level → PANCLIP_LOG_LEVEL.
var envKeys = strings.NewReplacer("-", "_")

func writeJSON(w io.Writer, v any) error {
	enc, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	_, err = fmt.Fprintln(w, string(enc))
	return err
}
