// Package snapshot combines the clipboard's file-list and text reads into one
// best-effort result.
package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"go.klb.dev/panclip/internal/clip"
)

// Reader is the read half of clip.Adapter.
type Reader interface {
	ReadPaths() ([]string, error)
	ReadText() (string, error)
	ReadRaw() ([]byte, error)
}

// Snapshot is what the clipboard held at the time of the read. Paths is never
// nil; a nil Text means no text was present.
type Snapshot struct {
	Paths []string `json:"paths"`
	Text  *string  `json:"text"`
}

// ReadError is returned when neither a file list nor any text could be read.
type ReadError struct {
	// Paths is the file-list failure.
	Paths error
	// Text is the text failure, or nil if text was merely absent.
	Text error
}

func (e *ReadError) Error() string {
	text := "absent"
	if e.Text != nil {
		text = e.Text.Error()
	}
	return fmt.Sprintf("read clipboard: file paths: %v; text: %s", e.Paths, text)
}

// Unwrap exposes both causes to errors.Is and errors.As.
func (e *ReadError) Unwrap() []error {
	if e.Text == nil {
		return []error{e.Paths}
	}
	return []error{e.Paths, e.Text}
}

// Read attempts the path read and the text read independently. When the path
// read failed and no text came back, the raw payload is tried as text. The
// result is an error only when the path read failed and no text was obtained.
func Read(r Reader) (Snapshot, error) {
	paths, pathErr := r.ReadPaths()
	if pathErr != nil {
		slog.Debug("snapshot: path read failed", "err", pathErr)
	}

	text, textErr := readText(r)

	if pathErr != nil && text == nil {
		if s, ok := rawAsText(r); ok {
			text, textErr = &s, nil
		}
	}

	if pathErr != nil && text == nil {
		return Snapshot{}, &ReadError{Paths: pathErr, Text: textErr}
	}
	if paths == nil {
		paths = []string{}
	}
	s := Snapshot{Paths: paths, Text: text}
	logSnapshot(s)
	return s, nil
}

// logSnapshot logs the read at DEBUG: path count and a text preview up to 120
// chars.
func logSnapshot(s Snapshot) {
	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	if s.Text == nil {
		slog.Debug("clipboard snapshot", "paths", len(s.Paths), "text", false)
		return
	}
	preview := *s.Text
	if utf8.RuneCountInString(preview) > 120 {
		preview = string([]rune(preview)[:120]) + "…"
	}
	slog.Debug("clipboard snapshot", "paths", len(s.Paths), "text", true, "preview", preview)
}

// readText returns nil, nil when the clipboard has no text.
func readText(r Reader) (*string, error) {
	s, err := r.ReadText()
	switch {
	case clip.IsNotFound(err):
		return nil, nil
	case err != nil:
		slog.Debug("snapshot: text read failed", "err", err)
		return nil, err
	case s == "":
		return nil, nil
	}
	return &s, nil
}

// rawAsText reads the raw payload and accepts it as text if it is valid,
// non-blank UTF-8 once trailing NULs are dropped. Embedded NULs mean binary.
func rawAsText(r Reader) (string, bool) {
	data, err := r.ReadRaw()
	if err != nil {
		slog.Debug("snapshot: raw fallback failed", "err", err)
		return "", false
	}
	data = bytes.TrimRight(data, "\x00")
	if !utf8.Valid(data) || bytes.IndexByte(data, 0) >= 0 {
		return "", false
	}
	s := string(data)
	if strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}
