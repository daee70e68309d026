// Package preview renders raw clipboard bytes for people: a hex dump, a text
// view when the bytes are text, a guessed MIME type and a short preview.
package preview

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/h2non/filetype"
)

const (
	hexLimit     = 100
	sniffLimit   = 1000
	previewLimit = 20
)

// Readable describes a raw payload. Empty fields mean "not applicable".
type Readable struct {
	Size     int    `json:"size"`
	HexView  string `json:"hex_view,omitempty"`
	TextView string `json:"text_view,omitempty"`
	MIME     string `json:"mime_type,omitempty"`
	Preview  string `json:"preview,omitempty"`
}

// Inspect describes data. It never fails.
func Inspect(data []byte) Readable {
	r := Readable{Size: len(data)}
	if len(data) == 0 {
		return r
	}
	r.HexView = hexView(data[:min(len(data), hexLimit)])
	if utf8.Valid(data) && strings.TrimSpace(string(data)) != "" {
		r.TextView = string(data)
	}
	r.MIME = DetectMIME(data)
	r.Preview = printable(data[:min(len(data), previewLimit)])
	return r
}

// DetectMIME guesses the type of data from its magic number, falling back to
// text/html, text/plain or application/octet-stream. Empty data yields "".
func DetectMIME(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	if kind, _ := filetype.Match(data); kind != filetype.Unknown {
		return kind.MIME.Value
	}
	if bytes.Contains(bytes.ToLower(data), []byte("<!doctype html>")) {
		return "text/html"
	}
	if validPrefix(data[:min(len(data), sniffLimit)]) {
		return "text/plain"
	}
	return "application/octet-stream"
}

// validPrefix reports whether b is valid UTF-8, tolerating a rune cut off by
// the sniff limit.
func validPrefix(b []byte) bool {
	for i := 0; i < utf8.UTFMax-1 && len(b) > 0 && !utf8.Valid(b); i++ {
		if r, _ := utf8.DecodeLastRune(b); r != utf8.RuneError {
			return false
		}
		b = b[:len(b)-1]
	}
	return utf8.Valid(b)
}

func hexView(b []byte) string {
	const digits = "0123456789ABCDEF"
	var sb strings.Builder
	sb.Grow(len(b) * 3)
	for i, c := range b {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(digits[c>>4])
		sb.WriteByte(digits[c&0x0f])
	}
	return sb.String()
}

// printable keeps printable ASCII and replaces every other byte with '.'.
func printable(b []byte) string {
	out := make([]byte, len(b))
	for i, c := range b {
		if c >= 32 && c <= 126 {
			out[i] = c
		} else {
			out[i] = '.'
		}
	}
	return string(out)
}
