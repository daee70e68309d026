// Package clip provides file-list and text access to the system clipboard across
// platforms. Build constraints select the appropriate implementation:
//
//	clip_darwin.go   macOS NSPasteboard via cgo, one autorelease pool per call
//	clip_windows.go  Windows CF_HDROP and CF_UNICODETEXT via user32/kernel32/shell32
//	clip_linux.go    Linux X11 selection via xclip, or golang.design/x/clipboard
//	clip_other.go    unsupported platforms
//
// The clipboard is process-wide state owned by the OS. Nothing here caches what
// it read; every result may be stale as soon as it is returned.
package clip

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Adapter is the interface that all platform clipboard implementations satisfy.
type Adapter interface {
	// Name returns a human-readable name for the adapter.
	Name() string

	// WritePaths replaces the clipboard contents with a file list. Entries come
	// from Resolve and are already canonical.
	WritePaths(entries []Entry) error

	// ReadText returns the clipboard's plain-text slot. An empty or missing
	// text slot is reported as a KindNotFound error.
	ReadText() (string, error)

	// ReadRaw returns the bytes held under the platform's default raw format.
	// A missing or empty payload is reported as a KindNotFound error.
	ReadRaw() ([]byte, error)

	// ReadPaths returns the file paths on the clipboard. A clipboard without a
	// file list yields an empty slice and a nil error.
	ReadPaths() ([]string, error)
}

// SelectionOwner is implemented by adapters that serve written data from
// inside this process, so it is gone once the process exits. Lost is closed
// when another client takes the selection over, and is nil before any write.
type SelectionOwner interface {
	Lost() <-chan struct{}
}

// Options tunes adapter construction. The zero value is valid.
type Options struct {
	// Helper overrides the selection helper binary used on Linux. Empty means
	// look up "xclip" on PATH. Ignored on other platforms.
	Helper string
}

// WritePaths canonicalizes paths under policy and puts the result on the
// clipboard. An empty path list is a no-op: the clipboard is left untouched.
func WritePaths(a Adapter, paths []string, policy Policy) error {
	if len(paths) == 0 {
		slog.Debug("write paths: nothing to write")
		return nil
	}
	entries, err := Resolve(paths, policy)
	if err != nil {
		return err
	}
	if err := a.WritePaths(entries); err != nil {
		return err
	}
	slog.Debug("clipboard file list written", "adapter", a.Name(), "count", len(entries))
	return nil
}

// Hold blocks while a serves data this process wrote, until another client
// takes the selection over or ctx is done. Adapters whose writes outlive the
// process return at once. A ctx ending first is a KindResource error: the
// written data is dropped with the process.
func Hold(ctx context.Context, a Adapter) error {
	o, ok := a.(SelectionOwner)
	if !ok {
		return nil
	}
	lost := o.Lost()
	if lost == nil {
		return nil
	}
	slog.Info("serving clipboard until another application takes it over", "adapter", a.Name())
	select {
	case <-lost:
		slog.Debug("selection taken over")
		return nil
	case <-ctx.Done():
		return newError(KindResource, "hold selection",
			fmt.Errorf("released before another application took it: %w", ctx.Err()))
	}
}

// ReadRaw returns the adapter's raw payload. When the clipboard holds a file
// list and nothing under the raw formats, the paths are returned newline-joined
// instead, since some producers only publish file references.
func ReadRaw(a Adapter) ([]byte, error) {
	data, err := a.ReadRaw()
	if err == nil {
		return data, nil
	}
	if !IsNotFound(err) {
		return nil, err
	}
	paths, perr := a.ReadPaths()
	if perr != nil || len(paths) == 0 {
		return nil, err
	}
	slog.Debug("raw read fell back to file list", "count", len(paths))
	return []byte(strings.Join(paths, "\n")), nil
}

// dedupe drops repeated paths, keeping first occurrences in order.
func dedupe(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// joinURIs builds the newline-separated URI block written on Linux.
func joinURIs(entries []Entry) []byte {
	var b bytes.Buffer
	for i, e := range entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e.URI)
	}
	return b.Bytes()
}
