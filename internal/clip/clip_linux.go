//go:build linux

package clip

import (
	"errors"
	"log/slog"
	"os/exec"

	"golang.design/x/clipboard"
)

const defaultHelper = "xclip"

// New returns the Linux clipboard adapter. The xclip helper is preferred since
// it can offer and request the text/uri-list target. Without it the adapter
// falls back to golang.design/x/clipboard, which only speaks text, and without
// a display it returns an adapter that fails every call.
func New(opts Options) Adapter {
	helper := opts.Helper
	if helper == "" {
		helper = defaultHelper
	}
	if path, err := exec.LookPath(helper); err == nil {
		return &xclipAdapter{bin: path}
	}
	slog.Debug("selection helper not found, using clipboard library", "helper", helper)

	if err := clipboard.Init(); err != nil {
		slog.Warn("clipboard unavailable", "err", err)
		return &unavailableAdapter{reason: err}
	}
	return &libraryAdapter{}
}

// libraryAdapter talks the X11 selection protocol in-process. The library has
// no multi-target API, so a file list is published as its URI block in the
// text slot and cannot be read back as paths. The selection lives only as long
// as this process; see Hold.
type libraryAdapter struct {
	lost <-chan struct{}
}

func (a *libraryAdapter) Name() string { return "Linux clipboard (x/clipboard)" }

func (a *libraryAdapter) WritePaths(entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	a.lost = clipboard.Write(clipboard.FmtText, joinURIs(entries))
	return nil
}

// Lost is closed once another client owns the selection.
func (a *libraryAdapter) Lost() <-chan struct{} { return a.lost }

func (a *libraryAdapter) ReadText() (string, error) {
	b := clipboard.Read(clipboard.FmtText)
	if len(b) == 0 {
		return "", notFound("ReadText", "no text content in clipboard")
	}
	return string(b), nil
}

func (a *libraryAdapter) ReadRaw() ([]byte, error) {
	b := clipboard.Read(clipboard.FmtText)
	if len(b) == 0 {
		return nil, notFound("ReadRaw", "no data in clipboard")
	}
	return b, nil
}

func (a *libraryAdapter) ReadPaths() ([]string, error) {
	return nil, newError(KindUnsupported, "ReadPaths",
		errors.New("file lists need the xclip helper; the clipboard library only exposes text"))
}
