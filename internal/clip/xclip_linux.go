package clip

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

const uriListTarget = "text/uri-list"

// xclipAdapter drives an external selection owner. Writes hand the data to
// xclip on stdin; xclip forks and keeps serving the selection after we return.
type xclipAdapter struct {
	bin string
}

func (a *xclipAdapter) Name() string {
	return "X11 selection (" + filepath.Base(a.bin) + ")"
}

func (a *xclipAdapter) command(args ...string) *exec.Cmd {
	return exec.Command(a.bin, append([]string{"-selection", "clipboard"}, args...)...)
}

// WritePaths offers the URI block under text/uri-list.
func (a *xclipAdapter) WritePaths(entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	cmd := a.command("-t", uriListTarget)
	cmd.Stdin = bytes.NewReader(joinURIs(entries))
	// Output stays unattached: the forked selection owner would hold a pipe
	// open and Run would not return until it exits.
	if err := cmd.Run(); err != nil {
		return newError(KindPlatform, "xclip -i", err)
	}
	return nil
}

// output runs xclip -o. xclip exits non-zero both when the selection has no
// owner or lacks the target, which is absence, and when it cannot reach the X
// server at all, which is not.
func (a *xclipAdapter) output(op string, args ...string) ([]byte, error) {
	out, err := a.command(append([]string{"-o"}, args...)...).Output()
	if err == nil {
		return out, nil
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return nil, newError(KindPlatform, op, err)
	}
	msg := strings.TrimSpace(string(exitErr.Stderr))
	switch {
	case msg == "":
		return nil, notFound(op, exitErr.Error())
	case strings.Contains(msg, "not available"):
		return nil, notFound(op, msg)
	case strings.Contains(msg, "Can't open display"):
		return nil, newError(KindResource, op, errors.New(msg))
	default:
		return nil, newError(KindPlatform, op, fmt.Errorf("%w: %s", err, msg))
	}
}

func (a *xclipAdapter) ReadText() (string, error) {
	out, err := a.output("xclip -o")
	if err != nil {
		return "", err
	}
	if len(out) == 0 {
		return "", notFound("xclip -o", "no text content in clipboard")
	}
	return strings.ToValidUTF8(string(out), "�"), nil
}

func (a *xclipAdapter) ReadRaw() ([]byte, error) {
	out, err := a.output("xclip -o")
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, notFound("xclip -o", "no data in clipboard")
	}
	return out, nil
}

func (a *xclipAdapter) ReadPaths() ([]string, error) {
	out, err := a.output("xclip -o -t "+uriListTarget, "-t", uriListTarget)
	if IsNotFound(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	paths := parseURIList(out)
	if paths == nil {
		paths = []string{}
	}
	return paths, nil
}
