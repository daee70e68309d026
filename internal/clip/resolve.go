package clip

import (
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Policy decides what a write does with inputs that fail to canonicalize.
type Policy string

const (
	// PolicyStrict aborts the write if any input fails to resolve.
	PolicyStrict Policy = "strict"
	// PolicyBestEffort writes whatever resolved and logs the rest.
	PolicyBestEffort Policy = "best-effort"
)

// ParsePolicy converts a config string to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict", "":
		return PolicyStrict, nil
	case "best-effort", "besteffort", "lenient":
		return PolicyBestEffort, nil
	default:
		return "", fmt.Errorf("unknown path policy %q (want strict|best-effort)", s)
	}
}

// Entry is one resolved path.
type Entry struct {
	// Input is the string the caller supplied.
	Input string
	// Path is the absolute, symlink-free OS path.
	Path string
	// URI is Path as a file:// URI.
	URI string
}

// Resolve canonicalizes inputs. Every input must name an existing filesystem
// entry; per-path failures are collected and reported together. An empty input
// yields nil, nil.
func Resolve(inputs []string, policy Policy) ([]Entry, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	var (
		entries []Entry
		failed  *multierror.Error
	)
	for _, in := range inputs {
		p, err := canonicalize(in)
		if err != nil {
			failed = multierror.Append(failed, fmt.Errorf("%s: %w", in, err))
			continue
		}
		entries = append(entries, Entry{Input: in, Path: p, URI: fileURI(p)})
	}

	if failed == nil {
		return entries, nil
	}
	failed.ErrorFormat = joinErrors

	switch {
	case len(entries) == 0:
		return nil, newError(KindInvalidInput, "resolve paths",
			fmt.Errorf("no valid paths: %w", failed))
	case policy == PolicyBestEffort:
		for _, e := range failed.Errors {
			slog.Warn("skipping unresolvable path", "err", e)
		}
		return entries, nil
	default:
		return nil, newError(KindInvalidInput, "resolve paths",
			fmt.Errorf("%d of %d paths invalid: %w", len(failed.Errors), len(inputs), failed))
	}
}

func canonicalize(in string) (string, error) {
	if strings.TrimSpace(in) == "" {
		return "", fmt.Errorf("empty path")
	}
	abs, err := filepath.Abs(in)
	if err != nil {
		return "", err
	}
	// EvalSymlinks fails for entries that do not exist.
	return filepath.EvalSymlinks(abs)
}

// fileURI renders an absolute path as a file:// URI with the path
// percent-encoded, using forward slashes on every platform.
func fileURI(p string) string {
	p = filepath.ToSlash(p)
	if !strings.HasPrefix(p, "/") {
		// C:/x → /C:/x
		p = "/" + p
	}
	u := url.URL{Scheme: "file", Path: p}
	return u.String()
}

func joinErrors(errs []error) string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}
