package clip

import "errors"

// unavailableAdapter stands in when no clipboard facility can be reached:
// no display server and no selection helper, or an unsupported OS. Unlike a
// silent no-op it fails every call, so callers never mistake a missing
// clipboard for an empty one.
type unavailableAdapter struct {
	reason error
}

func (a *unavailableAdapter) Name() string { return "unavailable" }

func (a *unavailableAdapter) err(op string) error {
	reason := a.reason
	if reason == nil {
		reason = errors.New("no clipboard available")
	}
	return newError(KindResource, op, reason)
}

func (a *unavailableAdapter) WritePaths(_ []Entry) error   { return a.err("WritePaths") }
func (a *unavailableAdapter) ReadText() (string, error)    { return "", a.err("ReadText") }
func (a *unavailableAdapter) ReadRaw() ([]byte, error)     { return nil, a.err("ReadRaw") }
func (a *unavailableAdapter) ReadPaths() ([]string, error) { return nil, a.err("ReadPaths") }
