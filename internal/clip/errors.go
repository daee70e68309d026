package clip

import (
	"errors"
	"fmt"
)

// Kind classifies a clipboard failure.
type Kind int

const (
	// KindPlatform is a native call that failed; Err carries the OS detail.
	KindPlatform Kind = iota
	// KindInvalidInput means the caller supplied no usable source data.
	KindInvalidInput
	// KindNotFound means the clipboard holds no data of the requested kind.
	KindNotFound
	// KindResource means a clipboard handle, memory block or session could not
	// be acquired.
	KindResource
	// KindUnsupported means the operation is not available with the active
	// adapter.
	KindUnsupported
)

func (k Kind) String() string {
	switch k {
	case KindPlatform:
		return "platform"
	case KindInvalidInput:
		return "invalid input"
	case KindNotFound:
		return "not found"
	case KindResource:
		return "resource"
	case KindUnsupported:
		return "unsupported"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is the error type returned by every adapter operation.
type Error struct {
	Kind Kind
	// Op names the native step or helper command that failed.
	Op  string
	Err error
}

func (e *Error) Error() string {
	switch {
	case e.Op == "" && e.Err == nil:
		return e.Kind.String()
	case e.Err == nil:
		return e.Op + ": " + e.Kind.String()
	case e.Op == "":
		return e.Err.Error()
	default:
		return e.Op + ": " + e.Err.Error()
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is match an Error against one of the sentinel values below
// by kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.Op != "" || t.Err != nil {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels for errors.Is.
var (
	ErrInvalidInput = &Error{Kind: KindInvalidInput}
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrPlatform     = &Error{Kind: KindPlatform}
	ErrResource     = &Error{Kind: KindResource}
	ErrUnsupported  = &Error{Kind: KindUnsupported}
)

func newError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func notFound(op, msg string) *Error {
	return &Error{Kind: KindNotFound, Op: op, Err: errors.New(msg)}
}

// KindOf returns the Kind of the first *Error in err's chain, or KindPlatform
// when err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindPlatform
}

// IsNotFound reports whether err means "no data of that kind is present".
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
