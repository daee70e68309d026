//go:build !darwin && !windows && !linux

package clip

import (
	"fmt"
	"runtime"
)

// New returns an adapter that reports the clipboard as unavailable.
func New(_ Options) Adapter {
	return &unavailableAdapter{
		reason: fmt.Errorf("clipboard not supported on %s", runtime.GOOS),
	}
}
