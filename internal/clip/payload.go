package clip

import (
	"fmt"
	"math"
)

// maxPayload is the largest payload copied out of native memory; cgo's
// GoBytes takes an int32 length.
const maxPayload = math.MaxInt32

func checkPayloadSize(op string, n int64) error {
	if n > maxPayload {
		return newError(KindResource, op,
			fmt.Errorf("payload of %d bytes exceeds the %d byte limit", n, int64(maxPayload)))
	}
	return nil
}
