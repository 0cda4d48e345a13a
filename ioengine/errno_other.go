//go:build !unix

package ioengine

import (
	"errors"
	"os"
)

// classifyMoveErr is the non-Unix fallback: it has no errno to inspect, so
// it classifies by the generic os.Is* sentinels Go's os package guarantees
// on every platform. This is coarser than the Unix path (no EXDEV
// equivalent is exposed portably) but still distinguishes "destination
// exists" from every other failure.
func classifyMoveErr(err error) moveErrClass {
	switch {
	case errors.Is(err, os.ErrExist):
		return moveErrDestExists
	case errors.Is(err, os.ErrPermission):
		return moveErrCrossDeviceOrDenied
	default:
		return moveErrOther
	}
}
