//go:build unix

package ioengine

import (
	"errors"

	"golang.org/x/sys/unix"
)

// classifyMoveErr decides how ior_mv-equivalent code should react to a
// failed rename syscall: whether to decompose into copy+remove (the
// cross-filesystem/no-permission-to-rename case) or to fall back to the
// already-exists conflict-resolution path.
func classifyMoveErr(err error) moveErrClass {
	var errno unix.Errno
	if !errors.As(err, &errno) {
		return moveErrOther
	}

	switch errno {
	case unix.EXDEV, unix.EPERM, unix.EACCES:
		return moveErrCrossDeviceOrDenied
	case unix.EEXIST, unix.ENOTEMPTY, unix.EISDIR:
		return moveErrDestExists
	default:
		return moveErrOther
	}
}
