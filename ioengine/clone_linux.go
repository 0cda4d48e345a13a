//go:build linux

package ioengine

import (
	"os"

	"github.com/spf13/afero"
	"golang.org/x/sys/unix"
)

// tryFastClone attempts a copy-on-write reflink of src onto dst via the
// Linux FICLONE ioctl, succeeding only when both files are plain OS files
// (afero.OsFs) on a filesystem that supports it (btrfs, xfs with
// reflink=1, some overlayfs configurations). dst must already be open and
// empty; on success it holds a full copy of src's data without a single
// byte having been read into this process. Any failure is silent: the
// caller falls back to a normal block copy using the same open files.
func tryFastClone(src, dst afero.File) bool {
	srcOS, ok := src.(*os.File)
	if !ok {
		return false
	}

	dstOS, ok := dst.(*os.File)
	if !ok {
		return false
	}

	return unix.IoctlFileClone(int(dstOS.Fd()), int(srcOS.Fd())) == nil
}
