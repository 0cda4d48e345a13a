//go:build unix

package ioengine

import (
	"github.com/spf13/afero"
	"golang.org/x/sys/unix"
)

// cloneXattrs mirrors the source's clone_attribs() extended-attribute
// handling, scoped to real OS filesystems: afero's virtual backends have no
// path on disk for unix.Llistxattr to inspect.
func cloneXattrs(fsys afero.Fs, srcPath, dst string) {
	if _, ok := fsys.(*afero.OsFs); !ok {
		return
	}

	names, err := listXattrs(srcPath)
	if err != nil {
		return
	}

	for _, name := range names {
		buf := make([]byte, 4096)

		n, err := unix.Lgetxattr(srcPath, name, buf)
		if err != nil {
			continue
		}

		_ = unix.Lsetxattr(dst, name, buf[:n], 0)
	}
}

func listXattrs(path string) ([]string, error) {
	buf := make([]byte, 4096)

	n, err := unix.Llistxattr(path, buf)
	if err != nil {
		return nil, err
	}

	var names []string

	for _, raw := range splitNulTerminated(buf[:n]) {
		if raw != "" {
			names = append(names, raw)
		}
	}

	return names, nil
}

func splitNulTerminated(b []byte) []string {
	var out []string

	start := 0

	for i, c := range b {
		if c == 0 {
			out = append(out, string(b[start:i]))
			start = i + 1
		}
	}

	return out
}
