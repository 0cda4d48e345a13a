package ioengine

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// MkDir creates a directory at args.Path. With ProcessParents set, missing
// ancestor directories are created first (each with the permissive interim
// mode 0700, like the source's mkdirat chain), only the final component
// receives args.Mode, and an already-existing final directory is not an
// error (mirroring "mkdir -p"); without ProcessParents, the immediate
// parent must already exist and args.Path itself must not.
func MkDir(fsys afero.Fs, args *MkDirArgs) OpResult {
	if args.cancelled() {
		return ResFailed
	}

	for {
		var err error
		if args.ProcessParents {
			err = mkdirAllWithFinalMode(fsys, args.Path, args.Mode)
		} else if _, perr := fsys.Stat(filepath.Dir(filepath.Clean(args.Path))); perr != nil {
			err = perr
		} else {
			err = fsys.Mkdir(args.Path, args.Mode)
		}

		if err == nil {
			if args.Estim != nil {
				args.Estim.Update(args.Path, "", true, 0)
			}

			return ResSucceeded
		}

		if res, retry := recoverFromErr(&args.Context, args.Path, classifyIOErr(err), err.Error()); !retry {
			return res
		}
	}
}

// mkdirAllWithFinalMode creates every missing ancestor of path with a
// permissive interim mode, then fixes the final component's mode once the
// whole chain exists, so intermediate directories are never left with a
// caller-chosen mode meant only for the leaf.
func mkdirAllWithFinalMode(fsys afero.Fs, path string, finalMode os.FileMode) error {
	clean := filepath.Clean(path)

	var missing []string

	cur := clean
	for {
		if _, err := fsys.Stat(cur); err == nil {
			break
		}

		missing = append(missing, cur)

		parent := filepath.Dir(cur)
		if parent == cur {
			break
		}

		cur = parent
	}

	for i := len(missing) - 1; i >= 0; i-- {
		mode := os.FileMode(0o700)
		if missing[i] == clean {
			mode = finalMode
		}

		if err := fsys.Mkdir(missing[i], mode); err != nil && !strings.Contains(err.Error(), "file exists") {
			return err
		}
	}

	return fsys.Chmod(clean, finalMode)
}
