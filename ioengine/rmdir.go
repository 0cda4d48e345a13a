package ioengine

import "github.com/spf13/afero"

// RmDir removes an empty directory at args.Path. It fails if the directory
// still has entries; use RmSubtree to remove a non-empty tree.
func RmDir(fsys afero.Fs, args *RmDirArgs) OpResult {
	if args.cancelled() {
		return ResFailed
	}

	for {
		info, err := lstat(fsys, args.Path)
		if err != nil {
			return failWith(&args.Context, args.Path, ErrNotFound, "source does not exist")
		}

		if !info.IsDir() {
			return failWith(&args.Context, args.Path, ErrIsFile, "refusing to remove a file as a directory")
		}

		names, err := readdirUnsorted(fsys, args.Path)
		if err == nil && len(names) > 0 {
			if res, retry := recoverFromErr(&args.Context, args.Path, ErrNotEmpty, "directory is not empty"); !retry {
				return res
			}

			continue
		}

		if err := fsys.Remove(args.Path); err == nil {
			if args.Estim != nil {
				args.Estim.Update(args.Path, "", true, 0)
			}

			return ResSucceeded
		} else if res, retry := recoverFromErr(&args.Context, args.Path, classifyIOErr(err), err.Error()); !retry {
			return res
		}
	}
}
