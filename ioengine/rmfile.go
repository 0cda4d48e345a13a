package ioengine

import "github.com/spf13/afero"

// RmFile removes a regular file or symlink at args.Path. It fails if the
// path is a directory; use RmDir or RmSubtree for those.
func RmFile(fsys afero.Fs, args *RmFileArgs) OpResult {
	if args.cancelled() {
		return ResFailed
	}

	for {
		info, err := lstat(fsys, args.Path)
		if err != nil {
			return failWith(&args.Context, args.Path, ErrNotFound, "source does not exist")
		}

		if info.IsDir() {
			return failWith(&args.Context, args.Path, ErrIsDir, "refusing to remove a directory as a file")
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
