package ioengine

import (
	"os"

	"github.com/spf13/afero"
)

// Chown changes the owning user ID of args.Path. On a real OS filesystem
// this never follows a trailing symlink (it changes the link itself);
// afero's Fs interface has no lchown equivalent, so virtual/in-memory
// backends fall back to the following Chown, which is indistinguishable
// from Lchown for anything that isn't a symlink.
func Chown(fsys afero.Fs, args *ChownArgs) OpResult {
	return applyAttr(fsys, &args.Context, args.Path, func() error {
		return lchownOrChown(fsys, args.Path, args.UID, -1)
	})
}

// Chgrp changes the owning group ID of args.Path, with the same
// symlink-handling caveat as Chown.
func Chgrp(fsys afero.Fs, args *ChgrpArgs) OpResult {
	return applyAttr(fsys, &args.Context, args.Path, func() error {
		return lchownOrChown(fsys, args.Path, -1, args.GID)
	})
}

// Chmod changes the permission bits of args.Path.
func Chmod(fsys afero.Fs, args *ChmodArgs) OpResult {
	return applyAttr(fsys, &args.Context, args.Path, func() error {
		return fsys.Chmod(args.Path, args.Mode)
	})
}

func applyAttr(fsys afero.Fs, ctx *Context, path string, do func() error) OpResult {
	if ctx.cancelled() {
		return ResFailed
	}

	for {
		if _, err := lstat(fsys, path); err != nil {
			return failWith(ctx, path, ErrNotFound, "path does not exist")
		}

		if err := do(); err == nil {
			if ctx.Estim != nil {
				ctx.Estim.Update(path, "", true, 0)
			}

			return ResSucceeded
		} else if res, retry := recoverFromErr(ctx, path, classifyIOErr(err), err.Error()); !retry {
			return res
		}
	}
}

func lchownOrChown(fsys afero.Fs, path string, uid, gid int) error {
	if l, ok := fsys.(interface {
		LchownIfPossible(string, int, int) error
	}); ok {
		return l.LchownIfPossible(path, uid, gid)
	}

	if _, ok := fsys.(*afero.OsFs); ok {
		return os.Lchown(path, uid, gid)
	}

	return fsys.Chown(path, uid, gid)
}
