package ioengine

import (
	"os"

	"github.com/spf13/afero"
)

// ChownSubtree changes the owning user ID of every entry in the tree rooted
// at args.Path.
func ChownSubtree(fsys afero.Fs, args *ChattrSubtreeArgs) OpResult {
	return chattrSubtree(fsys, args, func(path string) error {
		return lchownOrChown(fsys, path, args.UID, -1)
	})
}

// ChgrpSubtree changes the owning group ID of every entry in the tree
// rooted at args.Path.
func ChgrpSubtree(fsys afero.Fs, args *ChattrSubtreeArgs) OpResult {
	return chattrSubtree(fsys, args, func(path string) error {
		return lchownOrChown(fsys, path, -1, args.GID)
	})
}

// ChmodSubtree changes the permission bits of every entry in the tree
// rooted at args.Path to args.Mode.
func ChmodSubtree(fsys afero.Fs, args *ChattrSubtreeArgs) OpResult {
	return chattrSubtree(fsys, args, func(path string) error {
		return fsys.Chmod(path, args.Mode)
	})
}

func chattrSubtree(fsys afero.Fs, args *ChattrSubtreeArgs, apply func(path string) error) OpResult {
	if args.cancelled() {
		return ResFailed
	}

	v := &attrVisitor{fsys: fsys, ctx: &args.Context, root: args.Path, excludes: args.Excludes, apply: apply}

	return Traverse(fsys, args.Path, v, args.Cancellation)
}

type attrVisitor struct {
	fsys     afero.Fs
	ctx      *Context
	root     string
	excludes []string
	apply    func(path string) error
}

func (v *attrVisitor) Visit(action VisitAction, path string, info os.FileInfo) VisitResult {
	if v.ctx.cancelled() {
		return VisitCancelled
	}

	rel := relTo(v.root, path)

	if isExcluded(rel, v.excludes) {
		if action == VisitDirEnter {
			return VisitSkipDirLeave
		}

		return VisitOK
	}

	switch action {
	case VisitFile, VisitDirEnter:
		for {
			err := v.apply(path)
			if err == nil {
				break
			}

			res, retry := recoverFromErr(v.ctx, path, classifyIOErr(err), err.Error())
			if retry {
				continue
			}

			return visitResultFor(res)
		}

		if v.ctx.Estim != nil {
			v.ctx.Estim.Update(path, "", true, 0)
		}

		return VisitOK
	default:
		return VisitOK
	}
}
