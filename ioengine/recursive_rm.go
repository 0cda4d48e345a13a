package ioengine

import (
	"os"

	"github.com/spf13/afero"
)

// RmSubtree removes the file, symlink, or directory tree rooted at
// args.Path, depth-first, so a directory's entries are always gone before
// the directory itself is removed. Entries matching args.Excludes are left
// untouched; an excluded directory is pruned entirely (neither it nor
// anything under it is removed).
func RmSubtree(fsys afero.Fs, args *RmSubtreeArgs) OpResult {
	if args.cancelled() {
		return ResFailed
	}

	v := &rmVisitor{fsys: fsys, ctx: &args.Context, root: args.Path, excludes: args.Excludes}

	return Traverse(fsys, args.Path, v, args.Cancellation)
}

type rmVisitor struct {
	fsys     afero.Fs
	ctx      *Context
	root     string
	excludes []string
}

func (v *rmVisitor) Visit(action VisitAction, path string, info os.FileInfo) VisitResult {
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
	case VisitFile:
		return visitResultFor(RmFile(v.fsys, &RmFileArgs{Context: *v.ctx, Path: path}))
	case VisitDirLeave:
		if len(v.excludes) > 0 {
			// A directory still holding excluded entries is kept.
			if names, err := readdirUnsorted(v.fsys, path); err == nil && len(names) > 0 {
				return VisitOK
			}
		}

		return visitResultFor(RmDir(v.fsys, &RmDirArgs{Context: *v.ctx, Path: path}))
	default:
		return VisitOK
	}
}
