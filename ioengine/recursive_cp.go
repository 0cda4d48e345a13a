package ioengine

import (
	"os"

	"github.com/spf13/afero"
)

// CpSubtree copies the file, symlink, or directory tree rooted at args.Src
// to args.Dst. A destination nested inside its own source is rejected
// up-front, since copying would otherwise never terminate. When args.CRS is
// CRSReplaceAll and args.Dst already exists, the whole destination is
// removed before the copy begins, rather than per-entry during the walk.
func CpSubtree(fsys afero.Fs, args *CpSubtreeArgs) OpResult {
	if args.cancelled() {
		return ResFailed
	}

	if isInSubtree(args.Dst, args.Src) {
		return failWith(&args.Context, args.Dst, ErrIO, "destination is inside the source subtree")
	}

	if _, err := lstat(fsys, args.Dst); err == nil {
		switch args.CRS {
		case CRSFail:
			return failWith(&args.Context, args.Dst, ErrExists, "destination already exists")
		case CRSReplaceAll:
			if args.Confirm != nil && !args.Confirm(&args.Context, args.Src, args.Dst) {
				return ResSkipped
			}

			if err := fsys.RemoveAll(args.Dst); err != nil {
				return failWith(&args.Context, args.Dst, classifyIOErr(err), err.Error())
			}
		}
	}

	v := &cpVisitor{fsys: fsys, ctx: &args.Context, srcRoot: args.Src, dstRoot: args.Dst, crs: args.CRS,
		fastFileCloning: args.FastFileCloning, dataSync: args.DataSync, verify: args.Verify, excludes: args.Excludes}

	return Traverse(fsys, args.Src, v, args.Cancellation)
}

type cpVisitor struct {
	fsys            afero.Fs
	ctx             *Context
	srcRoot         string
	dstRoot         string
	crs             CRS
	fastFileCloning bool
	dataSync        bool
	verify          bool
	excludes        []string
}

func (v *cpVisitor) Visit(action VisitAction, path string, info os.FileInfo) VisitResult {
	if v.ctx.cancelled() {
		return VisitCancelled
	}

	rel := relTo(v.srcRoot, path)

	if isExcluded(rel, v.excludes) {
		if action == VisitDirEnter {
			return VisitSkipDirLeave
		}

		return VisitOK
	}

	dst := secureDestPath(v.fsys, v.dstRoot, rel)

	switch action {
	case VisitDirEnter:
		if _, err := lstat(v.fsys, dst); err != nil {
			for {
				mkErr := v.fsys.Mkdir(dst, 0o700)
				if mkErr == nil {
					break
				}

				res, retry := recoverFromErr(v.ctx, dst, classifyIOErr(mkErr), mkErr.Error())
				if retry {
					continue
				}

				return visitResultFor(res)
			}
		}

		if v.ctx.Estim != nil {
			v.ctx.Estim.Update(path, dst, true, 0)
		}

		return VisitOK
	case VisitFile:
		cpArgs := &CpArgs{
			Context:         *v.ctx,
			Src:             path,
			Dst:             dst,
			CRS:             v.crs,
			FastFileCloning: v.fastFileCloning,
			DataSync:        v.dataSync,
			Verify:          v.verify,
		}

		return visitResultFor(Copy(v.fsys, cpArgs))
	case VisitDirLeave:
		for {
			chErr := v.fsys.Chmod(dst, info.Mode().Perm())
			if chErr == nil {
				break
			}

			res, retry := recoverFromErr(v.ctx, dst, classifyIOErr(chErr), chErr.Error())
			if retry {
				continue
			}

			return visitResultFor(res)
		}

		cloneAttribs(v.fsys, path, dst, info)

		return VisitOK
	default:
		return VisitOK
	}
}
