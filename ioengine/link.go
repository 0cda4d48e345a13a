package ioengine

import "github.com/spf13/afero"

// Link creates a symbolic link at args.Path pointing at args.Target,
// honoring args.CRS if the link path already exists. Only CRSFail and
// CRSReplaceAll are meaningful for links; CRSReplaceFiles and
// CRSAppendToFiles are treated the same as CRSReplaceAll, since a symlink
// has no content to merge.
func Link(fsys afero.Fs, args *LnArgs) OpResult {
	if args.cancelled() {
		return ResFailed
	}

	for {
		res := attemptLink(fsys, args)
		if res != ResFailed {
			return res
		}

		res, retry := recoverFromLastErr(&args.Context, res)
		if retry {
			continue
		}

		return res
	}
}

func attemptLink(fsys afero.Fs, args *LnArgs) OpResult {
	if _, err := lstat(fsys, args.Path); err == nil {
		switch args.CRS {
		case CRSFail:
			return failWith(&args.Context, args.Path, ErrExists, "destination already exists")
		default:
			if args.Confirm != nil && !args.Confirm(&args.Context, args.Path, args.Path) {
				return ResSkipped
			}

			if err := fsys.RemoveAll(args.Path); err != nil {
				return failWith(&args.Context, args.Path, classifyIOErr(err), err.Error())
			}
		}
	}

	if err := symlinkAt(fsys, args.Target, args.Path); err != nil {
		return failWith(&args.Context, args.Path, classifyIOErr(err), err.Error())
	}

	if args.Estim != nil {
		args.Estim.Update(args.Path, "", true, 0)
	}

	return ResSucceeded
}
