package ioengine

import "github.com/spf13/afero"

// MvSubtree moves the file, symlink, or directory tree rooted at args.Src
// to args.Dst. It first attempts a single atomic rename; when that fails,
// the failure is classified (mirroring errno handling on a real OS) to
// decide the fallback: a cross-device or permission-denied rename is
// decomposed into a recursive copy followed by a recursive remove (with
// progress notification silenced during the remove, so a move never looks
// like it "loses" items on the progress bar), while a destination-exists
// failure falls back to the CRS-driven merge used by CpSubtree, followed by
// removing the (now-copied) source.
//
// CaseInsensitiveFS opts into treating a rename that only changes a path's
// letter case as a plain rename rather than a destination-exists conflict,
// since on a case-insensitive filesystem os.Rename("A", "a") otherwise
// looks indistinguishable from overwriting an existing "a".
func MvSubtree(fsys afero.Fs, args *MvSubtreeArgs) OpResult {
	if args.cancelled() {
		return ResFailed
	}

	if isInSubtree(args.Dst, args.Src) {
		return failWith(&args.Context, args.Dst, ErrIO, "destination is inside the source subtree")
	}

	// Checked up front, not left to the rename syscall's own error: POSIX
	// rename(2) does not fail when dst is an existing regular file, it
	// atomically replaces it. Relying on the syscall alone would let
	// CRSFail silently clobber a file-vs-file destination.
	if _, err := lstat(fsys, args.Dst); err == nil {
		if args.CRS == CRSFail && !isCaseOnlyRename(args.Src, args.Dst, args.CaseInsensitiveFS) {
			return failWith(&args.Context, args.Dst, ErrExists, "destination already exists")
		}
	}

	err := fsys.Rename(args.Src, args.Dst)
	if err == nil {
		if args.Estim != nil {
			args.Estim.Update(args.Src, args.Dst, true, 0)
		}

		return ResSucceeded
	}

	switch classifyMoveErr(err) {
	case moveErrCrossDeviceOrDenied:
		return moveByCopyThenRemove(fsys, args)
	case moveErrDestExists:
		return moveByMerge(fsys, args)
	default:
		return failWith(&args.Context, args.Src, classifyIOErr(err), err.Error())
	}
}

// moveByCopyThenRemove decomposes a move the rename syscall refused
// (typically EXDEV, a cross-filesystem move) into a copy of the whole
// subtree followed by removing the source. The remove phase is silenced on
// the estimator so the caller's progress bar reflects only the copy, which
// is the phase that actually moves bytes.
func moveByCopyThenRemove(fsys afero.Fs, args *MvSubtreeArgs) OpResult {
	// A move's internal copy always tries a fast clone first, regardless of
	// a caller-supplied CpArgs default: the source is bytes that are about
	// to be deleted from the old location anyway, so a reflink is strictly
	// better than a block copy whenever the filesystem offers one.
	cpArgs := &CpArgs{
		Context:         args.Context,
		Src:             args.Src,
		Dst:             args.Dst,
		CRS:             args.CRS,
		FastFileCloning: true,
		DataSync:        args.DataSync,
		Verify:          args.Verify,
	}

	srcInfo, err := lstat(fsys, args.Src)
	if err != nil {
		return failWith(&args.Context, args.Src, ErrNotFound, "source does not exist")
	}

	var res OpResult
	if srcInfo.IsDir() {
		subArgs := &CpSubtreeArgs{
			Context:         args.Context,
			Src:             args.Src,
			Dst:             args.Dst,
			CRS:             args.CRS,
			FastFileCloning: true,
			DataSync:        args.DataSync,
			Verify:          args.Verify,
			Excludes:        args.Excludes,
		}
		res = CpSubtree(fsys, subArgs)
	} else {
		res = Copy(fsys, cpArgs)
	}

	if res != ResSucceeded {
		return res
	}

	var prevSilent bool
	if args.Estim != nil {
		prevSilent = args.Estim.SilentOn()
	}

	rmArgs := &RmSubtreeArgs{Context: args.Context, Path: args.Src, Excludes: args.Excludes}
	rmRes := RmSubtree(fsys, rmArgs)

	if args.Estim != nil {
		args.Estim.SilentSet(prevSilent)
	}

	if rmRes != ResSucceeded {
		return rmRes
	}

	return ResSucceeded
}

// moveByMerge falls back to a CRS-driven recursive copy when rename failed
// because the destination already exists (EEXIST/ENOTEMPTY/EISDIR),
// followed by removing the source once every entry has been placed.
// CRSFail simply surfaces the conflict as a failure, matching a plain mv
// that refuses to clobber an existing destination.
func moveByMerge(fsys afero.Fs, args *MvSubtreeArgs) OpResult {
	if args.CRS == CRSFail {
		return failWith(&args.Context, args.Dst, ErrExists, "destination already exists")
	}

	subArgs := &CpSubtreeArgs{
		Context:         args.Context,
		Src:             args.Src,
		Dst:             args.Dst,
		CRS:             args.CRS,
		FastFileCloning: true,
		DataSync:        args.DataSync,
		Verify:          args.Verify,
		Excludes:        args.Excludes,
	}

	if res := CpSubtree(fsys, subArgs); res != ResSucceeded {
		return res
	}

	rmArgs := &RmSubtreeArgs{Context: args.Context, Path: args.Src, Excludes: args.Excludes}

	return RmSubtree(fsys, rmArgs)
}
