package ioengine

import (
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/zeebo/blake3"
)

// Copy copies one file or symlink from args.Src to args.Dst, honoring
// args.CRS if the destination already exists. A symlink source is
// recreated by reading its target and calling symlinkAt; it is never
// dereferenced. A regular-file copy goes through a sibling temp file so a
// crash or cancellation mid-transfer never leaves a half-written file at
// the final destination path; the exception is CRSAppendToFiles, which
// writes straight into the existing destination.
func Copy(fsys afero.Fs, args *CpArgs) OpResult {
	if args.cancelled() {
		return ResFailed
	}

	for {
		res := attemptCopy(fsys, args)
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

// attemptCopy runs one full copy attempt; its failures are reported through
// failWith, appending to args.Errors, and are turned into a retry/ignore/
// break decision by recoverFromLastErr in Copy's caller loop rather than
// here, so the whole attempt (not just its last syscall) is what gets
// retried.
func attemptCopy(fsys afero.Fs, args *CpArgs) OpResult {
	srcInfo, err := lstat(fsys, args.Src)
	if err != nil {
		return failWith(&args.Context, args.Src, ErrNotFound, "source does not exist")
	}

	if res, proceed := resolveDestConflict(fsys, &args.Context, args.Src, args.Dst, args.CRS); !proceed {
		return res
	}

	if srcInfo.Mode()&os.ModeSymlink != 0 {
		return copySymlink(fsys, args, srcInfo)
	}

	return copyRegularFile(fsys, args, srcInfo)
}

// recoverFromLastErr consults ctx.ErrorCB about the most recently appended
// error record, the same way recoverFromErr does for a single-syscall
// primitive, for a caller (Copy, Link) whose unit of retry is a whole
// multi-step attempt rather than one syscall.
func recoverFromLastErr(ctx *Context, fallback OpResult) (OpResult, bool) {
	if ctx.Errors == nil || ctx.Errors.Len() == 0 {
		return fallback, false
	}

	last := ctx.Errors.Records()[ctx.Errors.Len()-1]
	ctx.Errors.Pop()

	return recoverFromErr(ctx, last.Path, last.Kind, last.Message)
}

// resolveDestConflict checks whether dst already exists and, if so, applies
// crs. The returned bool is false when the caller should stop because the
// conflict failed or was skipped; it is true when dst is absent or crs lets
// the copy go ahead (CRSAppendToFiles keeps the existing destination for the
// caller to append to).
func resolveDestConflict(fsys afero.Fs, ctx *Context, src, dst string, crs CRS) (OpResult, bool) {
	existing, err := lstat(fsys, dst)
	if err != nil {
		return ResSucceeded, true
	}

	switch crs {
	case CRSFail:
		return failWith(ctx, dst, ErrExists, "destination already exists"), false
	case CRSReplaceAll:
		if ctx.Confirm != nil && !ctx.Confirm(ctx, src, dst) {
			return ResSkipped, false
		}

		if existing.IsDir() {
			if err := fsys.RemoveAll(dst); err != nil {
				return failWith(ctx, dst, classifyIOErr(err), err.Error()), false
			}
		} else if err := fsys.Remove(dst); err != nil {
			return failWith(ctx, dst, classifyIOErr(err), err.Error()), false
		}

		return ResSucceeded, true
	case CRSReplaceFiles:
		if existing.IsDir() {
			return failWith(ctx, dst, ErrIsDir, "cannot replace a directory in place"), false
		}

		if ctx.Confirm != nil && !ctx.Confirm(ctx, src, dst) {
			return ResSkipped, false
		}

		return ResSucceeded, true
	case CRSAppendToFiles:
		if existing.IsDir() {
			return failWith(ctx, dst, ErrIsDir, "cannot append into a directory"), false
		}

		return ResSucceeded, true
	default:
		return failWith(ctx, dst, ErrUnknown, "unknown conflict resolution strategy"), false
	}
}

func copySymlink(fsys afero.Fs, args *CpArgs, srcInfo os.FileInfo) OpResult {
	target, err := readlink(fsys, args.Src)
	if err != nil {
		return failWith(&args.Context, args.Src, ErrIO, err.Error())
	}

	_ = fsys.Remove(args.Dst)

	if err := symlinkAt(fsys, target, args.Dst); err != nil {
		return failWith(&args.Context, args.Dst, classifyIOErr(err), err.Error())
	}

	if args.Estim != nil {
		args.Estim.Update(args.Src, args.Dst, true, 0)
	}

	return ResSucceeded
}

func copyRegularFile(fsys afero.Fs, args *CpArgs, srcInfo os.FileInfo) OpResult {
	srcFile, err := fsys.Open(args.Src)
	if err != nil {
		return failWith(&args.Context, args.Src, classifyIOErr(err), err.Error())
	}
	defer srcFile.Close()

	isAppend := args.CRS == CRSAppendToFiles

	tmpPath := args.Dst + "." + uuid.NewString() + ".tmp"
	finalPath := args.Dst

	var dstFile afero.File

	if isAppend {
		dstFile, err = fsys.OpenFile(args.Dst, os.O_WRONLY|os.O_APPEND, 0o666)
	} else {
		dstFile, err = fsys.OpenFile(tmpPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, srcInfo.Mode().Perm())
	}

	if err != nil {
		return failWith(&args.Context, args.Dst, classifyIOErr(err), err.Error())
	}

	cloned := false
	if !isAppend && args.FastFileCloning {
		cloned = tryFastClone(srcFile, dstFile)
	}

	srcHasher := blake3.New()

	if cloned {
		if err := dstFile.Close(); err != nil {
			_ = fsys.Remove(tmpPath)

			return failWith(&args.Context, args.Dst, classifyIOErr(err), err.Error())
		}
	} else {
		reader := &cancelReader{r: srcFile, ctx: args.Cancellation}
		buf := make([]byte, 256*1024)

		copyErr := copyWithProgress(dstFile, srcHasher, reader, buf, args)

		var syncErr error
		if args.DataSync {
			syncErr = dstFile.Sync()
		}
		closeErr := dstFile.Close()

		if copyErr != nil || syncErr != nil || closeErr != nil {
			_ = fsys.Remove(tmpPath)

			if copyErr == errCancelled {
				return failWith(&args.Context, args.Src, ErrCancelled, "operation cancelled")
			}

			msg := firstNonNil(copyErr, syncErr, closeErr)

			return failWith(&args.Context, args.Dst, classifyIOErr(msg), msg.Error())
		}
	}

	if isAppend {
		if args.Estim != nil {
			args.Estim.Update(args.Src, args.Dst, true, 0)
		}

		return ResSucceeded
	}

	if args.Verify {
		srcSum := srcHasher.Sum(nil)

		if cloned {
			sum, err := hashFile(fsys, args.Src)
			if err != nil {
				_ = fsys.Remove(tmpPath)

				return failWith(&args.Context, args.Src, classifyIOErr(err), err.Error())
			}

			srcSum = sum
		}

		if res := verifyCopy(fsys, args, tmpPath, srcSum); res != ResSucceeded {
			_ = fsys.Remove(tmpPath)

			return res
		}
	}

	if err := fsys.Rename(tmpPath, finalPath); err != nil {
		_ = fsys.Remove(tmpPath)

		return failWith(&args.Context, args.Dst, classifyIOErr(err), err.Error())
	}

	_ = fsys.Chmod(finalPath, srcInfo.Mode().Perm())
	cloneAttribs(fsys, args.Src, finalPath, srcInfo)

	if args.Estim != nil {
		args.Estim.Update(args.Src, args.Dst, true, 0)
	}

	return ResSucceeded
}

// syncEveryBytes is how much a large copy writes between periodic fsyncs
// when args.DataSync is set, so a crash mid-transfer on a huge file loses
// at most one window's worth of dirty pages instead of the whole file.
const syncEveryBytes = 64 * 1024 * 1024

func copyWithProgress(dstFile afero.File, hasher io.Writer, src *cancelReader, buf []byte, args *CpArgs) error {
	writer := io.MultiWriter(dstFile, hasher)

	var sinceSync uint64

	for {
		n, rerr := src.Read(buf)
		if n > 0 {
			if _, werr := writer.Write(buf[:n]); werr != nil {
				return werr
			}

			if args.Estim != nil {
				args.Estim.Update("", "", false, uint64(n))
			}

			if args.DataSync {
				sinceSync += uint64(n)
				if sinceSync >= syncEveryBytes {
					if err := dstFile.Sync(); err != nil {
						return err
					}

					sinceSync = 0
				}
			}
		}

		if rerr == io.EOF {
			return nil
		}

		if rerr != nil {
			return rerr
		}
	}
}

// hashFile computes a BLAKE3 digest of path's contents, used to verify a
// fast-cloned copy whose bytes never streamed through this process (a
// clone never touched srcHasher, so there is nothing to compare the
// destination against without a fresh read of the source).
func hashFile(fsys afero.Fs, path string) ([]byte, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	h := blake3.New()
	if _, err := io.Copy(h, f); err != nil {
		return nil, err
	}

	return h.Sum(nil), nil
}

func verifyCopy(fsys afero.Fs, args *CpArgs, tmpPath string, srcSum []byte) OpResult {
	dstSum, err := hashFile(fsys, tmpPath)
	if err != nil {
		return failWith(&args.Context, tmpPath, classifyIOErr(err), err.Error())
	}

	if string(dstSum) != string(srcSum) {
		return failWith(&args.Context, args.Dst, ErrIO, "copy verification failed: checksum mismatch")
	}

	return ResSucceeded
}

// cancelReader wraps an io.Reader so a long-running copy notices
// cancellation between reads without needing a context-aware afero.File.
type cancelReader struct {
	r   io.Reader
	ctx Cancellation
}

func (c *cancelReader) Read(p []byte) (int, error) {
	if c.ctx.Cancelled() {
		return 0, errCancelled
	}

	return c.r.Read(p)
}

func firstNonNil(errs ...error) error {
	for _, e := range errs {
		if e != nil {
			return e
		}
	}

	return nil
}
