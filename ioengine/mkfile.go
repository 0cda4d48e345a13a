package ioengine

import (
	"errors"
	"os"

	"github.com/spf13/afero"
)

// MkFile creates an empty regular file at args.Path. It fails if something
// already exists there; use Copy with a CRS to replace an existing file.
func MkFile(fsys afero.Fs, args *MkFileArgs) OpResult {
	if args.cancelled() {
		return ResFailed
	}

	for {
		f, err := fsys.OpenFile(args.Path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o666)
		if err == nil {
			_ = f.Close()

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

// classifyIOErr maps a generic filesystem error to an ErrKind, for
// primitives that have no more specific classification available (errno
// classification is reserved for the move state machine, which needs finer
// distinctions than os.IsNotExist/os.IsExist/os.IsPermission offer).
func classifyIOErr(err error) ErrKind {
	switch {
	case errors.Is(err, os.ErrExist):
		return ErrExists
	case errors.Is(err, os.ErrNotExist):
		return ErrNotFound
	case errors.Is(err, os.ErrPermission):
		return ErrPermission
	default:
		return ErrIO
	}
}

// failWith records an error and returns ResFailed directly, without
// consulting the error callback itself (e.g. for preconditions checked before
// any filesystem mutation is attempted). Copy and Link hand the record it
// appends to recoverFromLastErr afterwards, so their failures still reach
// the retry/ignore/break decision.
func failWith(ctx *Context, path string, kind ErrKind, message string) OpResult {
	ctx.appendError(path, kind, message)

	return ResFailed
}

// recoverFromErr appends an error record for a failed primitive attempt and
// invokes the error callback, if any, to decide the outcome. The second
// return value is true when the caller should retry the primitive from
// scratch.
func recoverFromErr(ctx *Context, path string, kind ErrKind, message string) (OpResult, bool) {
	ctx.appendError(path, kind, message)

	if ctx.ErrorCB == nil {
		return ResFailed, false
	}

	switch ctx.ErrorCB(ctx, ctx.Errors.Records()[ctx.Errors.Len()-1]) {
	case ErrCbRetry:
		ctx.Errors.Pop()

		return ResFailed, true
	case ErrCbIgnore:
		ctx.Errors.Pop()

		if ctx.Estim != nil {
			ctx.Estim.Update(path, "", true, 0)
		}

		return ResSkipped, false
	default:
		return ResFailed, false
	}
}
