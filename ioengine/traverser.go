package ioengine

import (
	"os"

	"github.com/spf13/afero"
)

// Visitor receives one call per traversal step. path is the root passed to
// Traverse, or that root joined with the entry's names below it; info is an
// lstat result (symlinks are never followed by the traverser itself).
type Visitor interface {
	Visit(action VisitAction, path string, info os.FileInfo) VisitResult
}

// VisitorFunc adapts a plain function to the Visitor interface.
type VisitorFunc func(action VisitAction, path string, info os.FileInfo) VisitResult

func (f VisitorFunc) Visit(action VisitAction, path string, info os.FileInfo) VisitResult {
	return f(action, path, info)
}

// Traverse walks the subtree rooted at path depth-first, calling visitor
// for the root itself and for every descendant. Directory entries are
// visited in whatever order the backing filesystem's directory read
// returns them in: unlike afero.Walk (which sorts via afero.ReadDir), this
// never reorders entries, matching a traversal that must see entries the
// way the filesystem presents them rather than alphabetically. A symlink
// is always treated as a file (VisitFile), even when it points at a
// directory: its target is never descended into.
func Traverse(fsys afero.Fs, path string, visitor Visitor, cancellation Cancellation) OpResult {
	info, err := lstat(fsys, path)
	if err != nil {
		return ResFailed
	}

	return traverseEntry(fsys, path, info, visitor, cancellation)
}

func traverseEntry(fsys afero.Fs, path string, info os.FileInfo, visitor Visitor, cancellation Cancellation) OpResult {
	if cancellation.Cancelled() {
		return ResFailed
	}

	if info.Mode()&os.ModeSymlink != 0 || !info.IsDir() {
		switch visitor.Visit(VisitFile, path, info) {
		case VisitError:
			return ResFailed
		case VisitCancelled:
			return ResFailed
		default:
			return ResSucceeded
		}
	}

	names, err := readdirUnsorted(fsys, path)
	if err != nil {
		return ResFailed
	}

	enterResult := visitor.Visit(VisitDirEnter, path, info)

	switch enterResult {
	case VisitError, VisitCancelled:
		return ResFailed
	}

	for _, name := range names {
		if cancellation.Cancelled() {
			return ResFailed
		}

		childPath := joinPath(path, name)

		childInfo, err := lstat(fsys, childPath)
		if err != nil {
			continue
		}

		if res := traverseEntry(fsys, childPath, childInfo, visitor, cancellation); res != ResSucceeded {
			return res
		}
	}

	if enterResult == VisitSkipDirLeave {
		return ResSucceeded
	}

	switch visitor.Visit(VisitDirLeave, path, info) {
	case VisitError, VisitCancelled:
		return ResFailed
	default:
		return ResSucceeded
	}
}

// visitResultFor adapts a primitive's OpResult to the VisitResult a Visitor
// must return, so a recursive op's per-entry failures flow through the same
// retry/ignore/break decision the primitive itself already made via
// recoverFromErr: ResSkipped (ignored) lets the walk continue past this
// entry, and only an unrecovered ResFailed aborts the whole traversal.
func visitResultFor(res OpResult) VisitResult {
	if res == ResFailed {
		return VisitError
	}

	return VisitOK
}

// readdirUnsorted returns a directory's entry names in raw filesystem
// order, bypassing afero.ReadDir's internal sort.
func readdirUnsorted(fsys afero.Fs, path string) ([]string, error) {
	dir, err := fsys.Open(path)
	if err != nil {
		return nil, err
	}
	defer dir.Close()

	infos, err := dir.Readdir(-1)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name()
	}

	return names, nil
}
