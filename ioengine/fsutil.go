package ioengine

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/spf13/afero"
)

var errCancelled = errors.New("ioengine: operation cancelled")

// moveErrClass is the outcome of classifying a failed rename syscall, used
// by MvSubtree's state machine to decide between decomposing into
// copy+remove and falling back to conflict resolution.
type moveErrClass int

const (
	moveErrOther moveErrClass = iota
	moveErrCrossDeviceOrDenied
	moveErrDestExists
)

// joinPath joins a directory and an entry name the way the traverser and
// the estimator's deep-walk need: always slash-clean, never touching the
// filesystem.
func joinPath(dir, name string) string {
	return filepath.Join(dir, name)
}

// lstat returns file info without following a trailing symlink, using
// afero's optional Lstater interface when the backing filesystem supports
// it (afero.OsFs and this module's in-memory symlink test double both do)
// and falling back to a following Stat otherwise.
func lstat(fsys afero.Fs, path string) (os.FileInfo, error) {
	if lstater, ok := fsys.(afero.Lstater); ok {
		info, _, err := lstater.LstatIfPossible(path)

		return info, err
	}

	return fsys.Stat(path)
}

// readlink resolves a symlink's raw target, when the backing filesystem
// supports symlinks at all.
func readlink(fsys afero.Fs, path string) (string, error) {
	if reader, ok := fsys.(afero.LinkReader); ok {
		return reader.ReadlinkIfPossible(path)
	}

	return "", errSymlinksUnsupported
}

// symlinkAt creates path as a symlink pointing at target, when the backing
// filesystem supports symlinks at all.
func symlinkAt(fsys afero.Fs, target, path string) error {
	if linker, ok := fsys.(afero.Symlinker); ok {
		return linker.SymlinkIfPossible(target, path)
	}

	return errSymlinksUnsupported
}

var errSymlinksUnsupported = errors.New("ioengine: backing filesystem does not support symbolic links")

// isRegularOrLink reports whether info describes something copy-file/ln can
// operate on directly: a regular file or a symlink (of any kind, including
// broken). It is false only for directories.
func isRegularOrLink(info os.FileInfo) bool {
	return info.Mode()&os.ModeSymlink != 0 || !info.IsDir()
}

// isInSubtree reports whether child is root itself or is nested inside root,
// purely lexically (no filesystem access) - used for the cp-subtree
// precondition that a destination may not be inside its own source.
func isInSubtree(child, root string) bool {
	child = filepath.Clean(child)
	root = filepath.Clean(root)

	if child == root {
		return true
	}

	rel, err := filepath.Rel(root, child)
	if err != nil {
		return false
	}

	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// secureDestPath joins relPath onto dstRoot the way cp-subtree constructs
// its per-entry destination path. When fsys is backed by the real OS
// filesystem, the join is resolved through filepath-securejoin so a
// symlink encountered earlier in dstRoot's own path cannot redirect the
// write outside of it; virtual/in-memory backends (used by the test suite)
// have no such escape surface and fall back to a plain Clean-ed join.
func secureDestPath(fsys afero.Fs, dstRoot, relPath string) string {
	if relPath == "." || relPath == "" {
		return dstRoot
	}

	if _, ok := fsys.(*afero.OsFs); ok {
		if joined, err := securejoin.SecureJoin(dstRoot, relPath); err == nil {
			return joined
		}
	}

	return filepath.Join(dstRoot, relPath)
}

// isExcluded reports whether relPath (slash-separated, relative to the
// subtree root under traversal) matches any of the doublestar glob
// patterns supplied by the caller.
func isExcluded(relPath string, patterns []string) bool {
	if relPath == "." || relPath == "" || len(patterns) == 0 {
		return false
	}

	slashed := filepath.ToSlash(relPath)
	for _, pat := range patterns {
		if pat == "" {
			continue
		}

		if ok, _ := doublestar.Match(pat, slashed); ok {
			return true
		}

		// Also match as a directory prefix, so an exclude of "skip" also
		// covers "skip/nested/file".
		if strings.HasPrefix(slashed, strings.TrimSuffix(pat, "/")+"/") {
			return true
		}

		// And cover descendants of a directory the glob itself matches, so
		// an exclude of "build*" also covers "build1/out.o".
		for dir := slashed; strings.Contains(dir, "/"); {
			dir = dir[:strings.LastIndex(dir, "/")]
			if ok, _ := doublestar.Match(pat, dir); ok {
				return true
			}
		}
	}

	return false
}

// cloneAttribs best-effort copies src's modification/access times (and, on
// platforms that support it through the backing OS filesystem, extended
// attributes) onto dst. Failures are swallowed: attribute cloning is a
// nice-to-have finishing touch on a directory move/copy, never a reason to
// fail an otherwise-successful data transfer.
func cloneAttribs(fsys afero.Fs, srcPath, dst string, info os.FileInfo) {
	_ = fsys.Chtimes(dst, info.ModTime(), info.ModTime())

	cloneXattrs(fsys, srcPath, dst)
}

// relTo returns path relative to root, using "." for root itself, for
// building exclude-pattern-relative and destination-relative paths during a
// subtree traversal.
func relTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}

	return rel
}

// isCaseOnlyRename reports whether src and dst differ only in letter case,
// the special case the source's is_case_change() carves out so that such a
// rename is not treated as "destination already exists" on a
// case-insensitive filesystem. The engine does not infer filesystem case
// sensitivity on its own (there is no portable way to ask); callers opt in
// via MvSubtreeArgs.CaseInsensitiveFS.
func isCaseOnlyRename(src, dst string, caseInsensitive bool) bool {
	if !caseInsensitive {
		return false
	}

	return src != dst && strings.EqualFold(src, dst)
}
