package ioengine

import (
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func Test_Unit_RmSubtree_RemovesWholeTree(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/root/a.txt", []byte("a"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/root/sub/b.txt", []byte("b"), 0o644))

	res := RmSubtree(fs, &RmSubtreeArgs{Path: "/root"})
	require.Equal(t, ResSucceeded, res)

	_, err := fs.Stat("/root")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func Test_Unit_RmSubtree_Excludes_PrunesMatchedEntries(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/root/a.txt", []byte("a"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/root/keep/c.txt", []byte("c"), 0o644))

	res := RmSubtree(fs, &RmSubtreeArgs{Path: "/root", Excludes: []string{"keep"}})
	require.Equal(t, ResSucceeded, res)

	_, err := fs.Stat("/root/keep/c.txt")
	require.NoError(t, err)
}

func Test_Unit_CpSubtree_CopiesTree(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/a.txt", []byte("a"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/src/sub/b.txt", []byte("b"), 0o644))

	res := CpSubtree(fs, &CpSubtreeArgs{Src: "/src", Dst: "/dst"})
	require.Equal(t, ResSucceeded, res)

	content, err := afero.ReadFile(fs, "/dst/sub/b.txt")
	require.NoError(t, err)
	require.Equal(t, "b", string(content))
}

func Test_Unit_CpSubtree_DestInsideSource_Fails(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/src", 0o755))

	errs := &ErrList{}
	res := CpSubtree(fs, &CpSubtreeArgs{Context: Context{Errors: errs}, Src: "/src", Dst: "/src/nested"})
	require.Equal(t, ResFailed, res)
	require.Equal(t, 1, errs.Len())
}

func Test_Unit_CpSubtree_Excludes_SkipsMatchedFile(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/keep.txt", []byte("k"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/src/skip.log", []byte("s"), 0o644))

	res := CpSubtree(fs, &CpSubtreeArgs{Src: "/src", Dst: "/dst", Excludes: []string{"*.log"}})
	require.Equal(t, ResSucceeded, res)

	_, err := fs.Stat("/dst/keep.txt")
	require.NoError(t, err)

	_, err = fs.Stat("/dst/skip.log")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func Test_Unit_MvSubtree_SameFilesystem_UsesRename(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/a.txt", []byte("a"), 0o644))

	res := MvSubtree(fs, &MvSubtreeArgs{Src: "/src", Dst: "/dst"})
	require.Equal(t, ResSucceeded, res)

	_, err := fs.Stat("/src")
	require.ErrorIs(t, err, os.ErrNotExist)

	content, err := afero.ReadFile(fs, "/dst/a.txt")
	require.NoError(t, err)
	require.Equal(t, "a", string(content))
}

func Test_Unit_MvSubtree_DestInsideSource_Fails(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/src", 0o755))

	errs := &ErrList{}
	res := MvSubtree(fs, &MvSubtreeArgs{Context: Context{Errors: errs}, Src: "/src", Dst: "/src/nested"})
	require.Equal(t, ResFailed, res)
}

// failOnRemoveFs wraps an afero.Fs so Remove fails for one specific path,
// every time, simulating a child entry that can never be cleared (e.g. a
// permission-denied delete) without needing real OS permission bits.
type failOnRemoveFs struct {
	afero.Fs
	failPath string
}

func (f *failOnRemoveFs) Remove(name string) error {
	if name == f.failPath {
		return os.ErrPermission
	}

	return f.Fs.Remove(name)
}

func Test_Unit_RmSubtree_IgnoredChildFailure_SucceedsAndLeavesItBehind(t *testing.T) {
	t.Parallel()

	fs := &failOnRemoveFs{Fs: afero.NewMemMapFs(), failPath: "/t/bad"}
	require.NoError(t, afero.WriteFile(fs, "/t/ok", []byte("o"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/t/bad", []byte("b"), 0o644))

	errs := &ErrList{}
	ignoreAll := func(_ *Context, _ ErrRecord) ErrCbResult { return ErrCbIgnore }

	res := RmSubtree(fs, &RmSubtreeArgs{
		Context: Context{Errors: errs, ErrorCB: ignoreAll},
		Path:    "/t",
	})

	require.Equal(t, ResSucceeded, res)
	require.Equal(t, 0, errs.Len())

	_, err := fs.Stat("/t/ok")
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = fs.Stat("/t/bad")
	require.NoError(t, err)
}

func Test_Unit_MvSubtree_FileVsFile_CRSFail_RefusesToClobber(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/s/a.txt", []byte("new"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/d/x.txt", []byte("old"), 0o644))

	errs := &ErrList{}
	res := MvSubtree(fs, &MvSubtreeArgs{Context: Context{Errors: errs}, Src: "/s/a.txt", Dst: "/d/x.txt", CRS: CRSFail})

	require.Equal(t, ResFailed, res)
	require.Equal(t, 1, errs.Len())

	content, err := afero.ReadFile(fs, "/d/x.txt")
	require.NoError(t, err)
	require.Equal(t, "old", string(content))

	content, err = afero.ReadFile(fs, "/s/a.txt")
	require.NoError(t, err)
	require.Equal(t, "new", string(content))
}

func Test_Unit_ChmodSubtree_AppliesToEveryEntry(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/root/a.txt", []byte("a"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/root/sub/b.txt", []byte("b"), 0o644))

	res := ChmodSubtree(fs, &ChattrSubtreeArgs{Path: "/root", Mode: 0o600})
	require.Equal(t, ResSucceeded, res)

	info, err := fs.Stat("/root/sub/b.txt")
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
