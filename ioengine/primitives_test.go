package ioengine

import (
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func Test_Unit_MkFile_CreatesEmptyFile(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()

	res := MkFile(fs, &MkFileArgs{Path: "/a.txt"})
	require.Equal(t, ResSucceeded, res)

	info, err := fs.Stat("/a.txt")
	require.NoError(t, err)
	require.Equal(t, int64(0), info.Size())
}

func Test_Unit_MkFile_AlreadyExists_Fails(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/a.txt", []byte("x"), 0o644))

	errs := &ErrList{}
	res := MkFile(fs, &MkFileArgs{Context: Context{Errors: errs}, Path: "/a.txt"})
	require.Equal(t, ResFailed, res)
	require.Equal(t, ErrExists, errs.Records()[0].Kind)
}

func Test_Unit_MkDir_ProcessParents_CreatesChain(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()

	res := MkDir(fs, &MkDirArgs{Path: "/a/b/c", ProcessParents: true, Mode: 0o750})
	require.Equal(t, ResSucceeded, res)

	info, err := fs.Stat("/a/b/c")
	require.NoError(t, err)
	require.True(t, info.IsDir())
	require.Equal(t, os.FileMode(0o750), info.Mode().Perm())
}

func Test_Unit_MkDir_WithoutParents_MissingParent_Fails(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()

	errs := &ErrList{}
	res := MkDir(fs, &MkDirArgs{Context: Context{Errors: errs}, Path: "/a/b", Mode: 0o755})
	require.Equal(t, ResFailed, res)
}

func Test_Unit_RmFile_RemovesFile(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/a.txt", []byte("x"), 0o644))

	res := RmFile(fs, &RmFileArgs{Path: "/a.txt"})
	require.Equal(t, ResSucceeded, res)

	_, err := fs.Stat("/a.txt")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func Test_Unit_RmFile_OnDirectory_Fails(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/d", 0o755))

	errs := &ErrList{}
	res := RmFile(fs, &RmFileArgs{Context: Context{Errors: errs}, Path: "/d"})
	require.Equal(t, ResFailed, res)
	require.Equal(t, ErrIsDir, errs.Records()[0].Kind)
}

func Test_Unit_RmDir_NonEmpty_Fails(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/d/f.txt", []byte("x"), 0o644))

	errs := &ErrList{}
	res := RmDir(fs, &RmDirArgs{Context: Context{Errors: errs}, Path: "/d"})
	require.Equal(t, ResFailed, res)
	require.Equal(t, ErrNotEmpty, errs.Records()[0].Kind)
}

func Test_Unit_RmDir_Empty_Succeeds(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/d", 0o755))

	res := RmDir(fs, &RmDirArgs{Path: "/d"})
	require.Equal(t, ResSucceeded, res)
}

func Test_Unit_Chmod_ChangesPermissions(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/a.txt", []byte("x"), 0o644))

	res := Chmod(fs, &ChmodArgs{Path: "/a.txt", Mode: 0o600})
	require.Equal(t, ResSucceeded, res)

	info, err := fs.Stat("/a.txt")
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func Test_Unit_ErrorCallback_Retry_Succeeds(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/a.txt", []byte("x"), 0o644))

	attempts := 0
	errs := &ErrList{}

	res := MkFile(fs, &MkFileArgs{
		Context: Context{
			Errors: errs,
			ErrorCB: func(ctx *Context, rec ErrRecord) ErrCbResult {
				attempts++
				if attempts == 1 {
					_ = fs.Remove("/a.txt")

					return ErrCbRetry
				}

				return ErrCbBreak
			},
		},
		Path: "/a.txt",
	})

	require.Equal(t, ResSucceeded, res)
	require.Equal(t, 0, errs.Len())
}

func Test_Unit_ErrorCallback_Ignore_ReturnsSkipped(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/a.txt", []byte("x"), 0o644))

	errs := &ErrList{}
	res := MkFile(fs, &MkFileArgs{
		Context: Context{
			Errors:  errs,
			ErrorCB: func(*Context, ErrRecord) ErrCbResult { return ErrCbIgnore },
		},
		Path: "/a.txt",
	})

	require.Equal(t, ResSkipped, res)
	require.Equal(t, 0, errs.Len())
}
