package ioengine

import (
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func Test_Unit_Traverse_VisitsEveryFile(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/root/zeta.txt", []byte("z"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/root/alpha.txt", []byte("a"), 0o644))

	var seen []string

	v := VisitorFunc(func(action VisitAction, path string, info os.FileInfo) VisitResult {
		if action == VisitFile {
			seen = append(seen, path)
		}

		return VisitOK
	})

	res := Traverse(fs, "/root", v, Cancellation{})
	require.Equal(t, ResSucceeded, res)
	require.Len(t, seen, 2)
}

func Test_Unit_Traverse_DirEnterThenLeave(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/root/sub", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/root/sub/f.txt", []byte("x"), 0o644))

	var order []string

	v := VisitorFunc(func(action VisitAction, path string, info os.FileInfo) VisitResult {
		switch action {
		case VisitDirEnter:
			order = append(order, "enter:"+path)
		case VisitFile:
			order = append(order, "file:"+path)
		case VisitDirLeave:
			order = append(order, "leave:"+path)
		}

		return VisitOK
	})

	res := Traverse(fs, "/root", v, Cancellation{})
	require.Equal(t, ResSucceeded, res)
	require.Equal(t, []string{
		"enter:/root",
		"enter:/root/sub",
		"file:/root/sub/f.txt",
		"leave:/root/sub",
		"leave:/root",
	}, order)
}

func Test_Unit_Traverse_SkipDirLeave_SuppressesLeave(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/root/sub", 0o755))

	var leaveCalled bool

	v := VisitorFunc(func(action VisitAction, path string, info os.FileInfo) VisitResult {
		switch action {
		case VisitDirEnter:
			return VisitSkipDirLeave
		case VisitDirLeave:
			leaveCalled = true
		}

		return VisitOK
	})

	res := Traverse(fs, "/root", v, Cancellation{})
	require.Equal(t, ResSucceeded, res)
	require.False(t, leaveCalled)
}

func Test_Unit_Traverse_Cancellation_AbortsWalk(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/root/a.txt", []byte("a"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/root/b.txt", []byte("b"), 0o644))

	cancelled := false
	cancellation := Cancellation{Hook: func(any) bool { return cancelled }}

	visited := 0
	v := VisitorFunc(func(action VisitAction, path string, info os.FileInfo) VisitResult {
		if action == VisitFile {
			visited++
			cancelled = true
		}

		return VisitOK
	})

	res := Traverse(fs, "/root", v, cancellation)
	require.Equal(t, ResFailed, res)
	require.Equal(t, 1, visited)
}

func Test_Unit_Traverse_VisitorError_AbortsWalk(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/root/a", 0o755))
	require.NoError(t, fs.MkdirAll("/root/b", 0o755))

	v := VisitorFunc(func(action VisitAction, path string, info os.FileInfo) VisitResult {
		if action == VisitDirEnter && path == "/root/a" {
			return VisitError
		}

		return VisitOK
	})

	res := Traverse(fs, "/root", v, Cancellation{})
	require.Equal(t, ResFailed, res)
}
