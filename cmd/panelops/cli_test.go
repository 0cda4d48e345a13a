package main

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func setupCLI(t *testing.T) (*appState, func(args ...string) error) {
	t.Helper()

	root, state := newRootCommand()
	state.fsys = afero.NewMemMapFs()

	return state, func(args ...string) error {
		state.errored = false
		state.skipped = false
		root.SetArgs(args)

		return root.ExecuteContext(context.Background())
	}
}

func Test_Unit_CLI_Mkfile_CreatesFile(t *testing.T) {
	t.Parallel()

	state, exec := setupCLI(t)

	err := exec("mkfile", "/a.txt")
	require.NoError(t, err)
	require.False(t, state.errored)

	_, statErr := state.fsys.Stat("/a.txt")
	require.NoError(t, statErr)
}

func Test_Unit_CLI_Cp_Recursive_CopiesTree(t *testing.T) {
	t.Parallel()

	state, exec := setupCLI(t)
	require.NoError(t, afero.WriteFile(state.fsys, "/src/a.txt", []byte("x"), 0o644))

	err := exec("cp", "-r", "/src", "/dst")
	require.NoError(t, err)
	require.False(t, state.errored)

	content, err := afero.ReadFile(state.fsys, "/dst/a.txt")
	require.NoError(t, err)
	require.Equal(t, "x", string(content))
}

func Test_Unit_CLI_Rm_MissingPath_SetsErrored(t *testing.T) {
	t.Parallel()

	state, exec := setupCLI(t)

	err := exec("rm", "/does/not/exist")
	require.NoError(t, err)
	require.True(t, state.errored)
}

func Test_Unit_CLI_Cp_DestExists_SkipFailed_MarksPartial(t *testing.T) {
	t.Parallel()

	state, exec := setupCLI(t)
	require.NoError(t, afero.WriteFile(state.fsys, "/src/a.txt", []byte("x"), 0o644))
	require.NoError(t, afero.WriteFile(state.fsys, "/dst.txt", []byte("y"), 0o644))

	err := exec("cp", "--skip-failed", "/src/a.txt", "/dst.txt")
	require.NoError(t, err)
	require.True(t, state.skipped)
	require.False(t, state.errored)
}

func Test_Unit_CLI_UnknownCRS_ReturnsError(t *testing.T) {
	t.Parallel()

	_, exec := setupCLI(t)

	err := exec("cp", "--crs", "bogus", "/a", "/b")
	require.Error(t, err)
}
