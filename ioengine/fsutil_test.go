package ioengine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Unit_IsInSubtree_NestedPath_True(t *testing.T) {
	t.Parallel()

	require.True(t, isInSubtree("/a/b/c", "/a/b"))
	require.True(t, isInSubtree("/a/b", "/a/b"))
	require.False(t, isInSubtree("/a/c", "/a/b"))
	require.False(t, isInSubtree("/a", "/a/b"))
}

func Test_Unit_IsExcluded_GlobAndPrefixMatching(t *testing.T) {
	t.Parallel()

	require.True(t, isExcluded("build.log", []string{"*.log"}))
	require.True(t, isExcluded("vendor/pkg/a.go", []string{"vendor"}))
	require.False(t, isExcluded("src/main.go", []string{"*.log", "vendor"}))
	require.False(t, isExcluded(".", []string{"*.log"}))
}

func Test_Unit_IsCaseOnlyRename_RequiresOptIn(t *testing.T) {
	t.Parallel()

	require.True(t, isCaseOnlyRename("/a/Foo", "/a/foo", true))
	require.False(t, isCaseOnlyRename("/a/Foo", "/a/foo", false))
	require.False(t, isCaseOnlyRename("/a/foo", "/a/foo", true))
	require.False(t, isCaseOnlyRename("/a/foo", "/a/bar", true))
}
