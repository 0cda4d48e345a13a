package ioengine

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func Test_Unit_Estimator_Calculate_Shallow_CountsOneItem(t *testing.T) {
	t.Parallel()

	est := AllocEstimator(nil, nil, Cancellation{})
	require.NoError(t, est.Calculate("/whatever", true))
	require.Equal(t, 1, est.TotalItems)
	require.Equal(t, uint64(0), est.TotalBytes)
}

func Test_Unit_Estimator_Calculate_Deep_SumsFilesAndDirs(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/root/sub", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/root/a.txt", []byte("12345"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/root/sub/b.txt", []byte("12"), 0o644))

	est := AllocEstimator(fs, nil, Cancellation{})
	require.NoError(t, est.Calculate("/root", false))

	require.Equal(t, 4, est.TotalItems) // root dir, a.txt, sub dir, b.txt
	require.Equal(t, uint64(7), est.TotalBytes)
}

func Test_Unit_Estimator_Update_ClampsCountersUpward(t *testing.T) {
	t.Parallel()

	est := AllocEstimator(nil, nil, Cancellation{})
	est.TotalItems = 1
	est.TotalBytes = 5

	est.Update("/a", "", true, 10)

	require.Equal(t, 1, est.CurrentItem)
	require.Equal(t, 1, est.TotalItems)
	require.Equal(t, uint64(10), est.CurrentByte)
	require.Equal(t, uint64(10), est.TotalBytes)
}

func Test_Unit_Estimator_SilentUpdate_DoesNotAdvance(t *testing.T) {
	t.Parallel()

	var notified bool

	est := AllocEstimator(nil, nil, Cancellation{})
	est.Notifier = func(Stage, *Estimator) { notified = true }
	est.SilentOn()

	est.Update("/a", "", true, 10)

	require.Equal(t, 0, est.CurrentItem)
	require.Equal(t, uint64(0), est.CurrentByte)
	require.False(t, notified)
}

func Test_Unit_Estimator_SaveRestore_RollsBackCounters(t *testing.T) {
	t.Parallel()

	est := AllocEstimator(nil, nil, Cancellation{})
	est.TotalItems = 5
	est.CurrentItem = 2

	snap := est.Save()

	est.Update("/a", "", true, 100)
	require.Equal(t, 3, est.CurrentItem)

	est.Restore(snap)
	require.Equal(t, 2, est.CurrentItem)
	require.Equal(t, 5, est.TotalItems)
}
