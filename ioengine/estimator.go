package ioengine

import (
	"io/fs"

	"github.com/spf13/afero"
)

// Estimator is the mutable accounting object backing progress bars: totals
// and current position for items and bytes, the path currently being
// worked on, and a silence flag that short-circuits notification without
// losing counter consistency.
//
// Invariants maintained after every Update: CurrentItem <= TotalItems and
// CurrentByte <= TotalBytes (the engine bumps the totals itself if an
// update would otherwise violate them, rather than clamping progress
// backwards).
type Estimator struct {
	TotalItems      int
	CurrentItem     int
	TotalBytes      uint64
	CurrentByte     uint64
	TotalFileBytes  uint64
	CurrentFileByte uint64
	InspectedItems  int

	Item   string
	Target string

	Silent bool

	// Param is an opaque value handed back to the Notifier on every call;
	// callers typically stash UI-side state here.
	Param any

	Cancellation Cancellation

	// Notifier is invoked on every non-silent update. A nil Notifier
	// disables notifications without requiring callers to install a
	// no-op.
	Notifier func(stage Stage, estim *Estimator)

	fsys afero.Fs
}

// AllocEstimator allocates a ready-to-use Estimator. fsys is used by
// Calculate to walk subtrees and stat files; it may be nil if the caller
// only ever uses shallow calculation.
func AllocEstimator(fsys afero.Fs, param any, cancellation Cancellation) *Estimator {
	return &Estimator{
		Param:        param,
		Cancellation: cancellation,
		fsys:         fsys,
	}
}

// Calculate adds path's contribution to the estimator's totals. Shallow
// calculation adds exactly one zero-byte item (the path itself, whatever it
// is). Deep calculation walks the subtree rooted at path and adds one item
// per file/symlink/directory plus the byte size of every regular file;
// symbolic links always count as one item and zero bytes, and their
// targets are never inspected.
func (e *Estimator) Calculate(path string, shallow bool) error {
	e.notify(StageEstimating)

	if shallow {
		e.addItem(path)

		return nil
	}

	return e.calculateDeep(path)
}

func (e *Estimator) calculateDeep(path string) error {
	if e.fsys == nil {
		e.addItem(path)

		return nil
	}

	info, err := lstat(e.fsys, path)
	if err != nil {
		return err
	}

	if info.Mode()&fs.ModeSymlink != 0 {
		e.addItem(path)

		return nil
	}

	if !info.IsDir() {
		e.addFile(path, uint64(info.Size()))

		return nil
	}

	e.addDir(path)

	entries, err := afero.ReadDir(e.fsys, path)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if e.Cancellation.Cancelled() {
			return errCancelled
		}

		if err := e.calculateDeep(joinPath(path, entry.Name())); err != nil {
			return err
		}
	}

	return nil
}

func (e *Estimator) addItem(path string) {
	e.TotalItems++
	e.Item = path
}

func (e *Estimator) addFile(path string, size uint64) {
	e.TotalItems++
	e.TotalBytes += size
	e.Item = path
}

func (e *Estimator) addDir(path string) {
	e.TotalItems++
	e.Item = path
}

// Update reports that bytes more of the current item have been processed.
// If finished is true, CurrentItem advances by one and the per-file
// counters reset. path/target may be empty to mean "unchanged". Silent
// updates neither advance counters nor invoke the Notifier, so a nested
// silenced phase (e.g. the remove half of a cross-device move) cannot
// distort progress observed by the UI.
func (e *Estimator) Update(path, target string, finished bool, bytes uint64) {
	if e.Silent {
		return
	}

	if path != "" {
		e.Item = path
	}
	if target != "" {
		e.Target = target
	}

	e.CurrentByte += bytes
	if e.CurrentByte > e.TotalBytes {
		e.TotalBytes = e.CurrentByte
	}

	e.CurrentFileByte += bytes

	if finished {
		e.CurrentItem++
		if e.CurrentItem > e.TotalItems {
			e.TotalItems = e.CurrentItem
		}

		e.CurrentFileByte = 0

		if e.InspectedItems < e.CurrentItem+1 {
			e.InspectedItems = e.CurrentItem + 1
			e.resampleFileBytes(path)
		}
	}

	e.notify(StageInProgress)
}

func (e *Estimator) resampleFileBytes(path string) {
	if e.fsys == nil || path == "" {
		return
	}

	info, err := e.fsys.Stat(path)
	if err != nil {
		return
	}

	e.TotalFileBytes = uint64(info.Size())
}

func (e *Estimator) notify(stage Stage) {
	if e.Silent || e.Notifier == nil {
		return
	}

	e.Notifier(stage, e)
}

// SilentOn mutes future progress reports and returns the estimator's prior
// silence state, to be restored later with SilentSet.
func (e *Estimator) SilentOn() bool {
	prev := e.Silent
	e.Silent = true

	return prev
}

// SilentSet restores a previously captured silence state.
func (e *Estimator) SilentSet(silent bool) {
	e.Silent = silent
}

// Snapshot is a deep copy of an Estimator's counters and path strings,
// suitable for a later Restore call. It intentionally omits the Notifier
// and filesystem handle: a restore rolls back accounting only.
type Snapshot struct {
	totalItems      int
	currentItem     int
	totalBytes      uint64
	currentByte     uint64
	totalFileBytes  uint64
	currentFileByte uint64
	inspectedItems  int
	item            string
	target          string
}

// Save captures the estimator's current counters so a caller can roll them
// back if a nested operation fails partway through.
func (e *Estimator) Save() Snapshot {
	return Snapshot{
		totalItems:      e.TotalItems,
		currentItem:     e.CurrentItem,
		totalBytes:      e.TotalBytes,
		currentByte:     e.CurrentByte,
		totalFileBytes:  e.TotalFileBytes,
		currentFileByte: e.CurrentFileByte,
		inspectedItems:  e.InspectedItems,
		item:            e.Item,
		target:          e.Target,
	}
}

// Restore rolls the estimator's counters back to a previously captured
// Snapshot.
func (e *Estimator) Restore(s Snapshot) {
	e.TotalItems = s.totalItems
	e.CurrentItem = s.currentItem
	e.TotalBytes = s.totalBytes
	e.CurrentByte = s.currentByte
	e.TotalFileBytes = s.totalFileBytes
	e.CurrentFileByte = s.currentFileByte
	e.InspectedItems = s.inspectedItems
	e.Item = s.item
	e.Target = s.target
}
