// Package iofstest provides a symlink-capable in-memory filesystem for
// exercising ioengine code paths that afero.MemMapFs alone cannot reach:
// afero's built-in memory backend has no notion of a symbolic link, so
// tests that need to observe symlink-not-followed behavior need a double
// that actually carries one.
package iofstest

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"
)

// MemLinkFs wraps an afero.MemMapFs and layers minimal symlink support on
// top of it: a symlink is recorded as an entry (so directory listings and
// existence checks see it) plus its target string in a side table. It
// implements afero.Lstater, afero.LinkReader and afero.Symlinker, which is
// all ioengine's traverser and primitives need from a backing filesystem.
type MemLinkFs struct {
	afero.Fs

	mu    sync.RWMutex
	links map[string]string
}

// New returns a ready-to-use MemLinkFs backed by a fresh afero.MemMapFs.
func New() *MemLinkFs {
	return &MemLinkFs{
		Fs:    afero.NewMemMapFs(),
		links: make(map[string]string),
	}
}

func clean(name string) string {
	return filepath.Clean(name)
}

// SymlinkIfPossible creates name as a symlink pointing at oldname. A
// zero-byte placeholder file backs the entry in the underlying MemMapFs so
// directory listings and plain Stat calls see something at that path.
func (m *MemLinkFs) SymlinkIfPossible(oldname, newname string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	newname = clean(newname)

	if _, err := m.Fs.Stat(newname); err == nil {
		return os.ErrExist
	}

	f, err := m.Fs.Create(newname)
	if err != nil {
		return err
	}
	_ = f.Close()

	m.links[newname] = oldname

	return nil
}

// ReadlinkIfPossible returns the target recorded for name, if it is a
// symlink.
func (m *MemLinkFs) ReadlinkIfPossible(name string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	target, ok := m.links[clean(name)]
	if !ok {
		return "", &os.PathError{Op: "readlink", Path: name, Err: os.ErrInvalid}
	}

	return target, nil
}

// LstatIfPossible returns name's info without following a trailing
// symlink. For a recorded symlink it synthesizes a FileInfo carrying
// os.ModeSymlink, since the placeholder backing file in the underlying
// MemMapFs otherwise looks like an empty regular file.
func (m *MemLinkFs) LstatIfPossible(name string) (os.FileInfo, bool, error) {
	m.mu.RLock()
	target, isLink := m.links[clean(name)]
	m.mu.RUnlock()

	info, err := m.Fs.Stat(name)
	if err != nil {
		return nil, false, err
	}

	if !isLink {
		return info, false, nil
	}

	return &symlinkInfo{name: filepath.Base(name), target: target, modTime: info.ModTime()}, true, nil
}

// RemoveAll removes name (and, if it is a directory, everything beneath
// it), clearing out any recorded symlinks under that path too.
func (m *MemLinkFs) RemoveAll(name string) error {
	m.mu.Lock()
	name = clean(name)
	for path := range m.links {
		if path == name || isUnder(name, path) {
			delete(m.links, path)
		}
	}
	m.mu.Unlock()

	return m.Fs.RemoveAll(name)
}

// Remove removes a single entry, clearing its link record if it was a
// symlink.
func (m *MemLinkFs) Remove(name string) error {
	m.mu.Lock()
	delete(m.links, clean(name))
	m.mu.Unlock()

	return m.Fs.Remove(name)
}

// Rename moves an entry, carrying over its link record if it was a
// symlink.
func (m *MemLinkFs) Rename(oldname, newname string) error {
	m.mu.Lock()
	oldname, newname = clean(oldname), clean(newname)
	if target, ok := m.links[oldname]; ok {
		delete(m.links, oldname)
		m.links[newname] = target
	}
	m.mu.Unlock()

	return m.Fs.Rename(oldname, newname)
}

func isUnder(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return false
	}

	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// symlinkInfo is the synthetic os.FileInfo returned for a symlink by
// LstatIfPossible.
type symlinkInfo struct {
	name    string
	target  string
	modTime time.Time
}

func (s *symlinkInfo) Name() string       { return s.name }
func (s *symlinkInfo) Size() int64        { return int64(len(s.target)) }
func (s *symlinkInfo) Mode() os.FileMode  { return os.ModeSymlink | 0o777 }
func (s *symlinkInfo) ModTime() time.Time { return s.modTime }
func (s *symlinkInfo) IsDir() bool        { return false }
func (s *symlinkInfo) Sys() any           { return nil }
