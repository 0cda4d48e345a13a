//go:build !linux

package ioengine

import "github.com/spf13/afero"

// tryFastClone is unavailable outside Linux; FICLONE has no portable
// equivalent, so every copy takes the block-copy path.
func tryFastClone(_, _ afero.File) bool {
	return false
}
