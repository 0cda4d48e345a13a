//go:build !unix

package ioengine

import "github.com/spf13/afero"

// cloneXattrs is a no-op on platforms without a portable extended-attribute
// syscall surface.
func cloneXattrs(_ afero.Fs, _, _ string) {}
