package ioengine

import "os"

// Context is the shared outer state threaded through every operation:
// cancellation, conflict confirmation, error recovery, progress reporting,
// and the output error list. It is embedded by every *Args type instead of
// being repeated field-by-field, per the tagged-variant design used
// throughout this package.
type Context struct {
	Cancellation Cancellation
	Confirm      ConfirmCallback
	ErrorCB      ErrCallback
	Estim        *Estimator
	Errors       *ErrList
}

func (c *Context) cancelled() bool {
	return c.Cancellation.Cancelled()
}

// appendError records a failure in c.Errors (a no-op when it is nil). It
// appends on every attempt, retries included; the retry loop pops the
// previous attempt's record first, so each logical failure seen by the user
// is recorded exactly once.
func (c *Context) appendError(path string, kind ErrKind, message string) {
	if c.Errors == nil {
		return
	}
	c.Errors.Append(path, kind, message)
}

// MkFileArgs is the input to MkFile.
type MkFileArgs struct {
	Context
	Path string
}

// MkDirArgs is the input to MkDir.
type MkDirArgs struct {
	Context
	Path           string
	ProcessParents bool
	Mode           os.FileMode
}

// RmFileArgs is the input to RmFile.
type RmFileArgs struct {
	Context
	Path string
}

// RmDirArgs is the input to RmDir.
type RmDirArgs struct {
	Context
	Path string
}

// CpArgs is the input to Copy.
type CpArgs struct {
	Context
	Src              string
	Dst              string
	CRS              CRS
	FastFileCloning  bool
	DataSync         bool
	Verify           bool
}

// LnArgs is the input to Link.
type LnArgs struct {
	Context
	Path   string
	Target string
	CRS    CRS
}

// ChownArgs is the input to Chown.
type ChownArgs struct {
	Context
	Path string
	UID  int
}

// ChgrpArgs is the input to Chgrp.
type ChgrpArgs struct {
	Context
	Path string
	GID  int
}

// ChmodArgs is the input to Chmod.
type ChmodArgs struct {
	Context
	Path string
	Mode os.FileMode
}

// RmSubtreeArgs is the input to RmSubtree.
type RmSubtreeArgs struct {
	Context
	Path     string
	Excludes []string
}

// CpSubtreeArgs is the input to CpSubtree.
type CpSubtreeArgs struct {
	Context
	Src             string
	Dst             string
	CRS             CRS
	FastFileCloning bool
	DataSync        bool
	Verify          bool
	Excludes        []string
}

// MvSubtreeArgs is the input to MvSubtree.
type MvSubtreeArgs struct {
	Context
	Src               string
	Dst               string
	CRS               CRS
	DataSync          bool
	Verify            bool
	Excludes          []string
	CaseInsensitiveFS bool
}

// ChattrSubtreeArgs is the shared input shape for ChownSubtree, ChgrpSubtree
// and ChmodSubtree; exactly one of UID/GID/Mode is meaningful per call, as
// selected by the function invoked, mirroring the single overloaded arg3
// field of the source's io_args_t (Design Note, tagged-variant args).
type ChattrSubtreeArgs struct {
	Context
	Path     string
	UID      int
	GID      int
	Mode     os.FileMode
	Excludes []string
}
