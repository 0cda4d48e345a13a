package ioengine

import "fmt"

// ErrRecord is a single recorded failure: a path, a classified kind, and a
// short human-readable message. The error list owns the strings.
type ErrRecord struct {
	Path    string
	Kind    ErrKind
	Message string
}

func (e ErrRecord) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Path, e.Message, e.Kind)
}

// ErrList is an append-only vector of ErrRecord. The zero value is ready to
// use. It is caller-owned: recursive ops append to it but never replace or
// clear it from under the caller.
type ErrList struct {
	records []ErrRecord
}

// Append records a new failure.
func (l *ErrList) Append(path string, kind ErrKind, message string) {
	l.records = append(l.records, ErrRecord{Path: path, Kind: kind, Message: message})
}

// Pop removes and discards the most recently appended record, if any. Used
// by the retry path so a primitive that fails, gets retried, and succeeds
// does not leave a stale error behind; and by ErrCbIgnore to discard the
// error for a primitive that is to be treated as skipped.
func (l *ErrList) Pop() {
	if len(l.records) == 0 {
		return
	}
	l.records = l.records[:len(l.records)-1]
}

// Records returns the accumulated error records. The returned slice must
// not be mutated by the caller.
func (l *ErrList) Records() []ErrRecord {
	return l.records
}

// Len reports how many errors have been recorded.
func (l *ErrList) Len() int {
	return len(l.records)
}

// ErrCallback decides what to do about a recorded failure: retry the
// primitive, ignore it (treat as skipped, discard the error), or break
// (unwind the recursive op, keep the error). When absent, all errors BREAK.
type ErrCallback func(ctx *Context, rec ErrRecord) ErrCbResult

// ConfirmCallback asks the user whether to proceed with an operation that
// would otherwise overwrite an existing destination. May be nil, in which
// case the destination is silently overwritten.
type ConfirmCallback func(ctx *Context, src, dst string) bool
