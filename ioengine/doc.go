/*
Package ioengine implements the file-system operations engine of a dual-pane
file manager: copy, move, remove, link, create, and permission-change
operations over arbitrary subtrees, with live progress estimation, user
confirmation on conflicts, per-error recovery, and cooperative cancellation.

The engine is split into four cooperating pieces, leaves first: a generic
depth-first Traverser, a set of non-recursive Primitive Ops (Mk*, Rm*, Copy,
Link, Ch*), Recursive Ops built on top of the traverser and the primitives
(*Subtree functions), and a Progress Estimator/Notifier pair that primitives
update as they work.

Callers own the arguments they pass in, including the Estimator and the
error list; the engine never retains anything past the call that receives
it. The engine is single-threaded and cooperative: a call runs to completion
on the calling goroutine, and the only concurrency-safe field is the
cancellation hook, which may be polled from another goroutine's perspective
by being backed by an atomic value.
*/
package ioengine
