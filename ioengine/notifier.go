package ioengine

import "sync/atomic"

// NotifierFunc is invoked on every non-silent progress update, stamped with
// the stage that produced it.
type NotifierFunc func(stage Stage, estim *Estimator)

// globalNotifier backs RegisterNotifier/notifyGlobal. It mirrors the
// source's process-wide registered-notifier singleton (Design Note,
// "global notifier singleton"), but as an explicit, thread-safe,
// single-writer handle rather than an unguarded package global: swapping it
// is an atomic store, so a caller registering a handler from the UI thread
// never races with an in-flight engine call reading it.
var globalNotifier atomic.Pointer[NotifierFunc]

// RegisterNotifier installs the process-wide progress handler used by
// estimators that opted in via UseGlobalNotifier; an estimator whose
// Notifier is nil does not consult it. Passing nil disables notification
// through the global handler. Safe to call concurrently with engine
// operations.
func RegisterNotifier(handler NotifierFunc) {
	if handler == nil {
		globalNotifier.Store(nil)

		return
	}
	globalNotifier.Store(&handler)
}

// globalNotifierFunc returns the currently registered global notifier, or
// nil if none is registered.
func globalNotifierFunc() NotifierFunc {
	p := globalNotifier.Load()
	if p == nil {
		return nil
	}

	return *p
}

// UseGlobalNotifier points this estimator's Notifier at the process-wide
// singleton registered via RegisterNotifier. Each call resolves the
// currently registered handler, so registering a new global handler later
// still takes effect for estimators created earlier.
func (e *Estimator) UseGlobalNotifier() {
	e.Notifier = func(stage Stage, estim *Estimator) {
		if h := globalNotifierFunc(); h != nil {
			h(stage, estim)
		}
	}
}
