package main

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/fsops/panelops/ioengine"
)

// opContext bundles everything a subcommand needs to drive the engine and
// report back to the process: the shared ioengine.Context, the backing
// filesystem (a read-only wrapper under --dry-run, which rejects every
// write), and the progress estimator.
type opContext struct {
	fsys  afero.Fs
	ctx   *ioengine.Context
	estim *ioengine.Estimator
}

// newOpContext wires a fresh ioengine.Context for a single subcommand
// invocation: cancellation from cmd's context, a confirm prompt honoring
// --yes/--dry-run, an error callback honoring --skip-failed, and a
// terminal progress notifier.
func newOpContext(cmd *cobra.Command, state *appState) *opContext {
	cancellation := ioengine.FromContext(cmd.Context())
	errs := &ioengine.ErrList{}
	estim := ioengine.AllocEstimator(state.fsys, nil, cancellation)
	estim.Notifier = newProgressNotifier()

	ectx := &ioengine.Context{
		Cancellation: cancellation,
		Confirm:      newConfirmCallback(state.opts),
		Estim:        estim,
		Errors:       errs,
		ErrorCB:      newErrorCallback(state),
	}

	fsys := state.fsys
	if state.opts.DryRun {
		fsys = afero.NewReadOnlyFs(fsys)
	}

	return &opContext{fsys: fsys, ctx: ectx, estim: estim}
}

// newErrorCallback honors --skip-failed by ignoring every recoverable
// failure instead of aborting the whole operation on the first one.
func newErrorCallback(state *appState) ioengine.ErrCallback {
	if !state.opts.SkipFailed {
		return nil
	}

	return func(_ *ioengine.Context, rec ioengine.ErrRecord) ioengine.ErrCbResult {
		state.log.Warn("skipping failed entry", "path", rec.Path, "kind", rec.Kind.String(), "error", rec.Message)
		state.skipped = true

		return ioengine.ErrCbIgnore
	}
}

// finish logs every recorded error/skip and updates state's exit-code bits
// based on res, the result the engine call itself returned.
func (o *opContext) finish(state *appState, res ioengine.OpResult, verb, path string) ioengine.OpResult {
	finishProgress()

	for _, rec := range o.ctx.Errors.Records() {
		state.log.Error(verb+" failed", "path", rec.Path, "kind", rec.Kind.String(), "error", rec.Message)
	}

	switch {
	case res == ioengine.ResFailed || o.ctx.Errors.Len() > 0:
		state.errored = true
	case res == ioengine.ResSkipped:
		state.skipped = true
		state.log.Warn(verb+" skipped", "path", path)
	default:
		state.log.Info(verb+" completed", "path", path, "items", o.estim.CurrentItem)
	}

	return res
}
