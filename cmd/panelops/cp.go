package main

import (
	"github.com/spf13/cobra"

	"github.com/fsops/panelops/ioengine"
)

func newCpCommand(state *appState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cp <src> <dst>",
		Short: "Copy a file, symlink, or (with --recursive) a whole directory tree",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCp(cmd, state, absClean(args[0]), absClean(args[1]))
		},
	}

	return cmd
}

func runCp(cmd *cobra.Command, state *appState, src, dst string) error {
	crs, err := parseCRS(state.opts.CRS)
	if err != nil {
		return err
	}

	op := newOpContext(cmd, state)

	if !state.opts.Recursive {
		res := ioengine.Copy(op.fsys, &ioengine.CpArgs{
			Context: *op.ctx,
			Src:     src,
			Dst:     dst,
			CRS:     crs,
			Verify:  state.opts.Verify,
		})
		op.finish(state, res, "copy", src)

		return nil
	}

	_ = op.estim.Calculate(src, false)

	res := ioengine.CpSubtree(op.fsys, &ioengine.CpSubtreeArgs{
		Context:  *op.ctx,
		Src:      src,
		Dst:      dst,
		CRS:      crs,
		Verify:   state.opts.Verify,
		Excludes: state.opts.Excludes,
	})
	op.finish(state, res, "copy", src)

	return nil
}
