package main

import (
	"github.com/spf13/cobra"

	"github.com/fsops/panelops/ioengine"
)

func newMvCommand(state *appState) *cobra.Command {
	var caseInsensitive bool

	cmd := &cobra.Command{
		Use:   "mv <src> <dst>",
		Short: "Move a file, symlink, or directory tree, using rename with copy+remove fallback",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			crs, err := parseCRS(state.opts.CRS)
			if err != nil {
				return err
			}

			src, dst := absClean(args[0]), absClean(args[1])
			op := newOpContext(cmd, state)

			_ = op.estim.Calculate(src, false)

			res := ioengine.MvSubtree(op.fsys, &ioengine.MvSubtreeArgs{
				Context:           *op.ctx,
				Src:               src,
				Dst:               dst,
				CRS:               crs,
				Verify:            state.opts.Verify,
				Excludes:          state.opts.Excludes,
				CaseInsensitiveFS: caseInsensitive,
			})
			op.finish(state, res, "move", src)

			return nil
		},
	}

	cmd.Flags().BoolVar(&caseInsensitive, "case-insensitive-fs", false,
		"treat the destination filesystem as case-insensitive, so a rename differing only in case is not a conflict")

	return cmd
}
