package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fsops/panelops/ioengine"
)

func newChgrpCommand(state *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "chgrp <gid> <path>",
		Short: "Change the owning group ID of a path, or (with --recursive) a whole subtree",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			gid, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}

			path := absClean(args[1])
			op := newOpContext(cmd, state)

			if !state.opts.Recursive {
				res := ioengine.Chgrp(op.fsys, &ioengine.ChgrpArgs{Context: *op.ctx, Path: path, GID: gid})
				op.finish(state, res, "chgrp", path)

				return nil
			}

			_ = op.estim.Calculate(path, false)

			res := ioengine.ChgrpSubtree(op.fsys, &ioengine.ChattrSubtreeArgs{
				Context:  *op.ctx,
				Path:     path,
				UID:      -1,
				GID:      gid,
				Excludes: state.opts.Excludes,
			})
			op.finish(state, res, "chgrp", path)

			return nil
		},
	}
}
