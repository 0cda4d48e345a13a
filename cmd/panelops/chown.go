package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fsops/panelops/ioengine"
)

func newChownCommand(state *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "chown <uid> <path>",
		Short: "Change the owning user ID of a path, or (with --recursive) a whole subtree",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			uid, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}

			path := absClean(args[1])
			op := newOpContext(cmd, state)

			if !state.opts.Recursive {
				res := ioengine.Chown(op.fsys, &ioengine.ChownArgs{Context: *op.ctx, Path: path, UID: uid})
				op.finish(state, res, "chown", path)

				return nil
			}

			_ = op.estim.Calculate(path, false)

			res := ioengine.ChownSubtree(op.fsys, &ioengine.ChattrSubtreeArgs{
				Context:  *op.ctx,
				Path:     path,
				UID:      uid,
				GID:      -1,
				Excludes: state.opts.Excludes,
			})
			op.finish(state, res, "chown", path)

			return nil
		},
	}
}
