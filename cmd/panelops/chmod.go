package main

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fsops/panelops/ioengine"
)

func newChmodCommand(state *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "chmod <mode> <path>",
		Short: "Change permission bits of a path, or (with --recursive) a whole subtree",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			modeVal, err := strconv.ParseUint(args[0], 8, 32)
			if err != nil {
				return err
			}

			mode := os.FileMode(modeVal)
			path := absClean(args[1])
			op := newOpContext(cmd, state)

			if !state.opts.Recursive {
				res := ioengine.Chmod(op.fsys, &ioengine.ChmodArgs{Context: *op.ctx, Path: path, Mode: mode})
				op.finish(state, res, "chmod", path)

				return nil
			}

			_ = op.estim.Calculate(path, false)

			res := ioengine.ChmodSubtree(op.fsys, &ioengine.ChattrSubtreeArgs{
				Context:  *op.ctx,
				Path:     path,
				Mode:     mode,
				Excludes: state.opts.Excludes,
			})
			op.finish(state, res, "chmod", path)

			return nil
		},
	}
}
