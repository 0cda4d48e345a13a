package main

import (
	"github.com/spf13/cobra"

	"github.com/fsops/panelops/ioengine"
)

func newRmCommand(state *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <path>",
		Short: "Remove a file or (with --recursive) a whole directory tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := absClean(args[0])
			op := newOpContext(cmd, state)

			if !state.opts.Recursive {
				info, err := op.fsys.Stat(path)
				var res ioengine.OpResult
				switch {
				case err != nil:
					op.ctx.Errors.Append(path, ioengine.ErrNotFound, "path does not exist")
					res = ioengine.ResFailed
				case info.IsDir():
					res = ioengine.RmDir(op.fsys, &ioengine.RmDirArgs{Context: *op.ctx, Path: path})
				default:
					res = ioengine.RmFile(op.fsys, &ioengine.RmFileArgs{Context: *op.ctx, Path: path})
				}

				op.finish(state, res, "remove", path)

				return nil
			}

			_ = op.estim.Calculate(path, false)

			res := ioengine.RmSubtree(op.fsys, &ioengine.RmSubtreeArgs{
				Context:  *op.ctx,
				Path:     path,
				Excludes: state.opts.Excludes,
			})
			op.finish(state, res, "remove", path)

			return nil
		},
	}
}
