package main

import (
	"github.com/spf13/cobra"

	"github.com/fsops/panelops/ioengine"
)

func newMkfileCommand(state *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "mkfile <path>",
		Short: "Create an empty regular file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := absClean(args[0])
			op := newOpContext(cmd, state)

			res := ioengine.MkFile(op.fsys, &ioengine.MkFileArgs{Context: *op.ctx, Path: path})
			op.finish(state, res, "mkfile", path)

			return nil
		},
	}
}
