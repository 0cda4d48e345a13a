package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/fsops/panelops/ioengine"
)

func newMkdirCommand(state *appState) *cobra.Command {
	var (
		parents bool
		mode    uint32
	)

	cmd := &cobra.Command{
		Use:   "mkdir <path>",
		Short: "Create a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := absClean(args[0])
			op := newOpContext(cmd, state)

			res := ioengine.MkDir(op.fsys, &ioengine.MkDirArgs{
				Context:        *op.ctx,
				Path:           path,
				ProcessParents: parents,
				Mode:           os.FileMode(mode),
			})
			op.finish(state, res, "mkdir", path)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&parents, "parents", "p", false, "create missing ancestor directories as needed")
	cmd.Flags().Uint32Var(&mode, "mode", 0o755, "permission bits for the created directory")

	return cmd
}
