package main

import (
	"github.com/spf13/cobra"

	"github.com/fsops/panelops/ioengine"
)

func newLnCommand(state *appState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ln <target> <path>",
		Short: "Create a symbolic link at <path> pointing at <target>",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			crs, err := parseCRS(state.opts.CRS)
			if err != nil {
				return err
			}

			target, path := args[0], absClean(args[1])
			op := newOpContext(cmd, state)

			res := ioengine.Link(op.fsys, &ioengine.LnArgs{
				Context: *op.ctx,
				Path:    path,
				Target:  target,
				CRS:     crs,
			})
			op.finish(state, res, "link", path)

			return nil
		},
	}

	return cmd
}
