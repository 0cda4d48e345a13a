package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/fsops/panelops/ioengine"
)

// newProgressNotifier returns a notifier that renders a single
// overwritten status line to stderr; it is silenced automatically by the
// estimator during phases the engine marks silent (e.g. the remove half of
// a cross-device move), so the displayed item/byte count never regresses.
func newProgressNotifier() ioengine.NotifierFunc {
	isTTY := isTerminal(os.Stderr)

	return func(stage ioengine.Stage, estim *ioengine.Estimator) {
		if !isTTY {
			return
		}

		switch stage {
		case ioengine.StageEstimating:
			fmt.Fprintf(os.Stderr, "\restimating... %d items, %s", estim.TotalItems, humanize.Bytes(estim.TotalBytes))
		case ioengine.StageInProgress:
			fmt.Fprintf(os.Stderr, "\r%d/%d items, %s/%s  %s          ",
				estim.CurrentItem, estim.TotalItems,
				humanize.Bytes(estim.CurrentByte), humanize.Bytes(estim.TotalBytes),
				estim.Item,
			)
		}
	}
}

func finishProgress() {
	if isTerminal(os.Stderr) {
		fmt.Fprintln(os.Stderr)
	}
}
