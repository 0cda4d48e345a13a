package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/fsops/panelops/ioengine"
)

// newConfirmCallback returns the conflict-resolution confirmation prompt
// used by ioengine.Context.Confirm. With --yes set, every conflict is
// accepted without prompting; in --dry-run, every conflict is accepted too,
// since nothing destructive actually happens.
func newConfirmCallback(opts *globalOptions) ioengine.ConfirmCallback {
	if opts.Yes || opts.DryRun {
		return func(*ioengine.Context, string, string) bool { return true }
	}

	reader := bufio.NewReader(os.Stdin)

	return func(_ *ioengine.Context, src, dst string) bool {
		prompt := color.YellowString("overwrite") + fmt.Sprintf(" %q with %q? [y/N] ", dst, src)
		fmt.Fprint(os.Stderr, prompt)

		line, err := reader.ReadString('\n')
		if err != nil {
			return false
		}

		answer := strings.ToLower(strings.TrimSpace(line))

		return answer == "y" || answer == "yes"
	}
}
