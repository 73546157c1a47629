package main

import (
	"fmt"
	"io"

	"github.com/Nivl/gitlet-go/internal/errutil"
	"github.com/spf13/cobra"
)

func newMergeCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge BRANCH",
		Short: "Merge the given branch into the active branch",
		Args:  exactArgs(1),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return mergeCmd(cmd.OutOrStdout(), cfg, args[0])
	}

	return cmd
}

func mergeCmd(out io.Writer, cfg *globalFlags, branch string) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	res, err := r.Merge(branch)
	if err != nil {
		return err
	}
	switch {
	case res.FastForwarded:
		fmt.Fprintln(out, "Current branch fast-forwarded.")
	case res.Conflicted():
		fmt.Fprintln(out, "Encountered a merge conflict.")
	}
	return nil
}
