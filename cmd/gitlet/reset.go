package main

import (
	"github.com/Nivl/gitlet-go/internal/errutil"
	"github.com/spf13/cobra"
)

func newResetCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset COMMIT",
		Short: "Move the active branch to the given commit and check it out",
		Args:  exactArgs(1),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return resetCmd(cfg, args[0])
	}

	return cmd
}

func resetCmd(cfg *globalFlags, commit string) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	return r.Reset(commit)
}
