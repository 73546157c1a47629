package main

import (
	"github.com/Nivl/gitlet-go/internal/errutil"
	"github.com/spf13/cobra"
)

func newBranchCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "branch NAME",
		Short: "Create a new branch pointing to the last commit of the active branch",
		Args:  exactArgs(1),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return branchCmd(cfg, args[0])
	}

	return cmd
}

func branchCmd(cfg *globalFlags, name string) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	_, err = r.NewBranch(name)
	return err
}

func newRmBranchCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm-branch NAME",
		Short: "Delete a branch, keeping its commits",
		Args:  exactArgs(1),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return rmBranchCmd(cfg, args[0])
	}

	return cmd
}

func rmBranchCmd(cfg *globalFlags, name string) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	return r.RemoveBranch(name)
}
