package main

import (
	"io"

	"github.com/Nivl/gitlet-go/internal/errutil"
	"github.com/spf13/cobra"
)

func newLogCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the history of the active branch",
		Long:  "Show the commits of the active branch, starting from the most recent one. Only the first parent of merge commits is followed.",
		Args:  exactArgs(0),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return logCmd(cmd.OutOrStdout(), cfg)
	}

	return cmd
}

func logCmd(out io.Writer, cfg *globalFlags) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	commits, err := r.Log()
	if err != nil {
		return err
	}
	for _, c := range commits {
		printCommit(out, c)
	}
	return nil
}

func newGlobalLogCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "global-log",
		Short: "Show every commit ever made",
		Args:  exactArgs(0),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return globalLogCmd(cmd.OutOrStdout(), cfg)
	}

	return cmd
}

func globalLogCmd(out io.Writer, cfg *globalFlags) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	commits, err := r.GlobalLog()
	if err != nil {
		return err
	}
	for _, c := range commits {
		printCommit(out, c)
	}
	return nil
}
