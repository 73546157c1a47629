package main

import (
	"github.com/Nivl/gitlet-go/internal/errutil"
	"github.com/spf13/cobra"
)

func newCommitCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commit MESSAGE",
		Short: "Record the staged changes in a new commit",
	}
	cmd.Args = func(cmd *cobra.Command, args []string) error {
		if len(args) > 1 {
			return errIncorrectOperands
		}
		return nil
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		// No message is handled the same way as an empty one
		message := ""
		if len(args) > 0 {
			message = args[0]
		}
		return commitCmd(cfg, message)
	}

	return cmd
}

func commitCmd(cfg *globalFlags, message string) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	_, err = r.Commit(message)
	return err
}
