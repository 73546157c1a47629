package main

import (
	"errors"

	"github.com/Nivl/gitlet-go"
	"github.com/Nivl/gitlet-go/internal/errutil"
	"github.com/spf13/cobra"
)

// checkoutParams represents the 3 forms of checkout:
//
//	checkout -- FILE
//	checkout COMMIT -- FILE
//	checkout BRANCH
type checkoutParams struct {
	commit string
	file   string
	branch string
}

func newCheckoutCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkout [COMMIT] -- FILE | BRANCH",
		Short: "Restore a file, or switch branches",
		Long:  "Restore a file to its version in the given commit, defaulting to the last commit of the active branch. When given a branch, switch to that branch and replace the content of the working tree by the content of its last commit.",
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		p, err := newCheckoutParams(cmd.ArgsLenAtDash(), args)
		if err != nil {
			return err
		}
		return checkoutCmd(cfg, p)
	}

	return cmd
}

// newCheckoutParams parses the arguments of checkout. dash is the
// number of arguments before "--", or -1 if there were no "--"
func newCheckoutParams(dash int, args []string) (checkoutParams, error) {
	switch {
	case dash == -1 && len(args) == 1:
		return checkoutParams{branch: args[0]}, nil
	case dash == 0 && len(args) == 1:
		return checkoutParams{file: args[0]}, nil
	case dash == 1 && len(args) == 2:
		return checkoutParams{commit: args[0], file: args[1]}, nil
	default:
		return checkoutParams{}, errIncorrectOperands
	}
}

func checkoutCmd(cfg *globalFlags, p checkoutParams) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	switch {
	case p.branch != "":
		err = r.CheckoutBranch(p.branch)
		if errors.Is(err, gitlet.ErrBranchNotFound) {
			return errNoSuchBranch
		}
		return err
	case p.commit != "":
		return r.CheckoutFileAt(p.commit, p.file)
	default:
		return r.CheckoutFile(p.file)
	}
}
