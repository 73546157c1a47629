package main

import (
	"github.com/Nivl/gitlet-go/env"
	"github.com/Nivl/gitlet-go/internal/pathutil"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type globalFlags struct {
	env *env.Env
	// fs is the filesystem the repository lives on.
	// Defaults to the OS filesystem
	fs afero.Fs

	C              pflag.Value // simpler version of git's -C: https://git-scm.com/docs/git#Documentation/git.txt--Cltpathgt
	StrictPrefixes bool        // Fail on ambiguous abbreviated commit IDs
}

func newRootCmd(cwd string, e *env.Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "gitlet",
		Short:         "a tiny version-control system",
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.ArbitraryArgs,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return errUnknownCommand
		}
		return errNoCommand
	}

	cfg := &globalFlags{
		env: e,
		C:   pathutil.NewDirPathFlagWithDefault(cwd),
	}
	cmd.PersistentFlags().VarP(cfg.C, "C", "C", "Run as if gitlet was started in the provided path instead of the current working directory.")
	cmd.PersistentFlags().BoolVar(&cfg.StrictPrefixes, "strict-prefixes", false, "Fail instead of picking the first match when an abbreviated commit ID is ambiguous.")

	cmd.AddCommand(newInitCmd(cfg))
	cmd.AddCommand(newAddCmd(cfg))
	cmd.AddCommand(newCommitCmd(cfg))
	cmd.AddCommand(newRmCmd(cfg))
	cmd.AddCommand(newLogCmd(cfg))
	cmd.AddCommand(newGlobalLogCmd(cfg))
	cmd.AddCommand(newFindCmd(cfg))
	cmd.AddCommand(newStatusCmd(cfg))
	cmd.AddCommand(newCheckoutCmd(cfg))
	cmd.AddCommand(newBranchCmd(cfg))
	cmd.AddCommand(newRmBranchCmd(cfg))
	cmd.AddCommand(newResetCmd(cfg))
	cmd.AddCommand(newMergeCmd(cfg))

	return cmd
}
