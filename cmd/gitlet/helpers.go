package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/Nivl/gitlet-go"
	"github.com/Nivl/gitlet-go/ginternals/config"
	"github.com/Nivl/gitlet-go/ginternals/object"
	"github.com/Nivl/gitlet-go/internal/pathutil"
	"github.com/spf13/cobra"
)

// shortIDSize is the length of the abbreviated IDs printed in logs
const shortIDSize = 7

func loadConfig(cfg *globalFlags, skipLookUp bool) (*config.Config, error) {
	return config.LoadConfig(cfg.env, config.LoadConfigOptions{
		FS:                  cfg.fs,
		WorkingDirectory:    cfg.C.String(),
		SkipGitletDirLookUp: skipLookUp,
	})
}

func loadRepository(cfg *globalFlags) (*gitlet.Repository, error) {
	c, err := loadConfig(cfg, false)
	if err != nil {
		if errors.Is(err, pathutil.ErrNoRepo) {
			return nil, gitlet.ErrRepositoryNotExist
		}
		return nil, err
	}
	return gitlet.OpenRepositoryWithOptions(c, gitlet.Options{
		StrictPrefixes: cfg.StrictPrefixes,
	})
}

// exactArgs is cobra.ExactArgs with the error message users expect
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return fmt.Errorf("%s: %w", cmd.Name(), errIncorrectOperands)
		}
		return nil
	}
}

// printCommit prints a commit the way log and global-log do
func printCommit(out io.Writer, c *object.Commit) {
	fmt.Fprintln(out, "===")
	fmt.Fprintf(out, "commit %s\n", c.ID().String())
	if c.HasSecondParent() {
		fmt.Fprintf(out, "Merge: %s %s\n",
			c.ParentID().String()[:shortIDSize],
			c.SecondParentID().String()[:shortIDSize])
	}
	fmt.Fprintf(out, "Date: %s\n", c.Timestamp())
	fmt.Fprintln(out, c.Message())
	fmt.Fprintln(out, "")
}
