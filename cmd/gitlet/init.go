package main

import (
	"github.com/Nivl/gitlet-go"
	"github.com/spf13/cobra"
)

func newInitCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a new gitlet repository in the current directory",
		Args:  exactArgs(0),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return initCmd(cfg)
	}

	return cmd
}

func initCmd(cfg *globalFlags) error {
	c, err := loadConfig(cfg, true)
	if err != nil {
		return err
	}
	r, err := gitlet.InitRepository(c)
	if err != nil {
		return err
	}
	return r.Close()
}
