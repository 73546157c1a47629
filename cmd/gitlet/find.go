package main

import (
	"fmt"
	"io"

	"github.com/Nivl/gitlet-go/internal/errutil"
	"github.com/spf13/cobra"
)

func newFindCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find MESSAGE",
		Short: "Print the IDs of the commits that have the given message",
		Args:  exactArgs(1),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return findCmd(cmd.OutOrStdout(), cfg, args[0])
	}

	return cmd
}

func findCmd(out io.Writer, cfg *globalFlags, message string) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	ids, err := r.Find(message)
	if err != nil {
		return err
	}
	for _, id := range ids {
		fmt.Fprintln(out, id.String())
	}
	return nil
}
