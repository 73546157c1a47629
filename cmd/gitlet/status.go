package main

import (
	"fmt"
	"io"

	"github.com/Nivl/gitlet-go/internal/errutil"
	"github.com/spf13/cobra"
)

func newStatusCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the branches, the staging area, and the state of the working tree",
		Args:  exactArgs(0),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return statusCmd(cmd.OutOrStdout(), cfg)
	}

	return cmd
}

func statusCmd(out io.Writer, cfg *globalFlags) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	s, err := r.Status()
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "=== Branches ===")
	for _, b := range s.Branches {
		if b.Active {
			fmt.Fprint(out, "*")
		}
		fmt.Fprintln(out, b.Name())
	}
	fmt.Fprintln(out, "")

	printSection(out, "Staged Files", s.Staged)
	printSection(out, "Removed Files", s.Removed)

	unstaged := make([]string, 0, len(s.Unstaged))
	for _, change := range s.Unstaged {
		unstaged = append(unstaged, fmt.Sprintf("%s (%s)", change.Name, change.Kind.String()))
	}
	printSection(out, "Modifications Not Staged For Commit", unstaged)
	printSection(out, "Untracked Files", s.Untracked)
	return nil
}

func printSection(out io.Writer, title string, lines []string) {
	fmt.Fprintf(out, "=== %s ===\n", title)
	for _, l := range lines {
		fmt.Fprintln(out, l)
	}
	fmt.Fprintln(out, "")
}
