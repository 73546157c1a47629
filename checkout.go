package gitlet

import (
	"errors"
	"fmt"

	"github.com/Nivl/gitlet-go/ginternals/object"
)

// List of errors returned by the checkout methods
var (
	ErrFileNotInCommit = errors.New("file does not exist in that commit")
	ErrAlreadyOnBranch = errors.New("no need to checkout the current branch")
)

// CheckoutFile restores a file of the working tree to the version of
// the last commit of the active branch.
// The staging area is left untouched
func (r *Repository) CheckoutFile(name string) error {
	if err := validateFilename(name); err != nil {
		return err
	}
	st, err := r.loadState()
	if err != nil {
		return err
	}
	return r.restoreFile(st.head, name)
}

// CheckoutFileAt restores a file of the working tree to the version of
// the given commit.
// The staging area is left untouched
func (r *Repository) CheckoutFileAt(idOrPrefix, name string) error {
	if err := validateFilename(name); err != nil {
		return err
	}
	c, err := r.GetCommit(idOrPrefix)
	if err != nil {
		return err
	}
	return r.restoreFile(c, name)
}

func (r *Repository) restoreFile(c *object.Commit, name string) error {
	if !c.Tracks(name) {
		return fmt.Errorf("file %s: %w", name, ErrFileNotInCommit)
	}
	if err := r.wt.Restore(c.Snapshot(), name); err != nil {
		return fmt.Errorf("could not restore %s: %w", name, err)
	}
	return nil
}

// CheckoutBranch makes the given branch the active branch, and
// replaces the content of the working tree by the content of its last
// commit. The staging area is cleared.
// Nothing is changed if an untracked file would be overwritten
func (r *Repository) CheckoutBranch(name string) error {
	st, err := r.loadState()
	if err != nil {
		return err
	}
	if !r.dotGitlet.HasBranch(name) {
		return fmt.Errorf(`branch "%s": %w`, name, ErrBranchNotFound)
	}
	if name == st.branch {
		return fmt.Errorf(`branch "%s": %w`, name, ErrAlreadyOnBranch)
	}
	target, err := r.branchCommit(name)
	if err != nil {
		return err
	}
	if err = r.switchTo(st, target); err != nil {
		return err
	}
	if err = r.clearIndex(st); err != nil {
		return err
	}
	if err = r.dotGitlet.SetHEAD(name); err != nil {
		return fmt.Errorf("could not switch to %s: %w", name, err)
	}
	return nil
}

// Reset moves the active branch to the given commit, and replaces the
// content of the working tree by the content of the commit. The
// staging area is cleared.
// Nothing is changed if an untracked file would be overwritten
func (r *Repository) Reset(idOrPrefix string) error {
	st, err := r.loadState()
	if err != nil {
		return err
	}
	c, err := r.GetCommit(idOrPrefix)
	if err != nil {
		return err
	}
	if err = r.switchTo(st, c); err != nil {
		return err
	}
	return r.advance(st, c)
}

// switchTo updates the working tree to match the snapshot of the given
// commit
func (r *Repository) switchTo(st *state, c *object.Commit) error {
	if err := r.wt.Switch(st.head.Snapshot(), c.Snapshot()); err != nil {
		return fmt.Errorf("could not checkout %s: %w", c.ID().String(), err)
	}
	return nil
}
