package gitlet

import (
	"errors"
	"fmt"

	"github.com/Nivl/gitlet-go/ginternals"
)

// List of errors returned when working with branches
var (
	ErrBranchNotFound           = ginternals.ErrBranchNotFound
	ErrBranchNameInvalid        = ginternals.ErrBranchNameInvalid
	ErrDuplicateBranch          = errors.New("a branch with that name already exists")
	ErrCannotRemoveActiveBranch = errors.New("cannot remove the current branch")
)

// Branch represents a branch of the repository
type Branch struct {
	*ginternals.Branch
	// Active is true if the branch is the one HEAD points to
	Active bool
}

// NewBranch creates a new branch pointing to the last commit of the
// active branch. The active branch is not changed
func (r *Repository) NewBranch(name string) (*ginternals.Branch, error) {
	if !ginternals.IsBranchNameValid(name) {
		return nil, fmt.Errorf(`branch "%s": %w`, name, ErrBranchNameInvalid)
	}
	st, err := r.loadState()
	if err != nil {
		return nil, err
	}
	b := ginternals.NewBranch(name, st.head.ID())
	if err = r.dotGitlet.WriteBranchSafe(b); err != nil {
		if errors.Is(err, ginternals.ErrBranchExists) {
			return nil, fmt.Errorf(`branch "%s": %w`, name, ErrDuplicateBranch)
		}
		return nil, fmt.Errorf("could not create branch %s: %w", name, err)
	}
	return b, nil
}

// RemoveBranch deletes a branch. The commits of the branch are kept
func (r *Repository) RemoveBranch(name string) error {
	if !r.dotGitlet.HasBranch(name) {
		return fmt.Errorf(`branch "%s": %w`, name, ErrBranchNotFound)
	}
	active, err := r.dotGitlet.HEAD()
	if err != nil {
		return fmt.Errorf("could not get the active branch: %w", err)
	}
	if name == active {
		return fmt.Errorf(`branch "%s": %w`, name, ErrCannotRemoveActiveBranch)
	}
	return r.dotGitlet.DeleteBranch(name)
}

// Branches returns all the branches of the repository, sorted by name
func (r *Repository) Branches() ([]*Branch, error) {
	active, err := r.dotGitlet.HEAD()
	if err != nil {
		return nil, fmt.Errorf("could not get the active branch: %w", err)
	}
	branches := []*Branch{}
	err = r.dotGitlet.WalkBranches(func(b *ginternals.Branch) error {
		branches = append(branches, &Branch{
			Branch: b,
			Active: b.Name() == active,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not list the branches: %w", err)
	}
	return branches, nil
}
