package main

import (
	"errors"

	"github.com/Nivl/gitlet-go"
	"github.com/Nivl/gitlet-go/ginternals"
	"github.com/Nivl/gitlet-go/internal/worktree"
)

// List of errors that only exist at the command line level.
// They are printed as is
var ( //nolint:stylecheck // the messages are sentences
	errNoCommand         = errors.New("Please enter a command.")
	errUnknownCommand    = errors.New("No command with that name exists.")
	errIncorrectOperands = errors.New("Incorrect operands.")
	errNoSuchBranch      = errors.New("No such branch exists.")
	errAmbiguousCommitID = errors.New("Several commits match that abbreviated id.")
)

// userMessages contains the messages printed for the errors returned
// by the library. The first match wins
var userMessages = []struct {
	err error
	msg string
}{
	{err: errNoCommand},
	{err: errUnknownCommand},
	{err: errIncorrectOperands},
	{err: errNoSuchBranch},
	{err: gitlet.ErrRepositoryExists, msg: "A Gitlet version-control system already exists in the current directory."},
	{err: gitlet.ErrRepositoryNotExist, msg: "Not in an initialized Gitlet directory."},
	{err: gitlet.ErrFileNotFound, msg: "File does not exist."},
	{err: gitlet.ErrNothingToRemove, msg: "No reason to remove the file."},
	{err: gitlet.ErrEmptyMessage, msg: "Please enter a commit message."},
	{err: gitlet.ErrNothingStaged, msg: "No changes added to the commit."},
	{err: gitlet.ErrNoCommitWithMessage, msg: "Found no commit with that message."},
	{err: ginternals.ErrObjectAmbiguous, msg: errAmbiguousCommitID.Error()},
	{err: gitlet.ErrCommitNotFound, msg: "No commit with that id exists."},
	{err: gitlet.ErrFileNotInCommit, msg: "File does not exist in that commit."},
	{err: gitlet.ErrAlreadyOnBranch, msg: "No need to checkout the current branch."},
	{err: worktree.ErrUntrackedFileConflict, msg: "There is an untracked file in the way; delete it, or add and commit it first."},
	{err: gitlet.ErrDuplicateBranch, msg: "A branch with that name already exists."},
	{err: gitlet.ErrBranchNotFound, msg: "A branch with that name does not exist."},
	{err: gitlet.ErrCannotRemoveActiveBranch, msg: "Cannot remove the current branch."},
	{err: gitlet.ErrUncommittedChanges, msg: "You have uncommitted changes."},
	{err: gitlet.ErrSelfMerge, msg: "Cannot merge a branch with itself."},
	{err: gitlet.ErrAlreadyAncestor, msg: "Given branch is an ancestor of the current branch."},
}

// userMessage returns the message to print to the user for err
func userMessage(err error) string {
	for _, m := range userMessages {
		if !errors.Is(err, m.err) {
			continue
		}
		if m.msg == "" {
			return m.err.Error()
		}
		return m.msg
	}
	return err.Error()
}
