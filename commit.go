package gitlet

import (
	"errors"
	"fmt"

	"github.com/Nivl/gitlet-go/ginternals"
	"github.com/Nivl/gitlet-go/ginternals/githash"
	"github.com/Nivl/gitlet-go/ginternals/object"
)

// List of errors returned when working with commits
var (
	ErrCommitNotFound      = errors.New("commit not found")
	ErrEmptyMessage        = errors.New("empty commit message")
	ErrNothingStaged       = errors.New("no changes added to the commit")
	ErrNoCommitWithMessage = errors.New("no commit with that message")
)

// GetCommit returns the commit matching the given ID or short ID
func (r *Repository) GetCommit(idOrPrefix string) (*object.Commit, error) {
	resolve := r.dotGitlet.ResolveOid
	if r.strictPrefixes {
		resolve = r.dotGitlet.ResolveOidStrict
	}
	oid, err := resolve(idOrPrefix)
	if err != nil {
		if errors.Is(err, ginternals.ErrObjectNotFound) {
			return nil, fmt.Errorf("commit %s: %w", idOrPrefix, ErrCommitNotFound)
		}
		return nil, fmt.Errorf("could not resolve %s: %w", idOrPrefix, err)
	}
	return r.commit(oid)
}

// commit returns the commit that has the given oid
func (r *Repository) commit(oid githash.Oid) (*object.Commit, error) {
	o, err := r.dotGitlet.Object(oid)
	if err != nil {
		if errors.Is(err, ginternals.ErrObjectNotFound) {
			return nil, fmt.Errorf("commit %s: %w", oid.String(), ErrCommitNotFound)
		}
		return nil, fmt.Errorf("could not load commit %s: %w", oid.String(), err)
	}
	// The ID of a blob can be used by mistake
	if o.Type() != object.TypeCommit {
		return nil, fmt.Errorf("object %s is a %s: %w", oid.String(), o.Type().String(), ErrCommitNotFound)
	}
	return o.AsCommit(r.hash)
}

// branchCommit returns the commit targeted by the given branch
func (r *Repository) branchCommit(name string) (*object.Commit, error) {
	branch, err := r.dotGitlet.Branch(name)
	if err != nil {
		return nil, err //nolint:wrapcheck // the error already contains the branch name
	}
	c, err := r.commit(branch.Target())
	if err != nil {
		return nil, fmt.Errorf("could not load the tip of %s: %w", name, err)
	}
	return c, nil
}

// HEAD returns the name of the active branch, and the commit it
// points to
func (r *Repository) HEAD() (branch string, c *object.Commit, err error) {
	st, err := r.loadState()
	if err != nil {
		return "", nil, err
	}
	return st.branch, st.head, nil
}

// Commit creates a new commit out of the staged changes, and moves the
// active branch to it
func (r *Repository) Commit(message string) (*object.Commit, error) {
	if message == "" {
		return nil, ErrEmptyMessage
	}
	st, err := r.loadState()
	if err != nil {
		return nil, err
	}
	if st.index.IsEmpty() {
		return nil, ErrNothingStaged
	}

	snapshot := st.index.Apply(st.head.Snapshot())
	c := object.NewCommit(r.hash, snapshot, message, object.CommitOptions{
		ParentID: st.head.ID(),
		Time:     r.now(),
	})
	if _, err = r.dotGitlet.WriteObject(c.ToObject()); err != nil {
		return nil, fmt.Errorf("could not write the commit: %w", err)
	}
	if err = r.advance(st, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Log returns the history of the active branch, from its tip to the
// initial commit. Only the first parent of merge commits is followed
func (r *Repository) Log() ([]*object.Commit, error) {
	st, err := r.loadState()
	if err != nil {
		return nil, err
	}
	commits := []*object.Commit{st.head}
	c := st.head
	for c.HasParent() {
		c, err = r.commit(c.ParentID())
		if err != nil {
			return nil, fmt.Errorf("could not load parent: %w", err)
		}
		commits = append(commits, c)
	}
	return commits, nil
}

// GlobalLog returns all the commits ever made, sorted by ID
func (r *Repository) GlobalLog() ([]*object.Commit, error) {
	commits := []*object.Commit{}
	err := r.walkCommits(func(c *object.Commit) error {
		commits = append(commits, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return commits, nil
}

// Find returns the IDs of all the commits that have the given
// message, sorted
func (r *Repository) Find(message string) ([]githash.Oid, error) {
	ids := []githash.Oid{}
	err := r.walkCommits(func(c *object.Commit) error {
		if c.Message() == message {
			ids = append(ids, c.ID())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, ErrNoCommitWithMessage
	}
	return ids, nil
}

// walkCommits runs f on all the stored commits, sorted by ID.
// The blobs are skipped
func (r *Repository) walkCommits(f func(c *object.Commit) error) error {
	return r.dotGitlet.WalkObjectIDs(func(oid githash.Oid) error {
		o, err := r.dotGitlet.Object(oid)
		if err != nil {
			return fmt.Errorf("could not load object %s: %w", oid.String(), err)
		}
		if o.Type() != object.TypeCommit {
			return nil
		}
		c, err := o.AsCommit(r.hash)
		if err != nil {
			return fmt.Errorf("could not parse commit %s: %w", oid.String(), err)
		}
		return f(c)
	})
}
