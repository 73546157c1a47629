package gitlet

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Nivl/gitlet-go/ginternals/githash"
	"github.com/Nivl/gitlet-go/ginternals/object"
	"github.com/Nivl/gitlet-go/internal/worktree"
)

// List of errors returned by Merge
var (
	ErrUncommittedChanges = errors.New("you have uncommitted changes")
	ErrSelfMerge          = errors.New("cannot merge a branch with itself")
	ErrAlreadyAncestor    = errors.New("given branch is an ancestor of the current branch")
)

// Where a file is present, used to detect conflicts
const (
	inSplit   = 1
	inCurrent = 2
	inOther   = 4
)

// MergeResult contains the outcome of a merge
type MergeResult struct {
	// FastForwarded is true when the active branch was an ancestor of
	// the merged branch. In that case the active branch was moved to
	// the tip of the merged branch, and no commit was created
	FastForwarded bool
	// Conflicts contains the sorted names of the files that could not
	// be merged automatically
	Conflicts []string
	// Commit is the commit the active branch points to after the
	// merge
	Commit *object.Commit
}

// Conflicted returns whether some files had to be merged by hand
func (res *MergeResult) Conflicted() bool {
	return len(res.Conflicts) > 0
}

// Merge merges the given branch into the active branch.
// If the active branch is an ancestor of the given branch, the active
// branch is fast-forwarded. Otherwise a merge commit with 2 parents is
// created. Conflicting files are written with conflict markers and
// committed as is
func (r *Repository) Merge(branchName string) (*MergeResult, error) {
	st, err := r.loadState()
	if err != nil {
		return nil, err
	}
	if !st.index.IsEmpty() {
		return nil, ErrUncommittedChanges
	}
	if !r.dotGitlet.HasBranch(branchName) {
		return nil, fmt.Errorf(`branch "%s": %w`, branchName, ErrBranchNotFound)
	}
	if branchName == st.branch {
		return nil, fmt.Errorf(`branch "%s": %w`, branchName, ErrSelfMerge)
	}

	other, err := r.branchCommit(branchName)
	if err != nil {
		return nil, err
	}
	split, err := r.newGraph().splitPoint(st.head, other)
	if err != nil {
		return nil, fmt.Errorf("could not find the split point: %w", err)
	}

	switch {
	case equal(split.ID(), st.head.ID()):
		if err = r.switchTo(st, other); err != nil {
			return nil, err
		}
		if err = r.advance(st, other); err != nil {
			return nil, err
		}
		return &MergeResult{
			FastForwarded: true,
			Commit:        other,
		}, nil
	case equal(split.ID(), other.ID()):
		return nil, fmt.Errorf(`branch "%s": %w`, branchName, ErrAlreadyAncestor)
	}

	d := newMergeDiff(split.Snapshot(), st.head.Snapshot(), other.Snapshot())
	plan := worktree.NewPlan(d.other, d.deleted, d.overwritten, d.created)
	if err = r.wt.Validate(plan); err != nil {
		return nil, err
	}
	// Conflicting files deleted by the current branch are written too
	untrackedConflicts := []string{}
	for _, name := range d.conflicts {
		if !d.current.Has(name) {
			untrackedConflicts = append(untrackedConflicts, name)
		}
	}
	if err = r.wt.Validate(worktree.NewPlan(d.other, nil, nil, untrackedConflicts)); err != nil {
		return nil, err
	}
	if err = r.wt.Apply(plan); err != nil {
		return nil, err
	}

	// The conflicting files replace the version of the current branch.
	// The staging area is cleared by the merge, so the changes are
	// kept here instead
	toRemove := object.NewSnapshot()
	toAdd := object.NewSnapshot()
	for _, name := range d.conflicts {
		var blob *object.Blob
		blob, err = r.writeConflict(d, name)
		if err != nil {
			return nil, err
		}
		if oid, ok := d.current.Get(name); ok {
			toRemove.Set(name, oid)
		}
		toAdd.Set(name, blob.ID())
	}

	snapshot := d.current.Clone()
	for _, name := range append(append([]string{}, d.overwritten...), d.created...) {
		oid, _ := d.other.Get(name)
		snapshot.Set(name, oid)
	}
	for _, name := range d.deleted {
		snapshot.Delete(name)
	}
	for _, name := range toRemove.Names() {
		snapshot.Delete(name)
	}
	for _, e := range toAdd.Entries() {
		snapshot.Set(e.Name, e.BlobID)
	}

	message := fmt.Sprintf("Merged %s into %s.", branchName, st.branch)
	c := object.NewCommit(r.hash, snapshot, message, object.CommitOptions{
		ParentID:       st.head.ID(),
		SecondParentID: other.ID(),
		Time:           r.now(),
	})
	if _, err = r.dotGitlet.WriteObject(c.ToObject()); err != nil {
		return nil, fmt.Errorf("could not write the merge commit: %w", err)
	}
	if err = r.advance(st, c); err != nil {
		return nil, err
	}
	return &MergeResult{
		Conflicts: d.conflicts,
		Commit:    c,
	}, nil
}

// writeConflict writes a file containing both versions of a
// conflicting file, and stores it
func (r *Repository) writeConflict(d *mergeDiff, name string) (*object.Blob, error) {
	current, err := r.fileContent(d.current, name)
	if err != nil {
		return nil, err
	}
	other, err := r.fileContent(d.other, name)
	if err != nil {
		return nil, err
	}
	content := "<<<<<<< HEAD\n" + current + "=======\n" + other + ">>>>>>>\n"
	blob := object.NewBlob(r.hash, name, []byte(content))
	if err = r.wt.WriteFile(name, blob.Bytes()); err != nil {
		return nil, fmt.Errorf("%w: %s", worktree.ErrPartialCheckout, err.Error())
	}
	if _, err = r.dotGitlet.WriteObject(blob.ToObject()); err != nil {
		return nil, fmt.Errorf("could not store %s: %w", name, err)
	}
	return blob, nil
}

// fileContent returns the content of a file of a snapshot, or an
// empty string if the snapshot doesn't have the file
func (r *Repository) fileContent(s *object.Snapshot, name string) (string, error) {
	oid, ok := s.Get(name)
	if !ok {
		return "", nil
	}
	blob, err := r.wt.Blob(oid)
	if err != nil {
		return "", err
	}
	return string(blob.Bytes()), nil
}

// mergeDiff contains the changes to apply to the current branch to
// merge the other branch
type mergeDiff struct {
	split   *object.Snapshot
	current *object.Snapshot
	other   *object.Snapshot

	// overwritten contains the files only changed by the other branch
	overwritten []string
	// created contains the files only added by the other branch
	created []string
	// deleted contains the files only removed by the other branch
	deleted []string
	// conflicts contains the files changed differently by both
	// branches
	conflicts []string
}

func newMergeDiff(split, current, other *object.Snapshot) *mergeDiff {
	d := &mergeDiff{
		split:   split,
		current: current,
		other:   other,
	}

	names := map[string]struct{}{}
	for _, s := range []*object.Snapshot{split, current, other} {
		for _, name := range s.Names() {
			names[name] = struct{}{}
		}
	}
	for _, name := range sortedKeys(names) {
		s, inS := split.Get(name)
		c, inC := current.Get(name)
		m, inM := other.Get(name)

		presence := 0
		if inS {
			presence |= inSplit
		}
		if inC {
			presence |= inCurrent
		}
		if inM {
			presence |= inOther
		}

		switch presence {
		case inSplit | inCurrent | inOther:
			switch {
			case equal(s, c) && !equal(s, m):
				d.overwritten = append(d.overwritten, name)
			case !equal(s, c) && !equal(s, m) && !equal(c, m):
				d.conflicts = append(d.conflicts, name)
			}
		case inOther:
			d.created = append(d.created, name)
		case inSplit | inCurrent:
			if equal(s, c) {
				d.deleted = append(d.deleted, name)
				continue
			}
			d.conflicts = append(d.conflicts, name)
		case inSplit | inOther:
			if !equal(s, m) {
				d.conflicts = append(d.conflicts, name)
			}
		case inCurrent | inOther:
			if !equal(c, m) {
				d.conflicts = append(d.conflicts, name)
			}
		}
	}
	return d
}

func equal(a, b githash.Oid) bool {
	return a.String() == b.String()
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
