package gitlet

import (
	"sort"

	"github.com/Nivl/gitlet-go/ginternals/githash"
)

// ChangeKind represents how an unstaged file differs from its
// tracked version
type ChangeKind int8

// List of the possible unstaged changes
const (
	ChangeModified ChangeKind = iota + 1
	ChangeDeleted
)

// String returns the name of the change
func (k ChangeKind) String() string {
	switch k {
	case ChangeModified:
		return "modified"
	case ChangeDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// FileChange represents a file of the working tree that has changes
// that are not staged
type FileChange struct {
	Name string
	Kind ChangeKind
}

// Status contains the state of the repository and of its working tree
type Status struct {
	// Branches contains all the branches, sorted by name
	Branches []*Branch
	// Staged contains the files staged for addition
	Staged []string
	// Removed contains the files staged for removal
	Removed []string
	// Unstaged contains the files that changed since they were
	// committed or staged
	Unstaged []FileChange
	// Untracked contains the files of the working tree that are
	// neither tracked nor staged for addition
	Untracked []string
}

// Status returns the state of the repository and of its working tree.
// All the lists are sorted by name
func (r *Repository) Status() (*Status, error) {
	st, err := r.loadState()
	if err != nil {
		return nil, err
	}
	branches, err := r.Branches()
	if err != nil {
		return nil, err
	}
	files, err := r.wt.Files()
	if err != nil {
		return nil, err
	}

	// we compute the ID each file of the working tree would have
	onDisk := make(map[string]githash.Oid, len(files))
	for _, name := range files {
		blob, err := r.wt.NewBlobFromFile(name)
		if err != nil {
			return nil, err
		}
		onDisk[name] = blob.ID()
	}

	s := &Status{
		Branches:  branches,
		Staged:    st.index.Names(),
		Removed:   st.index.RemovedNames(),
		Unstaged:  []FileChange{},
		Untracked: []string{},
	}

	added := st.index.Added()
	tracked := st.head.Snapshot()
	changed := map[string]ChangeKind{}
	for _, e := range added.Entries() {
		oid, exists := onDisk[e.Name]
		switch {
		case !exists:
			changed[e.Name] = ChangeDeleted
		case !equal(oid, e.BlobID):
			changed[e.Name] = ChangeModified
		}
	}
	for _, e := range tracked.Entries() {
		if added.Has(e.Name) || st.index.IsStagedForRemoval(e.Name) {
			continue
		}
		oid, exists := onDisk[e.Name]
		switch {
		case !exists:
			changed[e.Name] = ChangeDeleted
		case !equal(oid, e.BlobID):
			changed[e.Name] = ChangeModified
		}
	}
	for _, name := range sortedChangeNames(changed) {
		s.Unstaged = append(s.Unstaged, FileChange{
			Name: name,
			Kind: changed[name],
		})
	}

	for _, name := range files {
		if added.Has(name) {
			continue
		}
		// A file staged for removal is no longer tracked
		if tracked.Has(name) && !st.index.IsStagedForRemoval(name) {
			continue
		}
		s.Untracked = append(s.Untracked, name)
	}
	return s, nil
}

func sortedChangeNames(m map[string]ChangeKind) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
