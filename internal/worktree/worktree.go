// Package worktree contains methods to reconcile the working tree of
// a repository with a snapshot
package worktree

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/Nivl/gitlet-go/ginternals"
	"github.com/Nivl/gitlet-go/ginternals/githash"
	"github.com/Nivl/gitlet-go/ginternals/object"
	"github.com/Nivl/gitlet-go/internal/gitpath"
	"github.com/spf13/afero"
)

var (
	// ErrUntrackedFileConflict is returned when a file that needs to
	// be written already exists on disk without being tracked
	ErrUntrackedFileConflict = errors.New("untracked file in the way")
	// ErrPartialCheckout is returned when the working tree could only
	// be partially updated
	ErrPartialCheckout = errors.New("the working tree was partially updated")
)

// ObjectReader represents a store from which the objects can be loaded
type ObjectReader interface {
	Object(oid githash.Oid) (*object.Object, error)
}

// Worktree represents the directory tracked by a repository
type Worktree struct {
	fs      afero.Fs
	root    string
	hash    githash.Hash
	objects ObjectReader
}

// New returns a Worktree rooted at the given path
func New(fs afero.Fs, root string, h githash.Hash, objects ObjectReader) *Worktree {
	return &Worktree{
		fs:      fs,
		root:    root,
		hash:    h,
		objects: objects,
	}
}

// Path returns the absolute path of the working tree
func (w *Worktree) Path() string {
	return w.root
}

func (w *Worktree) path(name string) string {
	return filepath.Join(w.root, name)
}

// Exists returns whether a file exists in the working tree
func (w *Worktree) Exists(name string) (bool, error) {
	info, err := w.fs.Stat(w.path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("could not stat %s: %w", name, err)
	}
	return !info.IsDir(), nil
}

// ReadFile returns the content of a file of the working tree
func (w *Worktree) ReadFile(name string) ([]byte, error) {
	data, err := afero.ReadFile(w.fs, w.path(name))
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", name, err)
	}
	return data, nil
}

// WriteFile writes a file in the working tree, creating or truncating
// it
func (w *Worktree) WriteFile(name string, data []byte) error {
	if err := afero.WriteFile(w.fs, w.path(name), data, 0o644); err != nil {
		return fmt.Errorf("could not write %s: %w", name, err)
	}
	return nil
}

// Remove removes a file from the working tree.
// Nothing happens if the file doesn't exist
func (w *Worktree) Remove(name string) error {
	err := w.fs.Remove(w.path(name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("could not remove %s: %w", name, err)
	}
	return nil
}

// Files returns the sorted names of all the regular files at the root
// of the working tree
func (w *Worktree) Files() ([]string, error) {
	entries, err := afero.ReadDir(w.fs, w.root)
	if err != nil {
		return nil, fmt.Errorf("could not list the working tree: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || e.Name() == gitpath.DotGitletPath {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Blob returns the blob that has the given oid
func (w *Worktree) Blob(oid githash.Oid) (*object.Blob, error) {
	o, err := w.objects.Object(oid)
	if err != nil {
		return nil, fmt.Errorf("could not load blob %s: %w", oid.String(), err)
	}
	return o.AsBlob(w.hash)
}

// NewBlobFromFile returns a blob containing the current content of
// the given file
func (w *Worktree) NewBlobFromFile(name string) (*object.Blob, error) {
	data, err := w.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return object.NewBlob(w.hash, name, data), nil
}

// Restore writes the content s has for the given file in the working
// tree, whether the file is tracked or not
func (w *Worktree) Restore(s *object.Snapshot, name string) error {
	oid, ok := s.Get(name)
	if !ok {
		return fmt.Errorf("file %s: %w", name, ginternals.ErrObjectNotFound)
	}
	blob, err := w.Blob(oid)
	if err != nil {
		return err
	}
	return w.WriteFile(name, blob.Bytes())
}

// Plan represents the changes needed to move the working tree from
// one snapshot to another
type Plan struct {
	// Deleted contains the files to remove from the working tree
	Deleted []string
	// Overwritten contains the files already tracked that get their
	// content replaced
	Overwritten []string
	// Created contains the files that are not tracked yet.
	// None of them should exist on disk
	Created []string

	// source contains the content of the files of Overwritten and
	// Created
	source *object.Snapshot
}

// NewPlan returns a Plan that takes the content of the files to write
// from source
func NewPlan(source *object.Snapshot, deleted, overwritten, created []string) *Plan {
	return &Plan{
		Deleted:     deleted,
		Overwritten: overwritten,
		Created:     created,
		source:      source,
	}
}

// PlanSwitch returns the Plan needed to go from the snapshot from to
// the snapshot to.
// Files tracked by both snapshots are always overwritten, whether
// they changed or not
func PlanSwitch(from, to *object.Snapshot) *Plan {
	p := &Plan{source: to}
	for _, name := range from.Names() {
		if to.Has(name) {
			p.Overwritten = append(p.Overwritten, name)
			continue
		}
		p.Deleted = append(p.Deleted, name)
	}
	for _, name := range to.Names() {
		if !from.Has(name) {
			p.Created = append(p.Created, name)
		}
	}
	return p
}

// Validate makes sure the plan can be applied without overwriting
// untracked files. The working tree is never modified
func (w *Worktree) Validate(p *Plan) error {
	for _, name := range p.Created {
		// anything in the way counts, directories included
		exists, err := afero.Exists(w.fs, w.path(name))
		if err != nil {
			return fmt.Errorf("could not stat %s: %w", name, err)
		}
		if exists {
			return fmt.Errorf("file %s: %w", name, ErrUntrackedFileConflict)
		}
	}
	return nil
}

// Apply deletes, overwrites, then creates the files of the plan.
// Apply doesn't validate the plan, see Switch.
// ErrPartialCheckout is returned if the working tree could not be
// fully updated
func (w *Worktree) Apply(p *Plan) error {
	for _, name := range p.Deleted {
		if err := w.Remove(name); err != nil {
			return fmt.Errorf("%w: %s", ErrPartialCheckout, err.Error())
		}
	}
	toWrite := make([]string, 0, len(p.Overwritten)+len(p.Created))
	toWrite = append(toWrite, p.Overwritten...)
	toWrite = append(toWrite, p.Created...)
	for _, name := range toWrite {
		if err := w.Restore(p.source, name); err != nil {
			return fmt.Errorf("%w: %s", ErrPartialCheckout, err.Error())
		}
	}
	return nil
}

// Switch validates then applies the changes needed to move the
// working tree from one snapshot to another
func (w *Worktree) Switch(from, to *object.Snapshot) error {
	p := PlanSwitch(from, to)
	if err := w.Validate(p); err != nil {
		return err
	}
	return w.Apply(p)
}
