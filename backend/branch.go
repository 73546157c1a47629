package backend

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Nivl/gitlet-go/ginternals"
	"github.com/spf13/afero"
)

// ErrHEADInvalid is an error thrown when HEAD doesn't contain a valid
// branch name
var ErrHEADInvalid = errors.New("HEAD is not valid")

// BranchWalkFunc represents a function that will be applied on all
// branches found by WalkBranches()
type BranchWalkFunc = func(b *ginternals.Branch) error

// HEAD returns the name of the active branch
func (b *Backend) HEAD() (string, error) {
	data, err := afero.ReadFile(b.fs, b.config.HEADPath())
	if err != nil {
		return "", fmt.Errorf("could not read HEAD: %w", err)
	}
	name := strings.TrimSpace(string(data))
	if !ginternals.IsBranchNameValid(name) {
		return "", fmt.Errorf(`branch "%s": %w`, name, ErrHEADInvalid)
	}
	return name, nil
}

// SetHEAD sets the active branch.
// The branch doesn't have to exist
func (b *Backend) SetHEAD(branchName string) error {
	if !ginternals.IsBranchNameValid(branchName) {
		return fmt.Errorf(`branch "%s": %w`, branchName, ginternals.ErrBranchNameInvalid)
	}
	if err := afero.WriteFile(b.fs, b.config.HEADPath(), []byte(branchName+"\n"), 0o644); err != nil {
		return fmt.Errorf("could not persist HEAD to disk: %w", err)
	}
	return nil
}

// Branch returns a stored branch from its name
// ErrBranchNotFound is returned if the branch doesn't exists
func (b *Backend) Branch(name string) (*ginternals.Branch, error) {
	data, ok := b.branches.Load(name)
	if !ok {
		return nil, fmt.Errorf(`branch "%s": %w`, name, ginternals.ErrBranchNotFound)
	}
	return ginternals.ParseBranch(b.hash, name, data.([]byte))
}

// HasBranch returns whether a branch exists
func (b *Backend) HasBranch(name string) bool {
	_, ok := b.branches.Load(name)
	return ok
}

// loadBranches loads the branches in memory
func (b *Backend) loadBranches() error {
	root := b.config.BranchesPath()
	err := afero.Walk(b.fs, root, func(path string, info fs.FileInfo, e error) error {
		// if root doesn't exists this will return nil and skip the error
		// this is useful in case where the repo is not initialized yet
		if path == root {
			return nil
		}
		if e != nil {
			return fmt.Errorf("could not walk %s: %w", path, e)
		}
		if info.IsDir() {
			return nil
		}
		data, e := afero.ReadFile(b.fs, path)
		if e != nil {
			return fmt.Errorf("could not read branch at %s: %w", path, e)
		}
		relpath, e := filepath.Rel(root, path)
		if e != nil {
			return e //nolint:wrapcheck // the error message is already pretty descriptive
		}
		// the name of the branch is its UNIX path
		b.branches.Store(filepath.ToSlash(relpath), data)
		return nil
	})
	if err != nil {
		return fmt.Errorf("could not browse the branches directory: %w", err)
	}
	return nil
}

// WriteBranch writes the given branch on disk. If the
// branch already exists it will be overwritten
func (b *Backend) WriteBranch(branch *ginternals.Branch) error {
	return b.writeBranch(branch)
}

// WriteBranchSafe writes the given branch on disk.
// ErrBranchExists is returned if the branch already exists
func (b *Backend) WriteBranchSafe(branch *ginternals.Branch) error {
	if _, ok := b.branches.Load(branch.Name()); ok {
		return fmt.Errorf(`branch "%s": %w`, branch.Name(), ginternals.ErrBranchExists)
	}
	return b.writeBranch(branch)
}

func (b *Backend) writeBranch(branch *ginternals.Branch) error {
	if !ginternals.IsBranchNameValid(branch.Name()) {
		return fmt.Errorf(`branch "%s": %w`, branch.Name(), ginternals.ErrBranchNameInvalid)
	}

	p := b.config.BranchPath(branch.Name())
	// Since we can have `/` in the branch name, we need to create
	// the path on the FS
	if err := b.fs.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("could not persist branch to disk: %w", err)
	}
	data := []byte(branch.Target().String() + "\n")
	if err := afero.WriteFile(b.fs, p, data, 0o644); err != nil {
		return fmt.Errorf("could not persist branch to disk: %w", err)
	}
	b.branches.Store(branch.Name(), data)
	return nil
}

// DeleteBranch removes a branch.
// ErrBranchNotFound is returned if the branch doesn't exists
func (b *Backend) DeleteBranch(name string) error {
	if _, ok := b.branches.Load(name); !ok {
		return fmt.Errorf(`branch "%s": %w`, name, ginternals.ErrBranchNotFound)
	}
	if err := b.fs.Remove(b.config.BranchPath(name)); err != nil {
		return fmt.Errorf("could not remove branch %s: %w", name, err)
	}
	b.branches.Delete(name)
	return nil
}

// WalkBranches runs the provided method on all the branches, sorted
// by name.
// Return WalkStop from f to stop walking without error
func (b *Backend) WalkBranches(f BranchWalkFunc) error {
	names := []string{}
	b.branches.Range(func(key, value interface{}) bool {
		names = append(names, key.(string))
		return true
	})
	sort.Strings(names)

	for _, name := range names {
		branch, err := b.Branch(name)
		if err != nil {
			return fmt.Errorf("could not load branch %s: %w", name, err)
		}
		if err = f(branch); err != nil {
			if err == WalkStop { //nolint:errorlint,goerr113 // it's a fake error so no need to use Error.Is()
				return nil
			}
			return err
		}
	}
	return nil
}
