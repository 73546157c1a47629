package ginternals

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Nivl/gitlet-go/ginternals/githash"
	"github.com/Nivl/gitlet-go/internal/gitpath"
)

// Master correspond to the default branch name if none was
// specified
const Master = "master"

var (
	// ErrBranchNotFound is an error thrown when trying to act on a
	// branch that doesn't exists
	ErrBranchNotFound = errors.New("branch not found")

	// ErrBranchExists is an error thrown when trying to create a
	// branch that already exists
	ErrBranchExists = errors.New("branch already exists")

	// ErrBranchNameInvalid is an error thrown when the name of a branch
	// is not valid
	ErrBranchNameInvalid = errors.New("branch name is not valid")

	// ErrBranchInvalid is an error thrown when the content of a branch
	// file cannot be parsed
	ErrBranchInvalid = errors.New("branch is not valid")
)

// Branch represents a named pointer to a commit
type Branch struct {
	name   string
	target githash.Oid
}

// NewBranch returns a new Branch targeting the given commit
func NewBranch(name string, target githash.Oid) *Branch {
	return &Branch{
		name:   name,
		target: target,
	}
}

// Name returns the name of the branch. ex: master
func (b *Branch) Name() string {
	return b.name
}

// Target returns the ID of the commit targeted by the branch
func (b *Branch) Target() githash.Oid {
	return b.target
}

// ParseBranch parses the content of a branch file
func ParseBranch(h githash.Hash, name string, data []byte) (*Branch, error) {
	oid, err := h.ConvertFromString(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, fmt.Errorf(`branch "%s": %w`, name, ErrBranchInvalid)
	}
	return NewBranch(name, oid), nil
}

// IsBranchNameValid returns whether the name of a branch is valid or not
// https://stackoverflow.com/a/12093994/382879
func IsBranchNameValid(name string) bool {
	// the name cannot:
	// - be empty
	// - start by a "/"
	// - end by a "/"
	// - end by .
	if name == "" || name[0] == '/' || name[len(name)-1] == '/' || name[len(name)-1] == '.' {
		return false
	}

	// the name cannot contain:
	// - *
	// - ?
	// - !
	// - ^
	// - :
	// - @{
	// - \
	// - ..
	// - [
	// - a space
	// - an ASCII char below 32 or a DEL (ASCII 127)
	for i, c := range name {
		if c < 32 || c == 127 {
			return false
		}
		if c == '*' || c == '?' || c == '!' || c == '^' {
			return false
		}
		if c == ' ' || c == '[' || c == '\\' || c == ':' {
			return false
		}
		if i < len(name)-1 {
			substr := name[i : i+2]
			if substr == "@{" || substr == ".." {
				return false
			}
		}
	}

	segments := strings.Split(name, "/")
	for _, s := range segments {
		// a segment cannot:
		// - be empty
		// - start by a dot
		// - end by a dot
		// - end by ".lock"
		if s == "" || s[0] == '.' || s[len(s)-1] == '.' || strings.HasSuffix(s, ".lock") {
			return false
		}
	}

	return true
}

// IsFilenameValid returns whether a file can be tracked.
// Snapshots are flat, so only plain names are accepted
func IsFilenameValid(name string) bool {
	if name == "" || name == "." || name == ".." || name == gitpath.DotGitletPath {
		return false
	}
	return !strings.ContainsAny(name, "/\\\x00\r\n")
}
