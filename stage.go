package gitlet

import (
	"errors"
	"fmt"

	"github.com/Nivl/gitlet-go/ginternals"
)

// List of errors returned when working with the staging area
var (
	ErrFileNotFound    = errors.New("file does not exist")
	ErrNothingToRemove = errors.New("no reason to remove the file")
	ErrInvalidFilename = ginternals.ErrInvalidFilename
)

func validateFilename(name string) error {
	if !ginternals.IsFilenameValid(name) {
		return fmt.Errorf(`file "%s": %w`, name, ErrInvalidFilename)
	}
	return nil
}

// Add stages the current content of a file of the working tree.
// Nothing is staged if the file is unchanged since the last commit.
// If the file was staged for removal, the removal is cancelled
func (r *Repository) Add(name string) error {
	if err := validateFilename(name); err != nil {
		return err
	}
	exists, err := r.wt.Exists(name)
	if err != nil {
		return fmt.Errorf("could not check %s: %w", name, err)
	}
	if !exists {
		return fmt.Errorf("file %s: %w", name, ErrFileNotFound)
	}
	st, err := r.loadState()
	if err != nil {
		return err
	}

	if st.index.CancelRemoval(name) {
		return r.writeIndex(st)
	}

	blob, err := r.wt.NewBlobFromFile(name)
	if err != nil {
		return err
	}
	if current, ok := st.head.BlobID(name); ok && equal(current, blob.ID()) {
		return nil
	}
	if _, err = r.dotGitlet.WriteObject(blob.ToObject()); err != nil {
		return fmt.Errorf("could not store %s: %w", name, err)
	}
	st.index.StageAdd(blob)
	return r.writeIndex(st)
}

// Rm unstages a file staged for addition. If the file isn't staged
// but tracked, it gets removed from the working tree and staged for
// removal
func (r *Repository) Rm(name string) error {
	if err := validateFilename(name); err != nil {
		return err
	}
	st, err := r.loadState()
	if err != nil {
		return err
	}

	if st.index.Unstage(name) {
		return r.writeIndex(st)
	}
	blobID, tracked := st.head.BlobID(name)
	if !tracked {
		return fmt.Errorf("file %s: %w", name, ErrNothingToRemove)
	}
	if err = r.wt.Remove(name); err != nil {
		return err
	}
	st.index.StageRemove(name, blobID)
	return r.writeIndex(st)
}

func (r *Repository) writeIndex(st *state) error {
	if err := r.dotGitlet.WriteIndex(st.index); err != nil {
		return fmt.Errorf("could not persist the staging area: %w", err)
	}
	return nil
}
