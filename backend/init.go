package backend

import (
	"errors"
	"fmt"
	"os"

	"github.com/Nivl/gitlet-go/ginternals"
	"github.com/Nivl/gitlet-go/ginternals/config"
	"github.com/spf13/afero"
)

// ErrRepositoryExists is an error thrown when trying to initialize a
// directory that already contains a repository
var ErrRepositoryExists = errors.New("repository already exists")

// Init initializes a repository with the given branch as active
// branch. The branch itself is not created.
// This method cannot be called concurrently with other methods
func (b *Backend) Init(branchName string) error {
	if !ginternals.IsBranchNameValid(branchName) {
		return fmt.Errorf(`branch "%s": %w`, branchName, ginternals.ErrBranchNameInvalid)
	}

	exists, err := afero.Exists(b.fs, b.config.HEADPath())
	if err != nil {
		return fmt.Errorf("could not check for an existing repository: %w", err)
	}
	if exists {
		return ErrRepositoryExists
	}

	// Create the directories
	dirs := []string{
		b.Path(),
		b.config.ObjectDirPath,
		b.config.BranchesPath(),
		b.config.StagePath(),
	}
	for _, d := range dirs {
		if err := b.fs.MkdirAll(d, 0o750); err != nil {
			return fmt.Errorf("could not create directory %s: %w", d, err)
		}
	}

	// The local config may have been set somewhere else using
	// $GITLET_CONFIG, in which case we leave it alone
	_, err = b.fs.Stat(b.config.LocalConfig)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err = config.WriteDefaultLocalConfig(b.config); err != nil {
			return fmt.Errorf("could not set the default config: %w", err)
		}
	case err != nil:
		return fmt.Errorf("could not check the config file: %w", err)
	}
	if err = b.config.Reload(); err != nil {
		return fmt.Errorf("could not reload the config: %w", err)
	}

	if err = b.WriteIndex(ginternals.NewIndex()); err != nil {
		return fmt.Errorf("could not create the staging area: %w", err)
	}
	if err = b.SetHEAD(branchName); err != nil {
		return fmt.Errorf("could not write HEAD: %w", err)
	}
	return nil
}
