package backend

import (
	"errors"
	"fmt"
	"os"

	"github.com/Nivl/gitlet-go/ginternals"
	"github.com/spf13/afero"
)

// Index returns the staging area.
// Missing staging files are treated as empty
func (b *Backend) Index() (*ginternals.Index, error) {
	additions, err := b.readOptionalFile(b.config.StageAdditionsPath())
	if err != nil {
		return nil, err
	}
	removals, err := b.readOptionalFile(b.config.StageRemovalsPath())
	if err != nil {
		return nil, err
	}
	idx, err := ginternals.NewIndexFromBytes(b.hash, additions, removals)
	if err != nil {
		return nil, fmt.Errorf("could not parse the staging area: %w", err)
	}
	return idx, nil
}

// WriteIndex persists the staging area
func (b *Backend) WriteIndex(idx *ginternals.Index) error {
	if err := b.fs.MkdirAll(b.config.StagePath(), 0o750); err != nil {
		return fmt.Errorf("could not create the stage directory: %w", err)
	}
	if err := afero.WriteFile(b.fs, b.config.StageAdditionsPath(), idx.EncodeAdditions(), 0o644); err != nil {
		return fmt.Errorf("could not persist the additions: %w", err)
	}
	if err := afero.WriteFile(b.fs, b.config.StageRemovalsPath(), idx.EncodeRemovals(), 0o644); err != nil {
		return fmt.Errorf("could not persist the removals: %w", err)
	}
	return nil
}

func (b *Backend) readOptionalFile(p string) ([]byte, error) {
	data, err := afero.ReadFile(b.fs, p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("could not read %s: %w", p, err)
	}
	return data, nil
}
