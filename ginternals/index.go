package ginternals

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/Nivl/gitlet-go/ginternals/githash"
	"github.com/Nivl/gitlet-go/ginternals/object"
)

// ErrIndexInvalid is an error thrown when a staging file cannot be
// parsed
var ErrIndexInvalid = errors.New("invalid index file")

// Index represents the staging area: the changes that will be part of
// the next commit.
//
// An Index contains 2 mappings (filename -> blob ID):
//
//   - the files staged for addition
//   - the files staged for removal
//
// A filename is never present in both mappings at the same time.
//
// On disk each mapping is stored in its own file, with one entry per
// line, sorted by filename:
//
//	{blob sha} {filename}\n
type Index struct {
	toAdd    *object.Snapshot
	toRemove *object.Snapshot
}

// NewIndex returns an empty Index
func NewIndex() *Index {
	return &Index{
		toAdd:    object.NewSnapshot(),
		toRemove: object.NewSnapshot(),
	}
}

// StageAdd stages a blob for addition.
// If the file was staged for removal, the removal is cancelled and
// nothing gets staged for addition
func (idx *Index) StageAdd(b *object.Blob) {
	if idx.toRemove.Has(b.Filename()) {
		idx.toRemove.Delete(b.Filename())
		return
	}
	idx.toAdd.Set(b.Filename(), b.ID())
}

// StageRemove stages a file for removal. Any addition of the same file
// is dropped
func (idx *Index) StageRemove(name string, blobID githash.Oid) {
	idx.toAdd.Delete(name)
	idx.toRemove.Set(name, blobID)
}

// Unstage removes a file from the files staged for addition.
// Returns false if the file wasn't staged for addition
func (idx *Index) Unstage(name string) bool {
	if !idx.toAdd.Has(name) {
		return false
	}
	idx.toAdd.Delete(name)
	return true
}

// CancelRemoval removes a file from the files staged for removal.
// Returns false if the file wasn't staged for removal
func (idx *Index) CancelRemoval(name string) bool {
	if !idx.toRemove.Has(name) {
		return false
	}
	idx.toRemove.Delete(name)
	return true
}

// Clear removes all the staged changes
func (idx *Index) Clear() {
	idx.toAdd = object.NewSnapshot()
	idx.toRemove = object.NewSnapshot()
}

// IsEmpty returns whether there are no staged changes
func (idx *Index) IsEmpty() bool {
	return idx.toAdd.IsEmpty() && idx.toRemove.IsEmpty()
}

// IsStagedForAddition returns whether the file is staged for addition
func (idx *Index) IsStagedForAddition(name string) bool {
	return idx.toAdd.Has(name)
}

// IsStagedForRemoval returns whether the file is staged for removal
func (idx *Index) IsStagedForRemoval(name string) bool {
	return idx.toRemove.Has(name)
}

// Names returns the sorted names of all the files staged for addition
func (idx *Index) Names() []string {
	return idx.toAdd.Names()
}

// RemovedNames returns the sorted names of all the files staged for
// removal
func (idx *Index) RemovedNames() []string {
	return idx.toRemove.Names()
}

// Added returns a copy of the files staged for addition
func (idx *Index) Added() *object.Snapshot {
	return idx.toAdd.Clone()
}

// Removed returns a copy of the files staged for removal
func (idx *Index) Removed() *object.Snapshot {
	return idx.toRemove.Clone()
}

// Apply returns a copy of the given snapshot with all the staged
// additions applied, followed by all the staged removals
func (idx *Index) Apply(s *object.Snapshot) *object.Snapshot {
	out := s.Clone()
	for _, e := range idx.toAdd.Entries() {
		out.Set(e.Name, e.BlobID)
	}
	for _, name := range idx.toRemove.Names() {
		out.Delete(name)
	}
	return out
}

// EncodeAdditions returns the on-disk representation of the files
// staged for addition
func (idx *Index) EncodeAdditions() []byte {
	return encodeStage(idx.toAdd)
}

// EncodeRemovals returns the on-disk representation of the files
// staged for removal
func (idx *Index) EncodeRemovals() []byte {
	return encodeStage(idx.toRemove)
}

// NewIndexFromBytes returns an Index from the content of the
// staging files. A nil or empty content means no staged changes
func NewIndexFromBytes(h githash.Hash, additions, removals []byte) (*Index, error) {
	toAdd, err := decodeStage(h, additions)
	if err != nil {
		return nil, fmt.Errorf("could not parse the additions: %w", err)
	}
	toRemove, err := decodeStage(h, removals)
	if err != nil {
		return nil, fmt.Errorf("could not parse the removals: %w", err)
	}
	return &Index{
		toAdd:    toAdd,
		toRemove: toRemove,
	}, nil
}

func encodeStage(s *object.Snapshot) []byte {
	// Quick reminder that the Write* methods on bytes.Buffer never fails,
	// the error returned is always nil
	buf := new(bytes.Buffer)
	for _, e := range s.Entries() {
		buf.WriteString(e.BlobID.String())
		buf.WriteByte(' ')
		buf.WriteString(e.Name)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func decodeStage(h githash.Hash, data []byte) (*object.Snapshot, error) {
	s := object.NewSnapshot()
	// Lines are split on \n only, any other byte belongs to the filename
	for i, line := range bytes.Split(data, []byte{'\n'}) {
		if len(line) == 0 {
			continue
		}
		parts := bytes.SplitN(line, []byte{' '}, 2)
		if len(parts) != 2 || len(parts[1]) == 0 {
			return nil, fmt.Errorf("unexpected data line %d: %w", i+1, ErrIndexInvalid)
		}
		oid, err := h.ConvertFromString(string(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("invalid oid line %d: %w", i+1, ErrIndexInvalid)
		}
		s.Set(string(parts[1]), oid)
	}
	return s, nil
}
