package object

import (
	"sort"
	"strings"

	"github.com/Nivl/gitlet-go/ginternals/githash"
)

// SnapshotEntry represents a single file of a Snapshot
type SnapshotEntry struct {
	Name   string
	BlobID githash.Oid
}

// Snapshot represents the flat state of a directory: a mapping between
// a filename and the ID of the blob containing its content.
// A Snapshot is ordered by filename
type Snapshot struct {
	entries map[string]githash.Oid
}

// NewSnapshot returns an empty Snapshot
func NewSnapshot() *Snapshot {
	return &Snapshot{
		entries: map[string]githash.Oid{},
	}
}

// Get returns the blob ID of the given file
func (s *Snapshot) Get(name string) (oid githash.Oid, ok bool) {
	oid, ok = s.entries[name]
	return oid, ok
}

// Has returns whether the snapshot contains the given file
func (s *Snapshot) Has(name string) bool {
	_, ok := s.entries[name]
	return ok
}

// Set adds or replaces a file
func (s *Snapshot) Set(name string, blobID githash.Oid) {
	s.entries[name] = blobID
}

// Delete removes a file. Nothing happens if the file doesn't exist
func (s *Snapshot) Delete(name string) {
	delete(s.entries, name)
}

// Len returns the number of files in the snapshot
func (s *Snapshot) Len() int {
	return len(s.entries)
}

// IsEmpty returns whether the snapshot has no files
func (s *Snapshot) IsEmpty() bool {
	return len(s.entries) == 0
}

// Names returns the sorted list of files in the snapshot
func (s *Snapshot) Names() []string {
	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Entries returns all the files of the snapshot, sorted by name
func (s *Snapshot) Entries() []SnapshotEntry {
	names := s.Names()
	entries := make([]SnapshotEntry, len(names))
	for i, name := range names {
		entries[i] = SnapshotEntry{
			Name:   name,
			BlobID: s.entries[name],
		}
	}
	return entries
}

// Clone returns a copy of the snapshot that can be updated without
// impacting the original
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{
		entries: make(map[string]githash.Oid, len(s.entries)),
	}
	for k, v := range s.entries {
		out.entries[k] = v
	}
	return out
}

// Equal returns whether both snapshots contain the exact same files
func (s *Snapshot) Equal(other *Snapshot) bool {
	if len(s.entries) != len(other.entries) {
		return false
	}
	for k, v := range s.entries {
		o, ok := other.entries[k]
		if !ok || o != v {
			return false
		}
	}
	return true
}

// CanonicalForm returns the string used to compute the ID of the
// commits containing this snapshot:
// "{name1=sha1, name2=sha2}", sorted by name. An empty snapshot is "{}"
func (s *Snapshot) CanonicalForm() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, e := range s.Entries() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(e.Name)
		sb.WriteByte('=')
		sb.WriteString(e.BlobID.String())
	}
	sb.WriteByte('}')
	return sb.String()
}
