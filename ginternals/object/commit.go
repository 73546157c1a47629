package object

import (
	"bytes"
	"time"

	"github.com/Nivl/gitlet-go/ginternals/githash"
)

// TimestampLayout is the layout used to format the date of a commit
const TimestampLayout = "Mon Jan 2 15:04:05 2006 -0700"

// InitialCommitMessage is the message of the root commit of every
// repository
const InitialCommitMessage = "initial commit"

// CommitOptions represents all the optional data available to create
// a commit
type CommitOptions struct {
	// ParentID is the ID of the first parent. A zero value means the
	// commit has no parent
	ParentID githash.Oid
	// SecondParentID is the ID of the branch merged in. Only set for
	// merge commits
	SecondParentID githash.Oid
	// Time is the creation time of the commit. time.Now() is used
	// if not provided
	Time time.Time
}

// Commit represents a commit object
type Commit struct {
	id githash.Oid

	parentID       githash.Oid
	secondParentID githash.Oid
	timestamp      string
	message        string
	snapshot       *Snapshot
}

// NewCommit creates a new Commit object
// The snapshot is copied, and any provided Oids won't be checked
func NewCommit(h githash.Hash, snapshot *Snapshot, message string, opts CommitOptions) *Commit {
	t := opts.Time
	if t.IsZero() {
		t = time.Now()
	}
	parentID := opts.ParentID
	if parentID == nil {
		parentID = h.NullOid()
	}
	secondParentID := opts.SecondParentID
	if secondParentID == nil {
		secondParentID = h.NullOid()
	}
	return newCommit(h, parentID, secondParentID, t.Format(TimestampLayout), snapshot.Clone(), message)
}

// NewRootCommit returns the commit every repository starts with.
// Its ID is the same on every machine
func NewRootCommit(h githash.Hash) *Commit {
	return NewCommit(h, NewSnapshot(), InitialCommitMessage, CommitOptions{
		Time: time.Unix(0, 0).UTC(),
	})
}

func newCommit(h githash.Hash, parentID, secondParentID githash.Oid, timestamp string, snapshot *Snapshot, message string) *Commit {
	c := &Commit{
		parentID:       parentID,
		secondParentID: secondParentID,
		timestamp:      timestamp,
		message:        message,
		snapshot:       snapshot,
	}
	c.id = h.Sum(
		[]byte(oidString(parentID)),
		[]byte(oidString(secondParentID)),
		[]byte(timestamp),
		[]byte(message),
		[]byte(snapshot.CanonicalForm()),
	)
	return c
}

// oidString returns the hex representation of an oid, or an empty
// string if the oid is not set
func oidString(oid githash.Oid) string {
	if oid == nil || oid.IsZero() {
		return ""
	}
	return oid.String()
}

// ID returns the SHA of the commit object
func (c *Commit) ID() githash.Oid {
	return c.id
}

// Message returns the commit's message
func (c *Commit) Message() string {
	return c.message
}

// Timestamp returns the formatted creation date of the commit
func (c *Commit) Timestamp() string {
	return c.timestamp
}

// ParentID returns the ID of the first parent. The value is a null
// Oid for the root commit
func (c *Commit) ParentID() githash.Oid {
	return c.parentID
}

// HasParent returns whether the commit has a first parent
func (c *Commit) HasParent() bool {
	return !c.parentID.IsZero()
}

// SecondParentID returns the ID of the commit that got merged in.
// The value is a null Oid for regular commits
func (c *Commit) SecondParentID() githash.Oid {
	return c.secondParentID
}

// HasSecondParent returns whether the commit is a merge commit
func (c *Commit) HasSecondParent() bool {
	return !c.secondParentID.IsZero()
}

// ParentIDs returns the list of all the parents of the commit, first
// parent first
func (c *Commit) ParentIDs() []githash.Oid {
	out := make([]githash.Oid, 0, 2)
	if c.HasParent() {
		out = append(out, c.parentID)
	}
	if c.HasSecondParent() {
		out = append(out, c.secondParentID)
	}
	return out
}

// Snapshot returns a copy of the files tracked by the commit
func (c *Commit) Snapshot() *Snapshot {
	return c.snapshot.Clone()
}

// BlobID returns the ID of the blob tracked for the given filename
func (c *Commit) BlobID(name string) (oid githash.Oid, ok bool) {
	return c.snapshot.Get(name)
}

// Tracks returns whether the given file is tracked by the commit
func (c *Commit) Tracks(name string) bool {
	return c.snapshot.Has(name)
}

// ToObject returns the Object representing the commit
func (c *Commit) ToObject() *Object {
	// Quick reminder that the Write* methods on bytes.Buffer never fails,
	// the error returned is always nil
	buf := new(bytes.Buffer)
	if c.HasParent() {
		buf.WriteString("parent ")
		buf.WriteString(c.parentID.String())
		buf.WriteByte('\n')
	}
	if c.HasSecondParent() {
		buf.WriteString("merge ")
		buf.WriteString(c.secondParentID.String())
		buf.WriteByte('\n')
	}

	buf.WriteString("date ")
	buf.WriteString(c.timestamp)
	buf.WriteByte('\n')

	for _, e := range c.snapshot.Entries() {
		buf.WriteString("file ")
		buf.WriteString(e.BlobID.String())
		buf.WriteByte(' ')
		buf.WriteString(e.Name)
		buf.WriteByte('\n')
	}

	buf.WriteByte('\n')
	buf.WriteString(c.message)
	return New(c.id, TypeCommit, buf.Bytes())
}
