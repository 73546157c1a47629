// Package object contains methods and objects to work with the objects
// stored in the object database
package object

import (
	"bytes"
	"compress/zlib"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/Nivl/gitlet-go/ginternals/githash"
	"github.com/Nivl/gitlet-go/internal/errutil"
	"github.com/Nivl/gitlet-go/internal/readutil"
)

var (
	// ErrObjectUnknown represents an error thrown when encoutering an
	// unknown object
	ErrObjectUnknown = errors.New("invalid object type")

	// ErrObjectInvalid represents an error thrown when an object contains
	// unexpected data, or when its content doesn't match its ID
	ErrObjectInvalid = errors.New("invalid object")

	// ErrBlobInvalid represents an error thrown when parsing an invalid
	// blob object
	ErrBlobInvalid = errors.New("invalid blob")

	// ErrCommitInvalid represents an error thrown when parsing an invalid
	// commit object
	ErrCommitInvalid = errors.New("invalid commit")
)

// Type represents the type of an object
type Type int8

// List of all the possible object types
// The values are the same as git's
const (
	TypeCommit Type = 1
	TypeBlob   Type = 3
)

func (t Type) String() string {
	switch t {
	case TypeCommit:
		return "commit"
	case TypeBlob:
		return "blob"
	default:
		panic(fmt.Sprintf("unknown object type %d", t))
	}
}

// IsValid check id the object type is an existing type
func (t Type) IsValid() bool {
	switch t {
	case TypeCommit, TypeBlob:
		return true
	default:
		return false
	}
}

// NewTypeFromString returns an Type from its string
// representation
func NewTypeFromString(t string) (Type, error) {
	switch t {
	case "commit":
		return TypeCommit, nil
	case "blob":
		return TypeBlob, nil
	default:
		return 0, ErrObjectUnknown
	}
}

// Object represents a stored object, which is either a blob or a
// commit.
// Unlike git, the ID of an object is not the sum of its stored
// representation, but the sum of its logical fields (see NewBlob and
// NewCommit). The ID is therefore always provided by the typed object
// the Object has been created from.
type Object struct {
	id      githash.Oid
	typ     Type
	content []byte
}

// New creates a new object of the given type
func New(id githash.Oid, typ Type, content []byte) *Object {
	return &Object{
		id:      id,
		typ:     typ,
		content: content,
	}
}

// ID returns the ID of the object.
func (o *Object) ID() githash.Oid {
	return o.id
}

// Size returns the size of the object
func (o *Object) Size() int {
	return len(o.content)
}

// Type returns the Type for this object
func (o *Object) Type() Type {
	return o.typ
}

// Bytes returns the object's contents
func (o *Object) Bytes() []byte {
	return o.content
}

// Compress return the object zlib compressed.
// The format of the compressed data is:
// [type] [size][NULL][content]
// The type in ascii, followed by a space, followed by the size in ascii,
// followed by a null character (0), followed by the object data
func (o *Object) Compress() (data []byte, err error) {
	// Quick reminder that the Write* methods on bytes.Buffer never fails,
	// the error returned is always nil
	w := new(bytes.Buffer)
	w.WriteString(o.Type().String())
	w.WriteRune(' ')
	w.WriteString(strconv.Itoa(o.Size()))
	w.WriteByte(0)
	w.Write(o.Bytes())

	compressedContent := new(bytes.Buffer)
	zw := zlib.NewWriter(compressedContent)
	if _, err = zw.Write(w.Bytes()); err != nil {
		zw.Close() //nolint:errcheck // we already have an error to return
		return nil, fmt.Errorf("could not zlib the object: %w", err)
	}
	// Close flushes the data, so it has to happen before we read
	// the buffer
	if err = zw.Close(); err != nil {
		return nil, fmt.Errorf("could not close the compressor: %w", err)
	}
	return compressedContent.Bytes(), nil
}

// NewFromCompressed parses data produced by Compress() and returns
// the object it contains.
// The ID cannot be retrieved from the data, it's up to the caller
// to provide it. Use AsBlob() or AsCommit() to make sure the ID
// matches the content.
func NewFromCompressed(id githash.Oid, compressed []byte) (o *Object, err error) {
	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("could not decompress object %s: %w", id.String(), err)
	}
	defer errutil.Close(zr, &err)

	buff, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("could not read object %s: %w", id.String(), err)
	}

	// the type of the object starts at offset 0 and ends a the first
	// space character that we'll need to trim
	typ := readutil.ReadTo(buff, ' ')
	if typ == nil {
		return nil, fmt.Errorf("could not find the type of object %s: %w", id.String(), ErrObjectInvalid)
	}
	oType, err := NewTypeFromString(string(typ))
	if err != nil {
		return nil, fmt.Errorf("unsupported type %s for object %s: %w", string(typ), id.String(), err)
	}
	offset := len(typ) + 1 // +1 for the space

	// The size of the object starts after the space and ends at a NULL
	// char that we'll need to trim
	size := readutil.ReadTo(buff[offset:], 0)
	if size == nil {
		return nil, fmt.Errorf("could not find the size of object %s: %w", id.String(), ErrObjectInvalid)
	}
	oSize, err := strconv.Atoi(string(size))
	if err != nil {
		return nil, fmt.Errorf("invalid size %s for object %s: %w", size, id.String(), ErrObjectInvalid)
	}
	offset += len(size) + 1 // +1 for the NULL char
	content := buff[offset:]

	if len(content) != oSize {
		return nil, fmt.Errorf("object %s marked as size %d, but has %d: %w", id.String(), oSize, len(content), ErrObjectInvalid)
	}
	return New(id, oType, content), nil
}

// AsBlob parses the object as Blob
//
// A blob has the following format:
//
// {filename}\0{content}
func (o *Object) AsBlob(h githash.Hash) (*Blob, error) {
	if o.typ != TypeBlob {
		return nil, fmt.Errorf("type %s is not a blob: %w", o.typ, ErrObjectInvalid)
	}
	name := readutil.ReadTo(o.content, 0)
	if len(name) == 0 {
		return nil, fmt.Errorf("could not find the filename of blob %s: %w", o.id.String(), ErrBlobInvalid)
	}
	b := NewBlob(h, string(name), o.content[len(name)+1:])
	if b.ID() != o.id {
		return nil, fmt.Errorf("blob content sums to %s instead of %s: %w", b.ID().String(), o.id.String(), ErrObjectInvalid)
	}
	return b, nil
}

// AsCommit parses the object as Commit
//
// A commit has following format:
//
// parent {sha}
// merge {sha}
// date {timestamp}
// file {sha} {filename}
// {a blank line}
// {commit message}
//
// Note:
// - parent is missing for the initial commit
// - merge is only set for merge commits
// - There is one file line per entry of the snapshot
func (o *Object) AsCommit(h githash.Hash) (*Commit, error) {
	if o.typ != TypeCommit {
		return nil, fmt.Errorf("type %s is not a commit: %w", o.typ, ErrObjectInvalid)
	}

	parentID := h.NullOid()
	secondParentID := h.NullOid()
	timestamp := ""
	snapshot := NewSnapshot()
	message := ""

	data := o.content
	for i := 1; ; i++ {
		if data == nil {
			return nil, fmt.Errorf("could not find the message separator: %w", ErrCommitInvalid)
		}
		var line []byte
		line, data = readutil.ReadLine(data)

		// if we got an empty line, it means everything from now to the end
		// will be the commit message
		if len(line) == 0 {
			message = string(data)
			break
		}

		// Otherwise we're getting a key/value pair, separated by a space
		kv := bytes.SplitN(line, []byte{' '}, 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("line %d is not a key/value pair: %w", i, ErrCommitInvalid)
		}
		var err error
		switch string(kv[0]) {
		case "parent":
			parentID, err = h.ConvertFromString(string(kv[1]))
			if err != nil {
				return nil, fmt.Errorf("could not parse parent id %#v: %w", kv[1], err)
			}
		case "merge":
			secondParentID, err = h.ConvertFromString(string(kv[1]))
			if err != nil {
				return nil, fmt.Errorf("could not parse merge id %#v: %w", kv[1], err)
			}
		case "date":
			timestamp = string(kv[1])
		case "file":
			entry := bytes.SplitN(kv[1], []byte{' '}, 2)
			if len(entry) != 2 || len(entry[1]) == 0 {
				return nil, fmt.Errorf("line %d is not a valid file entry: %w", i, ErrCommitInvalid)
			}
			blobID, err := h.ConvertFromString(string(entry[0]))
			if err != nil {
				return nil, fmt.Errorf("could not parse blob id %#v: %w", entry[0], err)
			}
			snapshot.Set(string(entry[1]), blobID)
		default:
			return nil, fmt.Errorf("unexpected key %s at line %d: %w", kv[0], i, ErrCommitInvalid)
		}
	}

	if timestamp == "" {
		return nil, fmt.Errorf("commit has no date: %w", ErrCommitInvalid)
	}

	c := newCommit(h, parentID, secondParentID, timestamp, snapshot, message)
	if c.ID() != o.id {
		return nil, fmt.Errorf("commit content sums to %s instead of %s: %w", c.ID().String(), o.id.String(), ErrObjectInvalid)
	}
	return c, nil
}
