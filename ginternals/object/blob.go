package object

import (
	"github.com/Nivl/gitlet-go/ginternals/githash"
)

// Blob represents a blob object: the content of a file at a given time.
// The filename is part of the identity of a blob, meaning that two files
// with the same content but a different name are two different blobs
type Blob struct {
	id       githash.Oid
	filename string
	content  []byte
}

// NewBlob returns a new Blob object. The ID of the blob is the sum of
// the filename followed by the content
func NewBlob(h githash.Hash, filename string, content []byte) *Blob {
	return &Blob{
		id:       h.Sum([]byte(filename), content),
		filename: filename,
		content:  content,
	}
}

// ID returns the blob's ID
func (b *Blob) ID() githash.Oid {
	return b.id
}

// Filename returns the name of the file the blob has been created from
func (b *Blob) Filename() string {
	return b.filename
}

// Bytes returns the blob's contents
func (b *Blob) Bytes() []byte {
	return b.content
}

// BytesCopy returns a copy of blob's contents
func (b *Blob) BytesCopy() []byte {
	out := make([]byte, len(b.content))
	copy(out, b.content)
	return out
}

// Size returns the size of the blob
func (b *Blob) Size() int {
	return len(b.content)
}

// ToObject returns an Object representing the Blob
func (b *Blob) ToObject() *Object {
	data := make([]byte, 0, len(b.filename)+1+len(b.content))
	data = append(data, b.filename...)
	data = append(data, 0)
	data = append(data, b.content...)
	return New(b.id, TypeBlob, data)
}
