package ginternals

import "errors"

var (
	// ErrObjectNotFound is an error corresponding to an object not being
	// found in the object database
	ErrObjectNotFound = errors.New("object not found")

	// ErrObjectAmbiguous is an error thrown when a short ID matches more
	// than one object
	ErrObjectAmbiguous = errors.New("short object ID is ambiguous")

	// ErrInvalidFilename is an error thrown when a filename cannot be
	// tracked. Only plain files at the root of the work tree are
	// supported
	ErrInvalidFilename = errors.New("invalid filename")
)
