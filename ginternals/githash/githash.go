// Package githash contains the hash algorithms used to identify the
// objects of a repository
package githash

import "errors"

// ErrInvalidOid is returned when a given value isn't a valid Oid
var ErrInvalidOid = errors.New("invalid Oid")

// Hash represents a hash algorithm used to compute object IDs
type Hash interface {
	// Name returns the name of the hash
	Name() string
	// OidSize returns the size of an Oid, in bytes
	OidSize() int
	// HexSize returns the length of the hex representation of an Oid
	HexSize() int
	// Sum returns the Oid of the concatenation of all the given parts.
	// Sum("ab", "c") and Sum("a", "bc") return the same Oid
	Sum(parts ...[]byte) Oid
	// ConvertFromString returns an Oid from its hex representation
	// For the SHA 9b91da06e69613397b38e0808e0ba5ee6983251b
	// the oid will be {0x9b, 0x91, 0xda, ...}
	ConvertFromString(id string) (Oid, error)
	// ConvertFromBytes returns an Oid from the provided byte-encoded oid
	ConvertFromBytes(id []byte) (Oid, error)
	// NullOid returns an empty Oid
	NullOid() Oid
}

// Oid represents an object ID
type Oid interface {
	// Bytes returns the raw Oid as []byte.
	// This is different than doing []byte(oid.String())
	// For the oid 642480605b8b0fd464ab5762e044269cf29a60a3:
	// oid.Bytes(): []byte{ 0x64, 0x24, 0x80, ... }
	// []byte(oid.String()): []byte{ '6', '4', '2', '4', '8' '0', ... }
	Bytes() []byte

	// String converts an oid to its hex representation
	String() string

	// IsZero returns whether the oid has the zero value (NullOid)
	IsZero() bool
}
