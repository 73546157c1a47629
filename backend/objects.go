package backend

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/Nivl/gitlet-go/ginternals"
	"github.com/Nivl/gitlet-go/ginternals/githash"
	"github.com/Nivl/gitlet-go/ginternals/object"
	"github.com/spf13/afero"
)

// OidWalkFunc represents a function that will be applied on all the
// oids found by WalkObjectIDs()
type OidWalkFunc = func(oid githash.Oid) error

// Object returns the object that has given oid
// This method can be called concurrently
func (b *Backend) Object(oid githash.Oid) (*object.Object, error) {
	b.objectMu.RLock(oid)
	defer b.objectMu.RUnlock(oid)

	return b.objectUnsafe(oid)
}

func (b *Backend) objectUnsafe(oid githash.Oid) (*object.Object, error) {
	if o, found := b.cache.Get(oid); found {
		return o, nil
	}

	if _, exists := b.objects.Load(oid); !exists {
		return nil, fmt.Errorf("object %s: %w", oid.String(), ginternals.ErrObjectNotFound)
	}

	strOid := oid.String()
	p := b.config.ObjectPath(strOid)
	data, err := afero.ReadFile(b.fs, p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("object %s: %w", strOid, ginternals.ErrObjectNotFound)
		}
		return nil, fmt.Errorf("could not get object %s at path %s: %w", strOid, p, err)
	}
	o, err := object.NewFromCompressed(oid, data)
	if err != nil {
		return nil, fmt.Errorf("could not parse object at path %s: %w", p, err)
	}

	b.cache.Add(o)
	return o, nil
}

// HasObject returns whether an object exists in the odb
// This method can be called concurrently
func (b *Backend) HasObject(oid githash.Oid) bool {
	_, exists := b.objects.Load(oid)
	return exists
}

// WriteObject adds an object to the odb.
// Nothing happens if the object already exists
// This method can be called concurrently
func (b *Backend) WriteObject(o *object.Object) (githash.Oid, error) {
	oid := o.ID()
	b.objectMu.Lock(oid)
	defer b.objectMu.Unlock(oid)

	// Make sure the object doesn't already exist
	if _, found := b.objects.Load(oid); found {
		return oid, nil
	}

	data, err := o.Compress()
	if err != nil {
		return b.hash.NullOid(), fmt.Errorf("could not compress object: %w", err)
	}

	// Persist the data on disk
	sha := oid.String()
	p := b.config.ObjectPath(sha)
	// We use 444 because objects are read-only
	if err = afero.WriteFile(b.fs, p, data, 0o444); err != nil {
		return b.hash.NullOid(), fmt.Errorf("could not persist object %s at path %s: %w", sha, p, err)
	}

	b.objects.Store(oid, struct{}{})
	b.cache.Add(o)
	return oid, nil
}

// loadObjectIDs loads the list of stored objects in memory
func (b *Backend) loadObjectIDs() error {
	entries, err := afero.ReadDir(b.fs, b.config.ObjectDirPath)
	if err != nil {
		// this will happen if the repo is not initialized yet
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("could not list %s: %w", b.config.ObjectDirPath, err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		oid, err := b.hash.ConvertFromString(e.Name())
		if err != nil {
			// not an object, we skip it
			continue
		}
		b.objects.Store(oid, struct{}{})
	}
	return nil
}

// sortedObjectIDs returns the hex representation of all the stored
// oids, sorted
func (b *Backend) sortedObjectIDs() []string {
	ids := []string{}
	b.objects.Range(func(key, value interface{}) bool {
		ids = append(ids, key.(githash.Oid).String())
		return true
	})
	sort.Strings(ids)
	return ids
}

// WalkObjectIDs runs the provided method on all the oids of the odb,
// in lexicographic order.
// Return WalkStop from f to stop walking without error
func (b *Backend) WalkObjectIDs(f OidWalkFunc) error {
	for _, sha := range b.sortedObjectIDs() {
		oid, err := b.hash.ConvertFromString(sha)
		if err != nil {
			return fmt.Errorf("could not parse oid %s: %w", sha, err)
		}
		if err = f(oid); err != nil {
			if err == WalkStop { //nolint:errorlint,goerr113 // it's a fake error so no need to use Error.Is()
				return nil
			}
			return err
		}
	}
	return nil
}

// ResolveOid returns the oid of the first object, in lexicographic
// order, whose ID starts with the given prefix.
// A full-length ID is returned as is, without checking if it exists
func (b *Backend) ResolveOid(prefix string) (githash.Oid, error) {
	return b.resolveOid(prefix, false)
}

// ResolveOidStrict works like ResolveOid, except that it returns
// ErrObjectAmbiguous if more than one object matches the prefix
func (b *Backend) ResolveOidStrict(prefix string) (githash.Oid, error) {
	return b.resolveOid(prefix, true)
}

func (b *Backend) resolveOid(prefix string, strict bool) (githash.Oid, error) {
	prefix = strings.ToLower(prefix)
	if len(prefix) == b.hash.HexSize() {
		oid, err := b.hash.ConvertFromString(prefix)
		if err != nil {
			return b.hash.NullOid(), fmt.Errorf("invalid id %s: %w", prefix, ginternals.ErrObjectNotFound)
		}
		return oid, nil
	}
	if prefix == "" {
		return b.hash.NullOid(), fmt.Errorf("empty id: %w", ginternals.ErrObjectNotFound)
	}

	var match githash.Oid
	err := b.WalkObjectIDs(func(oid githash.Oid) error {
		if !strings.HasPrefix(oid.String(), prefix) {
			return nil
		}
		if match != nil {
			return fmt.Errorf("id %s matches %s and %s: %w", prefix, match.String(), oid.String(), ginternals.ErrObjectAmbiguous)
		}
		match = oid
		if !strict {
			return WalkStop
		}
		return nil
	})
	if err != nil {
		return b.hash.NullOid(), err
	}
	if match == nil {
		return b.hash.NullOid(), fmt.Errorf("id %s: %w", prefix, ginternals.ErrObjectNotFound)
	}
	return match, nil
}
