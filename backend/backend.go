// Package backend contains methods to store and retrieve data from the
// .gitlet directory
package backend

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Nivl/gitlet-go/ginternals/config"
	"github.com/Nivl/gitlet-go/ginternals/githash"
	"github.com/Nivl/gitlet-go/internal/cache"
	"github.com/Nivl/gitlet-go/internal/syncutil"
	"github.com/spf13/afero"
)

// Amount of decoded objects kept in memory
const defaultCacheSize = 1000

// Amount of locks shared by all the objects. Using a prime number
// spreads the oids more evenly
const objectMutexCount = 101

// WalkStop is a fake error used to tell Walk() to stop
var WalkStop = errors.New("stop walking") //nolint // the linter expects all errors to start with Err, but since here we're faking an error we don't want that

// Backend is a Backend implementation that uses the filesystem to
// store data.
// The object methods can be called concurrently, the other methods
// cannot
type Backend struct {
	fs     afero.Fs
	config *config.Config
	hash   githash.Hash

	cache    *cache.LRU
	objectMu *syncutil.NamedMutex

	// objects contains the list of all the oids stored on disk
	objects *sync.Map
	// branches contains the content of all the branches, indexed by
	// name
	branches *sync.Map
}

// New returns a new Backend object
func New(cfg *config.Config, h githash.Hash) (*Backend, error) {
	b := &Backend{
		fs:       cfg.FS,
		config:   cfg,
		hash:     h,
		cache:    cache.NewLRU(defaultCacheSize),
		objectMu: syncutil.NewNamedMutex(objectMutexCount),
		objects:  &sync.Map{},
		branches: &sync.Map{},
	}

	if err := b.loadObjectIDs(); err != nil {
		return nil, fmt.Errorf("could not load the objects: %w", err)
	}
	if err := b.loadBranches(); err != nil {
		return nil, fmt.Errorf("could not load the branches: %w", err)
	}
	return b, nil
}

// Path returns the path of the .gitlet directory
func (b *Backend) Path() string {
	return b.config.GitletDirPath
}

// Hash returns the hash algorithm used by the backend
func (b *Backend) Hash() githash.Hash {
	return b.hash
}

// Config returns the config used by the backend
func (b *Backend) Config() *config.Config {
	return b.config
}

// Close frees the resources used by the Backend
// This method cannot be called concurrently with other methods
func (b *Backend) Close() error {
	b.cache.Clear()
	return nil
}
