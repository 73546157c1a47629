// Package syncutil contains synchronization primitives
package syncutil

import (
	"sync"

	"github.com/Nivl/gitlet-go/ginternals/githash"
	"github.com/gogf/gf/encoding/ghash"
)

// NamedMutex is a set of RWMutex indexed by oid.
// Two oids may share the same mutex
type NamedMutex struct {
	locks []sync.RWMutex
	size  uint32
}

// NewNamedMutex creates a new NamedMutex with the given capacity.
// If the max number is below 2, 2 will be used.
// using a prime number as max offers better performance
func NewNamedMutex(maxMutexes uint32) *NamedMutex {
	if maxMutexes < 2 {
		maxMutexes = 2
	}

	return &NamedMutex{
		size:  maxMutexes,
		locks: make([]sync.RWMutex, maxMutexes),
	}
}

func (mu *NamedMutex) lockFor(oid githash.Oid) *sync.RWMutex {
	return &mu.locks[ghash.SDBMHash(oid.Bytes())%mu.size]
}

// Lock locks the provided oid for writing. If the lock is already in
// use, the calling goroutine blocks until the mutex is available.
func (mu *NamedMutex) Lock(oid githash.Oid) {
	mu.lockFor(oid).Lock()
}

// Unlock unlocks the provided oid. It is a run-time error if the oid
// is not locked on entry to Unlock.
func (mu *NamedMutex) Unlock(oid githash.Oid) {
	mu.lockFor(oid).Unlock()
}

// RLock locks the provided oid for reading.
// It should not be used for recursive read locking
func (mu *NamedMutex) RLock(oid githash.Oid) {
	mu.lockFor(oid).RLock()
}

// RUnlock undoes a single RLock call
func (mu *NamedMutex) RUnlock(oid githash.Oid) {
	mu.lockFor(oid).RUnlock()
}
