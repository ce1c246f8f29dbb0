package concurrency

import (
	"sync"
)

// LockManager handles named locks. The submission service uses one to
// serialize per-user ledger updates: the duplicate check and the apply must
// not interleave for the same user.
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns a mutex for the given key
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}
