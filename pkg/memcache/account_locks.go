// pkg/mem/account_locks.go
package mem

import (
	"sync"

	"github.com/google/uuid"
)

// AccountLockStore hands out one mutex per account so ledger operations
// against the same account serialize while different accounts stay parallel.
type AccountLockStore interface {
	// Lock blocks until the account's mutex is held and returns the unlock func.
	Lock(accountID uuid.UUID) func()
}

type AccountLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func NewAccountLocks() *AccountLocks {
	return &AccountLocks{
		locks: make(map[uuid.UUID]*sync.Mutex),
	}
}

func (s *AccountLocks) Lock(accountID uuid.UUID) func() {
	s.mu.Lock()
	l, ok := s.locks[accountID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[accountID] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}
