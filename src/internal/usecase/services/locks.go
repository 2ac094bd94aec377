package services

import "sync"

// accountLocks hands out one mutex per account number. Transfers lock both
// accounts in ascending account-number order, which rules out deadlock between
// concurrent opposite-direction transfers.
type accountLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newAccountLocks() *accountLocks {
	return &accountLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *accountLocks) get(accountNumber string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	lock, ok := l.locks[accountNumber]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[accountNumber] = lock
	}
	return lock
}

// lock acquires the account's mutex and returns the unlock.
func (l *accountLocks) lock(accountNumber string) func() {
	lock := l.get(accountNumber)
	lock.Lock()
	return lock.Unlock
}

// lockPair acquires both mutexes in ascending account-number order and
// returns the combined unlock.
func (l *accountLocks) lockPair(a, b string) func() {
	if b < a {
		a, b = b, a
	}
	first := l.get(a)
	second := l.get(b)
	first.Lock()
	second.Lock()
	return func() {
		second.Unlock()
		first.Unlock()
	}
}
