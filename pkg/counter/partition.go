package counter

import "sync"

// partition is a KeyTable behind a single exclusive lock. Every operation —
// including reads (create=false) — takes the same lock; a partition is
// deliberately not protected by sync.RWMutex. An RWMutex's reader/writer
// fairness guarantees vary across platforms and can starve writers under
// read-heavy load on some implementations, which is exactly the failure
// mode this design avoids by never distinguishing readers from writers at
// the lock level.
type partition struct {
	mu       sync.Mutex
	table    *KeyTable
	poisoned bool
}

func newPartition(window uint64) *partition {
	return &partition{table: NewKeyTable(window)}
}

// withLock runs fn while holding the partition's lock, recovering a panic
// inside fn by marking the partition poisoned and returning
// ErrPartitionPoisoned instead of propagating the panic. A poisoned
// partition rejects all further operations until recoverIfPoisoned is called on it,
// which the sweeper does opportunistically on its next pass.
func (p *partition) withLock(fn func(*KeyTable)) (err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.poisoned {
		return ErrPartitionPoisoned
	}

	defer func() {
		if r := recover(); r != nil {
			p.poisoned = true
			err = ErrPartitionPoisoned
		}
	}()

	fn(p.table)
	return nil
}

// recoverIfPoisoned clears the poisoned flag, discarding whatever state the
// table held at the time of the panic. Called only by the sweeper, which is
// the one component that walks every partition regardless of load.
func (p *partition) recoverIfPoisoned(window uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.poisoned {
		p.table = NewKeyTable(window)
		p.poisoned = false
	}
}

func (p *partition) isPoisoned() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.poisoned
}
