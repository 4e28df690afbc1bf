package counter

// KeyTable maps keys to their BucketSeries. Like BucketSeries, it is not
// safe for concurrent use on its own; a Partition provides the lock.
type KeyTable struct {
	window uint64
	series map[string]*BucketSeries
}

// NewKeyTable returns an empty table whose series coalesce increments
// within window seconds of each other.
func NewKeyTable(window uint64) *KeyTable {
	return &KeyTable{window: window, series: make(map[string]*BucketSeries)}
}

// upsert records an event for key at time t and returns its resulting
// total. When create is false, no series is created and no existing series
// is mutated — the call only reads the current total, returning 0 for a key
// that has never been seen.
func (t *KeyTable) upsert(key string, ts uint64, create bool) uint64 {
	s, ok := t.series[key]
	if ok {
		if create {
			s.increment(ts)
		}
		return s.total()
	}

	if !create {
		return 0
	}

	s = NewBucketSeries(t.window)
	s.increment(ts)
	t.series[key] = s
	return s.total()
}

// sweep trims every series to cutoff, drops any key whose series becomes
// empty as a result, and reports how many buckets and keys were dropped.
func (t *KeyTable) sweep(cutoff uint64) (bucketsDropped, keysDropped int) {
	for key, s := range t.series {
		before := len(s.buckets)
		s.trim(cutoff)
		bucketsDropped += before - len(s.buckets)
		if s.empty() {
			delete(t.series, key)
			keysDropped++
		}
	}
	return bucketsDropped, keysDropped
}

// len reports the number of live keys, used by tests and introspection.
func (t *KeyTable) len() int {
	return len(t.series)
}
