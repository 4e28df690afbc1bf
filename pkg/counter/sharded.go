package counter

import (
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
)

const (
	// DefaultPartitions is the partition count used when Config.Partitions
	// is left at zero.
	DefaultPartitions = 1024
	// DefaultTTLSecs is how long after its start time a bucket is kept
	// before the sweeper discards it.
	DefaultTTLSecs = 300
	// DefaultWindowSecs is how close two events must be to coalesce into
	// the same bucket.
	DefaultWindowSecs = 60
	// DefaultSweepSecs is the default for Config.SweepSecs. The Sweeper
	// does not read SweepSecs: its cadence is the cron schedule passed to
	// Sweeper.Start.
	DefaultSweepSecs = 60
)

// Config controls a ShardedCounter's shape and timing. Zero values select
// the defaults above.
type Config struct {
	Partitions uint32
	TTLSecs    uint64
	WindowSecs uint64
	SweepSecs  uint64
}

func (c Config) withDefaults() Config {
	if c.Partitions == 0 {
		c.Partitions = DefaultPartitions
	}
	if c.TTLSecs == 0 {
		c.TTLSecs = DefaultTTLSecs
	}
	if c.WindowSecs == 0 {
		c.WindowSecs = DefaultWindowSecs
	}
	if c.SweepSecs == 0 {
		c.SweepSecs = DefaultSweepSecs
	}
	return c
}

// ShardedCounter is a fixed array of independently-locked partitions behind
// one hash function. It is the only type in this package most callers need
// to touch.
type ShardedCounter struct {
	cfg        Config
	partitions []*partition
	clockSecs  atomic.Uint64
}

// New constructs a ShardedCounter and seeds its clock with the current wall
// time. Callers must run a ClockTicker (see NewClockTicker and its Start
// method) for the clock to advance afterward, and typically a Sweeper (see
// NewSweeper and Sweeper.Start) to bound memory use.
func New(cfg Config) *ShardedCounter {
	cfg = cfg.withDefaults()

	c := &ShardedCounter{
		cfg:        cfg,
		partitions: make([]*partition, cfg.Partitions),
	}
	for i := range c.partitions {
		c.partitions[i] = newPartition(cfg.WindowSecs)
	}
	c.clockSecs.Store(uint64(time.Now().Unix()))
	return c
}

// partitionFor returns the partition a key is routed to: a fast 64-bit
// non-cryptographic hash reduced modulo the partition count. The partition
// count need not be a power of two.
func (c *ShardedCounter) partitionFor(key string) *partition {
	idx := uint32(xxhash.Sum64String(key)) % uint32(len(c.partitions))
	return c.partitions[idx]
}

// GetOrCreate increments the bucket series for key at the counter's current
// clock value (when create is true) or reads its current total without
// mutating anything (when create is false), returning the resulting total
// number of events recorded for key across all live buckets.
func (c *ShardedCounter) GetOrCreate(key string, create bool) (uint64, error) {
	p := c.partitionFor(key)
	ts := c.clockSecs.Load()

	var total uint64
	err := p.withLock(func(t *KeyTable) {
		total = t.upsert(key, ts, create)
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// Clock returns the counter's current view of wall-clock time in Unix
// seconds, as last written by a ClockTicker.
func (c *ShardedCounter) Clock() uint64 {
	return c.clockSecs.Load()
}

// PoisonedPartitions returns how many of the counter's partitions are
// currently poisoned and rejecting requests, for readiness reporting.
func (c *ShardedCounter) PoisonedPartitions() int {
	var n int
	for _, p := range c.partitions {
		if p.isPoisoned() {
			n++
		}
	}
	return n
}

// setClock is used by tests and by ClockTicker to advance the shared clock.
func (c *ShardedCounter) setClock(secs uint64) {
	c.clockSecs.Store(secs)
}

// SweepStats summarizes the effect of one sweep cycle, for metrics.
type SweepStats struct {
	BucketsDropped     int
	KeysDropped        int
	PoisonedPartitions int
}

// sweepOnce trims every partition's table to the current cutoff
// (clock - TTL, saturating at zero) and recovers any partition that was
// left poisoned by a prior panic.
func (c *ShardedCounter) sweepOnce() SweepStats {
	cutoff := saturatingSub(c.clockSecs.Load(), c.cfg.TTLSecs)

	var stats SweepStats
	for _, p := range c.partitions {
		if p.isPoisoned() {
			p.recoverIfPoisoned(c.cfg.WindowSecs)
			stats.PoisonedPartitions++
			continue
		}
		_ = p.withLock(func(t *KeyTable) {
			buckets, keys := t.sweep(cutoff)
			stats.BucketsDropped += buckets
			stats.KeysDropped += keys
		})
	}
	return stats
}

func saturatingSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}
