// Package counter implements a sharded, time-windowed in-memory counter used
// to answer rate-limit questions for a (collection, key) pair.
//
// The counter is organized as a fixed array of independently-locked
// partitions. A key's partition is chosen by hashing it with xxhash and
// reducing modulo the partition count, which keeps contention proportional
// to 1/N of the key space under concurrent access. Each partition stores,
// per key, a small ordered series of time buckets that coalesce
// closely-spaced increments together, so that "how many times was this key
// seen recently" can be answered without storing one entry per event.
//
// Two background goroutines keep the counter's notion of time and memory
// usage bounded: a clock ticker updates a shared atomic clock once a
// second, and a sweeper periodically walks every partition discarding
// buckets older than the configured TTL. Neither touches the hot path:
// GetOrCreate only ever takes one partition's lock and reads the clock with
// a relaxed atomic load.
package counter
