// Package linking implements context linking: an optional layer above the
// counter core that lets a collection's rate decision also consider the
// totals of one or more other collections sharing the same key. It is
// loaded from a small JSON document and is entirely separate from
// pkg/counter's own semantics — the core never knows its totals are being
// combined this way.
package linking
