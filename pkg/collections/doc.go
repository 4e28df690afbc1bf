// Package collections parses the comma-separated collection-rate
// configuration string accepted by the service's CLI and config file, e.g.
//
//	foo=100:1 minute,bar=1000:30 seconds
//
// Each entry names a collection, its allowed count, and the window that
// count applies over. The window accepts the informal "<number> <unit>"
// phrasing a human would type ("1 minute", "30 seconds"), the compact
// "<number><unit>" form ("1m", "30s"), or a bare number of seconds ("30").
// Compound Go durations such as "1h30m" are not accepted.
package collections
