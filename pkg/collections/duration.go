package collections

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// unitSeconds maps every unit word this parser recognizes, singular and
// plural, to its length in seconds. There is no corpus-available library
// for parsing informal "<number> <word>" durations (time.ParseDuration
// only accepts compact suffixes like "30s", not "30 seconds"), so this is a
// small hand-rolled parser rather than a wired dependency — see DESIGN.md.
var unitSeconds = map[string]uint64{
	"second": 1, "seconds": 1, "sec": 1, "secs": 1, "s": 1,
	"minute": 60, "minutes": 60, "min": 60, "mins": 60, "m": 60,
	"hour": 3600, "hours": 3600, "hr": 3600, "hrs": 3600, "h": 3600,
	"day": 86400, "days": 86400, "d": 86400,
}

// parseWindow parses an informal duration like "1 minute" or "30 seconds",
// a compact one like "1m" or "30s", or a bare number of seconds ("30").
func parseWindow(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("empty duration")
	}

	fields := strings.Fields(raw)
	switch len(fields) {
	case 1:
		if secs, err := strconv.ParseUint(fields[0], 10, 64); err == nil {
			return time.Duration(secs) * time.Second, nil
		}
		// Compact "<number><unit>" form, e.g. "1m" or "30s".
		split := strings.IndexFunc(fields[0], func(r rune) bool { return r < '0' || r > '9' })
		if split <= 0 {
			return 0, fmt.Errorf("%q is not a known unit", raw)
		}
		n, err := strconv.ParseUint(fields[0][:split], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not a valid duration magnitude", fields[0][:split])
		}
		perUnit, ok := unitSeconds[strings.ToLower(fields[0][split:])]
		if !ok {
			return 0, fmt.Errorf("%q is not a known unit", fields[0][split:])
		}
		return time.Duration(n*perUnit) * time.Second, nil
	case 2:
		n, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not a valid duration magnitude", fields[0])
		}
		unit := strings.ToLower(fields[1])
		perUnit, ok := unitSeconds[unit]
		if !ok {
			return 0, fmt.Errorf("%q is not a known unit", unit)
		}
		return time.Duration(n*perUnit) * time.Second, nil
	default:
		return 0, fmt.Errorf("%q is not a known unit", raw)
	}
}
