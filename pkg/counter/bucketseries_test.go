package counter

import "testing"

func TestBucketSeriesGetInner(t *testing.T) {
	s := NewBucketSeries(DefaultSweepSecsForTest)
	s.increment(1000)
	s.increment(1010)

	if got := s.lookup(1000); got != 2 {
		t.Errorf("actual bucket: got %d, want 2", got)
	}
	if got := s.lookup(1050); got != 2 {
		t.Errorf("within bucket: got %d, want 2", got)
	}
	if got := s.lookup(1100); got != 0 {
		t.Errorf("outside bucket: got %d, want 0", got)
	}
}

func TestBucketSeriesIncrementAndTotal(t *testing.T) {
	s := NewBucketSeries(DefaultSweepSecsForTest)
	s.increment(1000)
	if got := s.incrementAndTotal(1000); got != 2 {
		t.Errorf("got %d, want 2", got)
	}
	if got := s.incrementAndTotal(2000); got != 3 {
		t.Errorf("got %d, want 3", got)
	}
}

func TestBucketSeriesTotal(t *testing.T) {
	cases := []struct {
		name string
		inc  uint64
		want uint64
	}{
		{"initial bucket", 1000, 1},
		{"same bucket", 1200, 2},
		{"new bucket", 2000, 3},
		{"several buckets forward", 7890, 4},
	}

	s := NewBucketSeries(1000)
	for _, tc := range cases {
		s.increment(tc.inc)
		if got := s.total(); got != tc.want {
			t.Errorf("%s: got %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestBucketSeriesLookupAfterIncrement(t *testing.T) {
	cases := []struct {
		name   string
		inc    uint64
		lookup uint64
		want   uint64
	}{
		{"initial bucket", 1000, 1000, 1},
		{"same bucket", 1200, 1000, 2},
		{"new bucket", 2000, 2000, 1},
		{"bucket edge", 2999, 2000, 2},
	}

	s := NewBucketSeries(1000)
	for _, tc := range cases {
		s.increment(tc.inc)
		if got := s.lookup(tc.lookup); got != tc.want {
			t.Errorf("%s: got %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestBucketSeriesTrim(t *testing.T) {
	cases := []struct {
		name   string
		inserts []uint64
		cutoff  uint64
		want    int
	}{
		{"empty series", nil, 50, 0},
		{"discard two keep one", []uint64{10, 20, 50}, 30, 1},
		{"discard none", []uint64{40, 50, 60}, 30, 3},
		{"discard all", []uint64{10, 20, 25}, 30, 0},
	}

	for _, tc := range cases {
		s := NewBucketSeries(5)
		for _, v := range tc.inserts {
			s.increment(v)
		}
		s.trim(tc.cutoff)
		if got := len(s.buckets); got != tc.want {
			t.Errorf("%s: got %d buckets, want %d", tc.name, got, tc.want)
		}
	}
}

// DefaultSweepSecsForTest is the default coalescing window used when
// constructing a bare series in tests.
const DefaultSweepSecsForTest = 60

// lookup and incrementAndTotal are small test-only conveniences, not needed
// by production code, which only ever calls increment/total through
// KeyTable.upsert.
func (s *BucketSeries) lookup(t uint64) uint64 {
	start := s.findBucket(t)
	if i, ok := s.indexOf(start); ok {
		return s.buckets[i].count
	}
	return 0
}

func (s *BucketSeries) incrementAndTotal(t uint64) uint64 {
	s.increment(t)
	return s.total()
}
