package counter

import (
	"sync"
	"testing"
)

func TestNewShardedCounterDefaults(t *testing.T) {
	c := New(Config{Partitions: 5, TTLSecs: 30})
	if len(c.partitions) != 5 {
		t.Errorf("got %d partitions, want 5", len(c.partitions))
	}
	if c.cfg.TTLSecs != 30 {
		t.Errorf("got ttl %d, want 30", c.cfg.TTLSecs)
	}

	c = New(Config{})
	if len(c.partitions) != DefaultPartitions {
		t.Errorf("got %d partitions, want %d", len(c.partitions), DefaultPartitions)
	}
	if c.cfg.TTLSecs != DefaultTTLSecs {
		t.Errorf("got ttl %d, want %d", c.cfg.TTLSecs, DefaultTTLSecs)
	}
}

func TestShardedCounterGetOrCreate(t *testing.T) {
	cases := []struct {
		name   string
		key    string
		create bool
		want   uint64
	}{
		{"create foo", "foo", true, 1},
		{"update foo", "foo", true, 2},
		{"create bar", "bar", true, 1},
		{"get foobar", "foobar", false, 0},
	}

	c := New(Config{Partitions: 10, TTLSecs: 30})
	for _, tc := range cases {
		got, err := c.GetOrCreate(tc.key, tc.create)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if got != tc.want {
			t.Errorf("%s: got %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestShardedCounterGetOrCreateConcurrent(t *testing.T) {
	c := New(Config{Partitions: 10, TTLSecs: 30})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.GetOrCreate("foo", true); err != nil {
				t.Errorf("GetOrCreate failed: %v", err)
			}
		}()
	}
	wg.Wait()

	got, err := c.GetOrCreate("foo", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 10 {
		t.Errorf("got %d, want 10", got)
	}
}

func TestShardedCounterSweepOnce(t *testing.T) {
	const ttl = 30
	const hardcodedTime = 60

	cases := []struct {
		name     string
		values   map[string][]uint64
		expected map[string]uint64
	}{
		{
			name: "some values swept out",
			values: map[string][]uint64{
				"foo": {10, 15, 35},
				"bar": {20, 22, 35},
			},
			expected: map[string]uint64{"foo": 1, "bar": 1},
		},
		{
			name: "all values swept out",
			values: map[string][]uint64{
				"foo": {10, 15, 20},
				"bar": {20, 25, 27},
			},
			expected: map[string]uint64{"foo": 0, "bar": 0},
		},
		{
			name: "no values swept out",
			values: map[string][]uint64{
				"foo": {30, 35, 40},
				"bar": {40, 45, 50},
			},
			expected: map[string]uint64{"foo": 3, "bar": 3},
		},
	}

	for _, tc := range cases {
		c := New(Config{Partitions: 2, TTLSecs: ttl, WindowSecs: 5, SweepSecs: 1})

		for k, vals := range tc.values {
			for _, v := range vals {
				c.setClock(v)
				if _, err := c.GetOrCreate(k, true); err != nil {
					t.Fatalf("%s: failed to seed values: %v", tc.name, err)
				}
			}
		}

		c.setClock(hardcodedTime)
		c.sweepOnce()

		for k, want := range tc.expected {
			got, err := c.GetOrCreate(k, false)
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", tc.name, err)
			}
			if got != want {
				t.Errorf("%s: key %s: got %d, want %d", tc.name, k, got, want)
			}
		}
	}
}

func TestSaturatingSub(t *testing.T) {
	if got := saturatingSub(10, 30); got != 0 {
		t.Errorf("got %d, want 0", got)
	}
	if got := saturatingSub(30, 10); got != 20 {
		t.Errorf("got %d, want 20", got)
	}
}
