package counter

import "testing"

func TestKeyTableUpsert(t *testing.T) {
	cases := []struct {
		name   string
		key    string
		ts     uint64
		create bool
		want   uint64
	}{
		{"first foo", "foo", 10000, true, 1},
		{"foo in same window", "foo", 10005, true, 2},
		{"foo in same window, no update", "foo", 10006, false, 2},
		{"foo in new window", "foo", 10151, true, 3},
		{"foo in new window, no update", "foo", 10200, false, 3},
		{"bar, no update", "bar", 10100, false, 0},
		{"bar, update", "bar", 10100, true, 1},
	}

	kt := NewKeyTable(60)
	for _, tc := range cases {
		got := kt.upsert(tc.key, tc.ts, tc.create)
		if got != tc.want {
			t.Errorf("%s: got %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestKeyTableSweep(t *testing.T) {
	cases := []struct {
		name   string
		values map[string][]uint64
		want   int
	}{
		{
			name: "discard one keep two",
			values: map[string][]uint64{
				"foo":    {10, 20, 25},
				"bar":    {10, 20, 50},
				"foobar": {40, 50, 60},
			},
			want: 2,
		},
		{
			name: "discard all",
			values: map[string][]uint64{
				"foo":    {10, 20, 25},
				"bar":    {10, 20, 22},
				"foobar": {5, 1, 28},
			},
			want: 0,
		},
		{
			name: "discard none",
			values: map[string][]uint64{
				"foo":    {40, 50, 55},
				"bar":    {32, 37, 50},
				"foobar": {40, 50, 60},
			},
			want: 3,
		},
	}

	for _, tc := range cases {
		kt := NewKeyTable(30)
		for k, vals := range tc.values {
			for _, v := range vals {
				kt.upsert(k, v, true)
			}
		}
		kt.sweep(30)
		if got := kt.len(); got != tc.want {
			t.Errorf("%s: got %d keys, want %d", tc.name, got, tc.want)
		}
	}
}
