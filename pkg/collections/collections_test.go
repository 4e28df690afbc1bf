package collections

import (
	"testing"
	"time"
)

func TestParseValidTwoCollections(t *testing.T) {
	set, err := Parse("foo=100:1 minute,bar=1000:30 seconds", 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]Collection{
		"foo": {Name: "foo", CountLimit: 100, Window: time.Minute},
		"bar": {Name: "bar", CountLimit: 1000, Window: 30 * time.Second},
	}

	if len(set.Collections) != len(want) {
		t.Fatalf("got %d collections, want %d", len(set.Collections), len(want))
	}
	for name, wc := range want {
		got, ok := set.Collections[name]
		if !ok {
			t.Fatalf("missing collection %q", name)
		}
		if got != wc {
			t.Errorf("collection %q: got %+v, want %+v", name, got, wc)
		}
	}
	if set.TTLSeconds != 30 {
		t.Errorf("got ttl %d, want 30", set.TTLSeconds)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		wantErr string
	}{
		{"empty config", "", "no name in rate"},
		{"no name separator", "100:1m", "no name in rate"},
		{"no val separator", "foo=100", "no count in rate"},
	}

	for _, tc := range cases {
		_, err := Parse(tc.raw, 30)
		if err == nil {
			t.Fatalf("%s: expected an error, got none", tc.name)
		}
		if err.Error() != tc.wantErr {
			t.Errorf("%s: got error %q, want %q", tc.name, err.Error(), tc.wantErr)
		}
	}
}

func TestParseBadDuration(t *testing.T) {
	_, err := Parse("foo=100:50 minuten", 30)
	if err == nil {
		t.Fatal("expected an error for an unknown unit")
	}
}
