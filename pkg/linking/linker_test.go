package linking

import "testing"

func TestNewInvalidJSON(t *testing.T) {
	if _, err := New(`{"linkers":}`); err == nil {
		t.Fatal("expected an error for invalid JSON")
	}
}

func TestNewOneLinker(t *testing.T) {
	raw := `
	{
		"linkers": [
			{
				"name": "foo",
				"contexts": [],
				"rate": {
					"count": 10,
					"ttl_seconds": 60
				}
			}
		],
		"sweep_seconds": 30
	}`

	linker, err := New(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	link, ok := linker.GetContext("foo")
	if !ok {
		t.Fatal("expected a link for collection foo")
	}
	if link.Rate != 10 {
		t.Errorf("got rate %d, want 10", link.Rate)
	}
	if len(link.Contexts) != 0 {
		t.Errorf("got contexts %v, want none", link.Contexts)
	}

	ttls := linker.GetTTLs()
	if ttls["foo"] != 60 {
		t.Errorf("got ttl %d, want 60", ttls["foo"])
	}
}
