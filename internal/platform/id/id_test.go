package id

import (
	"strings"
	"testing"
)

func TestTaggedHexPrefixesKind(t *testing.T) {
	t.Parallel()

	got := TaggedHex{Tag: "run"}.New()
	if !strings.HasPrefix(got, "run-") {
		t.Fatalf("id %q missing tag prefix", got)
	}
	if len(got) != len("run-")+16 {
		t.Fatalf("id %q has wrong length", got)
	}
}

func TestTaggedHexWithoutTag(t *testing.T) {
	t.Parallel()

	got := TaggedHex{}.New()
	if len(got) != 16 || strings.Contains(got, "-") {
		t.Fatalf("bare id %q", got)
	}
}

func TestTaggedHexDoesNotRepeat(t *testing.T) {
	t.Parallel()

	gen := TaggedHex{Tag: "run"}
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := gen.New()
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}
