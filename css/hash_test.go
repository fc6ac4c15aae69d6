package css

import "testing"

func TestHashString_KnownValues(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "20hp7e5"},
		{"a", "3i0oa9c"},
		{"abc", "d4fq8b"},
	}
	for _, c := range cases {
		if got := hashName(hashString(hashSeed, c.in)); got != c.want {
			t.Errorf("hash(%q): expected %s, got %s", c.in, c.want, got)
		}
	}
}

func TestHashString_Chains(t *testing.T) {
	whole := hashString(hashSeed, "abc")
	chained := hashString(hashString(hashSeed, "ab"), "c")
	if whole != chained {
		t.Errorf("expected chained hash to equal whole-string hash: %08x vs %08x", whole, chained)
	}
}

func TestHashString_OrderSensitive(t *testing.T) {
	ab := hashString(hashString(hashSeed, "a"), "b")
	ba := hashString(hashString(hashSeed, "b"), "a")
	if ab == ba {
		t.Error("expected different hashes for different mixing order")
	}
}
