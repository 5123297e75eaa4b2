package uid

import "testing"

func TestIDsAreHexAndUnique(t *testing.T) {
	a, b := GenerateGameID(), GenerateGameID()
	if len(a) != 32 || a == b {
		t.Fatalf("game ids %q and %q", a, b)
	}

	s, err := GenerateSessionID()
	if err != nil {
		t.Fatal(err)
	}
	if len(s) != 64 {
		t.Fatalf("session id length %d", len(s))
	}
	for _, r := range s {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f') {
			t.Fatalf("non-hex rune %q in %q", r, s)
		}
	}
}
