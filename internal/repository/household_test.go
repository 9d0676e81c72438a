package repository

import (
	"strings"
	"testing"
)

// TestNewInviteCode checks the code length and alphabet.
func TestNewInviteCode(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		code := newInviteCode()

		if len(code) != codeLength {
			t.Fatalf("expected length %d, got %d (%s)", codeLength, len(code), code)
		}
		for _, r := range code {
			if !strings.ContainsRune(codeAlphabet, r) {
				t.Fatalf("character %q outside invite alphabet in %s", r, code)
			}
		}

		seen[code] = true
	}

	// 100 draws from a 32^6 space colliding into a single value would
	// indicate a broken generator.
	if len(seen) < 2 {
		t.Fatal("expected varied invite codes")
	}
}
