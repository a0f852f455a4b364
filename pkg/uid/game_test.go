package uid

import (
	"crypto/rand"
	"errors"
	"testing"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy unavailable")
}

func TestGenerateMatchID(t *testing.T) {
	a, b := GenerateMatchID(), GenerateMatchID()
	if len(a) != 32 {
		t.Fatalf("expected 32 hex characters, got %q", a)
	}
	if a == b {
		t.Fatalf("two ids collided: %s", a)
	}
}

func TestGenerateMatchIDWithoutRandomness(t *testing.T) {
	source = failingReader{}
	defer func() { source = rand.Reader }()

	a, b := GenerateMatchID(), GenerateMatchID()
	if len(a) != 32 || len(b) != 32 {
		t.Fatalf("expected 32 hex characters, got %q and %q", a, b)
	}
	if a == b {
		t.Fatalf("fallback ids collided: %s", a)
	}
	if a == "00000000000000000000000000000000" {
		t.Fatalf("fallback id is all zeros")
	}
}
