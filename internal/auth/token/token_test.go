package token

import "testing"

func TestGenerateRandomToken(t *testing.T) {
	first, err := GenerateRandomToken(48)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := GenerateRandomToken(48)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first == "" || first == second {
		t.Fatal("expected distinct non-empty tokens")
	}
	// 48 bytes encode to 64 base64url characters.
	if len(first) != 64 {
		t.Fatalf("unexpected token length %d", len(first))
	}
}

func TestHashSHA256IsDeterministic(t *testing.T) {
	if HashSHA256("abc") != HashSHA256("abc") {
		t.Fatal("expected identical hashes for identical input")
	}
	if HashSHA256("abc") == HashSHA256("abd") {
		t.Fatal("expected different hashes for different input")
	}
	if len(HashSHA256("abc")) != 64 {
		t.Fatalf("unexpected hash length %d", len(HashSHA256("abc")))
	}
}
