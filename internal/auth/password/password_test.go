package password

import "testing"

func TestHashAndCompare(t *testing.T) {
	hash, err := Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := Compare(hash, "correct horse battery staple"); err != nil {
		t.Fatalf("expected matching password to verify, got %v", err)
	}
	if err := Compare(hash, "wrong password"); err == nil {
		t.Fatal("expected mismatch to fail")
	}
}

func TestHashIsSalted(t *testing.T) {
	first, err := Hash("samepassword")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Hash("samepassword")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first == second {
		t.Fatal("expected distinct hashes for the same password")
	}
}
