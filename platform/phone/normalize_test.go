package phone

import "testing"

func TestStrip(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"+358 40 123 4567", "+358401234567"},
		{"040-123-4567", "0401234567"},
		{"  0401234567  ", "0401234567"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Strip(tc.input); got != tc.want {
			t.Fatalf("Strip(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestIsValidFinnish(t *testing.T) {
	valid := []string{
		"+358401234567",
		"+358 40 123 4567",
		"0401234567",
		"040-123-4567",
		"0912345678",
	}
	for _, input := range valid {
		if !IsValidFinnish(input) {
			t.Fatalf("expected %q to be valid", input)
		}
	}

	invalid := []string{
		"",
		"12345",
		"+358012345",  // zero after country code
		"+15551234567", // wrong country
		"040123",       // too short
		"04012345678901", // too long
		"puhelin",
	}
	for _, input := range invalid {
		if IsValidFinnish(input) {
			t.Fatalf("expected %q to be invalid", input)
		}
	}
}

func TestNormalizeE164(t *testing.T) {
	if got := NormalizeE164("040 123 4567"); got != "+358401234567" {
		t.Fatalf("expected national number to normalize, got %q", got)
	}
	if got := NormalizeE164("+358401234567"); got != "+358401234567" {
		t.Fatalf("expected E.164 input to stay unchanged, got %q", got)
	}
	// Unparseable input falls back to the stripped form.
	if got := NormalizeE164("not a number"); got != "notanumber" {
		t.Fatalf("expected stripped fallback, got %q", got)
	}
	if got := NormalizeE164("  "); got != "" {
		t.Fatalf("expected empty result for blank input, got %q", got)
	}
}
