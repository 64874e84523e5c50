package sanitize

import "testing"

func TestStripHTML(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"plain text", "plain text"},
		{"<b>bold</b> text", "bold text"},
		{"<script>alert(1)</script>", "alert(1)"},
		{"&lt;script&gt;alert(1)&lt;/script&gt;", "alert(1)"},
		{"click javascript:alert(1)", "click alert(1)"},
		{"  padded  ", "padded"},
	}

	for _, tc := range cases {
		if got := StripHTML(tc.input); got != tc.want {
			t.Fatalf("StripHTML(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestEscape(t *testing.T) {
	if got := Escape(`<a href="x">'&'</a>`); got != "&lt;a href=&quot;x&quot;&gt;&#x27;&amp;&#x27;&lt;/a&gt;" {
		t.Fatalf("unexpected escape result: %q", got)
	}
	if got := Escape(""); got != "" {
		t.Fatalf("expected empty string to pass through, got %q", got)
	}
}

func TestContainsSQLInjection(t *testing.T) {
	hostile := []string{
		"1' OR 1=1",
		"UNION SELECT password FROM users",
		"DROP TABLE vehicles",
		"-- comment",
	}
	for _, input := range hostile {
		if !ContainsSQLInjection(input) {
			t.Fatalf("expected %q to be flagged", input)
		}
	}

	benign := []string{
		"Haluaisin varata koeajon BMW 318i autoon",
		"Onko auto vielä myynnissä?",
	}
	for _, input := range benign {
		if ContainsSQLInjection(input) {
			t.Fatalf("did not expect %q to be flagged", input)
		}
	}
}

func TestContainsXSS(t *testing.T) {
	hostile := []string{
		"<script>alert(1)</script>",
		"<IFRAME src=x>",
		"a onclick=alert(1)",
		"javascript:void(0)",
	}
	for _, input := range hostile {
		if !ContainsXSS(input) {
			t.Fatalf("expected %q to be flagged", input)
		}
	}

	if ContainsXSS("Mersu on hieno auto") {
		t.Fatal("did not expect plain prose to be flagged")
	}
}

func TestIsInputSafe(t *testing.T) {
	if !IsInputSafe("") {
		t.Fatal("empty input is safe")
	}
	if !IsInputSafe("Kiinnostaa vaihtoauto, soittakaa.") {
		t.Fatal("expected plain prose to be safe")
	}
	if IsInputSafe("<script>steal()</script>") {
		t.Fatal("expected script input to be unsafe")
	}
	if IsInputSafe("'; DROP TABLE leads; --") {
		t.Fatal("expected injection-shaped input to be unsafe")
	}
}
