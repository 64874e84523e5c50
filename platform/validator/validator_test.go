package validator

import "testing"

func TestPersonNameTag(t *testing.T) {
	val := New()

	valid := []string{
		"Matti Meikäläinen",
		"Anna-Liisa Virtanen",
		"O'Connor",
		"Åke Öström",
	}
	for _, name := range valid {
		if err := val.Var(name, "person_name"); err != nil {
			t.Fatalf("expected %q to pass person_name, got %v", name, err)
		}
	}

	invalid := []string{
		"Matti123",
		"robert; drop tables",
		"<Matti>",
	}
	for _, name := range invalid {
		if err := val.Var(name, "person_name"); err == nil {
			t.Fatalf("expected %q to fail person_name", name)
		}
	}
}

func TestFiPhoneTag(t *testing.T) {
	val := New()

	if err := val.Var("+358 40 123 4567", "fi_phone"); err != nil {
		t.Fatalf("expected Finnish number to pass, got %v", err)
	}
	// Empty is allowed; the field is optional.
	if err := val.Var("", "fi_phone"); err != nil {
		t.Fatalf("expected empty value to pass, got %v", err)
	}
	if err := val.Var("12345", "fi_phone"); err == nil {
		t.Fatal("expected short number to fail")
	}
}

func TestStructValidation(t *testing.T) {
	val := New()

	type form struct {
		Name  string `validate:"required,person_name"`
		Email string `validate:"required,email"`
	}

	if err := val.Struct(form{Name: "Matti", Email: "matti@example.fi"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := val.Struct(form{Name: "Matti", Email: "not-an-email"}); err == nil {
		t.Fatal("expected email validation to fail")
	}
	if err := val.Struct(form{Email: "matti@example.fi"}); err == nil {
		t.Fatal("expected required name to fail")
	}
}
