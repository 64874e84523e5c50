package scoring

import (
	"reflect"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestScoreCompleteSubmissionCapsAtHundred(t *testing.T) {
	engine := New()

	result := engine.Score(Input{
		Name:        "Matti Meikäläinen",
		Email:       "matti@yritys.fi",
		Phone:       "+358401234567",
		Message:     strings.Repeat("Olen kiinnostunut autosta ja haluaisin varata koeajon. ", 3),
		CarInterest: "BMW 318i",
	})

	if result.Score != 100 {
		t.Fatalf("expected capped score 100, got %d", result.Score)
	}
	if result.Quality != QualityHigh {
		t.Fatalf("expected high quality, got %q", result.Quality)
	}
	if result.Priority() != PriorityHigh {
		t.Fatalf("expected HIGH priority, got %q", result.Priority())
	}
}

func TestScoreMinimalSubmission(t *testing.T) {
	engine := New()

	result := engine.Score(Input{
		Name:    "Matti",
		Email:   "matti@gmail.com",
		Message: "Hei!",
	})

	// Single-token name (5) + free provider (5) + minimal message (5).
	if result.Score != 15 {
		t.Fatalf("expected score 15, got %d", result.Score)
	}
	if result.Quality != QualityLow {
		t.Fatalf("expected low quality, got %q", result.Quality)
	}
	if result.Factors[FactorPartialName] != 5 {
		t.Fatalf("expected partial_name factor 5, got %d", result.Factors[FactorPartialName])
	}
	if result.Factors[FactorPersonalEmail] != 5 {
		t.Fatalf("expected personal_email factor 5, got %d", result.Factors[FactorPersonalEmail])
	}
	if result.Factors[FactorMinimalMessage] != 5 {
		t.Fatalf("expected minimal_message factor 5, got %d", result.Factors[FactorMinimalMessage])
	}
}

func TestScoreBusinessEmailOutranksFreeProvider(t *testing.T) {
	engine := New()
	base := Input{Name: "Matti", Message: "Hei!"}

	business := base
	business.Email = "matti@yritys.fi"
	personal := base
	personal.Email = "matti@Gmail.COM"

	businessResult := engine.Score(business)
	personalResult := engine.Score(personal)

	if businessResult.Factors[FactorBusinessEmail] != 10 {
		t.Fatalf("expected business_email factor 10, got %d", businessResult.Factors[FactorBusinessEmail])
	}
	if personalResult.Factors[FactorPersonalEmail] != 5 {
		t.Fatalf("expected free provider match to be case-insensitive, factors: %v", personalResult.Factors)
	}
}

func TestScoreMessageLengthTiers(t *testing.T) {
	engine := New()

	cases := []struct {
		length int
		factor string
		points int
	}{
		{101, FactorDetailedMessage, 30},
		{100, FactorMediumMessage, 20},
		{51, FactorMediumMessage, 20},
		{50, FactorShortMessage, 10},
		{21, FactorShortMessage, 10},
		{20, FactorMinimalMessage, 5},
		{0, FactorMinimalMessage, 5},
	}

	for _, tc := range cases {
		// Multibyte runes prove the tiers count characters, not bytes.
		result := engine.Score(Input{Message: strings.Repeat("ä", tc.length)})
		if result.Factors[tc.factor] != tc.points {
			t.Fatalf("length %d: expected factor %s=%d, got %v", tc.length, tc.factor, tc.points, result.Factors)
		}
	}
}

func TestScoreKeywordDetection(t *testing.T) {
	engine := New()

	urgent := engine.Score(Input{Message: "Tarvitsen auton HETI ensi viikolla."})
	if urgent.Factors[FactorUrgentContact] != 10 {
		t.Fatalf("expected urgency keyword to score, factors: %v", urgent.Factors)
	}

	intent := engine.Score(Input{Message: "Haluaisin varata koeajon ja keskustella rahoituksesta."})
	if intent.Factors[FactorPurchaseIntent] != 10 {
		t.Fatalf("expected purchase keyword to score, factors: %v", intent.Factors)
	}

	neutral := engine.Score(Input{Message: "Mitkä ovat aukioloaikanne?"})
	if _, ok := neutral.Factors[FactorUrgentContact]; ok {
		t.Fatalf("did not expect urgency factor for neutral message")
	}
	if _, ok := neutral.Factors[FactorPurchaseIntent]; ok {
		t.Fatalf("did not expect purchase factor for neutral message")
	}
}

func TestScoreQualityThresholds(t *testing.T) {
	// phone (20) + business email (10) + full name (10) + detailed message (30)
	// lands exactly on the high boundary.
	engine := New()
	result := engine.Score(Input{
		Name:    "Matti Meikäläinen",
		Email:   "matti@yritys.fi",
		Phone:   "+358401234567",
		Message: strings.Repeat("x", 101),
	})
	if result.Score != 70 || result.Quality != QualityHigh {
		t.Fatalf("expected score 70/high, got %d/%s", result.Score, result.Quality)
	}

	// phone (20) + free email (5) + partial name (5) + short message (10)
	// lands exactly on the medium boundary.
	result = engine.Score(Input{
		Name:    "Matti",
		Email:   "matti@gmail.com",
		Phone:   "+358401234567",
		Message: strings.Repeat("x", 21),
	})
	if result.Score != 40 || result.Quality != QualityMedium {
		t.Fatalf("expected score 40/medium, got %d/%s", result.Score, result.Quality)
	}
}

func TestNewFromYAMLOverridesDefaults(t *testing.T) {
	engine, err := NewFromYAML([]byte(`
free_email_providers:
  - example.org
urgency_keywords:
  - sofort
purchase_keywords: []
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result := engine.Score(Input{Email: "a@example.org", Message: "Sofort bitte"})
	if result.Factors[FactorPersonalEmail] != 5 {
		t.Fatalf("expected overridden provider list to apply, factors: %v", result.Factors)
	}
	if result.Factors[FactorUrgentContact] != 10 {
		t.Fatalf("expected overridden urgency list to apply, factors: %v", result.Factors)
	}

	if _, err := NewFromYAML([]byte("{invalid")); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestScoreProperties(t *testing.T) {
	engine := New()

	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	inputGen := gen.Struct(reflect.TypeOf(Input{}), map[string]gopter.Gen{
		"Name":        gen.AlphaString(),
		"Email":       gen.AlphaString(),
		"Phone":       gen.AlphaString(),
		"Message":     gen.AnyString(),
		"CarInterest": gen.AlphaString(),
	})

	properties.Property("score stays within [0, 100]", prop.ForAll(
		func(in Input) bool {
			result := engine.Score(in)
			return result.Score >= 0 && result.Score <= 100
		},
		inputGen,
	))

	properties.Property("quality bucket matches score thresholds", prop.ForAll(
		func(in Input) bool {
			result := engine.Score(in)
			switch {
			case result.Score >= 70:
				return result.Quality == QualityHigh
			case result.Score >= 40:
				return result.Quality == QualityMedium
			default:
				return result.Quality == QualityLow
			}
		},
		inputGen,
	))

	properties.Property("scoring is deterministic", prop.ForAll(
		func(in Input) bool {
			first := engine.Score(in)
			second := engine.Score(in)
			return first.Score == second.Score && first.Quality == second.Quality
		},
		inputGen,
	))

	properties.TestingRun(t)
}
