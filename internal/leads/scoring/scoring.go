// Package scoring implements the lead scoring engine. Scoring is a pure
// computation over a submission snapshot: no I/O, no clock, no randomness,
// so the same input always produces the same score.
package scoring

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed wordlists.yaml
var defaultWordlists []byte

// Quality buckets derived from the numeric score.
const (
	QualityHigh   = "high"
	QualityMedium = "medium"
	QualityLow    = "low"
)

// Priority labels stored alongside a lead for admin triage. They map
// one-to-one from quality.
const (
	PriorityHigh   = "HIGH"
	PriorityMedium = "MEDIUM"
	PriorityLow    = "LOW"
)

// Factor names reported in score breakdowns.
const (
	FactorPhone           = "phone"
	FactorBusinessEmail   = "business_email"
	FactorPersonalEmail   = "personal_email"
	FactorFullName        = "full_name"
	FactorPartialName     = "partial_name"
	FactorDetailedMessage = "detailed_message"
	FactorMediumMessage   = "medium_message"
	FactorShortMessage    = "short_message"
	FactorMinimalMessage  = "minimal_message"
	FactorCarInterest     = "car_interest"
	FactorUrgentContact   = "urgent_contact"
	FactorPurchaseIntent  = "purchase_intent"
)

const maxScore = 100

// Input is the submission snapshot the engine scores. Fields are assumed
// to be already trimmed; the engine does not sanitize.
type Input struct {
	Name        string
	Email       string
	Phone       string
	Message     string
	CarInterest string
}

// Result is the outcome of scoring a single submission.
type Result struct {
	Score   int
	Quality string
	// Factors maps each contributing factor to the points it added.
	Factors map[string]int
}

// Priority returns the persistence label for the result's quality bucket.
func (r Result) Priority() string {
	switch r.Quality {
	case QualityHigh:
		return PriorityHigh
	case QualityMedium:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

type wordlists struct {
	FreeEmailProviders []string `yaml:"free_email_providers"`
	UrgencyKeywords    []string `yaml:"urgency_keywords"`
	PurchaseKeywords   []string `yaml:"purchase_keywords"`
}

// Engine scores lead submissions against configurable word lists.
type Engine struct {
	freeProviders map[string]bool
	urgency       []string
	purchase      []string
}

// New returns an engine loaded with the embedded default word lists.
func New() *Engine {
	engine, err := NewFromYAML(defaultWordlists)
	if err != nil {
		// The embedded defaults are validated by tests; a parse failure
		// here is a build defect.
		panic(fmt.Sprintf("scoring: embedded wordlists invalid: %v", err))
	}
	return engine
}

// NewFromYAML builds an engine from a YAML wordlist document, allowing
// deployments to override the defaults.
func NewFromYAML(data []byte) (*Engine, error) {
	var lists wordlists
	if err := yaml.Unmarshal(data, &lists); err != nil {
		return nil, fmt.Errorf("parse wordlists: %w", err)
	}

	freeProviders := make(map[string]bool, len(lists.FreeEmailProviders))
	for _, provider := range lists.FreeEmailProviders {
		freeProviders[strings.ToLower(provider)] = true
	}

	return &Engine{
		freeProviders: freeProviders,
		urgency:       lowerAll(lists.UrgencyKeywords),
		purchase:      lowerAll(lists.PurchaseKeywords),
	}, nil
}

// Score computes the score, quality bucket and factor breakdown for a
// submission.
func (e *Engine) Score(in Input) Result {
	factors := make(map[string]int)
	total := 0

	add := func(factor string, points int) {
		factors[factor] = points
		total += points
	}

	if strings.TrimSpace(in.Phone) != "" {
		add(FactorPhone, 20)
	}

	if in.Email != "" {
		if e.isFreeProvider(in.Email) {
			add(FactorPersonalEmail, 5)
		} else {
			add(FactorBusinessEmail, 10)
		}
	}

	if in.Name != "" {
		if len(strings.Fields(in.Name)) >= 2 {
			add(FactorFullName, 10)
		} else {
			add(FactorPartialName, 5)
		}
	}

	// Length tiers count characters, not bytes, so Finnish diacritics
	// do not inflate short messages.
	switch length := len([]rune(in.Message)); {
	case length > 100:
		add(FactorDetailedMessage, 30)
	case length > 50:
		add(FactorMediumMessage, 20)
	case length > 20:
		add(FactorShortMessage, 10)
	default:
		add(FactorMinimalMessage, 5)
	}

	if strings.TrimSpace(in.CarInterest) != "" {
		add(FactorCarInterest, 30)
	}

	message := strings.ToLower(in.Message)
	if containsAny(message, e.urgency) {
		add(FactorUrgentContact, 10)
	}
	if containsAny(message, e.purchase) {
		add(FactorPurchaseIntent, 10)
	}

	if total > maxScore {
		total = maxScore
	}

	return Result{
		Score:   total,
		Quality: qualityFor(total),
		Factors: factors,
	}
}

func (e *Engine) isFreeProvider(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	return e.freeProviders[strings.ToLower(email[at+1:])]
}

func qualityFor(score int) string {
	switch {
	case score >= 70:
		return QualityHigh
	case score >= 40:
		return QualityMedium
	default:
		return QualityLow
	}
}

func containsAny(haystack string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, value := range values {
		out[i] = strings.ToLower(value)
	}
	return out
}
