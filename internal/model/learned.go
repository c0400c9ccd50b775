package model

import "time"

// Learned-pattern confidence parameters. Confidence grows with repeat
// confirmations and never exceeds the cap, keeping user patterns below
// absolute certainty so a curated dictionary fix can still win a tie.
const (
	LearnedBaseConfidence = 90.0
	LearnedConfidenceStep = 2.0
	LearnedConfidenceCap  = 98.0
	LearnedAbsoluteFloor  = 80.0 // short-circuits arbitration entirely
	LearnedCandidateFloor = 75.0 // still outranks every other layer
)

// LearnedPattern is a category decision persisted after a user correction,
// keyed by the normalized description.
type LearnedPattern struct {
	LastUsedAt     time.Time
	RawDescription string
	Normalized     string
	Category       string
	Subcategory    string
	Confidence     float64
	UsageCount     int
}

// BoostedConfidence computes the confidence for a pattern confirmed
// usageCount times: min(base + usageCount*step, cap). Monotonic in usageCount.
func BoostedConfidence(usageCount int) float64 {
	c := LearnedBaseConfidence + float64(usageCount)*LearnedConfidenceStep
	if c > LearnedConfidenceCap {
		return LearnedConfidenceCap
	}
	return c
}
