package risk

// Level is the discrete risk classification of a completed test.
type Level string

const (
	LevelLow      Level = "low"
	LevelModerate Level = "moderate"
	LevelHigh     Level = "high"
	LevelExtreme  Level = "extreme"
	LevelCritical Level = "critical"
)

// overLimitPenalty forces the final classification into the worst tier
// whenever the boat's capacity is exceeded, regardless of how well the
// rest of the checklist was answered.
const overLimitPenalty = 100

// Score reduces the answered questions to a numeric risk score and
// applies the capacity penalty. Unanswered questions contribute nothing,
// so a score can be computed for an in-progress session.
func (s *Session) Score() int {
	total := 0
	for i, q := range s.questions {
		if ans, ok := s.answers[i]; ok {
			total += q.RiskContribution(ans)
		}
	}
	if s.passengerOverLimit {
		total += overLimitPenalty
	}
	return total
}

// Classify maps a final score to a risk level. Exceeding the boat's
// capacity is always critical, independent of the score.
func Classify(score int, overLimit bool) Level {
	switch {
	case overLimit:
		return LevelCritical
	case score <= 3:
		return LevelLow
	case score <= 8:
		return LevelModerate
	case score <= 15:
		return LevelHigh
	default:
		return LevelExtreme
	}
}
