package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/nautilus/seacheck/internal/i18n"
)

// SafetyReport is the content of a safety-test result message sent to
// an emergency contact.
type SafetyReport struct {
	Score      int
	Passengers int
	// NoKeys are the question keys answered "no", in sequence order,
	// excluding the passenger question.
	NoKeys []string
}

// Format renders the report in the language of the request context.
func (r SafetyReport) Format(ctx context.Context) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s.\n", i18n.T(ctx, "safetyTestComplete"))
	fmt.Fprintf(&b, "%s: %d\n", i18n.T(ctx, "riskAssessment"), r.Score)
	fmt.Fprintf(&b, "%s: %d", i18n.T(ctx, "numberOfPeopleOnboard"), r.Passengers)

	if len(r.NoKeys) > 0 {
		fmt.Fprintf(&b, "\n\n%s:\n", i18n.T(ctx, "pointsAnsweredNo"))
		for i, key := range r.NoKeys {
			if i > 0 {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "- %s", i18n.T(ctx, key))
		}
	}
	return b.String()
}
