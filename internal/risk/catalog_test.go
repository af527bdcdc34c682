package risk

import "testing"

func TestCatalogShape(t *testing.T) {
	qs := Catalog()

	if len(qs) != 17 {
		t.Fatalf("expected 17 base questions, got %d", len(qs))
	}
	if !qs[0].Passenger {
		t.Error("expected the passenger question first")
	}
	last := qs[len(qs)-1]
	if !last.License {
		t.Error("expected the license question last")
	}
	if len(last.FollowUps) != 4 {
		t.Errorf("expected 4 license follow-ups, got %d", len(last.FollowUps))
	}

	passengerCount, licenseCount := 0, 0
	seen := make(map[string]bool)
	for _, q := range qs {
		if seen[q.Key] {
			t.Errorf("duplicate question key %q", q.Key)
		}
		seen[q.Key] = true
		if q.Passenger {
			passengerCount++
		}
		if q.License {
			licenseCount++
		}
	}
	if passengerCount != 1 {
		t.Errorf("expected exactly one passenger question, got %d", passengerCount)
	}
	if licenseCount != 1 {
		t.Errorf("expected exactly one license question, got %d", licenseCount)
	}
}

func TestCatalogReturnsCopy(t *testing.T) {
	a := Catalog()
	a[0] = QuestionDefinition{Key: "mutated"}
	b := Catalog()
	if b[0].Key == "mutated" {
		t.Error("Catalog returned a shared slice")
	}
}

func TestRiskContribution(t *testing.T) {
	tests := []struct {
		name   string
		q      QuestionDefinition
		answer bool
		want   int
	}{
		{"yes never adds risk", plainQ("q", 3), true, 0},
		{"no adds the weight", plainQ("q", 3), false, 3},
		{"passenger yes", QuestionDefinition{Key: "p", Passenger: true}, true, 0},
		{"passenger no", QuestionDefinition{Key: "p", Passenger: true}, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.q.RiskContribution(tt.answer); got != tt.want {
				t.Errorf("RiskContribution(%v) = %d, want %d", tt.answer, got, tt.want)
			}
		})
	}
}
