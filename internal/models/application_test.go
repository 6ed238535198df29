package models

import "testing"

func TestStageTransitionTable(t *testing.T) {
	t.Parallel()

	allowed := map[Stage][]Stage{
		StageApplied:     {StageAiScreening, StageRejected},
		StageAiScreening: {StageReview, StageRejected},
		StageReview:      {StageOffer, StageRejected},
		StageOffer:       {StageHired, StageRejected},
		StageHired:       {},
		StageRejected:    {},
	}

	for _, from := range AllStages() {
		for _, to := range AllStages() {
			want := false
			for _, ok := range allowed[from] {
				if ok == to {
					want = true
				}
			}
			if got := from.CanTransitionTo(to); got != want {
				t.Errorf("%s -> %s: CanTransitionTo = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestStageTerminal(t *testing.T) {
	t.Parallel()

	terminal := map[Stage]bool{
		StageHired:    true,
		StageRejected: true,
	}
	for _, s := range AllStages() {
		if got := s.Terminal(); got != terminal[s] {
			t.Errorf("%s: Terminal = %v, want %v", s, got, terminal[s])
		}
	}
}

func TestStageValid(t *testing.T) {
	t.Parallel()

	for _, s := range AllStages() {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	for _, s := range []Stage{"", "interviewing", "APPLIED", "hired "} {
		if s.Valid() {
			t.Errorf("%q should not be valid", s)
		}
	}
}

func TestAllStagesCoversVariants(t *testing.T) {
	t.Parallel()

	if len(AllStages()) != 6 {
		t.Fatalf("expected 6 stages, got %d", len(AllStages()))
	}
	seen := map[Stage]bool{}
	for _, s := range AllStages() {
		if seen[s] {
			t.Fatalf("duplicate stage %s", s)
		}
		seen[s] = true
	}
}
