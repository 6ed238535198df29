package services

import (
	"encoding/json"
	"errors"
	"testing"

	"hirestack/recruit-api/internal/apperr"
)

func TestExtractJSONStripsMarkdownFences(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare object", `{"score": 80}`, `{"score": 80}`},
		{"fenced object", "```json\n{\"score\": 80}\n```", "{\"score\": 80}"},
		{"prose around object", "Here you go:\n{\"score\": 80}\nHope that helps.", `{"score": 80}`},
		{"array", "```json\n[1, 2]\n```", "[1, 2]"},
	}
	for _, tc := range cases {
		got := ExtractJSON(tc.in)
		if got != tc.want {
			t.Fatalf("%s: ExtractJSON = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestParseRankingPayload(t *testing.T) {
	t.Parallel()

	response := "```json\n" + `{
		"score": 87.5,
		"justification": "deep Go and Postgres background",
		"strengths": ["go", "distributed systems"],
		"red_flags": [],
		"skills": ["go", "postgres", "grpc"],
		"experience": [
			{"role": "Staff Engineer", "company": "Acme", "period": "2020-2024"},
			"5 years of freelance backend work"
		]
	}` + "\n```"

	payload, err := ParseRankingPayload(response)
	if err != nil {
		t.Fatalf("ParseRankingPayload error: %v", err)
	}
	if payload.Score != 87.5 {
		t.Fatalf("score = %v", payload.Score)
	}
	if len(payload.Experience) != 2 {
		t.Fatalf("expected 2 experience entries, got %d", len(payload.Experience))
	}
	if payload.Experience[0].Role != "Staff Engineer" {
		t.Fatalf("structured entry lost its role: %+v", payload.Experience[0])
	}
	if payload.Experience[1].Period != "5 years of freelance backend work" {
		t.Fatalf("string entry not kept in period: %+v", payload.Experience[1])
	}
	if payload.Experience[1].Role != "" || payload.Experience[1].Company != "" {
		t.Fatalf("string entry should leave role and company empty: %+v", payload.Experience[1])
	}
}

func TestParseRankingPayloadRejectsBadResponses(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
	}{
		{"not json", "the model refused"},
		{"missing justification", `{"score": 50}`},
		{"blank justification", `{"score": 50, "justification": "   "}`},
		{"score too low", `{"score": -3, "justification": "x"}`},
		{"score too high", `{"score": 120, "justification": "x"}`},
	}
	for _, tc := range cases {
		if _, err := ParseRankingPayload(tc.in); !errors.Is(err, apperr.ErrInvalidUpstreamResponse) {
			t.Fatalf("%s: expected InvalidUpstreamResponse, got %v", tc.name, err)
		}
	}
}

func TestNormalizeExperience(t *testing.T) {
	t.Parallel()

	var entries []ExperienceInput
	raw := `[{"role": "SRE", "company": "Acme", "period": "2021-2023"}, "led a platform team"]`
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}

	got := NormalizeExperience(entries)
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Role != "SRE" || got[0].Company != "Acme" || got[0].Period != "2021-2023" {
		t.Fatalf("structured entry mangled: %+v", got[0])
	}
	if got[1].Role != "" || got[1].Company != "" || got[1].Period != "led a platform team" {
		t.Fatalf("string entry mangled: %+v", got[1])
	}

	if NormalizeExperience(nil) != nil {
		t.Fatalf("expected nil for empty input")
	}
}
