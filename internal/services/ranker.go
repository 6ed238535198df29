package services

import (
	"context"
	"encoding/json"
	"strings"

	"hirestack/recruit-api/internal/apperr"
	"hirestack/recruit-api/internal/models"
)

// ExperienceInput is one experience item as the AI service delivers it.
// Upstream is inconsistent: entries arrive either as structured objects or
// as bare strings. A bare string is kept verbatim in Period with Role and
// Company left empty, so the original text survives normalization.
type ExperienceInput struct {
	Role    string `json:"role"`
	Company string `json:"company"`
	Period  string `json:"period"`
}

func (e *ExperienceInput) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*e = ExperienceInput{Period: s}
		return nil
	}
	type plain ExperienceInput
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*e = ExperienceInput(p)
	return nil
}

// NormalizeExperience maps upstream experience items onto the single
// stored shape.
func NormalizeExperience(entries []ExperienceInput) []models.ExperienceEntry {
	if len(entries) == 0 {
		return nil
	}
	out := make([]models.ExperienceEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, models.ExperienceEntry{
			Role:    e.Role,
			Company: e.Company,
			Period:  e.Period,
		})
	}
	return out
}

// RankingPayload is the structured result the AI service returns for one
// candidate against one job description.
type RankingPayload struct {
	Score         float64           `json:"score"`
	Justification string            `json:"justification"`
	Strengths     []string          `json:"strengths"`
	Weaknesses    []string          `json:"weaknesses"`
	RedFlags      []string          `json:"red_flags"`
	Skills        []string          `json:"skills"`
	Experience    []ExperienceInput `json:"experience"`
}

// Validate rejects payloads missing the required analysis fields before
// anything is written.
func (p *RankingPayload) Validate() error {
	if p == nil {
		return apperr.Wrap(apperr.ErrInvalidUpstreamResponse, "empty ranking payload")
	}
	if strings.TrimSpace(p.Justification) == "" {
		return apperr.Wrap(apperr.ErrInvalidUpstreamResponse, "ranking payload missing justification")
	}
	if p.Score < 0 || p.Score > 100 {
		return apperr.Wrap(apperr.ErrInvalidUpstreamResponse, "ranking score %.2f out of range [0,100]", p.Score)
	}
	return nil
}

// ParseRankingPayload extracts and validates a ranking result from a raw
// model response, tolerating markdown fences around the JSON.
func ParseRankingPayload(response string) (*RankingPayload, error) {
	var payload RankingPayload
	if err := json.Unmarshal([]byte(ExtractJSON(response)), &payload); err != nil {
		return nil, apperr.Wrap(apperr.ErrInvalidUpstreamResponse, "unparseable ranking response: %v", err)
	}
	if err := payload.Validate(); err != nil {
		return nil, err
	}
	return &payload, nil
}

// RankerService asks the AI collaborator to score one candidate's resume
// against a job description.
type RankerService interface {
	RankCandidate(ctx context.Context, jobDescription, language, resumeText, ragContext string) (*RankingPayload, error)
}

type rankerService struct {
	gemini        GeminiService
	promptBuilder *PromptBuilder
	maxRetries    int
}

func NewRankerService(gemini GeminiService, maxRetries int) RankerService {
	return &rankerService{
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
	}
}

func (r *rankerService) RankCandidate(ctx context.Context, jobDescription, language, resumeText, ragContext string) (*RankingPayload, error) {
	prompt := r.promptBuilder.BuildRankingPrompt(jobDescription, language, resumeText, ragContext)
	response, err := r.gemini.GenerateTextWithRetry(ctx, prompt, 0.3, r.maxRetries)
	if err != nil {
		return nil, err
	}
	return ParseRankingPayload(response)
}

// ExtractJSON pulls the JSON object or array out of text that may wrap it
// in markdown code fences or prose.
func ExtractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	if startObj != -1 && endObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	}
	if startArr != -1 && endArr != -1 && endArr > startArr {
		return text[startArr : endArr+1]
	}
	return text
}
