package services

import (
	"fmt"
	"strings"

	"hirestack/recruit-api/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildRankingPrompt creates the prompt that scores one candidate's resume
// against a job description. The response contract matches RankingPayload.
func (pb *PromptBuilder) BuildRankingPrompt(jobDescription, language, resumeText, ragContext string) string {
	return fmt.Sprintf(`You are an expert HR recruiter ranking a candidate against a job description.
Respond in %s.

JOB DESCRIPTION:
%s

RELEVANT CONTEXT:
%s

CANDIDATE RESUME:
%s

Assess how well the candidate fits the job description. Be objective and
cite specific evidence from the resume.

Return your response in the following JSON format:
{
  "score": <0-100 overall fit score>,
  "justification": "<3-5 sentences explaining the score>",
  "strengths": ["<strength>", ...],
  "weaknesses": ["<weakness>", ...],
  "red_flags": ["<red flag>", ...],
  "skills": ["<skill extracted from the resume>", ...],
  "experience": [{"role": "<role>", "company": "<company>", "period": "<period>"}, ...]
}

Every experience entry must be an object with role, company and period.`,
		language, jobDescription, ragContext, resumeText)
}

// BuildChatPrompt creates the prompt for one chat turn over a context. The
// model is asked for a reasoning/answer pair.
func (pb *PromptBuilder) BuildChatPrompt(jobDescription string, history []models.ChatMessage, question string) string {
	var conversation strings.Builder
	for _, msg := range history {
		conversation.WriteString(fmt.Sprintf("%s: %s\n", msg.Role, msg.Content))
	}

	return fmt.Sprintf(`You are an expert HR assistant answering a recruiter's questions about
candidates being considered for the following job:

JOB DESCRIPTION:
%s

CONVERSATION SO FAR:
%s

RECRUITER QUESTION:
%s

Return your response in the following JSON format:
{
  "reasoning": "<your step-by-step reasoning, optional>",
  "answer": "<the answer shown to the recruiter>"
}`,
		jobDescription, conversation.String(), question)
}

// FormatRAGContext renders retrieved resume chunks into a prompt section.
func FormatRAGContext(results []SearchResult) string {
	if len(results) == 0 {
		return "(none)"
	}
	var b strings.Builder
	for i, r := range results {
		b.WriteString(fmt.Sprintf("--- excerpt %d (relevance %.2f) ---\n%s\n", i+1, r.Score, r.Text))
	}
	return b.String()
}
