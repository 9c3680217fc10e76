package heuristic

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/spigell/cv-coach/internal/scoring"
)

func seeded(seed int64) *Backend {
	return New(WithRand(rand.New(rand.NewSource(seed))))
}

func TestAnalyzeResumeKeySetMatchesInput(t *testing.T) {
	t.Parallel()

	content := map[string]string{
		"Work Experience": "Senior Developer at ABC Tech\nWorked with React and TypeScript",
		"Education":       "BSc Computer Science",
		"Skills":          "JavaScript, Go",
		"Empty":           "   ",
	}

	analysis, err := seeded(1).AnalyzeResume(context.Background(), content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(analysis.ImprovedContent) != len(content) {
		t.Fatalf("expected %d keys, got %d", len(content), len(analysis.ImprovedContent))
	}
	for title := range content {
		if _, ok := analysis.ImprovedContent[title]; !ok {
			t.Fatalf("missing key %q in improved content", title)
		}
	}
}

func TestAnalyzeResumeOneImprovementPerNonEmptySection(t *testing.T) {
	t.Parallel()

	content := map[string]string{
		"Work Experience": "Worked with React",
		"Skills":          "JavaScript, Go",
		"Empty":           "",
	}

	analysis, err := seeded(1).AnalyzeResume(context.Background(), content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(analysis.Improvements) != 2 {
		t.Fatalf("expected 2 improvements, got %d", len(analysis.Improvements))
	}
}

func TestAnalyzeResumeExperienceRule(t *testing.T) {
	t.Parallel()

	content := map[string]string{
		"Work Experience": "Worked with React and TypeScript",
	}

	analysis, err := seeded(1).AnalyzeResume(context.Background(), content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	improvement := analysis.Improvements[0]
	if improvement.Suggestion != "developed and shipped React and TypeScript" {
		t.Fatalf("unexpected suggestion: %q", improvement.Suggestion)
	}
	if analysis.ImprovedContent["Work Experience"] != improvement.Suggestion {
		t.Fatalf("improved content not rewritten: %q", analysis.ImprovedContent["Work Experience"])
	}
}

func TestAnalyzeResumeSkillsRule(t *testing.T) {
	t.Parallel()

	content := map[string]string{
		"Skills": "JavaScript, Go",
	}

	analysis, err := seeded(1).AnalyzeResume(context.Background(), content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	improvement := analysis.Improvements[0]
	if !strings.HasSuffix(improvement.Suggestion, "(2+ years hands-on experience)") {
		t.Fatalf("unexpected suggestion: %q", improvement.Suggestion)
	}
}

func TestAnalyzeResumeDeterministicWithSeed(t *testing.T) {
	t.Parallel()

	content := map[string]string{
		"Work Experience": "line one\nline two\nline three\nline four",
	}

	first, err := seeded(42).AnalyzeResume(context.Background(), content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := seeded(42).AnalyzeResume(context.Background(), content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.Improvements[0].Original != second.Improvements[0].Original {
		t.Fatalf("expected identical sampling: %q vs %q",
			first.Improvements[0].Original, second.Improvements[0].Original)
	}
}

func TestAnalyzeResumeEmptyContent(t *testing.T) {
	t.Parallel()

	_, err := seeded(1).AnalyzeResume(context.Background(), map[string]string{})
	if !errors.Is(err, scoring.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAnalyzeJobDescriptionBlank(t *testing.T) {
	t.Parallel()

	_, err := seeded(1).AnalyzeJobDescription(context.Background(), map[string]string{"Skills": "Go"}, "   ")
	if !errors.Is(err, scoring.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAnalyzeJobDescriptionRanges(t *testing.T) {
	t.Parallel()

	fit, err := seeded(1).AnalyzeJobDescription(context.Background(), map[string]string{"Skills": "Go"}, "Senior Frontend Developer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fit.OverallMatch < 0 || fit.OverallMatch > 1 {
		t.Fatalf("overall match out of range: %v", fit.OverallMatch)
	}
	for _, match := range fit.Matches {
		if match.Confidence < 0 || match.Confidence > 1 {
			t.Fatalf("confidence out of range for %s: %v", match.Skill, match.Confidence)
		}
	}
	if len(fit.Gaps) == 0 {
		t.Fatalf("expected gaps to be populated")
	}
}

func TestInterviewQuestionsFixedCount(t *testing.T) {
	t.Parallel()

	questions, err := seeded(1).InterviewQuestions(context.Background(), "general")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(questions) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(questions))
	}

	for _, q := range questions {
		if q.Question == "" || q.Hint == "" {
			t.Fatalf("question missing text or hint: %+v", q)
		}
	}
}

func TestEvaluateAnswerShort(t *testing.T) {
	t.Parallel()

	// 16 characters: score must clamp to the 0.5 floor.
	evaluation, err := seeded(1).EvaluateAnswer(context.Background(), "Tell me about yourself", "I am a developer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if evaluation.Score != 0.5 {
		t.Fatalf("expected score 0.5, got %v", evaluation.Score)
	}
	if evaluation.Evaluation != EvaluationTooShort {
		t.Fatalf("expected too-short evaluation, got %q", evaluation.Evaluation)
	}
	if len(evaluation.ImprovementPoints) == 0 {
		t.Fatalf("expected improvement points")
	}
}

func TestEvaluateAnswerBands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		answer     string
		evaluation string
		score      float64
	}{
		{
			name:       "adequate answer",
			answer:     strings.Repeat("a", 120),
			evaluation: EvaluationAdequate,
			score:      0.95, // 120/100 capped
		},
		{
			name:       "thorough answer capped at 0.95",
			answer:     strings.Repeat("a", 300),
			evaluation: EvaluationThorough,
			score:      0.95,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			evaluation, err := seeded(1).EvaluateAnswer(context.Background(), "q", tt.answer)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if evaluation.Evaluation != tt.evaluation {
				t.Fatalf("expected %q, got %q", tt.evaluation, evaluation.Evaluation)
			}
			if evaluation.Score != tt.score {
				t.Fatalf("expected score %v, got %v", tt.score, evaluation.Score)
			}
		})
	}
}

func TestEvaluateAnswerBlankQuestion(t *testing.T) {
	t.Parallel()

	_, err := seeded(1).EvaluateAnswer(context.Background(), "  ", "answer")
	if !errors.Is(err, scoring.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
