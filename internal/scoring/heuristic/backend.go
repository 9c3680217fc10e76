// Package heuristic provides the reference scoring backend. It does no real
// natural-language processing: improvements come from string-replacement
// rules, answer scores from answer length, and the job description report
// from a fixed table. It exists so the workflows can run without network
// access and so their behavior stays testable.
package heuristic

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/cv-coach/internal/scoring"
	"github.com/spigell/cv-coach/internal/utils"
)

// Evaluation messages, banded by answer length.
const (
	EvaluationTooShort = "The answer is too short and lacks concrete detail."
	EvaluationAdequate = "The answer has a reasonable length but could use more supporting detail."
	EvaluationThorough = "The answer is complete and detailed, showing thorough preparation."
)

var (
	workedWithRe    = regexp.MustCompile(`(?i)worked with`)
	trailingGoodRe  = regexp.MustCompile(`(?i)good$`)
	experienceWords = []string{"experience", "employment"}
	skillWords      = []string{"skill"}
)

type Backend struct {
	rand    *rand.Rand
	latency time.Duration
	logger  *zap.Logger
}

type Option func(*Backend)

// WithRand injects the randomness source used to sample which line of a
// section receives an improvement. Tests pass a seeded source to pin
// outcomes.
func WithRand(r *rand.Rand) Option {
	return func(b *Backend) {
		b.rand = r
	}
}

// WithLatency adds an artificial delay to every operation, standing in for a
// remote backend's response time.
func WithLatency(d time.Duration) Option {
	return func(b *Backend) {
		b.latency = d
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(b *Backend) {
		b.logger = logger
	}
}

func New(opts ...Option) *Backend {
	b := &Backend{
		rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

func (b *Backend) AnalyzeResume(ctx context.Context, content map[string]string) (*scoring.ResumeAnalysis, error) {
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: resume content is empty", scoring.ErrInvalidInput)
	}

	if err := utils.WaitFor(ctx, b.latency); err != nil {
		return nil, scoring.AsUnavailable(err)
	}

	analysis := &scoring.ResumeAnalysis{
		Improvements:    []scoring.Improvement{},
		ImprovedContent: make(map[string]string, len(content)),
	}

	// Map iteration order is randomized; sort titles so a seeded rand source
	// produces stable output.
	titles := make([]string, 0, len(content))
	for title := range content {
		titles = append(titles, title)
	}
	sort.Strings(titles)

	for _, title := range titles {
		text := content[title]
		analysis.ImprovedContent[title] = text

		if strings.TrimSpace(text) == "" {
			continue
		}

		lines := nonBlankLines(text)
		if len(lines) == 0 {
			continue
		}

		line := lines[b.rand.Intn(len(lines))]
		improvement := improveLine(title, line)
		analysis.Improvements = append(analysis.Improvements, improvement)
		analysis.ImprovedContent[title] = strings.Replace(text, line, improvement.Suggestion, 1)
	}

	b.logger.Debug("analyzed resume",
		zap.Int("sections", len(content)),
		zap.Int("improvements", len(analysis.Improvements)),
	)

	return analysis, nil
}

func (b *Backend) AnalyzeJobDescription(ctx context.Context, content map[string]string, jobDescription string) (*scoring.JobFit, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return nil, fmt.Errorf("%w: job description is blank", scoring.ErrInvalidInput)
	}

	if err := utils.WaitFor(ctx, b.latency); err != nil {
		return nil, scoring.AsUnavailable(err)
	}

	return &scoring.JobFit{
		Matches: []scoring.Match{
			{Skill: "React", Confidence: 0.9},
			{Skill: "JavaScript", Confidence: 0.95},
			{Skill: "TypeScript", Confidence: 0.8},
			{Skill: "Team collaboration", Confidence: 0.85},
		},
		Gaps: []scoring.Gap{
			{
				Skill:      "GraphQL",
				Importance: scoring.ImportanceHigh,
				Suggestion: "Highlight projects that used REST APIs and emphasize how quickly you pick up new technologies.",
			},
			{
				Skill:      "Docker",
				Importance: scoring.ImportanceMedium,
				Suggestion: "If you have CI/CD or deployment experience, make it explicit in your resume.",
			},
		},
		OverallMatch: 0.78,
	}, nil
}

// InterviewQuestions returns the built-in question list. The job type is
// accepted for interface compatibility but does not change the result.
func (b *Backend) InterviewQuestions(ctx context.Context, jobType string) ([]scoring.Question, error) {
	if err := utils.WaitFor(ctx, b.latency); err != nil {
		return nil, scoring.AsUnavailable(err)
	}

	b.logger.Debug("serving default interview questions", zap.String("job_type", jobType))

	questions := make([]scoring.Question, len(defaultQuestions))
	copy(questions, defaultQuestions)

	return questions, nil
}

func (b *Backend) EvaluateAnswer(ctx context.Context, question, answer string) (*scoring.AnswerEvaluation, error) {
	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("%w: question is blank", scoring.ErrInvalidInput)
	}

	if err := utils.WaitFor(ctx, b.latency); err != nil {
		return nil, scoring.AsUnavailable(err)
	}

	score := float64(len(answer)) / 100
	if score < 0.5 {
		score = 0.5
	}
	if score > 0.95 {
		score = 0.95
	}

	evaluation := &scoring.AnswerEvaluation{Score: score}

	switch {
	case len(answer) < 50:
		evaluation.Evaluation = EvaluationTooShort
		evaluation.ImprovementPoints = []string{
			"Expand the answer with concrete examples",
			"Mention the results you achieved",
			"Structure the answer with the STAR method",
		}
	case len(answer) < 200:
		evaluation.Evaluation = EvaluationAdequate
		evaluation.ImprovementPoints = []string{
			"Back up the key points with specific data or numbers",
			"Put more emphasis on skills relevant to the position",
		}
	default:
		evaluation.Evaluation = EvaluationThorough
		evaluation.ImprovementPoints = []string{
			"Keep the answer focused on the most important points",
			"Use confident body language and tone in the real interview",
		}
	}

	return evaluation, nil
}

func nonBlankLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// improveLine picks the replacement rule by section title: experience-like
// sections get active wording, skill-like sections get a proficiency note,
// everything else gets measurable phrasing.
func improveLine(title, line string) scoring.Improvement {
	lower := strings.ToLower(title)

	if containsAny(lower, experienceWords) {
		return scoring.Improvement{
			Section:    title,
			Original:   line,
			Suggestion: workedWithRe.ReplaceAllString(line, "developed and shipped"),
			Reason:     "Use active and specific wording to show your role.",
		}
	}

	if containsAny(lower, skillWords) {
		return scoring.Improvement{
			Section:    title,
			Original:   line,
			Suggestion: line + " (2+ years hands-on experience)",
			Reason:     "Add concrete proficiency levels to make your skills stand out.",
		}
	}

	return scoring.Improvement{
		Section:    title,
		Original:   line,
		Suggestion: trailingGoodRe.ReplaceAllString(line, "excellent, top 10% of the class"),
		Reason:     "Use specific, measurable facts to highlight your achievements.",
	}
}

func containsAny(s string, words []string) bool {
	for _, word := range words {
		if strings.Contains(s, word) {
			return true
		}
	}
	return false
}
