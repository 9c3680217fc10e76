// Package gemini implements the scoring backend on top of the Gemini API.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	intlogger "github.com/spigell/cv-coach/internal/logger"
	"github.com/spigell/cv-coach/internal/scoring"
	"github.com/spigell/cv-coach/internal/utils"
)

//go:embed prompts/analyze_resume.md
var analyzeResumePrompt string

//go:embed prompts/analyze_job_description.md
var analyzeJobDescriptionPrompt string

//go:embed prompts/interview_questions.md
var interviewQuestionsPrompt string

//go:embed prompts/evaluate_answer.md
var evaluateAnswerPrompt string

const defaultMaxLogLength = 200

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Reviewer implements scoring.Backend by prompting a content generator and
// parsing its JSON responses.
type Reviewer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewReviewer(generator contentGenerator, maxLogLength int, logger *zap.Logger) *Reviewer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	model := ""
	if generator != nil {
		model = generator.Model()
	}

	return &Reviewer{
		generator: generator,
		logger:    intlogger.WithCommonFields(logger, "gemini", model),
		maxLogLen: maxLogLength,
	}
}

func (r *Reviewer) AnalyzeResume(ctx context.Context, content map[string]string) (*scoring.ResumeAnalysis, error) {
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: resume content is empty", scoring.ErrInvalidInput)
	}

	resumeJSON, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal resume payload: %w", err)
	}

	prompt := strings.ReplaceAll(analyzeResumePrompt, "{{RESUME_JSON}}", string(resumeJSON))

	raw, err := r.generate(ctx, "analyze_resume", prompt)
	if err != nil {
		return nil, err
	}

	var analysis scoring.ResumeAnalysis
	if err := json.Unmarshal([]byte(extractJSON(raw)), &analysis); err != nil {
		return nil, fmt.Errorf("parse resume analysis: %w", err)
	}

	if analysis.ImprovedContent == nil {
		analysis.ImprovedContent = make(map[string]string, len(content))
	}

	// The improved content key set must equal the input key set: backfill
	// sections the model skipped and drop keys it invented.
	for title, text := range content {
		if _, ok := analysis.ImprovedContent[title]; !ok {
			analysis.ImprovedContent[title] = text
		}
	}
	for title := range analysis.ImprovedContent {
		if _, ok := content[title]; !ok {
			delete(analysis.ImprovedContent, title)
		}
	}

	return &analysis, nil
}

func (r *Reviewer) AnalyzeJobDescription(ctx context.Context, content map[string]string, jobDescription string) (*scoring.JobFit, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return nil, fmt.Errorf("%w: job description is blank", scoring.ErrInvalidInput)
	}

	resumeJSON, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal resume payload: %w", err)
	}

	prompt := strings.ReplaceAll(analyzeJobDescriptionPrompt, "{{RESUME_JSON}}", string(resumeJSON))
	prompt = strings.ReplaceAll(prompt, "{{JOB_DESCRIPTION}}", jobDescription)

	raw, err := r.generate(ctx, "analyze_job_description", prompt)
	if err != nil {
		return nil, err
	}

	var fit scoring.JobFit
	if err := json.Unmarshal([]byte(extractJSON(raw)), &fit); err != nil {
		return nil, fmt.Errorf("parse job fit: %w", err)
	}

	fit.OverallMatch = scoring.Clamp(fit.OverallMatch)
	for i := range fit.Matches {
		fit.Matches[i].Confidence = scoring.Clamp(fit.Matches[i].Confidence)
	}
	for i := range fit.Gaps {
		fit.Gaps[i].Importance = normalizeImportance(fit.Gaps[i].Importance)
	}

	return &fit, nil
}

func (r *Reviewer) InterviewQuestions(ctx context.Context, jobType string) ([]scoring.Question, error) {
	if strings.TrimSpace(jobType) == "" {
		jobType = "general"
	}

	prompt := strings.ReplaceAll(interviewQuestionsPrompt, "{{JOB_TYPE}}", jobType)

	raw, err := r.generate(ctx, "interview_questions", prompt)
	if err != nil {
		return nil, err
	}

	cleaned := extractJSON(raw)

	var questions []scoring.Question
	if err := json.Unmarshal([]byte(cleaned), &questions); err != nil {
		// Some models wrap the array in an object despite the schema.
		var wrapped struct {
			Questions []scoring.Question `json:"questions"`
		}
		if err := json.Unmarshal([]byte(cleaned), &wrapped); err != nil {
			return nil, fmt.Errorf("parse interview questions: %w", err)
		}
		questions = wrapped.Questions
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("gemini returned no interview questions")
	}

	return questions, nil
}

func (r *Reviewer) EvaluateAnswer(ctx context.Context, question, answer string) (*scoring.AnswerEvaluation, error) {
	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("%w: question is blank", scoring.ErrInvalidInput)
	}

	prompt := strings.ReplaceAll(evaluateAnswerPrompt, "{{QUESTION}}", question)
	prompt = strings.ReplaceAll(prompt, "{{ANSWER}}", answer)

	raw, err := r.generate(ctx, "evaluate_answer", prompt)
	if err != nil {
		return nil, err
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(extractJSON(raw)), &data); err != nil {
		return nil, fmt.Errorf("parse answer evaluation: %w", err)
	}

	score := coerceFloat(data["score"])
	if math.IsNaN(score) {
		score = 0
	}

	return &scoring.AnswerEvaluation{
		Evaluation:        coerceString(data["evaluation"]),
		ImprovementPoints: coerceStringSlice(data["improvementPoints"]),
		Score:             scoring.Clamp(score),
	}, nil
}

func (r *Reviewer) generate(ctx context.Context, operation, prompt string) (string, error) {
	r.logger.Debug("gemini generate content request",
		zap.String("operation", operation),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, r.maxLogLen)),
	)

	raw, err := r.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return "", scoring.AsUnavailable(err)
	}

	r.logger.Debug("gemini generate content response",
		zap.String("operation", operation),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, r.maxLogLen)),
	)

	return raw, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func normalizeImportance(importance string) string {
	switch strings.ToLower(strings.TrimSpace(importance)) {
	case scoring.ImportanceHigh:
		return scoring.ImportanceHigh
	case scoring.ImportanceLow:
		return scoring.ImportanceLow
	default:
		return scoring.ImportanceMedium
	}
}

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}

func coerceStringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}

	result := make([]string, 0, len(items))
	for _, item := range items {
		if s := coerceString(item); s != "" {
			result = append(result, s)
		}
	}
	return result
}
