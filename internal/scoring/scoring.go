// Package scoring defines the contract between the workflows and the resume
// analysis backend. Providers live in subpackages.
package scoring

import (
	"context"
	"errors"
	"fmt"
)

// Importance levels for a job description gap.
const (
	ImportanceHigh   = "high"
	ImportanceMedium = "medium"
	ImportanceLow    = "low"
)

var (
	// ErrBackendUnavailable marks a rejected or timed out backend call. The
	// enclosing workflow step may be retried by the user.
	ErrBackendUnavailable = errors.New("scoring backend unavailable")
	// ErrInvalidInput marks input the backend cannot work with, such as a
	// blank job description. The dependent step is skipped, not retried.
	ErrInvalidInput = errors.New("invalid input")
)

// Improvement is a single suggested change tied to one line of a resume
// section. Sections are referenced by title, not by id.
type Improvement struct {
	Section    string `json:"section"`
	Original   string `json:"original"`
	Suggestion string `json:"suggestion"`
	Reason     string `json:"reason"`
}

// ResumeAnalysis is the result of analyzing uploaded resume content.
// ImprovedContent carries a full revised text for every input section and has
// exactly the same key set as the analyzed content.
type ResumeAnalysis struct {
	Improvements    []Improvement     `json:"improvements"`
	ImprovedContent map[string]string `json:"improvedContent"`
}

// Match is a skill the resume already covers, with confidence in [0,1].
type Match struct {
	Skill      string  `json:"skill"`
	Confidence float64 `json:"confidence"`
}

// Gap is a skill the job description asks for that the resume lacks.
type Gap struct {
	Skill      string `json:"skill"`
	Importance string `json:"importance"`
	Suggestion string `json:"suggestion"`
}

// JobFit summarizes how the resume matches a job description.
// OverallMatch lies in [0,1].
type JobFit struct {
	Matches      []Match `json:"matches"`
	Gaps         []Gap   `json:"gaps"`
	OverallMatch float64 `json:"overallMatch"`
}

// Question is a single interview question with a preparation hint.
type Question struct {
	Question string `json:"question"`
	Hint     string `json:"hint"`
}

// AnswerEvaluation is qualitative feedback for one interview answer.
// Score lies in [0,1].
type AnswerEvaluation struct {
	Evaluation        string   `json:"evaluation"`
	ImprovementPoints []string `json:"improvementPoints"`
	Score             float64  `json:"score"`
}

// Backend abstracts the resume analysis service. All operations may suspend
// the caller and must honor context cancellation. Any operation may fail with
// ErrBackendUnavailable or ErrInvalidInput; callers surface a non-fatal notice
// and halt the enclosing workflow step without corrupting accumulated state.
type Backend interface {
	// AnalyzeResume produces improvements and revised content for the given
	// title-keyed resume content. Not safe when the input contains duplicate
	// titles; callers are expected to detect that before converting.
	AnalyzeResume(ctx context.Context, content map[string]string) (*ResumeAnalysis, error)

	// AnalyzeJobDescription scores the resume against a non-blank job
	// description. A blank description is ErrInvalidInput.
	AnalyzeJobDescription(ctx context.Context, content map[string]string, jobDescription string) (*JobFit, error)

	// InterviewQuestions returns a fixed-size question list. The job type may
	// be ignored by a given provider; callers must not assume personalization.
	InterviewQuestions(ctx context.Context, jobType string) ([]Question, error)

	// EvaluateAnswer scores a single interview answer.
	EvaluateAnswer(ctx context.Context, question, answer string) (*AnswerEvaluation, error)
}

// AsUnavailable wraps an arbitrary backend failure as ErrBackendUnavailable
// unless it is already classified. Context deadlines count as unavailability.
func AsUnavailable(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrBackendUnavailable) || errors.Is(err, ErrInvalidInput) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
}

// Clamp forces a score into the closed interval [0,1].
func Clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
