package workflow

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/spigell/cv-coach/internal/scoring"
)

// State is the interview lifecycle.
type State int

const (
	StateLoading State = iota
	StateNotStarted
	StateInProgress
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateNotStarted:
		return "not_started"
	case StateInProgress:
		return "in_progress"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// AnswerResult is one transcript entry. Entries are appended on successful
// evaluation and never mutated afterwards.
type AnswerResult struct {
	Question          string   `json:"question"`
	Answer            string   `json:"answer"`
	TimeSpent         int      `json:"timeSpent"`
	Evaluation        string   `json:"evaluation"`
	ImprovementPoints []string `json:"improvementPoints"`
	Score             float64  `json:"score"`
}

// Interview sequences a mock interview: load the question list, step through
// question/answer/evaluate, accumulate the transcript, and present a summary.
type Interview struct {
	deps    Deps
	jobType string

	mu         sync.Mutex
	state      State
	evaluating bool
	questions  []scoring.Question
	index      int
	transcript []AnswerResult
	totalTime  int
}

func NewInterview(deps Deps, jobType string) (*Interview, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	return &Interview{
		deps:    deps,
		jobType: jobType,
		state:   StateLoading,
	}, nil
}

// Load fetches the question list and transitions to NotStarted. On failure
// the transition still happens, with an empty list and an error notice, so
// the caller lands on a screen that can explain the problem.
func (i *Interview) Load(ctx context.Context) error {
	i.mu.Lock()
	if i.state != StateLoading {
		state := i.state
		i.mu.Unlock()
		return fmt.Errorf("cannot load questions in state %s", state)
	}
	i.mu.Unlock()

	cctx, cancel := i.deps.callContext(ctx)
	defer cancel()

	questions, err := i.deps.Backend.InterviewQuestions(cctx, i.jobType)

	i.mu.Lock()
	defer i.mu.Unlock()

	i.state = StateNotStarted

	if err != nil {
		err = scoring.AsUnavailable(err)
		i.deps.Logger.Warn("fetching interview questions failed", zap.Error(err))
		i.deps.Notifier.Error("An error occurred while loading interview questions. Please try again.")
		i.questions = nil
		return err
	}

	i.questions = questions
	i.deps.Logger.Info("interview questions loaded",
		zap.Int("count", len(questions)),
		zap.String("job_type", i.jobType),
	)

	return nil
}

// Start begins the interview at the first question. Starting with an empty
// question list is blocked.
func (i *Interview) Start() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.state != StateNotStarted {
		return fmt.Errorf("cannot start interview in state %s", i.state)
	}

	if len(i.questions) == 0 {
		return ErrNoQuestions
	}

	i.state = StateInProgress
	i.index = 0

	return nil
}

// Submit evaluates the answer to the current question. On success the result
// is appended to the transcript and the interview advances, finishing after
// the last question. On failure the state, index and transcript are left
// untouched so the user can resubmit. A second submit while an evaluation is
// pending is rejected.
func (i *Interview) Submit(ctx context.Context, answer string, timeSpent int) error {
	i.mu.Lock()
	if i.state != StateInProgress {
		state := i.state
		i.mu.Unlock()
		return fmt.Errorf("cannot submit an answer in state %s", state)
	}
	if i.evaluating {
		i.mu.Unlock()
		return ErrCallInFlight
	}
	i.evaluating = true
	question := i.questions[i.index]
	i.mu.Unlock()

	if timeSpent < 0 {
		timeSpent = 0
	}

	cctx, cancel := i.deps.callContext(ctx)
	defer cancel()

	evaluation, err := i.deps.Backend.EvaluateAnswer(cctx, question.Question, answer)

	i.mu.Lock()
	defer i.mu.Unlock()

	i.evaluating = false

	if err != nil {
		err = scoring.AsUnavailable(err)
		i.deps.Logger.Warn("answer evaluation failed",
			zap.Int("question_index", i.index),
			zap.Error(err),
		)
		i.deps.Notifier.Error("An error occurred while evaluating the answer. Please try again.")
		return err
	}

	i.transcript = append(i.transcript, AnswerResult{
		Question:          question.Question,
		Answer:            answer,
		TimeSpent:         timeSpent,
		Evaluation:        evaluation.Evaluation,
		ImprovementPoints: evaluation.ImprovementPoints,
		Score:             evaluation.Score,
	})
	i.totalTime += timeSpent

	if i.index == len(i.questions)-1 {
		i.state = StateFinished
	} else {
		i.index++
	}

	return nil
}

// Restart returns a finished interview to NotStarted with an empty transcript.
// The question list is kept as is and not re-fetched.
func (i *Interview) Restart() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.state != StateFinished {
		return fmt.Errorf("cannot restart interview in state %s", i.state)
	}

	i.state = StateNotStarted
	i.index = 0
	i.transcript = nil
	i.totalTime = 0

	return nil
}

func (i *Interview) State() State {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.state
}

// CurrentQuestion returns the question awaiting an answer.
func (i *Interview) CurrentQuestion() (scoring.Question, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.state != StateInProgress {
		return scoring.Question{}, fmt.Errorf("no current question in state %s", i.state)
	}

	return i.questions[i.index], nil
}

func (i *Interview) Index() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.index
}

func (i *Interview) Questions() []scoring.Question {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.questions
}

// Transcript returns a copy of the accumulated answer results.
func (i *Interview) Transcript() []AnswerResult {
	i.mu.Lock()
	defer i.mu.Unlock()

	transcript := make([]AnswerResult, len(i.transcript))
	copy(transcript, i.transcript)
	return transcript
}

// TotalTime returns the accumulated answer time in seconds.
func (i *Interview) TotalTime() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.totalTime
}

// AverageScore is the arithmetic mean of the transcript scores, 0 when the
// transcript is empty.
func (i *Interview) AverageScore() float64 {
	i.mu.Lock()
	defer i.mu.Unlock()

	if len(i.transcript) == 0 {
		return 0
	}

	var total float64
	for _, result := range i.transcript {
		total += result.Score
	}

	return total / float64(len(i.transcript))
}
