package workflow

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/spigell/cv-coach/internal/scoring"
	"github.com/spigell/cv-coach/internal/session"
)

// PanelState is the lifecycle of one result panel on the evaluation screen.
type PanelState int

const (
	PanelLoading PanelState = iota
	PanelReady
	// PanelDisabled marks a panel that will never load, such as the job-match
	// panel when no job description was provided.
	PanelDisabled
)

func (s PanelState) String() string {
	switch s {
	case PanelLoading:
		return "loading"
	case PanelReady:
		return "ready"
	case PanelDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// Evaluation orchestrates the resume review: load session data, analyze the
// resume, and when a job description is present, score the resume against it.
// The two result panels load independently.
type Evaluation struct {
	deps Deps

	mu          sync.Mutex
	running     bool
	resumePanel PanelState
	jobPanel    PanelState

	improvements    []scoring.Improvement
	improvedContent map[string]string
	matches         []scoring.Match
	gaps            []scoring.Gap
	overallMatch    float64
}

func NewEvaluation(deps Deps) (*Evaluation, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	return &Evaluation{
		deps:        deps,
		resumePanel: PanelLoading,
		jobPanel:    PanelLoading,
	}, nil
}

// Run executes the workflow once. A failed analysis flips the affected panel
// to ready with empty results and emits an error notice; it is never retried
// automatically. A second Run while one is pending is rejected.
func (e *Evaluation) Run(ctx context.Context) error {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return ErrCallInFlight
	}
	e.running = true
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
	}()

	sections, err := session.LoadSections(e.deps.Store, session.KeyResumeSectionsForEval)
	if err != nil {
		e.deps.Notifier.Error("Resume data not found. Please go back to the upload step.")
		e.deps.Navigator.To(RouteUpload)
		return err
	}

	// The title-keyed conversion is lossy under duplicate titles; the backend
	// contract is not safe for them either, so warn before proceeding.
	if duplicates := sections.DuplicateTitles(); len(duplicates) > 0 {
		e.deps.Logger.Warn("duplicate section titles, later sections win",
			zap.Strings("titles", duplicates),
		)
	}

	content := sections.ByTitle()

	jobDescription, err := session.LoadJobDescription(e.deps.Store)
	if err != nil {
		return err
	}

	e.analyzeResume(ctx, content)

	if strings.TrimSpace(jobDescription) == "" {
		e.mu.Lock()
		e.jobPanel = PanelDisabled
		e.mu.Unlock()
		e.deps.Logger.Debug("no job description, job-match panel disabled")
		return nil
	}

	e.analyzeJobDescription(ctx, content, jobDescription)

	return nil
}

func (e *Evaluation) analyzeResume(ctx context.Context, content map[string]string) {
	cctx, cancel := e.deps.callContext(ctx)
	defer cancel()

	analysis, err := e.deps.Backend.AnalyzeResume(cctx, content)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.resumePanel = PanelReady

	if err != nil {
		err = scoring.AsUnavailable(err)
		e.deps.Logger.Warn("resume analysis failed", zap.Error(err))
		e.deps.Notifier.Error("An error occurred while analyzing the resume. Please try again.")
		e.improvements = []scoring.Improvement{}
		e.improvedContent = map[string]string{}
		return
	}

	e.improvements = analysis.Improvements
	e.improvedContent = analysis.ImprovedContent
}

func (e *Evaluation) analyzeJobDescription(ctx context.Context, content map[string]string, jobDescription string) {
	cctx, cancel := e.deps.callContext(ctx)
	defer cancel()

	fit, err := e.deps.Backend.AnalyzeJobDescription(cctx, content, jobDescription)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.jobPanel = PanelReady

	if err != nil {
		err = scoring.AsUnavailable(err)
		e.deps.Logger.Warn("job description analysis failed", zap.Error(err))
		e.deps.Notifier.Error("An error occurred while matching the job description. Please try again.")
		e.matches = []scoring.Match{}
		e.gaps = []scoring.Gap{}
		e.overallMatch = 0
		return
	}

	e.matches = fit.Matches
	e.gaps = fit.Gaps
	e.overallMatch = fit.OverallMatch
}

func (e *Evaluation) ResumePanel() PanelState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.resumePanel
}

func (e *Evaluation) JobPanel() PanelState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.jobPanel
}

func (e *Evaluation) Improvements() []scoring.Improvement {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.improvements
}

func (e *Evaluation) ImprovedContent() map[string]string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.improvedContent
}

func (e *Evaluation) Matches() []scoring.Match {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.matches
}

func (e *Evaluation) Gaps() []scoring.Gap {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gaps
}

func (e *Evaluation) OverallMatch() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.overallMatch
}
