package workflow

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/spigell/cv-coach/internal/resume"
	"github.com/spigell/cv-coach/internal/scoring"
	"github.com/spigell/cv-coach/internal/session"
)

var errBoom = errors.New("boom")

type fakeBackend struct {
	analyzeResume func(ctx context.Context, content map[string]string) (*scoring.ResumeAnalysis, error)
	analyzeJD     func(ctx context.Context, content map[string]string, jd string) (*scoring.JobFit, error)
	questions     func(ctx context.Context, jobType string) ([]scoring.Question, error)
	evaluate      func(ctx context.Context, question, answer string) (*scoring.AnswerEvaluation, error)
}

func (f *fakeBackend) AnalyzeResume(ctx context.Context, content map[string]string) (*scoring.ResumeAnalysis, error) {
	if f.analyzeResume == nil {
		return &scoring.ResumeAnalysis{
			Improvements:    []scoring.Improvement{},
			ImprovedContent: content,
		}, nil
	}
	return f.analyzeResume(ctx, content)
}

func (f *fakeBackend) AnalyzeJobDescription(ctx context.Context, content map[string]string, jd string) (*scoring.JobFit, error) {
	if f.analyzeJD == nil {
		return &scoring.JobFit{OverallMatch: 0.78}, nil
	}
	return f.analyzeJD(ctx, content, jd)
}

func (f *fakeBackend) InterviewQuestions(ctx context.Context, jobType string) ([]scoring.Question, error) {
	if f.questions == nil {
		return []scoring.Question{
			{Question: "Why Go?", Hint: "Concurrency"},
			{Question: "Hardest bug?", Hint: "Use STAR"},
		}, nil
	}
	return f.questions(ctx, jobType)
}

func (f *fakeBackend) EvaluateAnswer(ctx context.Context, question, answer string) (*scoring.AnswerEvaluation, error) {
	if f.evaluate == nil {
		return &scoring.AnswerEvaluation{Evaluation: "ok", Score: 0.8}, nil
	}
	return f.evaluate(ctx, question, answer)
}

type recordingNotifier struct {
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(message string) {
	n.successes = append(n.successes, message)
}

func (n *recordingNotifier) Error(message string) {
	n.errors = append(n.errors, message)
}

type recordingNavigator struct {
	routes []string
}

func (n *recordingNavigator) To(route string) {
	n.routes = append(n.routes, route)
}

func newTestStore(t *testing.T) session.Store {
	t.Helper()

	store, err := session.NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}

	return store
}

func storeSections(t *testing.T, store session.Store, key string, sections ...*resume.Section) {
	t.Helper()

	if err := session.SaveSections(store, key, &resume.Sections{Items: sections}); err != nil {
		t.Fatalf("saving sections: %v", err)
	}
}
