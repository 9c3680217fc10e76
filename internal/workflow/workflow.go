// Package workflow contains the evaluation and interview state machines. The
// workflows own no presentation: they read the session store, call the
// scoring backend and report outcomes through the Notifier and Navigator
// collaborators.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/cv-coach/internal/scoring"
	"github.com/spigell/cv-coach/internal/session"
)

// Named routes the workflows may request navigation to.
const (
	RouteHome       = "/"
	RouteUpload     = "/upload"
	RouteEvaluation = "/evaluation"
	RouteInterview  = "/mock-interview"
)

const defaultCallTimeout = 30 * time.Second

var (
	// ErrCallInFlight is returned when a workflow is triggered while one of
	// its backend calls is still pending. The trigger is rejected, not queued.
	ErrCallInFlight = errors.New("a backend call is already in flight")
	// ErrNoQuestions is returned when an interview is started with an empty
	// question list.
	ErrNoQuestions = errors.New("no interview questions are available")
)

// Notifier receives user-visible success and error notices. Display and
// dismissal timing are up to the implementation.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Navigator receives navigation requests to named routes. Workflows treat
// navigation as a side effect signal, not a return value.
type Navigator interface {
	To(route string)
}

// Deps aggregates the collaborators shared by the workflows.
type Deps struct {
	Backend   scoring.Backend
	Store     session.Store
	Logger    *zap.Logger
	Notifier  Notifier
	Navigator Navigator
	// CallTimeout bounds every backend call. A deadline counts as backend
	// unavailability. Zero means the default of 30s.
	CallTimeout time.Duration
}

func (d *Deps) validate() error {
	if d.Backend == nil {
		return fmt.Errorf("scoring backend is required")
	}
	if d.Store == nil {
		return fmt.Errorf("session store is required")
	}

	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Notifier == nil {
		d.Notifier = noopNotifier{}
	}
	if d.Navigator == nil {
		d.Navigator = noopNavigator{}
	}
	if d.CallTimeout <= 0 {
		d.CallTimeout = defaultCallTimeout
	}

	return nil
}

func (d *Deps) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, d.CallTimeout)
}

type noopNotifier struct{}

func (noopNotifier) Success(string) {}
func (noopNotifier) Error(string)   {}

type noopNavigator struct{}

func (noopNavigator) To(string) {}
