package cmd

import (
	"log"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/cv-coach/internal/logger"
	"github.com/spigell/cv-coach/internal/workflow"
)

func newLogger() *zap.Logger {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	return l
}

// consoleNotifier renders workflow notices as log entries.
type consoleNotifier struct {
	logger *zap.Logger
}

func (n *consoleNotifier) Success(message string) {
	n.logger.Info(message)
}

func (n *consoleNotifier) Error(message string) {
	n.logger.Error(message)
}

// consoleNavigator translates navigation requests into hints about which
// command to run next. The cli has no pages to switch between.
type consoleNavigator struct {
	logger *zap.Logger
}

var routeHints = map[string]string{
	workflow.RouteHome:       "run '" + app + " --help' for the available commands",
	workflow.RouteUpload:     "run '" + app + " upload' first",
	workflow.RouteEvaluation: "run '" + app + " evaluate'",
	workflow.RouteInterview:  "run '" + app + " interview'",
}

func (n *consoleNavigator) To(route string) {
	n.logger.Info("navigation requested",
		zap.String("route", route),
		zap.String("hint", routeHints[route]),
	)
}
