package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/cv-coach/internal/session"
	"github.com/spigell/cv-coach/internal/workflow"
)

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Run an interactive mock interview based on the uploaded resume",
	Run: func(_ *cobra.Command, _ []string) {
		runInterview()
	},
}

func init() {
	rootCmd.AddCommand(interviewCmd)
}

func runInterview() {
	ctx := context.Background()

	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	store := openStore(config, logger)

	// The interview works on its own scoped copy of the upload data.
	if err := session.CopySections(store, session.KeyResumeSections, session.KeyResumeSectionsForInterview); err != nil {
		if errors.Is(err, session.ErrMissingData) {
			logger.Fatal("no resume uploaded",
				zap.String("hint", routeHints[workflow.RouteUpload]),
			)
		}
		logger.Fatal("preparing interview data", zap.Error(err))
	}

	backend, err := newBackend(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the scoring backend", zap.Error(err))
	}

	interview, err := workflow.NewInterview(workflow.Deps{
		Backend:     backend,
		Store:       store,
		Logger:      logger,
		Notifier:    &consoleNotifier{logger: logger},
		Navigator:   &consoleNavigator{logger: logger},
		CallTimeout: config.callTimeout(),
	}, config.jobType())
	if err != nil {
		logger.Fatal("creating the interview workflow", zap.Error(err))
	}

	logger.Info("loading interview questions", zap.String("job_type", config.jobType()))

	if err := interview.Load(ctx); err != nil {
		logger.Fatal("loading interview questions", zap.Error(err))
	}

	for {
		if !confirm(fmt.Sprintf("Start the interview (%d questions)?", len(interview.Questions()))) {
			return
		}

		if err := interview.Start(); err != nil {
			logger.Fatal("starting the interview", zap.Error(err))
		}

		askQuestions(ctx, interview, logger)

		printSummary(interview)

		if !confirm("Restart the interview?") {
			return
		}

		if err := interview.Restart(); err != nil {
			logger.Fatal("restarting the interview", zap.Error(err))
		}
	}
}

func askQuestions(ctx context.Context, interview *workflow.Interview, logger *zap.Logger) {
	total := len(interview.Questions())

	for interview.State() == workflow.StateInProgress {
		question, err := interview.CurrentQuestion()
		if err != nil {
			logger.Fatal("getting the current question", zap.Error(err))
		}

		fmt.Printf("\nQuestion %d of %d: %s\n", interview.Index()+1, total, question.Question)
		fmt.Printf("Hint: %s\n\n", question.Hint)

		prompt := promptui.Prompt{
			Label: "Your answer",
		}

		started := time.Now()

		answer, err := prompt.Run()
		if err != nil {
			logger.Fatal("reading the answer", zap.Error(err))
		}

		timeSpent := int(time.Since(started).Seconds())

		before := len(interview.Transcript())

		// A failed evaluation leaves the interview on the same question,
		// so the loop simply asks it again.
		if err := interview.Submit(ctx, answer, timeSpent); err != nil {
			continue
		}

		result := interview.Transcript()[before]
		fmt.Printf("\n%s\n", result.Evaluation)
		fmt.Printf("Score: %.0f%%\n", result.Score*100)
		for _, point := range result.ImprovementPoints {
			fmt.Printf("  - %s\n", point)
		}
	}
}

func printSummary(interview *workflow.Interview) {
	transcript := interview.Transcript()

	fmt.Printf("\nInterview finished. %d questions answered in %s.\n",
		len(transcript), formatTime(interview.TotalTime()))
	fmt.Printf("Average score: %.0f%%\n", interview.AverageScore()*100)

	for n, result := range transcript {
		fmt.Printf("\n%d. %s\n", n+1, result.Question)
		fmt.Printf("   score %.0f%%, answered in %s\n", result.Score*100, formatTime(result.TimeSpent))
	}
}

// formatTime renders seconds as m:ss.
func formatTime(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func confirm(label string) bool {
	prompt := promptui.Select{
		Label: label,
		Items: []string{PromptYes, PromptNo},
	}

	_, answer, err := prompt.Run()
	if err != nil {
		return false
	}

	return answer == PromptYes
}
