package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/cv-coach/internal/scoring"
	"github.com/spigell/cv-coach/internal/session"
	"github.com/spigell/cv-coach/internal/workflow"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Analyze the uploaded resume and match it against the job description",
	Run: func(cmd *cobra.Command, _ []string) {
		runEvaluate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().Bool("show-improved", false, "print the fully rewritten section texts")
}

func runEvaluate(cmd *cobra.Command) {
	ctx := context.Background()

	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	store := openStore(config, logger)

	// The evaluation works on its own scoped copy of the upload data.
	if err := session.CopySections(store, session.KeyResumeSections, session.KeyResumeSectionsForEval); err != nil {
		if errors.Is(err, session.ErrMissingData) {
			logger.Fatal("no resume uploaded",
				zap.String("hint", routeHints[workflow.RouteUpload]),
			)
		}
		logger.Fatal("preparing evaluation data", zap.Error(err))
	}

	backend, err := newBackend(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the scoring backend", zap.Error(err))
	}

	evaluation, err := workflow.NewEvaluation(workflow.Deps{
		Backend:     backend,
		Store:       store,
		Logger:      logger,
		Notifier:    &consoleNotifier{logger: logger},
		Navigator:   &consoleNavigator{logger: logger},
		CallTimeout: config.callTimeout(),
	})
	if err != nil {
		logger.Fatal("creating the evaluation workflow", zap.Error(err))
	}

	logger.Info("analyzing the resume")

	if err := evaluation.Run(ctx); err != nil {
		logger.Fatal("evaluation failed", zap.Error(err))
	}

	printImprovements(evaluation.Improvements())

	if showImproved, _ := cmd.Flags().GetBool("show-improved"); showImproved {
		printImprovedContent(evaluation.ImprovedContent())
	}

	if evaluation.JobPanel() == workflow.PanelDisabled {
		logger.Info("job match skipped", zap.String("reason", "no job description uploaded"))
		return
	}

	printJobFit(evaluation.Matches(), evaluation.Gaps(), evaluation.OverallMatch())
}

func printImprovements(improvements []scoring.Improvement) {
	fmt.Printf("\nSuggested improvements (%d):\n", len(improvements))

	for _, improvement := range improvements {
		fmt.Printf("\n[%s]\n", improvement.Section)
		fmt.Printf("  original:   %s\n", improvement.Original)
		fmt.Printf("  suggestion: %s\n", improvement.Suggestion)
		fmt.Printf("  reason:     %s\n", improvement.Reason)
	}
}

func printImprovedContent(content map[string]string) {
	fmt.Printf("\nRewritten sections:\n")

	for title, text := range content {
		fmt.Printf("\n## %s\n%s\n", title, text)
	}
}

func printJobFit(matches []scoring.Match, gaps []scoring.Gap, overall float64) {
	fmt.Printf("\nJob match: %.0f%%\n", overall*100)

	fmt.Printf("\nMatched skills:\n")
	for _, match := range matches {
		fmt.Printf("  %-20s %.0f%%\n", match.Skill, match.Confidence*100)
	}

	fmt.Printf("\nGaps:\n")
	for _, gap := range gaps {
		fmt.Printf("  %-20s %s\n", gap.Skill, strings.ToUpper(gap.Importance))
		fmt.Printf("    %s\n", gap.Suggestion)
	}
}
