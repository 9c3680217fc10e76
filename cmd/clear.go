package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/cv-coach/internal/session"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove uploaded data from the session store",
	Run: func(cmd *cobra.Command, _ []string) {
		runClear(cmd)
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	clearCmd.Flags().Bool("resume", false, "remove only the resume")
	clearCmd.Flags().Bool("jd", false, "remove only the job description")
}

func runClear(cmd *cobra.Command) {
	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	store := openStore(config, logger)

	resumeOnly, _ := cmd.Flags().GetBool("resume")
	jdOnly, _ := cmd.Flags().GetBool("jd")

	// No selector means everything.
	all := !resumeOnly && !jdOnly

	if resumeOnly || all {
		for _, key := range []string{
			session.KeyResumeSections,
			session.KeyResumeSectionsForEval,
			session.KeyResumeSectionsForInterview,
		} {
			if err := store.Remove(key); err != nil {
				logger.Fatal("removing the resume", zap.String("key", key), zap.Error(err))
			}
		}
		logger.Info("resume removed")
	}

	if jdOnly || all {
		if err := store.Remove(session.KeyJobDescription); err != nil {
			logger.Fatal("removing the job description", zap.Error(err))
		}
		logger.Info("job description removed")
	}
}
