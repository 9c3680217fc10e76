package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/cv-coach/internal/session"
	"github.com/spigell/cv-coach/internal/upload"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload a resume and an optional job description into the session",
	Run: func(cmd *cobra.Command, _ []string) {
		runUpload(cmd)
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)

	uploadCmd.Flags().StringP("resume", "r", "", "resume file to upload (pdf, doc, docx)")
	uploadCmd.Flags().String("jd", "", "job description file (pdf, doc, docx, txt)")
	uploadCmd.Flags().String("jd-text", "", "job description text pasted inline")
	uploadCmd.Flags().BoolP("auto-aprove", "y", false, "do not ask for confirmation before replacing an uploaded resume")
}

func runUpload(cmd *cobra.Command) {
	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	store := openStore(config, logger)

	resumeFile, _ := cmd.Flags().GetString("resume")
	jdFile, _ := cmd.Flags().GetString("jd")
	jdText, _ := cmd.Flags().GetString("jd-text")

	if resumeFile == "" && jdFile == "" && jdText == "" {
		logger.Fatal("nothing to upload",
			zap.String("hint", "pass --resume and/or --jd/--jd-text"),
		)
	}

	if jdFile != "" && jdText != "" {
		logger.Fatal("both --jd and --jd-text are set, choose one")
	}

	if resumeFile != "" {
		uploadResume(cmd, store, resumeFile, logger)
	}

	if jdFile != "" {
		accepted, err := upload.JobDescriptionSpec.Accept(jdFile)
		if err != nil {
			logger.Fatal("accepting the job description file", zap.Error(err))
		}

		if err := session.SaveJobDescription(store, upload.JobDescriptionText()); err != nil {
			logger.Fatal("saving the job description", zap.Error(err))
		}

		logger.Info("job description uploaded successfully", zap.String("file", accepted))
	}

	if jdText != "" {
		if err := session.SaveJobDescription(store, jdText); err != nil {
			logger.Fatal("saving the job description", zap.Error(err))
		}

		logger.Info("job description saved successfully", zap.Int("length", len(jdText)))
	}
}

func uploadResume(cmd *cobra.Command, store session.Store, resumeFile string, logger *zap.Logger) {
	accepted, err := upload.ResumeSpec.Accept(resumeFile)
	if err != nil {
		logger.Fatal("accepting the resume file", zap.Error(err))
	}

	if _, exists, _ := store.Get(session.KeyResumeSections); exists {
		if cmd.Flag("auto-aprove").Value.String() == "false" {
			prompt := promptui.Select{
				Label: "A resume is already uploaded. Replace it?",
				Items: []string{PromptYes, PromptNo},
			}

			_, choice, err := prompt.Run()
			if err != nil {
				logger.Fatal("exiting", zap.Error(err))
			}

			if choice == PromptNo {
				logger.Info("keeping the existing resume")
				return
			}
		}
	}

	sections := upload.ResumeSections()

	if err := session.SaveSections(store, session.KeyResumeSections, sections); err != nil {
		logger.Fatal("saving resume sections", zap.Error(err))
	}

	logger.Info("resume uploaded and parsed successfully",
		zap.String("file", accepted),
		zap.Int("sections", sections.Len()),
	)

	for i, title := range sections.Titles() {
		fmt.Printf("  %d. %s\n", i+1, title)
	}
}
