package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/cv-coach/internal/scoring"
	"github.com/spigell/cv-coach/internal/scoring/gemini"
	"github.com/spigell/cv-coach/internal/scoring/heuristic"
	"github.com/spigell/cv-coach/internal/secrets"
	"github.com/spigell/cv-coach/internal/session"
)

const (
	app = "cv-coach"

	defaultSessionFile = "cv-coach-session.json"
)

type Config struct {
	SessionFile string           `mapstructure:"session-file"`
	Backend     *BackendConfig   `mapstructure:"backend"`
	Interview   *InterviewConfig `mapstructure:"interview"`
}

type BackendConfig struct {
	Provider string        `mapstructure:"provider"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

type InterviewConfig struct {
	JobType string `mapstructure:"job-type"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "cv-coach is a cli for reviewing a resume and rehearsing interviews with AI feedback",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("backend.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is cv-coach.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().StringP("session-file", "s", "", "the session file keeping uploaded data between runs")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("session-file", rootCmd.PersistentFlags().Lookup("session-file"))

	viper.SetDefault("session-file", defaultSessionFile)
	viper.SetDefault("backend.provider", "heuristic")
	viper.SetDefault("backend.timeout", 30*time.Second)
	viper.SetDefault("interview.job-type", "general")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// The config file is optional: all commands work with defaults. An
	// explicitly requested or unparseable file is still fatal.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}

func (c *Config) backend() *BackendConfig {
	if c == nil || c.Backend == nil {
		return &BackendConfig{}
	}
	return c.Backend
}

func (c *Config) callTimeout() time.Duration {
	return c.backend().Timeout
}

func (c *Config) jobType() string {
	if c == nil || c.Interview == nil {
		return ""
	}
	return c.Interview.JobType
}

func openStore(config *Config, logger *zap.Logger) *session.FileStore {
	path := strings.TrimSpace(viper.GetString("session-file"))
	if config != nil && strings.TrimSpace(config.SessionFile) != "" {
		path = strings.TrimSpace(config.SessionFile)
	}

	store, err := session.NewFileStore(path)
	if err != nil {
		logger.Fatal("opening the session store", zap.Error(err), zap.String("path", path))
	}

	return store
}

func newBackend(ctx context.Context, config *Config, logger *zap.Logger) (scoring.Backend, error) {
	cfg := config.backend()

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	switch provider {
	case "", "heuristic":
		return heuristic.New(heuristic.WithLogger(logger)), nil
	case "gemini":
	default:
		return nil, fmt.Errorf("unsupported backend provider: %s", cfg.Provider)
	}

	if cfg.Gemini == nil {
		cfg.Gemini = &GeminiConfig{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set backend.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	genLogger := logger.With(
		zap.String("provider", "gemini"),
		zap.String("model", cfg.Gemini.Model),
		zap.Int("retry_attempts", cfg.Gemini.MaxRetries),
	)

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}

	return gemini.NewReviewer(generator, cfg.Gemini.MaxLogLength, genLogger), nil
}
