package cmd

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/resume-scanner/internal/ai/gemini"
	"github.com/spigell/resume-scanner/internal/matching"
	"github.com/spigell/resume-scanner/internal/profiles"
	"github.com/spigell/resume-scanner/internal/scoring"
)

const (
	app = "resume-scanner"
)

type Config struct {
	Analysis    *AnalysisConfig  `mapstructure:"analysis"`
	Profiles    *ProfilesConfig  `mapstructure:"profiles"`
	Matching    *matching.Config `mapstructure:"matching"`
	MetricsFile string           `mapstructure:"metrics-file"`
}

type AnalysisConfig struct {
	Source  string        `mapstructure:"source"`
	Timeout time.Duration `mapstructure:"timeout"`
	Gemini  *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

type ProfilesConfig struct {
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetries int           `mapstructure:"max-retries"`
	GitHub     *GitHubConfig `mapstructure:"github"`
}

type GitHubConfig struct {
	APIURL    string `mapstructure:"api-url"`
	TokenFile string `mapstructure:"token-file"`
	UserAgent string `mapstructure:"user-agent"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:           app,
		Short:         "resume-scanner scores resumes and recommends matching job roles",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("analysis.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("profiles.github.token-file", "GITHUB_TOKEN_FILE"); err != nil {
		log.Fatalf("binding GITHUB_TOKEN_FILE environment variable: %v", err)
	}

	setDefaults(viper.GetViper())

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-scanner.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("metrics-file", "", "write prometheus metrics to this file after the command")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("metrics-file", rootCmd.PersistentFlags().Lookup("metrics-file"))
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("analysis.source", scoring.SourceHeuristic)
	v.SetDefault("analysis.timeout", 60*time.Second)
	v.SetDefault("analysis.gemini.model", gemini.DefaultModel)
	v.SetDefault("analysis.gemini.max-retries", gemini.DefaultMaxRetries)
	v.SetDefault("profiles.timeout", profiles.DefaultTimeout)
	v.SetDefault("profiles.max-retries", profiles.DefaultMaxRetries)
	v.SetDefault("matching.max-results", matching.DefaultMaxResults)
	v.SetDefault("matching.min-threshold", matching.DefaultMinThreshold)
}

// initConfig reads the config file. Without --config a missing default file is fine.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		// We can't proceed if the config file parsed with error.
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if config == nil {
		config = &Config{}
	}
	if config.Analysis == nil {
		config.Analysis = &AnalysisConfig{}
	}
	if config.Profiles == nil {
		config.Profiles = &ProfilesConfig{}
	}
	if config.Matching == nil {
		config.Matching = &matching.Config{}
	}

	return config, nil
}
