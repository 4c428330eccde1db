package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/spigell/resume-scanner/internal/ai/gemini"
	"github.com/spigell/resume-scanner/internal/document"
	"github.com/spigell/resume-scanner/internal/engine"
	"github.com/spigell/resume-scanner/internal/logger"
	"github.com/spigell/resume-scanner/internal/metrics"
	"github.com/spigell/resume-scanner/internal/profiles"
	"github.com/spigell/resume-scanner/internal/profiles/github"
	"github.com/spigell/resume-scanner/internal/profiles/linkedin"
	"github.com/spigell/resume-scanner/internal/scoring"
	"github.com/spigell/resume-scanner/internal/secrets"
)

// session holds what every command needs: logger, config and metrics.
type session struct {
	logger  *zap.Logger
	config  *Config
	metrics *metrics.Recorder
}

func newSession() (*session, error) {
	log, err := logger.New(app, viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		return nil, fmt.Errorf("creating a logger: %w", err)
	}

	config, err := getConfig()
	if err != nil {
		return nil, err
	}

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	log.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	return &session{logger: log, config: config, metrics: metrics.New()}, nil
}

// close dumps metrics when a metrics file is configured.
func (s *session) close() {
	if err := s.metrics.WriteToTextfile(s.config.MetricsFile); err != nil {
		s.logger.Warn("writing metrics file", zap.String("path", s.config.MetricsFile), zap.Error(err))
	}
	_ = s.logger.Sync()
}

func (s *session) engine(ctx context.Context) (*engine.Engine, error) {
	scorer, err := s.scorer(ctx)
	if err != nil {
		return nil, err
	}

	docs, err := document.New(ctx, document.WithLogger(s.logger))
	if err != nil {
		return nil, err
	}

	collector, err := s.collector()
	if err != nil {
		return nil, err
	}

	return engine.New(engine.Config{Matching: *s.config.Matching}, engine.Deps{
		Scorer:    scorer,
		Documents: docs,
		Profiles:  collector,
		Metrics:   s.metrics,
		Logger:    s.logger,
	}), nil
}

func (s *session) scorer(ctx context.Context) (scoring.Scorer, error) {
	cfg := s.config.Analysis
	source := strings.TrimSpace(strings.ToLower(cfg.Source))

	switch source {
	case "", scoring.SourceHeuristic:
		return scoring.Heuristic{}, nil
	case gemini.Provider:
	default:
		return nil, fmt.Errorf("unsupported analysis source: %s", cfg.Source)
	}

	gcfg := cfg.Gemini
	if gcfg == nil {
		gcfg = &GeminiConfig{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: gcfg.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set analysis.gemini.api-key-file or GEMINI_API_KEY)", err)
	}

	genLogger := logger.WithProvider(s.logger, gemini.Provider, gcfg.Model).With(
		zap.Int("ai_retry_attempts", gcfg.MaxRetries),
	)

	generator, err := gemini.NewGenerator(ctx, apiKey, gcfg.Model, gcfg.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}

	analyzer := gemini.NewAnalyzer(generator, genLogger, gcfg.MaxLogLength)

	return scoring.NewGenerative(analyzer, scoring.Heuristic{}, s.logger,
		scoring.WithTimeout(cfg.Timeout),
		scoring.WithFallbackHook(s.metrics.ScorerFallback),
	), nil
}

func (s *session) collector() (*profiles.Collector, error) {
	cfg := s.config.Profiles
	gcfg := cfg.GitHub
	if gcfg == nil {
		gcfg = &GitHubConfig{}
	}

	token, err := secrets.LoadOptional(secrets.Source{
		Name: "github token",
		File: gcfg.TokenFile,
		Env:  "GITHUB_TOKEN",
	})
	if err != nil {
		return nil, err
	}

	gh := github.New(logger.WithSource(s.logger, "repository"), token)
	if gcfg.APIURL != "" {
		gh.APIURL = strings.TrimRight(gcfg.APIURL, "/")
	}
	if gcfg.UserAgent != "" {
		gh.UserAgent = gcfg.UserAgent
	}

	return profiles.NewCollector(gh, linkedin.New(logger.WithSource(s.logger, "network")), s.logger,
		profiles.WithTimeout(cfg.Timeout),
		profiles.WithMaxRetries(cfg.MaxRetries),
		profiles.WithFallbackHook(s.metrics.ProfileFallback),
	), nil
}

// decodeFile reads a YAML (or JSON) document into target using its json tags.
// Embedded structs are flattened.
func decodeFile(path string, target any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "json",
		Squash:           true,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}

	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
