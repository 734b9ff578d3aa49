package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"

	"quiz-spark/internal/config"
	"quiz-spark/internal/logger"
)

// NewModel builds a langchaingo model for the configured provider.
// modelName overrides cfg.Model so the same provider can serve both the text
// and the document-understanding model.
func NewModel(ctx context.Context, cfg config.LLMConfig, modelName string) (llms.Model, error) {
	if modelName == "" {
		modelName = cfg.Model
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     30 * time.Second,
		},
	}

	logger.Get().Info("Initializing LLM client",
		zap.String("provider", cfg.Provider),
		zap.String("model", modelName))

	switch cfg.Provider {
	case config.LLMProviderGoogleAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("googleai API key cannot be empty")
		}
		m, err := googleai.New(ctx,
			googleai.WithAPIKey(cfg.APIKey),
			googleai.WithDefaultModel(modelName),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create googleai client: %w", err)
		}
		return m, nil
	case config.LLMProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai API key cannot be empty")
		}
		m, err := openai.New(
			openai.WithToken(cfg.APIKey),
			openai.WithModel(modelName),
			openai.WithHTTPClient(httpClient),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create openai client: %w", err)
		}
		return m, nil
	case config.LLMProviderOllama:
		m, err := ollama.New(
			ollama.WithServerURL(cfg.ServerURL),
			ollama.WithModel(modelName),
			ollama.WithHTTPClient(httpClient),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama client: %w", err)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %q", cfg.Provider)
	}
}
