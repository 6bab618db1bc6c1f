package ai

import (
	"github.com/neuhauss/example-gemini/internal/application/ports"
	"github.com/neuhauss/example-gemini/pkg/config"
)

// NewFromConfig devuelve el adaptador del proveedor configurado (gemini por defecto).
func NewFromConfig(cfg config.AIConfig) ports.LLMService {
	if cfg.Provider == config.ProviderAnthropic {
		return NewAnthropicService(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	}
	return NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel)
}

// Configured indica si el proveedor seleccionado tiene API key.
func Configured(cfg config.AIConfig) bool {
	if cfg.Provider == config.ProviderAnthropic {
		return cfg.AnthropicAPIKey != ""
	}
	return cfg.GeminiAPIKey != ""
}
