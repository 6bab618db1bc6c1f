package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/neuhauss/example-gemini/internal/application/ports"
	"github.com/neuhauss/example-gemini/internal/domain/entity"
)

// Límites del timeout de cada llamada al LLM.
const (
	MinEnrichTimeout     = 10 * time.Second
	MaxEnrichTimeout     = 30 * time.Second
	DefaultEnrichTimeout = 15 * time.Second
)

// AIUseCase es el gateway de enriquecimiento: pide al LLM categoría, valor y
// descripción para un nombre de ítem. Nunca devuelve error; cualquier fallo
// (transporte, respuesta inválida, timeout) se registra y se traduce en nil.
// Hace un único intento por llamada y no toca el store.
type AIUseCase struct {
	llm     ports.LLMService
	timeout time.Duration
	log     zerolog.Logger
}

// NewAIUseCase construye el caso de uso inyectando el puerto LLMService.
// El timeout se acota a [MinEnrichTimeout, MaxEnrichTimeout]; 0 usa DefaultEnrichTimeout.
func NewAIUseCase(llm ports.LLMService, timeout time.Duration, log zerolog.Logger) *AIUseCase {
	switch {
	case timeout == 0:
		timeout = DefaultEnrichTimeout
	case timeout < MinEnrichTimeout:
		timeout = MinEnrichTimeout
	case timeout > MaxEnrichTimeout:
		timeout = MaxEnrichTimeout
	}
	return &AIUseCase{llm: llm, timeout: timeout, log: log}
}

// Timeout timeout efectivo de cada llamada.
func (uc *AIUseCase) Timeout() time.Duration { return uc.timeout }

// Enrich devuelve la sugerencia del modelo para itemName, o nil si el nombre
// está vacío o la llamada falla por cualquier motivo.
func (uc *AIUseCase) Enrich(ctx context.Context, itemName string) *entity.AIPrediction {
	name := strings.TrimSpace(itemName)
	if name == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	start := time.Now()
	p, err := uc.llm.SuggestItemDetails(ctx, name)
	if err != nil {
		uc.log.Warn().Err(err).Str("item", name).Dur("elapsed", time.Since(start)).Msg("enriquecimiento IA fallido")
		return nil
	}
	if p == nil {
		uc.log.Warn().Str("item", name).Msg("enriquecimiento IA sin resultado")
		return nil
	}
	uc.log.Debug().Str("item", name).Str("category", p.Category).Dur("elapsed", time.Since(start)).Msg("enriquecimiento IA ok")
	return p
}
