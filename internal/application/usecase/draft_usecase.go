package usecase

import (
	"context"
	"fmt"

	"github.com/neuhauss/example-gemini/internal/application/dto"
	"github.com/neuhauss/example-gemini/internal/application/session"
	"github.com/neuhauss/example-gemini/internal/domain"
	"github.com/neuhauss/example-gemini/internal/domain/entity"
)

// DraftUseCase flujo del formulario de alta/edición con sugerencia de IA.
type DraftUseCase struct {
	forms    *session.Forms
	store    ItemStore
	enricher session.Enricher
}

// NewDraftUseCase construye el caso de uso.
func NewDraftUseCase(forms *session.Forms, store ItemStore, enricher session.Enricher) *DraftUseCase {
	return &DraftUseCase{forms: forms, store: store, enricher: enricher}
}

// Open abre un formulario nuevo o, con itemID, la edición de ese ítem.
func (uc *DraftUseCase) Open(itemID string) (*dto.DraftResponse, error) {
	var editing *entity.InventoryItem
	if itemID != "" {
		item, ok := uc.store.Get(itemID)
		if !ok {
			return nil, fmt.Errorf("ítem %s: %w", itemID, domain.ErrNotFound)
		}
		editing = &item
	}
	resp := dto.NewDraftResponse(uc.forms.Open(editing))
	return &resp, nil
}

// Get estado actual del formulario.
func (uc *DraftUseCase) Get(id string) (*dto.DraftResponse, error) {
	st, err := uc.forms.Get(id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewDraftResponse(st)
	return &resp, nil
}

// Edit reemplaza los campos del formulario.
func (uc *DraftUseCase) Edit(id string, in dto.ItemRequest) (*dto.DraftResponse, error) {
	st, err := uc.forms.Edit(id, in.ToDraft())
	if err != nil {
		return nil, err
	}
	resp := dto.NewDraftResponse(st)
	return &resp, nil
}

// Enrich pide la sugerencia de IA para el nombre actual y la aplica si sigue vigente.
func (uc *DraftUseCase) Enrich(ctx context.Context, id string) (*dto.DraftEnrichResponse, error) {
	out, err := uc.forms.Enrich(ctx, id, uc.enricher)
	if err != nil {
		return nil, err
	}
	return &dto.DraftEnrichResponse{
		Draft:      dto.NewDraftResponse(out.State),
		Prediction: dto.NewPredictionDTO(out.Prediction),
		Applied:    out.Applied,
	}, nil
}

// Submit guarda el formulario en el store y lo cierra.
func (uc *DraftUseCase) Submit(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.forms.Submit(ctx, id, uc.store)
	if err != nil {
		return nil, err
	}
	resp := dto.NewItemResponse(item)
	return &resp, nil
}

// Discard cierra el formulario sin guardar.
func (uc *DraftUseCase) Discard(id string) error {
	return uc.forms.Discard(id)
}
