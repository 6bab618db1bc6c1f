package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/neuhauss/example-gemini/internal/application/analytics"
	"github.com/neuhauss/example-gemini/internal/application/dto"
	"github.com/neuhauss/example-gemini/internal/application/session"
	"github.com/neuhauss/example-gemini/internal/domain"
	"github.com/neuhauss/example-gemini/internal/domain/entity"
)

// ItemStore operaciones del Item Store que usa la capa de presentación.
type ItemStore interface {
	Create(ctx context.Context, draft entity.ItemDraft) (entity.InventoryItem, error)
	Update(ctx context.Context, id string, draft entity.ItemDraft) (entity.InventoryItem, error)
	Delete(ctx context.Context, id string) bool
	List() []entity.InventoryItem
	Get(id string) (entity.InventoryItem, bool)
	Export() (string, error)
}

// ItemUseCase casos de uso CRUD de ítems. El borrado exige confirmación en dos pasos.
type ItemUseCase struct {
	store    ItemStore
	confirms *session.DeleteConfirmations
	log      zerolog.Logger
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(store ItemStore, confirms *session.DeleteConfirmations, log zerolog.Logger) *ItemUseCase {
	return &ItemUseCase{store: store, confirms: confirms, log: log}
}

// Create crea un ítem. Devuelve *domain.ValidationError si el borrador es inválido.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.ItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.store.Create(ctx, in.ToDraft())
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("id", item.ID).Str("name", item.Name).Msg("ítem creado")
	resp := dto.NewItemResponse(item)
	return &resp, nil
}

// Update reemplaza los campos editables del ítem id.
func (uc *ItemUseCase) Update(ctx context.Context, id string, in dto.ItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.store.Update(ctx, id, in.ToDraft())
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("id", item.ID).Msg("ítem actualizado")
	resp := dto.NewItemResponse(item)
	return &resp, nil
}

// GetByID obtiene un ítem por ID; domain.ErrNotFound si no existe.
func (uc *ItemUseCase) GetByID(id string) (*dto.ItemResponse, error) {
	item, ok := uc.store.Get(id)
	if !ok {
		return nil, fmt.Errorf("ítem %s: %w", id, domain.ErrNotFound)
	}
	resp := dto.NewItemResponse(item)
	return &resp, nil
}

// List filtra la colección por término y categoría (vacía = "all").
func (uc *ItemUseCase) List(search, category string) *dto.ItemListResponse {
	category = normalizeFilterCategory(category)
	items := analytics.Filter(uc.store.List(), search, category)

	out := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.NewItemResponse(it))
	}
	return &dto.ItemListResponse{
		Items:    out,
		Count:    len(out),
		Search:   search,
		Category: category,
	}
}

// RequestDelete primer paso del borrado: emite un token de confirmación.
func (uc *ItemUseCase) RequestDelete(id string) (*dto.DeleteTicketResponse, error) {
	item, ok := uc.store.Get(id)
	if !ok {
		return nil, fmt.Errorf("ítem %s: %w", id, domain.ErrNotFound)
	}
	t := uc.confirms.Request(id)
	return &dto.DeleteTicketResponse{
		Token:     t.Token,
		ItemID:    t.ItemID,
		ItemName:  item.Name,
		ExpiresAt: t.ExpiresAt,
	}, nil
}

// ConfirmDelete segundo paso: consume el token y elimina el ítem.
func (uc *ItemUseCase) ConfirmDelete(ctx context.Context, id, token string) error {
	if err := uc.confirms.Confirm(token, id); err != nil {
		return err
	}
	if !uc.store.Delete(ctx, id) {
		return fmt.Errorf("ítem %s: %w", id, domain.ErrNotFound)
	}
	uc.log.Info().Str("id", id).Msg("ítem eliminado")
	return nil
}

// Export devuelve la colección en el formato del blob persistido.
func (uc *ItemUseCase) Export() (string, error) {
	return uc.store.Export()
}

// Categories categorías sugeridas para el formulario y el filtro.
func (uc *ItemUseCase) Categories() dto.CategoriesResponse {
	cats := entity.KnownCategories()
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = string(c)
	}
	return dto.CategoriesResponse{Categories: names, All: entity.CategoryAll}
}
