package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuhauss/example-gemini/internal/application/dto"
	"github.com/neuhauss/example-gemini/internal/application/inventory"
	"github.com/neuhauss/example-gemini/internal/application/ports"
	"github.com/neuhauss/example-gemini/internal/application/session"
	"github.com/neuhauss/example-gemini/internal/application/usecase"
	"github.com/neuhauss/example-gemini/internal/domain"
	"github.com/neuhauss/example-gemini/internal/domain/entity"
	"github.com/neuhauss/example-gemini/internal/infrastructure/blob"
)

func newStore(t *testing.T) *inventory.Store {
	t.Helper()
	s := inventory.NewStore(blob.NewMemoryStore(), "")
	s.Initialize(context.Background())
	return s
}

func newItemUseCase(t *testing.T) (*usecase.ItemUseCase, *inventory.Store) {
	t.Helper()
	store := newStore(t)
	return usecase.NewItemUseCase(store, session.NewDeleteConfirmations(time.Minute, nil), zerolog.Nop()), store
}

func intPtr(n int) *int { return &n }

func TestItemUseCase_CreateConDefaults(t *testing.T) {
	uc, store := newItemUseCase(t)

	resp, err := uc.Create(context.Background(), dto.ItemRequest{Name: "Caneta"})
	require.NoError(t, err)
	assert.Equal(t, "Other", resp.Category)
	assert.Equal(t, 1, resp.Quantity)
	assert.True(t, resp.Value.IsZero())
	assert.Equal(t, resp.ID, store.List()[0].ID)
}

func TestItemUseCase_CreateInvalido(t *testing.T) {
	uc, store := newItemUseCase(t)

	_, err := uc.Create(context.Background(), dto.ItemRequest{Name: "Caneta", Quantity: intPtr(0)})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "quantity", verr.Field)
	assert.Len(t, store.List(), 2)
}

func TestItemUseCase_UpdateYGet(t *testing.T) {
	uc, _ := newItemUseCase(t)
	v := decimal.NewFromInt(900)

	resp, err := uc.Update(context.Background(), "2", dto.ItemRequest{
		Name: "Cadeira Ergonômica", Category: "Furniture", Quantity: intPtr(4), Value: &v,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Quantity)
	assert.True(t, decimal.NewFromInt(3600).Equal(resp.TotalValue))

	got, err := uc.GetByID("2")
	require.NoError(t, err)
	assert.Equal(t, resp, got)

	_, err = uc.GetByID("nope")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestItemUseCase_List(t *testing.T) {
	uc, _ := newItemUseCase(t)

	all := uc.List("", "")
	assert.Equal(t, 2, all.Count)
	assert.Equal(t, entity.CategoryAll, all.Category)

	furniture := uc.List("", "Furniture")
	require.Equal(t, 1, furniture.Count)
	assert.Equal(t, "2", furniture.Items[0].ID)

	assert.Equal(t, 1, uc.List("macbook", "all").Count)
	assert.NotNil(t, uc.List("zzz", "all").Items)
}

func TestItemUseCase_BorradoEnDosPasos(t *testing.T) {
	uc, store := newItemUseCase(t)
	ctx := context.Background()

	ticket, err := uc.RequestDelete("1")
	require.NoError(t, err)
	assert.Equal(t, "MacBook Pro M3", ticket.ItemName)
	assert.Len(t, store.List(), 2, "solicitar no borra")

	err = uc.ConfirmDelete(ctx, "2", ticket.Token)
	assert.True(t, errors.Is(err, domain.ErrConflict))

	require.NoError(t, uc.ConfirmDelete(ctx, "1", ticket.Token))
	assert.Len(t, store.List(), 1)

	err = uc.ConfirmDelete(ctx, "1", ticket.Token)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestItemUseCase_RequestDeleteInexistente(t *testing.T) {
	uc, _ := newItemUseCase(t)
	_, err := uc.RequestDelete("nope")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestItemUseCase_ItemBorradoEntreSolicitudYConfirmacion(t *testing.T) {
	uc, store := newItemUseCase(t)
	ticket, err := uc.RequestDelete("1")
	require.NoError(t, err)

	require.True(t, store.Delete(context.Background(), "1"))
	err = uc.ConfirmDelete(context.Background(), "1", ticket.Token)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestItemUseCase_ExportYCategorias(t *testing.T) {
	uc, _ := newItemUseCase(t)

	raw, err := uc.Export()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(raw, "["))
	assert.Contains(t, raw, `"MacBook Pro M3"`)

	cats := uc.Categories()
	assert.Equal(t, []string{"Electronics", "Furniture", "Clothing", "Books", "Tools", "Other"}, cats.Categories)
	assert.Equal(t, "all", cats.All)
}

// ── Reporte ───────────────────────────────────────────────────────────────────

type captureGenerator struct {
	data ports.ReportData
	err  error
}

func (g *captureGenerator) InventoryReport(_ context.Context, data ports.ReportData) ([]byte, error) {
	g.data = data
	if g.err != nil {
		return nil, g.err
	}
	return []byte("%PDF-fake"), nil
}

func TestReportUseCase_FiltraYResume(t *testing.T) {
	gen := &captureGenerator{}
	uc := usecase.NewReportUseCase(newStore(t), gen, "")

	pdf, filename, err := uc.InventoryReport(context.Background(), "", "Electronics")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), pdf)
	assert.True(t, strings.HasPrefix(filename, "inventario_"))
	assert.True(t, strings.HasSuffix(filename, ".pdf"))

	assert.Equal(t, "Inventário", gen.data.Title)
	assert.Equal(t, "Categoria: Electronics", gen.data.Filter)
	require.Len(t, gen.data.Items, 1)
	assert.Equal(t, 1, gen.data.Summary.TotalUnits)
}

func TestReportUseCase_ErrorDelGenerador(t *testing.T) {
	uc := usecase.NewReportUseCase(newStore(t), &captureGenerator{err: errors.New("boom")}, "X")
	_, _, err := uc.InventoryReport(context.Background(), "", "")
	require.Error(t, err)
}

// ── Formularios ───────────────────────────────────────────────────────────────

func TestDraftUseCase_FlujoCompleto(t *testing.T) {
	store := newStore(t)
	llm := &fakeLLM{result: &entity.AIPrediction{Category: "Books", EstimatedValue: decimal.NewFromInt(80), Description: "Livro técnico."}}
	ai := usecase.NewAIUseCase(llm, 0, zerolog.Nop())
	uc := usecase.NewDraftUseCase(session.NewForms(nil, zerolog.Nop()), store, ai)
	ctx := context.Background()

	d, err := uc.Open("")
	require.NoError(t, err)

	_, err = uc.Edit(d.ID, dto.ItemRequest{Name: "Go em Ação", Quantity: intPtr(2)})
	require.NoError(t, err)

	enriched, err := uc.Enrich(ctx, d.ID)
	require.NoError(t, err)
	assert.True(t, enriched.Applied)
	require.NotNil(t, enriched.Prediction)
	assert.Equal(t, "Books", enriched.Draft.Fields.Category)
	assert.Equal(t, 2, enriched.Draft.Fields.Quantity)

	item, err := uc.Submit(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go em Ação", item.Name)
	assert.Equal(t, "Books", item.Category)
	assert.Len(t, store.List(), 3)

	_, err = uc.Get(d.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestDraftUseCase_OpenEdicionInexistente(t *testing.T) {
	uc := usecase.NewDraftUseCase(session.NewForms(nil, zerolog.Nop()), newStore(t), nil)
	_, err := uc.Open("nope")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestDraftUseCase_Discard(t *testing.T) {
	uc := usecase.NewDraftUseCase(session.NewForms(nil, zerolog.Nop()), newStore(t), nil)
	d, err := uc.Open("1")
	require.NoError(t, err)
	assert.Equal(t, "1", d.EditingID)
	assert.Equal(t, "MacBook Pro M3", d.Fields.Name)

	require.NoError(t, uc.Discard(d.ID))
	assert.True(t, errors.Is(uc.Discard(d.ID), domain.ErrNotFound))
}
