package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/neuhauss/example-gemini/internal/application/analytics"
	"github.com/neuhauss/example-gemini/internal/application/dto"
	"github.com/neuhauss/example-gemini/internal/application/inventory"
	"github.com/neuhauss/example-gemini/internal/application/ports"
	"github.com/neuhauss/example-gemini/internal/application/session"
	"github.com/neuhauss/example-gemini/internal/application/usecase"
	"github.com/neuhauss/example-gemini/internal/domain/entity"
	"github.com/neuhauss/example-gemini/internal/infrastructure/blob"
	apphttp "github.com/neuhauss/example-gemini/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type stubLLM struct {
	result *entity.AIPrediction
	err    error
}

func (s stubLLM) SuggestItemDetails(context.Context, string) (*entity.AIPrediction, error) {
	return s.result, s.err
}

type stubPDF struct{}

func (stubPDF) InventoryReport(context.Context, ports.ReportData) ([]byte, error) {
	return []byte("%PDF-1.3 stub"), nil
}

// buildTestApp construye la aplicación Fiber completa sobre un store en memoria
// inicializado con la semilla.
func buildTestApp(t *testing.T, llm ports.LLMService) (*fiber.App, *inventory.Store) {
	t.Helper()
	store := inventory.NewStore(blob.NewMemoryStore(), "")
	store.Initialize(context.Background())

	ai := usecase.NewAIUseCase(llm, 0, zerolog.Nop())
	app := fiber.New()
	app.Use(apphttp.RequestLogger(zerolog.Nop()))
	apphttp.Router(app, apphttp.RouterDeps{
		ItemUC:      usecase.NewItemUseCase(store, session.NewDeleteConfirmations(time.Minute, nil), zerolog.Nop()),
		DraftUC:     usecase.NewDraftUseCase(session.NewForms(nil, zerolog.Nop()), store, ai),
		AIUC:        ai,
		DashboardUC: appanalytics.NewDashboardUseCase(store),
		ReportUC:    usecase.NewReportUseCase(store, stubPDF{}, ""),
	})
	return app, store
}

func do(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Items
// ──────────────────────────────────────────────────────────────────────────────

func TestItems_ListYFiltro(t *testing.T) {
	app, _ := buildTestApp(t, stubLLM{})

	resp := do(t, app, http.MethodGet, "/api/items", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(apphttp.HeaderRequestID))
	list := decode[dto.ItemListResponse](t, resp)
	assert.Equal(t, 2, list.Count)

	resp = do(t, app, http.MethodGet, "/api/items?search=CADEIRA&category=Furniture", nil)
	list = decode[dto.ItemListResponse](t, resp)
	require.Equal(t, 1, list.Count)
	assert.Equal(t, "2", list.Items[0].ID)
}

func TestItems_CreateGetUpdate(t *testing.T) {
	app, store := buildTestApp(t, stubLLM{})

	resp := do(t, app, http.MethodPost, "/api/items", map[string]any{
		"name": "Monitor 27", "category": "Electronics", "quantity": 2, "value": 1500.5,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := decode[dto.ItemResponse](t, resp)
	assert.Equal(t, "Monitor 27", created.Name)
	assert.True(t, decimal.RequireFromString("3001").Equal(created.TotalValue))
	assert.Equal(t, created.ID, store.List()[0].ID)

	resp = do(t, app, http.MethodGet, "/api/items/"+created.ID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = do(t, app, http.MethodPut, "/api/items/"+created.ID, map[string]any{
		"name": "Monitor 27\"", "category": "Electronics", "quantity": 3, "value": "1500.50",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	updated := decode[dto.ItemResponse](t, resp)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, 3, updated.Quantity)
}

func TestItems_Validacion(t *testing.T) {
	app, store := buildTestApp(t, stubLLM{})

	resp := do(t, app, http.MethodPost, "/api/items", map[string]any{"name": "  ", "quantity": 1})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	e := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", e.Code)
	assert.Equal(t, "name", e.Field)

	resp = do(t, app, http.MethodPost, "/api/items", map[string]any{"name": "x", "value": -1})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "value", decode[dto.ErrorResponse](t, resp).Field)

	assert.Len(t, store.List(), 2)
}

func TestItems_NoEncontrado(t *testing.T) {
	app, _ := buildTestApp(t, stubLLM{})

	assert.Equal(t, fiber.StatusNotFound, do(t, app, http.MethodGet, "/api/items/nope", nil).StatusCode)
	assert.Equal(t, fiber.StatusNotFound, do(t, app, http.MethodPut, "/api/items/nope", map[string]any{"name": "x"}).StatusCode)
	assert.Equal(t, fiber.StatusNotFound, do(t, app, http.MethodPost, "/api/items/nope/delete-request", nil).StatusCode)
}

func TestItems_BorradoEnDosPasos(t *testing.T) {
	app, store := buildTestApp(t, stubLLM{})

	// sin token no se borra
	resp := do(t, app, http.MethodDelete, "/api/items/1", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = do(t, app, http.MethodPost, "/api/items/1/delete-request", nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	ticket := decode[dto.DeleteTicketResponse](t, resp)
	assert.Equal(t, "MacBook Pro M3", ticket.ItemName)

	resp = do(t, app, http.MethodDelete, "/api/items/2?token="+ticket.Token, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = do(t, app, http.MethodDelete, "/api/items/1?token="+ticket.Token, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Len(t, store.List(), 1)

	resp = do(t, app, http.MethodDelete, "/api/items/1?token="+ticket.Token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

// El token queda ligado al id de la primera petición aunque fiber reutilice
// sus buffers en la siguiente.
func TestItems_TokenDeOtroItemNoBorra(t *testing.T) {
	app, store := buildTestApp(t, stubLLM{})

	resp := do(t, app, http.MethodPost, "/api/items/2/delete-request", nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	ticket := decode[dto.DeleteTicketResponse](t, resp)
	assert.Equal(t, "2", ticket.ItemID)

	resp = do(t, app, http.MethodDelete, "/api/items/1?token="+ticket.Token, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Len(t, store.List(), 2)

	// el token sigue sirviendo para su ítem
	resp = do(t, app, http.MethodDelete, "/api/items/2?token="+ticket.Token, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	_, ok := store.Get("1")
	assert.True(t, ok)
}

func TestItems_ExportYCategorias(t *testing.T) {
	app, _ := buildTestApp(t, stubLLM{})

	resp := do(t, app, http.MethodGet, "/api/items/export", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "inventory_items.json")
	raw := decode[[]map[string]any](t, resp)
	require.Len(t, raw, 2)
	assert.Equal(t, "MacBook Pro M3", raw[0]["name"])

	resp = do(t, app, http.MethodGet, "/api/categories", nil)
	cats := decode[dto.CategoriesResponse](t, resp)
	assert.Len(t, cats.Categories, 6)
	assert.Equal(t, "all", cats.All)
}

// ──────────────────────────────────────────────────────────────────────────────
// IA, formularios, resumen y reporte
// ──────────────────────────────────────────────────────────────────────────────

var prediction = &entity.AIPrediction{
	Category:       "Books",
	EstimatedValue: decimal.NewFromInt(80),
	Description:    "Livro técnico.",
}

func TestAI_Enrich(t *testing.T) {
	app, store := buildTestApp(t, stubLLM{result: prediction})

	resp := do(t, app, http.MethodPost, "/api/ai/enrich", map[string]any{"name": "Go em Ação"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	p := decode[dto.PredictionDTO](t, resp)
	assert.Equal(t, "Books", p.Category)
	assert.Len(t, store.List(), 2, "la sugerencia no toca el store")

	resp = do(t, app, http.MethodPost, "/api/ai/enrich", map[string]any{"name": ""})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAI_EnrichFalloDevuelve204(t *testing.T) {
	app, _ := buildTestApp(t, stubLLM{err: errors.New("quota")})

	resp := do(t, app, http.MethodPost, "/api/ai/enrich", map[string]any{"name": "Mesa"})
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestDrafts_Flujo(t *testing.T) {
	app, store := buildTestApp(t, stubLLM{result: prediction})

	resp := do(t, app, http.MethodPost, "/api/drafts", nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	d := decode[dto.DraftResponse](t, resp)
	assert.Equal(t, "Other", d.Fields.Category)
	assert.Equal(t, 1, d.Fields.Quantity)

	resp = do(t, app, http.MethodPost, "/api/drafts/"+d.ID+"/enrich", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "sin nombre no se consulta la IA")

	resp = do(t, app, http.MethodPut, "/api/drafts/"+d.ID, map[string]any{"name": "Go em Ação", "quantity": 2})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = do(t, app, http.MethodPost, "/api/drafts/"+d.ID+"/enrich", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	enriched := decode[dto.DraftEnrichResponse](t, resp)
	assert.True(t, enriched.Applied)
	assert.Equal(t, "Books", enriched.Draft.Fields.Category)
	assert.Equal(t, 2, enriched.Draft.Fields.Quantity)

	resp = do(t, app, http.MethodPost, "/api/drafts/"+d.ID+"/submit", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	item := decode[dto.ItemResponse](t, resp)
	assert.Equal(t, item.ID, store.List()[0].ID)

	assert.Equal(t, fiber.StatusNotFound, do(t, app, http.MethodGet, "/api/drafts/"+d.ID, nil).StatusCode)
}

func TestDrafts_EdicionYDescarte(t *testing.T) {
	app, _ := buildTestApp(t, stubLLM{})

	resp := do(t, app, http.MethodPost, "/api/drafts", map[string]any{"item_id": "2"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	d := decode[dto.DraftResponse](t, resp)
	assert.Equal(t, "2", d.EditingID)
	assert.Equal(t, "Cadeira Ergonômica", d.Fields.Name)

	assert.Equal(t, fiber.StatusNoContent, do(t, app, http.MethodDelete, "/api/drafts/"+d.ID, nil).StatusCode)
	assert.Equal(t, fiber.StatusNotFound, do(t, app, http.MethodDelete, "/api/drafts/"+d.ID, nil).StatusCode)

	resp = do(t, app, http.MethodPost, "/api/drafts", map[string]any{"item_id": "nope"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestStats(t *testing.T) {
	app, _ := buildTestApp(t, stubLLM{})

	resp := do(t, app, http.MethodGet, "/api/stats", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	s := decode[dto.DashboardSummaryDTO](t, resp)
	assert.Equal(t, 3, s.TotalUnits)
	assert.True(t, decimal.NewFromInt(14200).Equal(s.TotalValue))
	require.Len(t, s.ByCategory, 2)
	assert.Equal(t, "Electronics", s.ByCategory[0].Category)
}

func TestReport(t *testing.T) {
	app, _ := buildTestApp(t, stubLLM{})

	resp := do(t, app, http.MethodGet, "/api/reports/inventory.pdf?category=Furniture", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "inventario_")
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}
