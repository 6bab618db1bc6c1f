package inventory_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuhauss/example-gemini/internal/application/inventory"
	"github.com/neuhauss/example-gemini/internal/domain"
	"github.com/neuhauss/example-gemini/internal/domain/entity"
	"github.com/neuhauss/example-gemini/internal/infrastructure/blob"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var testNow = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

// failingBlobs simula un backend caído.
type failingBlobs struct {
	getErr error
	setErr error
	sets   int
}

func (f *failingBlobs) Get(context.Context, string) (string, bool, error) {
	return "", false, f.getErr
}

func (f *failingBlobs) Set(context.Context, string, string) error {
	f.sets++
	return f.setErr
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestStore(t *testing.T, blobs *blob.MemoryStore) *inventory.Store {
	t.Helper()
	clock := testNow
	s := inventory.NewStore(blobs, "",
		inventory.WithClock(func() time.Time {
			clock = clock.Add(time.Millisecond)
			return clock
		}),
		inventory.WithIDGenerator(sequentialIDs()),
	)
	s.Initialize(context.Background())
	return s
}

func draft(name string, cat entity.Category, qty int, value int64) entity.ItemDraft {
	return entity.ItemDraft{
		Name:     name,
		Category: cat,
		Quantity: qty,
		Value:    decimal.NewFromInt(value),
	}
}

func persisted(t *testing.T, blobs *blob.MemoryStore) []entity.InventoryItem {
	t.Helper()
	raw, found, err := blobs.Get(context.Background(), inventory.DefaultBlobKey)
	require.NoError(t, err)
	require.True(t, found, "la colección debe estar persistida")
	items, err := inventory.DecodeItems(raw)
	require.NoError(t, err)
	return items
}

// ──────────────────────────────────────────────────────────────────────────────
// Initialize
// ──────────────────────────────────────────────────────────────────────────────

func TestInitialize_SinBlobCargaSemillaYPersiste(t *testing.T) {
	blobs := blob.NewMemoryStore()
	s := inventory.NewStore(blobs, "", inventory.WithClock(func() time.Time { return testNow }))

	items := s.Initialize(context.Background())

	require.Len(t, items, 2)
	assert.Equal(t, "MacBook Pro M3", items[0].Name)
	assert.Equal(t, entity.CategoryElectronics, items[0].Category)
	assert.Equal(t, testNow.UnixMilli(), items[0].CreatedAt)
	assert.Equal(t, "Cadeira Ergonômica", items[1].Name)
	assert.Equal(t, testNow.UnixMilli()-100000, items[1].CreatedAt)

	assert.Equal(t, items, persisted(t, blobs), "la semilla se escribe cuando no hay blob")
}

func TestInitialize_BlobIlegibleUsaSemillaSinPisarlo(t *testing.T) {
	blobs := blob.NewMemoryStore()
	require.NoError(t, blobs.Set(context.Background(), inventory.DefaultBlobKey, "{no es json"))

	s := inventory.NewStore(blobs, "")
	items := s.Initialize(context.Background())
	require.Len(t, items, 2)

	raw, _, _ := blobs.Get(context.Background(), inventory.DefaultBlobKey)
	assert.Equal(t, "{no es json", raw)
}

func TestInitialize_BlobNullUsaSemilla(t *testing.T) {
	blobs := blob.NewMemoryStore()
	require.NoError(t, blobs.Set(context.Background(), inventory.DefaultBlobKey, "null"))

	items := inventory.NewStore(blobs, "").Initialize(context.Background())
	assert.Len(t, items, 2)
}

func TestInitialize_ErrorDeLecturaUsaSemilla(t *testing.T) {
	blobs := &failingBlobs{getErr: errors.New("conexión rechazada")}
	s := inventory.NewStore(blobs, "")

	items := s.Initialize(context.Background())
	assert.Len(t, items, 2)
	assert.Zero(t, blobs.sets, "no se persiste semilla si la lectura falló")
}

func TestInitialize_BlobExistenteSeRespeta(t *testing.T) {
	blobs := blob.NewMemoryStore()
	raw := `[{"id":"abc","name":"Furadeira","category":"Ferramentas","quantity":3,"value":320.9,"description":"","createdAt":1700000000000}]`
	require.NoError(t, blobs.Set(context.Background(), inventory.DefaultBlobKey, raw))

	items := inventory.NewStore(blobs, "").Initialize(context.Background())
	require.Len(t, items, 1)
	assert.Equal(t, "abc", items[0].ID)
	assert.Equal(t, entity.Category("Ferramentas"), items[0].Category, "categorías abiertas se conservan")
	assert.True(t, decimal.RequireFromString("320.9").Equal(items[0].Value))
	assert.Equal(t, int64(1700000000000), items[0].CreatedAt)
}

func TestInitialize_BlobVacioEsColeccionVacia(t *testing.T) {
	blobs := blob.NewMemoryStore()
	require.NoError(t, blobs.Set(context.Background(), inventory.DefaultBlobKey, "[]"))

	items := inventory.NewStore(blobs, "").Initialize(context.Background())
	assert.Empty(t, items)
}

func TestInitialize_SemillaPersonalizada(t *testing.T) {
	s := inventory.NewStore(blob.NewMemoryStore(), "", inventory.WithSeed(func(time.Time) []entity.InventoryItem {
		return nil
	}))
	assert.Empty(t, s.Initialize(context.Background()))
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_AnteponeYPersiste(t *testing.T) {
	blobs := blob.NewMemoryStore()
	s := newTestStore(t, blobs)

	item, err := s.Create(context.Background(), draft("  Monitor 27\"  ", entity.CategoryElectronics, 2, 1800))
	require.NoError(t, err)

	assert.Equal(t, "id-1", item.ID)
	assert.Equal(t, "Monitor 27\"", item.Name, "el nombre se recorta")
	assert.NotZero(t, item.CreatedAt)

	list := s.List()
	require.Len(t, list, 3)
	assert.Equal(t, item, list[0], "el nuevo ítem va primero")
	assert.Equal(t, list, persisted(t, blobs))
}

func TestCreate_IDsUnicos(t *testing.T) {
	s := newTestStore(t, blob.NewMemoryStore())
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		it, err := s.Create(context.Background(), draft(fmt.Sprintf("item %d", i), entity.CategoryBooks, 1, 10))
		require.NoError(t, err)
		assert.False(t, seen[it.ID], "id repetido %s", it.ID)
		seen[it.ID] = true
	}
}

func TestCreate_IDColisionadoSeRegenera(t *testing.T) {
	ids := []string{"1", "1", "2", "nuevo"}
	n := 0
	s := inventory.NewStore(blob.NewMemoryStore(), "", inventory.WithIDGenerator(func() string {
		id := ids[n]
		n++
		return id
	}))
	s.Initialize(context.Background()) // semilla con ids 1 y 2

	it, err := s.Create(context.Background(), draft("x", entity.CategoryOther, 1, 0))
	require.NoError(t, err)
	assert.Equal(t, "nuevo", it.ID)
}

func TestCreate_RechazaBorradoresInvalidos(t *testing.T) {
	cases := []struct {
		name  string
		draft entity.ItemDraft
		field string
	}{
		{"nombre vacío", draft("", entity.CategoryOther, 1, 0), "name"},
		{"nombre solo espacios", draft("   ", entity.CategoryOther, 1, 0), "name"},
		{"cantidad cero", draft("x", entity.CategoryOther, 0, 0), "quantity"},
		{"cantidad negativa", draft("x", entity.CategoryOther, -3, 0), "quantity"},
		{"valor negativo", draft("x", entity.CategoryOther, 1, -1), "value"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			blobs := blob.NewMemoryStore()
			s := newTestStore(t, blobs)
			before := s.List()

			_, err := s.Create(context.Background(), tc.draft)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)

			assert.Equal(t, before, s.List(), "la colección no cambia")
		})
	}
}

func TestCreate_CategoriaVaciaPasaAOther(t *testing.T) {
	s := newTestStore(t, blob.NewMemoryStore())
	it, err := s.Create(context.Background(), draft("Caixa", "", 1, 5))
	require.NoError(t, err)
	assert.Equal(t, entity.CategoryOther, it.Category)
}

func TestCreate_FalloDePersistenciaNoPropaga(t *testing.T) {
	blobs := &failingBlobs{setErr: errors.New("disco lleno")}
	s := inventory.NewStore(blobs, "")
	s.Initialize(context.Background())

	it, err := s.Create(context.Background(), draft("Mesa", entity.CategoryFurniture, 1, 400))
	require.NoError(t, err)
	assert.Equal(t, it, s.List()[0], "el estado en memoria sigue vigente")
	assert.Equal(t, 1, blobs.sets)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_PreservaIDYCreatedAtYOrden(t *testing.T) {
	blobs := blob.NewMemoryStore()
	s := newTestStore(t, blobs)
	a, _ := s.Create(context.Background(), draft("A", entity.CategoryBooks, 1, 10))
	b, _ := s.Create(context.Background(), draft("B", entity.CategoryBooks, 1, 10))

	updated, err := s.Update(context.Background(), a.ID, entity.ItemDraft{
		Name:        "A2",
		Category:    "Colecionáveis",
		Quantity:    7,
		Value:       decimal.RequireFromString("99.90"),
		Description: "nova",
	})
	require.NoError(t, err)

	assert.Equal(t, a.ID, updated.ID)
	assert.Equal(t, a.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "A2", updated.Name)
	assert.Equal(t, entity.Category("Colecionáveis"), updated.Category)
	assert.Equal(t, 7, updated.Quantity)

	list := s.List()
	assert.Equal(t, b.ID, list[0].ID)
	assert.Equal(t, a.ID, list[1].ID, "update no reordena")
	assert.Equal(t, list, persisted(t, blobs))
}

func TestUpdate_IDInexistente(t *testing.T) {
	s := newTestStore(t, blob.NewMemoryStore())
	before := s.List()

	_, err := s.Update(context.Background(), "no-existe", draft("x", entity.CategoryOther, 1, 0))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, before, s.List())
}

func TestUpdate_BorradorInvalido(t *testing.T) {
	s := newTestStore(t, blob.NewMemoryStore())
	_, err := s.Update(context.Background(), "1", draft("x", entity.CategoryOther, 0, 0))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	it, ok := s.Get("1")
	require.True(t, ok)
	assert.Equal(t, 1, it.Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete / Get / Reload / Export
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_Existente(t *testing.T) {
	blobs := blob.NewMemoryStore()
	s := newTestStore(t, blobs)

	assert.True(t, s.Delete(context.Background(), "1"))
	list := s.List()
	require.Len(t, list, 1)
	assert.Equal(t, "2", list[0].ID)
	assert.Equal(t, list, persisted(t, blobs))
}

func TestDelete_Inexistente(t *testing.T) {
	s := newTestStore(t, blob.NewMemoryStore())
	before := s.List()
	assert.False(t, s.Delete(context.Background(), "zzz"))
	assert.Equal(t, before, s.List())
}

func TestList_DevuelveCopia(t *testing.T) {
	s := newTestStore(t, blob.NewMemoryStore())
	list := s.List()
	list[0].Name = "mutado"
	assert.NotEqual(t, "mutado", s.List()[0].Name)
}

func TestGet(t *testing.T) {
	s := newTestStore(t, blob.NewMemoryStore())
	it, ok := s.Get("2")
	require.True(t, ok)
	assert.Equal(t, "Cadeira Ergonômica", it.Name)

	_, ok = s.Get("nope")
	assert.False(t, ok)
}

func TestReload_TomaEscrituraExterna(t *testing.T) {
	blobs := blob.NewMemoryStore()
	s := newTestStore(t, blobs)

	require.NoError(t, blobs.Set(context.Background(), inventory.DefaultBlobKey,
		`[{"id":"x","name":"Externo","category":"Books","quantity":1,"value":1,"description":"","createdAt":1}]`))
	require.NoError(t, s.Reload(context.Background()))

	list := s.List()
	require.Len(t, list, 1)
	assert.Equal(t, "x", list[0].ID)
}

func TestReload_BlobIlegibleConservaEstado(t *testing.T) {
	blobs := blob.NewMemoryStore()
	s := newTestStore(t, blobs)
	before := s.List()

	require.NoError(t, blobs.Set(context.Background(), inventory.DefaultBlobKey, "corrupto"))
	assert.Error(t, s.Reload(context.Background()))
	assert.Equal(t, before, s.List())
}

func TestExport_RoundTrip(t *testing.T) {
	s := newTestStore(t, blob.NewMemoryStore())
	_, err := s.Create(context.Background(), entity.ItemDraft{
		Name: "Livro", Category: entity.CategoryBooks, Quantity: 3,
		Value: decimal.RequireFromString("59.90"), Description: "capa dura",
	})
	require.NoError(t, err)
	_, err = s.Create(context.Background(), draft("Sem valor", "Brinquedos", 1, 0))
	require.NoError(t, err)

	raw, err := s.Export()
	require.NoError(t, err)

	blobs := blob.NewMemoryStore()
	require.NoError(t, blobs.Set(context.Background(), "copia", raw))
	reloaded := inventory.NewStore(blobs, "copia").Initialize(context.Background())

	assert.Equal(t, s.List(), reloaded, "mismos ids, campos y orden")
}
