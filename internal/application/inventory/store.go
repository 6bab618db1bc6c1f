// Package inventory contiene el Item Store: la colección ordenada de ítems en
// memoria, su sincronización con el blob persistido y las reglas de validación
// de borradores.
package inventory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/neuhauss/example-gemini/internal/domain"
	"github.com/neuhauss/example-gemini/internal/domain/entity"
	"github.com/neuhauss/example-gemini/internal/domain/repository"
)

// DefaultBlobKey clave fija bajo la cual se persiste la colección.
const DefaultBlobKey = "inventory_items"

// Store es dueño de la colección de ítems. Cada mutación reescribe el blob
// completo antes de retornar; los fallos de persistencia se registran y la
// colección en memoria sigue siendo la fuente de verdad.
//
// El mutex se mantiene durante la escritura del blob para que haya un solo
// escritor lógico por proceso.
type Store struct {
	mu    sync.Mutex
	items []entity.InventoryItem

	blobs repository.BlobStore
	key   string
	seed  SeedFunc
	now   func() time.Time
	newID func() string
	log   zerolog.Logger
}

// Option configura un Store.
type Option func(*Store)

// WithSeed reemplaza la colección semilla.
func WithSeed(seed SeedFunc) Option {
	return func(s *Store) { s.seed = seed }
}

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator reemplaza el generador de IDs (tests).
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithLogger asigna el logger estructurado.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) { s.log = log }
}

// NewStore construye el store sobre un BlobStore. Si key está vacío usa DefaultBlobKey.
// La colección queda vacía hasta llamar a Initialize.
func NewStore(blobs repository.BlobStore, key string, opts ...Option) *Store {
	if key == "" {
		key = DefaultBlobKey
	}
	s := &Store{
		blobs: blobs,
		key:   key,
		seed:  DefaultSeed,
		now:   time.Now,
		newID: uuid.NewString,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize carga el blob persistido. Si no existe, no se puede leer o no se
// puede interpretar, usa la semilla. Nunca devuelve error.
// La semilla solo se persiste cuando el blob no existe, para no pisar un valor
// ilegible que alguien quiera inspeccionar.
func (s *Store) Initialize(ctx context.Context) []entity.InventoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, found, err := s.blobs.Get(ctx, s.key)
	switch {
	case err != nil:
		s.log.Warn().Err(err).Str("key", s.key).Msg("no se pudo leer el blob; usando semilla")
		s.items = s.seed(s.now())
	case !found:
		s.log.Info().Str("key", s.key).Msg("sin datos persistidos; cargando semilla")
		s.items = s.seed(s.now())
		s.persistLocked(ctx, "seed")
	default:
		items, decErr := DecodeItems(raw)
		if decErr != nil {
			s.log.Warn().Err(decErr).Str("key", s.key).Msg("blob ilegible; usando semilla")
			s.items = s.seed(s.now())
		} else {
			s.items = items
		}
	}
	return cloneItems(s.items)
}

// Reload vuelve a leer el blob y reemplaza la colección (last-write-wins entre
// procesos). Si el blob falta o es ilegible la colección actual no cambia.
func (s *Store) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, found, err := s.blobs.Get(ctx, s.key)
	if err != nil {
		return fmt.Errorf("recargar: %w", err)
	}
	if !found {
		return fmt.Errorf("recargar %s: %w", s.key, domain.ErrNotFound)
	}
	items, err := DecodeItems(raw)
	if err != nil {
		return fmt.Errorf("recargar: %w", err)
	}
	s.items = items
	return nil
}

// Create valida el borrador, asigna ID y CreatedAt, antepone el ítem y persiste.
// Solo devuelve error de validación (*domain.ValidationError).
func (s *Store) Create(ctx context.Context, draft entity.ItemDraft) (entity.InventoryItem, error) {
	d := NormalizeDraft(draft)
	if err := ValidateDraft(d); err != nil {
		return entity.InventoryItem{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item := entity.InventoryItem{
		ID:          s.uniqueIDLocked(),
		Name:        d.Name,
		Category:    d.Category,
		Quantity:    d.Quantity,
		Value:       d.Value,
		Description: d.Description,
		CreatedAt:   s.now().UnixMilli(),
	}
	s.items = append([]entity.InventoryItem{item}, s.items...)
	s.persistLocked(ctx, "create")
	return item, nil
}

// Update reemplaza todos los campos editables del ítem id, sin mover su posición.
// Devuelve domain.ErrNotFound si no existe.
func (s *Store) Update(ctx context.Context, id string, draft entity.ItemDraft) (entity.InventoryItem, error) {
	d := NormalizeDraft(draft)
	if err := ValidateDraft(d); err != nil {
		return entity.InventoryItem{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return entity.InventoryItem{}, fmt.Errorf("ítem %s: %w", id, domain.ErrNotFound)
	}
	it := &s.items[idx]
	it.Name = d.Name
	it.Category = d.Category
	it.Quantity = d.Quantity
	it.Value = d.Value
	it.Description = d.Description

	s.persistLocked(ctx, "update")
	return *it, nil
}

// Delete elimina el ítem id si existe y persiste. No pide confirmación.
func (s *Store) Delete(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return false
	}
	s.items = append(s.items[:idx:idx], s.items[idx+1:]...)
	s.persistLocked(ctx, "delete")
	return true
}

// List devuelve una copia de la colección, más recientes primero.
func (s *Store) List() []entity.InventoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneItems(s.items)
}

// Get busca un ítem por ID.
func (s *Store) Get(id string) (entity.InventoryItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return entity.InventoryItem{}, false
	}
	return s.items[idx], true
}

// Export devuelve la colección en el formato del blob.
func (s *Store) Export() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return EncodeItems(s.items)
}

func (s *Store) persistLocked(ctx context.Context, op string) {
	raw, err := EncodeItems(s.items)
	if err != nil {
		s.log.Error().Err(err).Str("op", op).Msg("no se pudo serializar la colección")
		return
	}
	if err := s.blobs.Set(ctx, s.key, raw); err != nil {
		s.log.Error().Err(err).Str("op", op).Str("key", s.key).Msg("no se pudo persistir la colección")
		return
	}
	s.log.Debug().Str("op", op).Int("items", len(s.items)).Msg("colección persistida")
}

func (s *Store) indexLocked(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) uniqueIDLocked() string {
	for {
		id := s.newID()
		if id != "" && s.indexLocked(id) < 0 {
			return id
		}
	}
}

func cloneItems(items []entity.InventoryItem) []entity.InventoryItem {
	out := make([]entity.InventoryItem, len(items))
	copy(out, items)
	return out
}
