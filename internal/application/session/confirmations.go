// Package session guarda el estado efímero de la capa de presentación:
// formularios de alta/edición con su enriquecimiento en curso y las
// confirmaciones de borrado en dos pasos. Nada de esto se persiste.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/neuhauss/example-gemini/internal/domain"
)

// DefaultConfirmTTL vigencia de un token de confirmación de borrado.
const DefaultConfirmTTL = 2 * time.Minute

// DeleteTicket token emitido por una solicitud de borrado.
type DeleteTicket struct {
	Token     string
	ItemID    string
	ExpiresAt time.Time
}

// DeleteConfirmations implementa el protocolo request-delete → confirm-delete.
// Cada token sirve para un solo ítem y se consume al confirmar.
type DeleteConfirmations struct {
	mu      sync.Mutex
	pending map[string]DeleteTicket
	ttl     time.Duration
	now     func() time.Time
}

// NewDeleteConfirmations construye el registro; ttl <= 0 usa DefaultConfirmTTL.
func NewDeleteConfirmations(ttl time.Duration, now func() time.Time) *DeleteConfirmations {
	if ttl <= 0 {
		ttl = DefaultConfirmTTL
	}
	if now == nil {
		now = time.Now
	}
	return &DeleteConfirmations{
		pending: make(map[string]DeleteTicket),
		ttl:     ttl,
		now:     now,
	}
}

// Request emite un token para borrar itemID.
func (c *DeleteConfirmations) Request(itemID string) DeleteTicket {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.purgeLocked(now)

	t := DeleteTicket{
		Token:     uuid.NewString(),
		ItemID:    itemID,
		ExpiresAt: now.Add(c.ttl),
	}
	c.pending[t.Token] = t
	return t
}

// Confirm consume el token. Errores:
//   - domain.ErrNotFound: token desconocido o ya usado
//   - domain.ErrConflict: el token pertenece a otro ítem (no se consume)
//   - domain.ErrExpired: el token venció
func (c *DeleteConfirmations) Confirm(token, itemID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	t, ok := c.pending[token]
	if !ok {
		return fmt.Errorf("token de confirmación: %w", domain.ErrNotFound)
	}
	if t.ItemID != itemID {
		return fmt.Errorf("token emitido para el ítem %s: %w", t.ItemID, domain.ErrConflict)
	}
	delete(c.pending, token)
	if !c.now().Before(t.ExpiresAt) {
		return fmt.Errorf("token de confirmación: %w", domain.ErrExpired)
	}
	return nil
}

// Cancel descarta un token pendiente. Devuelve false si no existía.
func (c *DeleteConfirmations) Cancel(token string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.pending[token]
	delete(c.pending, token)
	return ok
}

// Pending cantidad de tokens vigentes.
func (c *DeleteConfirmations) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.purgeLocked(c.now())
	return len(c.pending)
}

func (c *DeleteConfirmations) purgeLocked(now time.Time) {
	for k, t := range c.pending {
		if !now.Before(t.ExpiresAt) {
			delete(c.pending, k)
		}
	}
}
