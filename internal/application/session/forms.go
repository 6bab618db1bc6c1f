package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/neuhauss/example-gemini/internal/domain"
	"github.com/neuhauss/example-gemini/internal/domain/entity"
)

// ItemWriter parte del store que usa Submit.
type ItemWriter interface {
	Create(ctx context.Context, draft entity.ItemDraft) (entity.InventoryItem, error)
	Update(ctx context.Context, id string, draft entity.ItemDraft) (entity.InventoryItem, error)
}

// Enricher gateway de enriquecimiento; nil significa "sin sugerencia".
type Enricher interface {
	Enrich(ctx context.Context, itemName string) *entity.AIPrediction
}

// FormState estado de un formulario abierto.
type FormState struct {
	ID        string
	EditingID string // vacío: alta de un ítem nuevo
	Draft     entity.ItemDraft
	// Generation aumenta cada vez que cambia el nombre; una sugerencia pedida
	// para una generación anterior se descarta.
	Generation uint64
	Enriching  bool
	UpdatedAt  time.Time
}

// EnrichTicket identifica una petición de enriquecimiento en curso.
type EnrichTicket struct {
	FormID     string
	Name       string
	Generation uint64
	seq        uint64
}

// EnrichOutcome resultado de aplicar una sugerencia al formulario.
type EnrichOutcome struct {
	State      FormState
	Prediction *entity.AIPrediction
	Applied    bool
}

// DefaultFormIdleTTL tiempo sin cambios tras el cual un formulario abandonado se descarta.
const DefaultFormIdleTTL = 30 * time.Minute

type form struct {
	state      FormState
	pendingSeq uint64 // 0 = sin petición en curso
	submitting bool
}

// Forms administra los formularios abiertos.
type Forms struct {
	mu      sync.Mutex
	forms   map[string]*form
	seq     uint64
	idleTTL time.Duration
	now     func() time.Time
	log     zerolog.Logger
}

// FormsOption configura Forms.
type FormsOption func(*Forms)

// WithIdleTTL cambia DefaultFormIdleTTL. Valores <= 0 se ignoran.
func WithIdleTTL(d time.Duration) FormsOption {
	return func(f *Forms) {
		if d > 0 {
			f.idleTTL = d
		}
	}
}

// NewForms construye el administrador de formularios.
func NewForms(now func() time.Time, log zerolog.Logger, opts ...FormsOption) *Forms {
	if now == nil {
		now = time.Now
	}
	f := &Forms{forms: make(map[string]*form), idleTTL: DefaultFormIdleTTL, now: now, log: log}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Open abre un formulario. Con editing nil arranca con los valores por defecto;
// si no, con los campos del ítem a editar.
func (f *Forms) Open(editing *entity.InventoryItem) FormState {
	st := FormState{
		ID:        uuid.NewString(),
		Draft:     entity.NewDraft(),
		UpdatedAt: f.now(),
	}
	if editing != nil {
		st.EditingID = editing.ID
		st.Draft = editing.Draft()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.purgeLocked(st.UpdatedAt)
	f.forms[st.ID] = &form{state: st}
	return st
}

// Get devuelve el estado actual del formulario.
func (f *Forms) Get(id string) (FormState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fm, err := f.getLocked(id)
	if err != nil {
		return FormState{}, err
	}
	return fm.state, nil
}

// Edit reemplaza el borrador. Cambiar el nombre invalida cualquier sugerencia en curso.
func (f *Forms) Edit(id string, draft entity.ItemDraft) (FormState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fm, err := f.getLocked(id)
	if err != nil {
		return FormState{}, err
	}
	if strings.TrimSpace(draft.Name) != strings.TrimSpace(fm.state.Draft.Name) {
		fm.state.Generation++
	}
	fm.state.Draft = draft
	fm.state.UpdatedAt = f.now()
	return fm.state, nil
}

// Discard cierra el formulario; una sugerencia que llegue después se ignora.
func (f *Forms) Discard(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := f.getLocked(id); err != nil {
		return err
	}
	delete(f.forms, id)
	return nil
}

// Len cantidad de formularios abiertos.
func (f *Forms) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.purgeLocked(f.now())
	return len(f.forms)
}

// BeginEnrichment marca el formulario como "cargando" y devuelve el ticket de
// la petición. Mientras haya una en curso devuelve domain.ErrConflict.
func (f *Forms) BeginEnrichment(id string) (EnrichTicket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fm, err := f.getLocked(id)
	if err != nil {
		return EnrichTicket{}, err
	}
	if fm.pendingSeq != 0 {
		return EnrichTicket{}, fmt.Errorf("formulario %s: enriquecimiento en curso: %w", id, domain.ErrConflict)
	}
	name := strings.TrimSpace(fm.state.Draft.Name)
	if name == "" {
		return EnrichTicket{}, domain.NewValidationError("name", "el nombre es obligatorio para sugerir datos")
	}

	f.seq++
	fm.pendingSeq = f.seq
	fm.state.Enriching = true
	return EnrichTicket{FormID: id, Name: name, Generation: fm.state.Generation, seq: f.seq}, nil
}

// CompleteEnrichment aplica la sugerencia si el formulario sigue abierto, el
// ticket es el vigente y el nombre no cambió desde que se pidió.
// Devuelve domain.ErrNotFound si el formulario ya no existe.
func (f *Forms) CompleteEnrichment(t EnrichTicket, p *entity.AIPrediction) (EnrichOutcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fm, err := f.getLocked(t.FormID)
	if err != nil {
		f.log.Debug().Str("form", t.FormID).Msg("sugerencia descartada: formulario cerrado")
		return EnrichOutcome{}, err
	}
	if fm.pendingSeq != t.seq {
		return EnrichOutcome{State: fm.state}, nil
	}
	fm.pendingSeq = 0
	fm.state.Enriching = false

	out := EnrichOutcome{Prediction: p}
	switch {
	case p == nil:
	case fm.state.Generation != t.Generation:
		f.log.Debug().Str("form", t.FormID).Msg("sugerencia descartada: el nombre cambió")
	default:
		fm.state.Draft = fm.state.Draft.WithPrediction(*p)
		fm.state.UpdatedAt = f.now()
		out.Applied = true
	}
	out.State = fm.state
	return out, nil
}

// Enrich pide una sugerencia para el nombre actual del formulario y la aplica.
// La llamada al gateway ocurre fuera del lock.
func (f *Forms) Enrich(ctx context.Context, id string, enricher Enricher) (EnrichOutcome, error) {
	t, err := f.BeginEnrichment(id)
	if err != nil {
		return EnrichOutcome{}, err
	}
	p := enricher.Enrich(ctx, t.Name)
	return f.CompleteEnrichment(t, p)
}

// Submit guarda el borrador en el store (alta o edición) y cierra el
// formulario. Si el store lo rechaza, el formulario queda abierto.
// Un segundo Submit mientras el primero está en curso devuelve domain.ErrConflict.
func (f *Forms) Submit(ctx context.Context, id string, w ItemWriter) (entity.InventoryItem, error) {
	f.mu.Lock()
	fm, err := f.getLocked(id)
	if err != nil {
		f.mu.Unlock()
		return entity.InventoryItem{}, err
	}
	if fm.submitting {
		f.mu.Unlock()
		return entity.InventoryItem{}, fmt.Errorf("formulario %s: guardado en curso: %w", id, domain.ErrConflict)
	}
	fm.submitting = true
	st := fm.state
	f.mu.Unlock()

	var item entity.InventoryItem
	if st.EditingID == "" {
		item, err = w.Create(ctx, st.Draft)
	} else {
		item, err = w.Update(ctx, st.EditingID, st.Draft)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		fm.submitting = false
		return entity.InventoryItem{}, err
	}
	delete(f.forms, id)
	return item, nil
}

// purgeLocked descarta los formularios sin cambios desde hace idleTTL. Los que
// tienen una sugerencia o un guardado en curso se conservan.
func (f *Forms) purgeLocked(now time.Time) {
	for id, fm := range f.forms {
		if fm.pendingSeq != 0 || fm.submitting {
			continue
		}
		if now.Sub(fm.state.UpdatedAt) >= f.idleTTL {
			delete(f.forms, id)
			f.log.Debug().Str("form", id).Msg("formulario inactivo descartado")
		}
	}
}

func (f *Forms) getLocked(id string) (*form, error) {
	fm, ok := f.forms[id]
	if !ok {
		return nil, fmt.Errorf("formulario %s: %w", id, domain.ErrNotFound)
	}
	return fm, nil
}
