package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/neuhauss/example-gemini/internal/application/session"
)

// OpenDraftRequest entrada de POST /api/drafts. Con ItemID abre la edición de ese ítem.
type OpenDraftRequest struct {
	ItemID string `json:"item_id"`
}

// DraftFields campos editables del formulario.
type DraftFields struct {
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Quantity    int             `json:"quantity"`
	Value       decimal.Decimal `json:"value"`
	Description string          `json:"description"`
}

// DraftResponse estado de un formulario abierto.
type DraftResponse struct {
	ID         string      `json:"id"`
	EditingID  string      `json:"editing_id,omitempty"`
	Fields     DraftFields `json:"fields"`
	Generation uint64      `json:"generation"`
	Enriching  bool        `json:"enriching"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// NewDraftResponse mapea el estado de sesión a la salida HTTP.
func NewDraftResponse(st session.FormState) DraftResponse {
	return DraftResponse{
		ID:        st.ID,
		EditingID: st.EditingID,
		Fields: DraftFields{
			Name:        st.Draft.Name,
			Category:    string(st.Draft.Category),
			Quantity:    st.Draft.Quantity,
			Value:       st.Draft.Value,
			Description: st.Draft.Description,
		},
		Generation: st.Generation,
		Enriching:  st.Enriching,
		UpdatedAt:  st.UpdatedAt,
	}
}

// DraftEnrichResponse resultado de POST /api/drafts/:id/enrich.
type DraftEnrichResponse struct {
	Draft      DraftResponse  `json:"draft"`
	Prediction *PredictionDTO `json:"prediction"`
	Applied    bool           `json:"applied"`
}
