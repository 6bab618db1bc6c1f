package entity

import "github.com/shopspring/decimal"

// AIPrediction sugerencia transitoria del servicio de enriquecimiento.
// Nunca se persiste; el llamador decide si la aplica a un borrador.
type AIPrediction struct {
	Category       string
	EstimatedValue decimal.Decimal
	Description    string
}
