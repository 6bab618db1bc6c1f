package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/neuhauss/example-gemini/internal/application/analytics"
	"github.com/neuhauss/example-gemini/internal/application/ports"
	"github.com/neuhauss/example-gemini/internal/domain/entity"
)

// ReportUseCase genera el reporte PDF de la colección (opcionalmente filtrada).
type ReportUseCase struct {
	items     analytics.ItemLister
	generator ports.ReportGenerator
	title     string
	now       func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(items analytics.ItemLister, generator ports.ReportGenerator, title string) *ReportUseCase {
	if title == "" {
		title = "Inventário"
	}
	return &ReportUseCase{items: items, generator: generator, title: title, now: time.Now}
}

// InventoryReport aplica el filtro, calcula el resumen sobre los ítems
// filtrados y genera el PDF.
//
// Retorna (pdfBytes, filename, nil) si todo sale bien.
func (uc *ReportUseCase) InventoryReport(ctx context.Context, search, category string) (pdfBytes []byte, filename string, err error) {
	category = normalizeFilterCategory(category)
	now := uc.now()
	items := analytics.Filter(uc.items.List(), search, category)

	data := ports.ReportData{
		Title:       uc.title,
		Filter:      describeFilter(search, category),
		GeneratedAt: now,
		Items:       items,
		Summary:     analytics.Summarize(items, now),
	}
	pdfBytes, err = uc.generator.InventoryReport(ctx, data)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: generación fallida: %w", err)
	}
	filename = fmt.Sprintf("inventario_%s.pdf", now.Format("20060102_150405"))
	return pdfBytes, filename, nil
}

func describeFilter(search, category string) string {
	var parts []string
	if s := strings.TrimSpace(search); s != "" {
		parts = append(parts, fmt.Sprintf("Busca: %q", s))
	}
	if category != entity.CategoryAll {
		parts = append(parts, "Categoria: "+category)
	}
	return strings.Join(parts, " · ")
}

// normalizeFilterCategory categoría vacía equivale al centinela "all".
func normalizeFilterCategory(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return entity.CategoryAll
	}
	return category
}
