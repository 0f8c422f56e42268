package api

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sort"

	"github.com/gofiber/fiber/v3"

	"tramites/internal/normalize"
	"tramites/internal/socrata"
	"tramites/internal/tramites"
	"tramites/internal/validation"
)

// MetadataFetcher fetches dataset metadata.
type MetadataFetcher interface {
	Metadata(ctx context.Context, datasetID string) (map[string]any, error)
}

// PublicHandler serves the public board and the open-data download.
type PublicHandler struct {
	svc       *tramites.Service
	meta      MetadataFetcher
	datasetID string
}

// NewPublicHandler creates the handler.
func NewPublicHandler(svc *tramites.Service, meta MetadataFetcher, datasetID string) *PublicHandler {
	return &PublicHandler{svc: svc, meta: meta, datasetID: datasetID}
}

// Tablero returns the public board.
// GET /api/v1/public/tablero
func (h *PublicHandler) Tablero(c fiber.Ctx) error {
	board, err := h.svc.PublicBoard(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "error al obtener tablero público")
	}
	return c.JSON(board)
}

// DatosAbiertos downloads the dataset as JSON or CSV.
// GET /api/v1/public/datos-abiertos?formato=json|csv&limit=N
func (h *PublicHandler) DatosAbiertos(c fiber.Ctx) error {
	formato := c.Query("formato", "json")
	if formato != "json" && formato != "csv" {
		return jsonError(c, fiber.StatusBadRequest, "formato debe ser json o csv")
	}
	limit := validation.ClampLimit(queryInt(c, "limit", 1000), 1000, 10000)

	datos, err := h.svc.OpenData(c.Context(), limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "error al obtener datos abiertos")
	}

	if formato == "csv" {
		if len(datos) == 0 {
			return jsonError(c, fiber.StatusNotFound, "no hay datos disponibles")
		}
		body, err := rowsToCSV(datos)
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "error al generar CSV")
		}
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename=invima_datos.csv`)
		return c.Send(body)
	}

	return c.JSON(fiber.Map{"total": len(datos), "datos": datos})
}

// Metadata returns the upstream dataset metadata document.
// GET /api/v1/public/metadata
func (h *PublicHandler) Metadata(c fiber.Ctx) error {
	meta, err := h.meta.Metadata(c.Context(), h.datasetID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "error al obtener metadatos")
	}
	return c.JSON(meta)
}

// rowsToCSV flattens rows into CSV with a stable header taken from the
// union of keys, sorted.
func rowsToCSV(rows []socrata.Row) ([]byte, error) {
	headerSet := map[string]bool{}
	for _, row := range rows {
		for k := range row {
			headerSet[k] = true
		}
	}
	header := make([]string, 0, len(headerSet))
	for k := range headerSet {
		header = append(header, k)
	}
	sort.Strings(header)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, row := range rows {
		record := make([]string, len(header))
		for i, k := range header {
			record[i] = normalize.Clean(row[k])
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv encoding failed: %w", err)
	}
	return buf.Bytes(), nil
}
