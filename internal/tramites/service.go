// Package tramites implements the procedure search against the open-data
// datasets: filter construction, the search orchestration, and the
// dashboard/statistics queries.
package tramites

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"tramites/internal/categories"
	"tramites/internal/metrics"
	"tramites/internal/normalize"
	"tramites/internal/socrata"
)

// Pagination ceilings imposed by the upstream API.
const (
	MaxLimit     = 1000 // radicados search and open data
	MaxSuitLimit = 100  // categorized SUIT search
)

// stepsPerTramite caps the step fetch relative to the page size.
const stepsPerTramite = 50

var suitPageSelect = strings.Join([]string{
	fieldNumeroUnico,
	"max(" + fieldNombreTramite + ") as " + fieldNombreTramite,
	"max(" + fieldNombreComun + ") as " + fieldNombreComun,
	"max(" + fieldProposito + ") as " + fieldProposito,
	"max(" + fieldNombreResultado + ") as " + fieldNombreResultado,
	"max(" + fieldClase + ") as " + fieldClase,
	"max(" + fieldFechaActualizacion + ") as " + fieldFechaActualizacion,
}, ", ")

var suitStepSelect = strings.Join([]string{
	fieldNumeroUnico,
	"orden_paso",
	"descripcion_paso",
	"orden_condicion",
	"tipo_accion_condicion",
	"documento_nombre",
	"documento_tipo",
	"descripcion_del_pago",
}, ", ")

// Service orchestrates queries against the two datasets: the radicados
// dataset (simple search, statistics, open data) and the SUIT dataset
// (categorized procedure search). Both are injected as Queriers.
type Service struct {
	radicados socrata.Querier
	suit      socrata.Querier
	log       zerolog.Logger
}

// NewService creates the search service.
func NewService(radicados, suit socrata.Querier, log zerolog.Logger) *Service {
	return &Service{radicados: radicados, suit: suit, log: log}
}

// SearchSUIT runs the categorized procedure search: a tolerated count, one
// grouped page of distinct procedures, and one step fetch for the page.
// Count failure degrades to zero; data and step failures are fatal for the
// request.
func (s *Service) SearchSUIT(ctx context.Context, texto string, cats []string, limit, offset int) (*SuitSearchResult, error) {
	metrics.Searches.WithLabelValues("suit").Inc()

	where := BuildFilterExpression(texto, cats)

	total, ok := s.countDistinct(ctx, where)
	if !ok {
		total = 0
	}

	rows, err := s.suit.Query(ctx, socrata.QueryOptions{
		Select: suitPageSelect,
		Where:  where,
		Group:  fieldNumeroUnico,
		Order:  fieldNombreTramite + " ASC",
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, fmt.Errorf("suit search failed: %w", err)
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		if id := normalize.Clean(row[fieldNumeroUnico]); id != "" {
			ids = append(ids, id)
		}
	}

	pasos, err := s.fetchPasos(ctx, where, ids)
	if err != nil {
		return nil, err
	}

	items := make([]Tramite, 0, len(rows))
	for _, row := range rows {
		id := normalize.Clean(row[fieldNumeroUnico])
		if id == "" {
			continue
		}

		steps := pasos[id]
		sort.SliceStable(steps, func(i, j int) bool {
			oi, oj := normalize.SafeInt(steps[i].OrdenPaso), normalize.SafeInt(steps[j].OrdenPaso)
			if oi != oj {
				return oi < oj
			}
			return normalize.SafeInt(steps[i].OrdenCondicion) < normalize.SafeInt(steps[j].OrdenCondicion)
		})
		if steps == nil {
			steps = []Paso{}
		}

		nombre := normalize.Clean(row[fieldNombreTramite])
		comun := normalize.Clean(row[fieldNombreComun])
		proposito := normalize.Clean(row[fieldProposito])

		items = append(items, Tramite{
			NumeroUnico:        id,
			NombreTramite:      nombre,
			NombreComun:        comun,
			Proposito:          proposito,
			NombreResultado:    normalize.Clean(row[fieldNombreResultado]),
			Clase:              normalize.Clean(row[fieldClase]),
			Entidad:            EntityName,
			FechaActualizacion: normalize.FormatDate(row[fieldFechaActualizacion]),
			Categorias:         categories.Detect(nombre, comun, proposito),
			Pasos:              steps,
		})
	}

	// When the count was unavailable the page itself is the best estimate.
	if !ok && len(items) > 0 {
		total = len(items)
	}

	return &SuitSearchResult{Total: total, Limit: limit, Offset: offset, Tramites: items}, nil
}

// countDistinct counts distinct procedures under the filter. The boolean
// reports whether the count was actually obtained; callers choose the
// default when it was not.
func (s *Service) countDistinct(ctx context.Context, where string) (int, bool) {
	rows, err := s.suit.Query(ctx, socrata.QueryOptions{
		Select: "count(distinct " + fieldNumeroUnico + ") as total",
		Where:  where,
		Limit:  1,
	})
	if err != nil {
		s.log.Warn().Err(err).Msg("suit count query failed, defaulting total")
		return 0, false
	}
	if len(rows) == 0 {
		return 0, false
	}
	return normalize.SafeInt(rows[0]["total"]), true
}

// fetchPasos retrieves every step row for the given procedure ids, grouped
// by id. The result cap scales with the page so one oversized procedure
// cannot blow up the response.
func (s *Service) fetchPasos(ctx context.Context, where string, ids []string) (map[string][]Paso, error) {
	pasos := make(map[string][]Paso, len(ids))
	if len(ids) == 0 {
		return pasos, nil
	}

	rows, err := s.suit.Query(ctx, socrata.QueryOptions{
		Select: suitStepSelect,
		Where:  where + " AND " + inClause(fieldNumeroUnico, ids),
		Limit:  stepsPerTramite * len(ids),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch steps: %w", err)
	}

	for _, row := range rows {
		id := normalize.Clean(row[fieldNumeroUnico])
		if id == "" {
			continue
		}
		pasos[id] = append(pasos[id], Paso{
			OrdenPaso:           normalize.Clean(row["orden_paso"]),
			DescripcionPaso:     normalize.Clean(row["descripcion_paso"]),
			OrdenCondicion:      normalize.Clean(row["orden_condicion"]),
			TipoAccionCondicion: normalize.Clean(row["tipo_accion_condicion"]),
			DocumentoNombre:     normalize.Clean(row["documento_nombre"]),
			DocumentoTipo:       normalize.Clean(row["documento_tipo"]),
			DescripcionDelPago:  normalize.Clean(row["descripcion_del_pago"]),
		})
	}
	return pasos, nil
}

// Search runs the simple radicados search. The count query is tolerated:
// when it fails the total falls back to the page length, then to zero.
func (s *Service) Search(ctx context.Context, p SearchParams) (*SearchResult, error) {
	metrics.Searches.WithLabelValues("radicados").Inc()

	var clauses []string
	if p.Radicado != "" {
		clauses = append(clauses, fmt.Sprintf("%s like '%%%s%%'", fieldNumeroRadicado, escape(p.Radicado)))
	}
	if p.Estado != "" {
		clauses = append(clauses, fmt.Sprintf("%s = '%s'", fieldEstado, escape(p.Estado)))
	}
	if p.FechaInicio != "" && p.FechaFin != "" {
		clauses = append(clauses, fmt.Sprintf("%s between '%sT00:00:00' and '%sT23:59:59'",
			fieldFechaRadicacion, escape(p.FechaInicio), escape(p.FechaFin)))
	}
	where := strings.Join(clauses, " AND ")

	total := 0
	if count, ok := s.countAll(ctx, where); ok {
		total = count
	}

	data, err := s.radicados.Query(ctx, socrata.QueryOptions{
		Where:  where,
		Order:  fieldFechaRadicacion + " DESC",
		Limit:  p.Limit,
		Offset: p.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("tramites search failed: %w", err)
	}
	if data == nil {
		data = []socrata.Row{}
	}

	if total == 0 && len(data) > 0 {
		total = len(data)
	}

	return &SearchResult{Total: total, Limit: p.Limit, Offset: p.Offset, Data: data}, nil
}

func (s *Service) countAll(ctx context.Context, where string) (int, bool) {
	rows, err := s.radicados.Query(ctx, socrata.QueryOptions{
		Select: "count(*) as total",
		Where:  where,
		Limit:  1,
	})
	if err != nil {
		s.log.Warn().Err(err).Msg("count query failed, defaulting total")
		return 0, false
	}
	if len(rows) == 0 {
		return 0, false
	}
	return normalize.SafeInt(rows[0]["total"]), true
}

// Detail returns the first tramite matching the radicado, or nil.
func (s *Service) Detail(ctx context.Context, radicado string) (socrata.Row, error) {
	result, err := s.Search(ctx, SearchParams{Radicado: radicado, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(result.Data) == 0 {
		return nil, nil
	}
	return result.Data[0], nil
}

// Statistics assembles the dashboard statistics. Each sub-query failure is
// tolerated independently and degrades to a zero/empty block.
func (s *Service) Statistics(ctx context.Context) *Estadisticas {
	stats := &Estadisticas{PorEstado: []EstadoCount{}, PorMes: []MesCount{}}

	if total, ok := s.countAll(ctx, ""); ok {
		stats.TotalTramites = total
	}

	if rows, err := s.radicados.Query(ctx, socrata.QueryOptions{
		Select: fieldEstado + ", count(*) as cantidad",
		Group:  fieldEstado,
		Order:  "cantidad DESC",
		Limit:  20,
	}); err == nil {
		for _, row := range rows {
			estado := normalize.Clean(row[fieldEstado])
			if estado == "" {
				continue
			}
			stats.PorEstado = append(stats.PorEstado, EstadoCount{
				Estado:   estado,
				Cantidad: normalize.SafeInt(row["cantidad"]),
			})
		}
	} else {
		s.log.Warn().Err(err).Msg("by-state statistics query failed")
	}

	if rows, err := s.radicados.Query(ctx, socrata.QueryOptions{
		Select: "date_trunc_ym(" + fieldFechaRadicacion + ") as mes, count(*) as cantidad",
		Group:  "mes",
		Order:  "mes DESC",
		Limit:  12,
	}); err == nil {
		for _, row := range rows {
			mes := normalize.FormatDate(row["mes"])
			if mes == "" {
				continue
			}
			stats.PorMes = append(stats.PorMes, MesCount{
				Mes:      mes,
				Cantidad: normalize.SafeInt(row["cantidad"]),
			})
		}
	} else {
		s.log.Warn().Err(err).Msg("by-month statistics query failed")
	}

	return stats
}

// Metricas returns the total and the distinct estados for filter dropdowns.
// Unlike Statistics, failures here propagate.
func (s *Service) Metricas(ctx context.Context) (*Metricas, error) {
	totalRows, err := s.radicados.Query(ctx, socrata.QueryOptions{
		Select: "count(*) as total",
		Limit:  1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to count tramites: %w", err)
	}

	total := 0
	if len(totalRows) > 0 {
		total = normalize.SafeInt(totalRows[0]["total"])
	}

	rows, err := s.radicados.Query(ctx, socrata.QueryOptions{
		Select: "distinct " + fieldEstado,
		Limit:  100,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list estados: %w", err)
	}

	estados := make([]string, 0, len(rows))
	for _, row := range rows {
		if estado := normalize.Clean(row[fieldEstado]); estado != "" {
			estados = append(estados, estado)
		}
	}

	return &Metricas{TotalTramites: total, EstadosDisponibles: estados}, nil
}

// PublicBoard returns the public dashboard: statistics plus the ten most
// recent tramites.
func (s *Service) PublicBoard(ctx context.Context) (*Tablero, error) {
	stats := s.Statistics(ctx)

	ultimos, err := s.radicados.Query(ctx, socrata.QueryOptions{
		Order: fieldFechaRadicacion + " DESC",
		Limit: 10,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest tramites: %w", err)
	}
	if ultimos == nil {
		ultimos = []socrata.Row{}
	}

	return &Tablero{Estadisticas: stats, UltimosTramites: ultimos}, nil
}

// OpenData returns up to limit rows ordered by submission date, newest
// first, for the open-data download.
func (s *Service) OpenData(ctx context.Context, limit int) ([]socrata.Row, error) {
	rows, err := s.radicados.Query(ctx, socrata.QueryOptions{
		Order: fieldFechaRadicacion + " DESC",
		Limit: limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch open data: %w", err)
	}
	return rows, nil
}

// Fields lists the dataset columns from a one-row sample.
func (s *Service) Fields(ctx context.Context) ([]string, error) {
	rows, err := s.radicados.Query(ctx, socrata.QueryOptions{Limit: 1})
	if err != nil {
		return nil, fmt.Errorf("failed to sample dataset: %w", err)
	}
	if len(rows) == 0 {
		return []string{}, nil
	}

	fields := make([]string, 0, len(rows[0]))
	for k := range rows[0] {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return fields, nil
}
