package tramites

import "tramites/internal/socrata"

// Paso is one procedural action of a SUIT tramite. All fields are optional
// strings exactly as the dataset delivers them (after cleaning).
type Paso struct {
	OrdenPaso           string `json:"orden_paso,omitempty"`
	DescripcionPaso     string `json:"descripcion_paso,omitempty"`
	OrdenCondicion      string `json:"orden_condicion,omitempty"`
	TipoAccionCondicion string `json:"tipo_accion_condicion,omitempty"`
	DocumentoNombre     string `json:"documento_nombre,omitempty"`
	DocumentoTipo       string `json:"documento_tipo,omitempty"`
	DescripcionDelPago  string `json:"descripcion_del_pago,omitempty"`
}

// Tramite is one procedure record assembled from the SUIT dataset: one
// representative row per numero_unico plus its ordered steps and detected
// categories.
type Tramite struct {
	NumeroUnico        string   `json:"numero_unico"`
	NombreTramite      string   `json:"nombre_tramite,omitempty"`
	NombreComun        string   `json:"nombre_comun,omitempty"`
	Proposito          string   `json:"proposito,omitempty"`
	NombreResultado    string   `json:"nombre_resultado,omitempty"`
	Clase              string   `json:"clase,omitempty"`
	Entidad            string   `json:"entidad"`
	FechaActualizacion string   `json:"fecha_actualizacion,omitempty"`
	Categorias         []string `json:"categorias"`
	Pasos              []Paso   `json:"pasos"`
}

// SuitSearchResult is the categorized search response.
type SuitSearchResult struct {
	Total    int       `json:"total"`
	Limit    int       `json:"limit"`
	Offset   int       `json:"offset"`
	Tramites []Tramite `json:"tramites"`
}

// SearchParams are the filters of the simple (radicado) search.
type SearchParams struct {
	Radicado    string
	Estado      string
	FechaInicio string // YYYY-MM-DD
	FechaFin    string // YYYY-MM-DD
	Limit       int
	Offset      int
}

// SearchResult is the simple search response. Rows pass through unshaped;
// the dashboard renders whatever columns the dataset has.
type SearchResult struct {
	Total  int           `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
	Data   []socrata.Row `json:"data"`
}

// EstadoCount is one bucket of the by-state statistic.
type EstadoCount struct {
	Estado   string `json:"estado"`
	Cantidad int    `json:"cantidad"`
}

// MesCount is one bucket of the by-month statistic.
type MesCount struct {
	Mes      string `json:"mes"`
	Cantidad int    `json:"cantidad"`
}

// Estadisticas is the dashboard statistics block. Every sub-query failure is
// tolerated independently, so any of these can be zero/empty.
type Estadisticas struct {
	TotalTramites int           `json:"total_tramites"`
	PorEstado     []EstadoCount `json:"por_estado"`
	PorMes        []MesCount    `json:"por_mes"`
}

// Metricas is the secondary dashboard block with filter helpers.
type Metricas struct {
	TotalTramites       int      `json:"total_tramites"`
	EstadosDisponibles  []string `json:"estados_disponibles"`
}

// Tablero is the public board: statistics plus the latest rows.
type Tablero struct {
	Estadisticas    *Estadisticas `json:"estadisticas"`
	UltimosTramites []socrata.Row `json:"ultimos_tramites"`
}
