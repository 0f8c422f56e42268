// Package reports persists user-submitted error reports. The default
// backend is a single JSON document guarded by an in-process lock; a
// PostgreSQL backend is available for deployments that want one.
package reports

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// Report is one user-submitted error report. Nombre and email are optional;
// when present they are validated at the edge (min length / email form).
type Report struct {
	ID             string    `json:"reporte_id"`
	Nombre         string    `json:"nombre,omitempty"`
	Email          string    `json:"email,omitempty"`
	TipoError      string    `json:"tipo_error"`
	Descripcion    string    `json:"descripcion"`
	NumeroRadicado string    `json:"numero_radicado,omitempty"`
	FechaReporte   time.Time `json:"fecha_reporte"`
}

// AnonymizedReport is the reduced projection exposed to non-admin viewers:
// contact details are stripped and replaced by a has-contact flag.
type AnonymizedReport struct {
	ID             string    `json:"reporte_id"`
	TipoError      string    `json:"tipo_error"`
	Descripcion    string    `json:"descripcion"`
	NumeroRadicado string    `json:"numero_radicado,omitempty"`
	FechaReporte   time.Time `json:"fecha_reporte"`
	TieneContacto  string    `json:"tiene_contacto"`
}

// Anonymize strips nombre and email, keeping only a boolean-as-string
// marker of whether any contact info was supplied.
func (r Report) Anonymize() AnonymizedReport {
	return AnonymizedReport{
		ID:             r.ID,
		TipoError:      r.TipoError,
		Descripcion:    r.Descripcion,
		NumeroRadicado: r.NumeroRadicado,
		FechaReporte:   r.FechaReporte,
		TieneContacto:  strconv.FormatBool(r.Nombre != "" || r.Email != ""),
	}
}

// Store is the persistence contract. Save assigns the report id and
// timestamp; List returns reports newest first.
type Store interface {
	Save(ctx context.Context, r *Report) (string, error)
	List(ctx context.Context, limit int) ([]Report, error)
}

// newReportID derives an identifier from the wall clock at microsecond
// granularity. Not collision-proof under extreme concurrent submission
// rates; accepted for this workload.
func newReportID(t time.Time) string {
	return fmt.Sprintf("REP_%s%06d", t.Format("20060102_150405_"), t.Nanosecond()/1000)
}
