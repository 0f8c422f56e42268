// Package validation checks caller input at the HTTP edge so malformed
// requests never reach the search service or the report store.
package validation

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ReportInput is the submission payload for an error report. Nombre and
// email are optional; when present they must be well-formed.
type ReportInput struct {
	Nombre         string `json:"nombre" validate:"omitempty,min=2,max=100"`
	Email          string `json:"email" validate:"omitempty,email"`
	TipoError      string `json:"tipo_error" validate:"required"`
	Descripcion    string `json:"descripcion" validate:"required,min=10,max=1000"`
	NumeroRadicado string `json:"numero_radicado" validate:"omitempty,max=50"`
}

// reportFieldMessages translate validator failures into user-facing text.
var reportFieldMessages = map[string]string{
	"Nombre":         "el nombre debe tener entre 2 y 100 caracteres",
	"Email":          "el email no tiene un formato válido",
	"TipoError":      "el tipo de error es obligatorio",
	"Descripcion":    "la descripción debe tener entre 10 y 1000 caracteres",
	"NumeroRadicado": "el número de radicado es demasiado largo",
}

// ValidateReport validates a report submission. The returned error message
// is safe to show to the end user.
func ValidateReport(in *ReportInput) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		if msg, ok := reportFieldMessages[errs[0].Field()]; ok {
			return errors.New(msg)
		}
	}
	return errors.New("datos del reporte inválidos")
}

// ClampLimit bounds a caller-supplied limit to [1, max], substituting the
// fallback when unset.
func ClampLimit(limit, fallback, max int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > max {
		return max
	}
	return limit
}

// ClampOffset bounds a caller-supplied offset to be non-negative.
func ClampOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
