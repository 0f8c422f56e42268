package tramites

import (
	"fmt"
	"strings"

	"tramites/internal/categories"
)

// EntityName anchors every SUIT query to the owning entity.
const EntityName = "INVIMA"

// SUIT dataset column names.
const (
	fieldNumeroUnico        = "numero_unico"
	fieldNombreTramite      = "nombre_tramite"
	fieldNombreComun        = "nombre_comun"
	fieldProposito          = "proposito"
	fieldNombreResultado    = "nombre_resultado"
	fieldClase              = "clase"
	fieldEntidad            = "entidad"
	fieldFechaActualizacion = "fecha_actualizacion"
)

// Radicados dataset column names.
const (
	fieldNumeroRadicado  = "numero_radicado"
	fieldEstado          = "estado"
	fieldFechaRadicacion = "fecha_radicacion"
)

// freeTextFields are the columns matched by the free-text clause.
var freeTextFields = []string{
	fieldNombreTramite,
	fieldNombreComun,
	fieldProposito,
	fieldNombreResultado,
}

// categoryFields are the columns matched by category keyword clauses.
var categoryFields = []string{
	fieldNombreTramite,
	fieldNombreComun,
}

// escape doubles single quotes so user text can never terminate a SoQL
// string literal.
func escape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// BuildFilterExpression translates the search intent into a SoQL $where
// predicate. The expression is always anchored to the owning entity; the
// free-text clause ORs a case-insensitive substring match across the
// searchable fields, and each requested category expands its keyword list
// over the name fields. Unknown categories are skipped. All user-supplied
// text is escaped.
func BuildFilterExpression(freeText string, cats []string) string {
	clauses := []string{fmt.Sprintf("%s = '%s'", fieldEntidad, EntityName)}

	if text := strings.TrimSpace(freeText); text != "" {
		pattern := "%" + strings.ToUpper(escape(text)) + "%"
		matches := make([]string, 0, len(freeTextFields))
		for _, f := range freeTextFields {
			matches = append(matches, fmt.Sprintf("upper(%s) like '%s'", f, pattern))
		}
		clauses = append(clauses, "("+strings.Join(matches, " OR ")+")")
	}

	if len(cats) > 0 {
		var matches []string
		for _, raw := range cats {
			id := categories.Normalize(raw)
			if id == "" {
				continue
			}
			for _, kw := range categories.Keywords(id) {
				pattern := "%" + strings.ToUpper(escape(kw)) + "%"
				for _, f := range categoryFields {
					matches = append(matches, fmt.Sprintf("upper(%s) like '%s'", f, pattern))
				}
			}
		}
		if len(matches) > 0 {
			clauses = append(clauses, "("+strings.Join(matches, " OR ")+")")
		}
	}

	return strings.Join(clauses, " AND ")
}

// inClause builds a "field in ('a','b')" predicate with each value quoted
// and escaped.
func inClause(field string, values []string) string {
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		quoted = append(quoted, "'"+escape(v)+"'")
	}
	return fmt.Sprintf("%s in (%s)", field, strings.Join(quoted, ","))
}
