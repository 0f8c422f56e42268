// Package categories classifies free-text procedure names and purposes into
// the fixed set of INVIMA domain categories by keyword containment.
package categories

import (
	"strings"

	"tramites/internal/normalize"
)

// Category identifiers. These are the values accepted by the search API.
const (
	Medicamentos        = "medicamentos"
	Alimentos           = "alimentos"
	Cosmeticos          = "cosmeticos"
	DispositivosMedicos = "dispositivos_medicos"
	Certificaciones     = "certificaciones"
)

// Category maps an identifier to its display label and the lowercase,
// accent-stripped keyword substrings that signal it.
type Category struct {
	ID       string
	Label    string
	Keywords []string
}

// Table is the fixed category table. Order matters: Detect reports labels in
// this order. Keywords must already be normalized (see normalize.Text).
var Table = []Category{
	{
		ID:    Medicamentos,
		Label: "Medicamentos",
		Keywords: []string{
			"medicamento",
			"farmaceutic",
			"principio activo",
			"vacuna",
			"biologico",
		},
	},
	{
		ID:    Alimentos,
		Label: "Alimentos",
		Keywords: []string{
			"alimento",
			"bebida",
			"suplemento dietario",
		},
	},
	{
		ID:    Cosmeticos,
		Label: "Cosméticos",
		Keywords: []string{
			"cosmetico",
			"higiene domestica",
			"aseo personal",
		},
	},
	{
		ID:    DispositivosMedicos,
		Label: "Dispositivos Médicos",
		Keywords: []string{
			"dispositivo medico",
			"equipo biomedico",
			"reactivo de diagnostico",
		},
	},
	{
		ID:    Certificaciones,
		Label: "Certificaciones",
		Keywords: []string{
			"certificacion",
			"certificado",
			"buenas practicas",
		},
	},
}

// Normalize resolves a raw caller-supplied category to its identifier.
// Accepts the identifier itself ("dispositivos_medicos") or the display
// label in any casing/accentuation ("Dispositivos Médicos"). Returns "" for
// anything else.
func Normalize(raw string) string {
	slug := strings.ReplaceAll(normalize.Text(strings.TrimSpace(raw)), " ", "_")
	if slug == "" {
		return ""
	}

	for _, c := range Table {
		if slug == c.ID {
			return c.ID
		}
	}
	for _, c := range Table {
		if slug == strings.ReplaceAll(normalize.Text(c.Label), " ", "_") {
			return c.ID
		}
	}
	return ""
}

// Keywords returns the keyword list for a category identifier, or nil.
func Keywords(id string) []string {
	for _, c := range Table {
		if c.ID == id {
			return c.Keywords
		}
	}
	return nil
}

// Detect scans the given texts for category keywords and returns the display
// labels of every matching category, in table order, without duplicates.
func Detect(texts ...string) []string {
	var buf strings.Builder
	for _, t := range texts {
		if t == "" {
			continue
		}
		buf.WriteString(normalize.Text(t))
		buf.WriteString(" ")
	}

	haystack := buf.String()
	labels := []string{}
	for _, c := range Table {
		for _, kw := range c.Keywords {
			if strings.Contains(haystack, kw) {
				labels = append(labels, c.Label)
				break
			}
		}
	}
	return labels
}
