package categories

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"identifier as-is", "medicamentos", Medicamentos},
		{"identifier with underscores", "dispositivos_medicos", DispositivosMedicos},
		{"accented label", "Cosméticos", Cosmeticos},
		{"label with spaces", "Dispositivos Médicos", DispositivosMedicos},
		{"uppercase identifier", "ALIMENTOS", Alimentos},
		{"padded", "  certificaciones  ", Certificaciones},
		{"unknown", "unknown-xyz", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name  string
		texts []string
		want  []string
	}{
		{
			"medications by keyword",
			[]string{"registro sanitario de medicamentos"},
			[]string{"Medicamentos"},
		},
		{
			"accent-insensitive",
			[]string{"Renovación de registro de COSMÉTICOS"},
			[]string{"Cosméticos"},
		},
		{
			"multiple categories keep table order",
			[]string{"certificado de buenas prácticas", "registro de alimentos y bebidas"},
			[]string{"Alimentos", "Certificaciones"},
		},
		{
			"no duplicates",
			[]string{"certificado", "certificación de buenas prácticas"},
			[]string{"Certificaciones"},
		},
		{"empty input", []string{""}, []string{}},
		{"no match", []string{"tramite generico"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Detect(tt.texts...)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Detect(%v) = %v, want %v", tt.texts, got, tt.want)
			}
		})
	}
}

func TestKeywordsAreNormalized(t *testing.T) {
	// Keyword containment happens against normalize.Text output, so the
	// table itself must hold lowercase accent-free entries.
	for _, c := range Table {
		if len(c.Keywords) == 0 {
			t.Errorf("category %s has no keywords", c.ID)
		}
		for _, kw := range c.Keywords {
			for _, r := range kw {
				if r >= 'A' && r <= 'Z' || r > 127 {
					t.Errorf("keyword %q of %s is not normalized", kw, c.ID)
				}
			}
		}
	}
}
