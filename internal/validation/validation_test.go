package validation

import (
	"strings"
	"testing"
)

func TestValidateReport(t *testing.T) {
	valid := ReportInput{
		TipoError:   "dato_incorrecto",
		Descripcion: "La fecha de radicación mostrada no coincide con la real",
	}

	tests := []struct {
		name    string
		mutate  func(in *ReportInput)
		wantErr bool
	}{
		{"minimal valid", func(in *ReportInput) {}, false},
		{"with contact info", func(in *ReportInput) {
			in.Nombre = "Ana"
			in.Email = "ana@example.com"
		}, false},
		{"missing tipo_error", func(in *ReportInput) { in.TipoError = "" }, true},
		{"missing descripcion", func(in *ReportInput) { in.Descripcion = "" }, true},
		{"short descripcion", func(in *ReportInput) { in.Descripcion = "corta" }, true},
		{"long descripcion", func(in *ReportInput) { in.Descripcion = strings.Repeat("a", 1001) }, true},
		{"descripcion at max", func(in *ReportInput) { in.Descripcion = strings.Repeat("a", 1000) }, false},
		{"single-char nombre", func(in *ReportInput) { in.Nombre = "A" }, true},
		{"bad email", func(in *ReportInput) { in.Email = "not-an-email" }, true},
		{"radicado optional", func(in *ReportInput) { in.NumeroRadicado = "20230001234" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			err := ValidateReport(&in)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateReport(%+v) error = %v, wantErr %v", in, err, tt.wantErr)
			}
		})
	}
}

func TestClampLimit(t *testing.T) {
	tests := []struct {
		name                 string
		limit, fallback, max int
		want                 int
	}{
		{"zero uses fallback", 0, 100, 1000, 100},
		{"negative uses fallback", -5, 100, 1000, 100},
		{"within bounds", 50, 100, 1000, 50},
		{"above ceiling", 5000, 100, 1000, 1000},
		{"exactly ceiling", 1000, 100, 1000, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampLimit(tt.limit, tt.fallback, tt.max); got != tt.want {
				t.Errorf("ClampLimit(%d, %d, %d) = %d, want %d", tt.limit, tt.fallback, tt.max, got, tt.want)
			}
		})
	}
}

func TestClampOffset(t *testing.T) {
	if got := ClampOffset(-1); got != 0 {
		t.Errorf("ClampOffset(-1) = %d, want 0", got)
	}
	if got := ClampOffset(200); got != 200 {
		t.Errorf("ClampOffset(200) = %d, want 200", got)
	}
}
