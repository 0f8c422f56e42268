package tramites

import (
	"strings"
	"testing"
)

func TestBuildFilterExpressionAnchorsEntity(t *testing.T) {
	expr := BuildFilterExpression("", nil)
	if expr != "entidad = 'INVIMA'" {
		t.Errorf("empty filter = %q, want entity anchor only", expr)
	}
}

func TestBuildFilterExpressionFreeText(t *testing.T) {
	expr := BuildFilterExpression("registro sanitario", nil)

	if !strings.HasPrefix(expr, "entidad = 'INVIMA' AND (") {
		t.Errorf("expression not anchored: %q", expr)
	}
	for _, f := range []string{"nombre_tramite", "nombre_comun", "proposito", "nombre_resultado"} {
		want := "upper(" + f + ") like '%REGISTRO SANITARIO%'"
		if !strings.Contains(expr, want) {
			t.Errorf("expression missing clause %q:\n%s", want, expr)
		}
	}
	if strings.Count(expr, " OR ") != 3 {
		t.Errorf("free text should OR across 4 fields: %q", expr)
	}
}

func TestBuildFilterExpressionEscapesQuotes(t *testing.T) {
	expr := BuildFilterExpression("O'Brien", nil)

	if !strings.Contains(expr, "O''BRIEN") {
		t.Errorf("quote not doubled: %q", expr)
	}
	// Every quote in the final expression must be balanced: strip the
	// doubled quotes and the remaining ones must all delimit literals.
	stripped := strings.ReplaceAll(expr, "''", "")
	if strings.Count(stripped, "'")%2 != 0 {
		t.Errorf("unbalanced quoting in %q", expr)
	}
}

func TestBuildFilterExpressionCategories(t *testing.T) {
	expr := BuildFilterExpression("", []string{"medicamentos"})

	if !strings.Contains(expr, "upper(nombre_tramite) like '%MEDICAMENTO%'") {
		t.Errorf("missing keyword clause: %q", expr)
	}
	if !strings.Contains(expr, "upper(nombre_comun) like '%MEDICAMENTO%'") {
		t.Errorf("category keywords should match both name fields: %q", expr)
	}
	if !strings.Contains(expr, "entidad = 'INVIMA' AND (") {
		t.Errorf("category clause not AND-joined to anchor: %q", expr)
	}
}

func TestBuildFilterExpressionCategoryLabelAndUnknown(t *testing.T) {
	// Display labels resolve like identifiers; unknown entries are skipped.
	withLabel := BuildFilterExpression("", []string{"Cosméticos"})
	if !strings.Contains(withLabel, "COSMETICO") {
		t.Errorf("label did not resolve: %q", withLabel)
	}

	unknownOnly := BuildFilterExpression("", []string{"unknown-xyz"})
	if unknownOnly != "entidad = 'INVIMA'" {
		t.Errorf("unknown category should contribute no clause: %q", unknownOnly)
	}
}

func TestBuildFilterExpressionCombined(t *testing.T) {
	expr := BuildFilterExpression("vacuna", []string{"medicamentos", "alimentos"})

	if strings.Count(expr, " AND ") < 2 {
		t.Errorf("text and category clauses should both be AND-joined: %q", expr)
	}
	if !strings.Contains(expr, "%VACUNA%") {
		t.Errorf("missing free text clause: %q", expr)
	}
	if !strings.Contains(expr, "%ALIMENTO%") {
		t.Errorf("missing second category keywords: %q", expr)
	}
}

func TestInClause(t *testing.T) {
	got := inClause("numero_unico", []string{"T-1", "T'2"})
	want := "numero_unico in ('T-1','T''2')"
	if got != want {
		t.Errorf("inClause = %q, want %q", got, want)
	}
}
