package normalize

import "testing"

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"empty", "", ""},
		{"whitespace only", "   \t ", ""},
		{"literal NULL", "NULL", ""},
		{"literal null lowercase", "null", ""},
		{"literal Null mixed", "Null", ""},
		{"padded NULL", "  NULL  ", ""},
		{"plain value", "Registro sanitario", "Registro sanitario"},
		{"trims", "  abc  ", "abc"},
		{"numeric passthrough", float64(42), "42"},
		{"value containing null word", "anular", "anular"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.in); got != tt.want {
				t.Errorf("Clean(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"lowercases", "MEDICAMENTOS", "medicamentos"},
		{"strips accents", "Cosméticos", "cosmeticos"},
		{"strips tilde n", "señal", "senal"},
		{"mixed", "Dispositivos Médicos", "dispositivos medicos"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Text(tt.in)
			if got != tt.want {
				t.Errorf("Text(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if again := Text(got); again != got {
				t.Errorf("Text not idempotent: Text(%q) = %q", got, again)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"slash date", "15/03/2023", "2023-03-15"},
		{"iso date", "2023-03-15", "2023-03-15"},
		{"iso datetime", "2023-03-15T10:00:00", "2023-03-15"},
		{"iso datetime fractional", "2023-03-15T10:00:00.123", "2023-03-15"},
		{"garbage unchanged", "garbage", "garbage"},
		{"nil", nil, ""},
		{"literal NULL", "NULL", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDate(tt.in); got != tt.want {
				t.Errorf("FormatDate(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSafeInt(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int
	}{
		{"float string", "3.0", 3},
		{"plain int string", "7", 7},
		{"nil", nil, 0},
		{"garbage", "abc", 0},
		{"empty", "", 0},
		{"NULL marker", "NULL", 0},
		{"json number", float64(12), 12},
		{"truncates", "2.9", 2},
		{"negative", "-4", -4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SafeInt(tt.in); got != tt.want {
				t.Errorf("SafeInt(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}
