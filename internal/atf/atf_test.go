package atf

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"no digraphs", "alpu", "alpu"},
		{"upper shin", "SZarru", "Šarru"},
		{"lower shin", "szarru", "šarru"},
		{"tsade", ",salmu", "ṣalmu"},
		{"teth", ",tuppu", "ṭuppu"},
		{"upper tsade and shin", ",SZ", "ṢZ"},
		{"mixed", ",Sa-SZa", "Ṣa-Ša"},
		{"many", "szasza,t,t", "šašaṭṭ"},
		{"already unicode", "Šarru", "Šarru"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeNoPositionalDrift(t *testing.T) {
	// Š and Ṣ are multi-byte, so a forward pass would invalidate the later offsets.
	input := ",Sa SZa ,sa sza ,Ta ,ta"
	want := "Ṣa Ša ṣa ša Ṭa ṭa"
	if got := Normalize(input); got != want {
		t.Errorf("Normalize(%q) = %q, want %q", input, got, want)
	}
}

func TestTableIsCopy(t *testing.T) {
	tbl := Table()
	if len(tbl) != 6 {
		t.Fatalf("expected 6 substitutions, got %d", len(tbl))
	}
	tbl["SZ"] = "x"
	if Normalize("SZ") != "Š" {
		t.Error("mutating Table() result should not affect Normalize")
	}
}
