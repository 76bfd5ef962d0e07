package typoutil

import "testing"

func TestDamerauLevenshteinDistance(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{"both empty", "", "", 0},
		{"a empty", "", "season", 6},
		{"b empty", "season", "", 6},
		{"identical", "species", "species", 0},
		{"substitution", "method", "methad", 1},
		{"insertion", "season", "seasons", 1},
		{"deletion", "outcome", "outcom", 1},
		{"transposition", "species", "speices", 1},
		{"transposition at start", "method", "emthod", 1},
		{"multiple edits", "saturday", "sunday", 3},
		{"restricted transposition", "ca", "abc", 3},
		{"unicode", "année", "annee", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DamerauLevenshteinDistance(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("DamerauLevenshteinDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
			if back := DamerauLevenshteinDistance(tt.b, tt.a); back != got {
				t.Errorf("distance is not symmetric: %d vs %d", got, back)
			}
		})
	}
}

func TestClosestField(t *testing.T) {
	fields := []string{"outcome", "species", "method", "season"}

	tests := []struct {
		name        string
		input       string
		maxDistance int
		want        string
		wantOK      bool
	}{
		{"transposed letters", "speices", 2, "species", true},
		{"different case", "Season", 2, "season", true},
		{"missing letter", "metod", 2, "method", true},
		{"too far", "habitat", 2, "", false},
		{"exact name is not a suggestion", "method", 2, "", false},
		{"zero distance allowed", "seasn", 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ClosestField(tt.input, fields, tt.maxDistance)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ClosestField(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
