package matcher

import (
	"encoding/json"
	"math"
	"testing"
)

func TestWildcardPolicy_IsAbsent(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		null  bool
		falsy bool
	}{
		{"nil", nil, true, true},
		{"false", false, false, true},
		{"true", true, false, false},
		{"zero int", 0, false, true},
		{"zero float", 0.0, false, true},
		{"NaN", math.NaN(), false, true},
		{"zero json number", json.Number("0"), false, true},
		{"empty string", "", false, true},
		{"string", "heron", false, false},
		{"number", 3, false, false},
		{"empty slice", []interface{}{}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NullWildcard.IsAbsent(tt.value); got != tt.null {
				t.Errorf("NullWildcard.IsAbsent(%v) = %v, want %v", tt.value, got, tt.null)
			}
			if got := FalsyWildcard.IsAbsent(tt.value); got != tt.falsy {
				t.Errorf("FalsyWildcard.IsAbsent(%v) = %v, want %v", tt.value, got, tt.falsy)
			}
		})
	}
}

func TestWildcardPolicy_Equal(t *testing.T) {
	tests := []struct {
		name   string
		policy WildcardPolicy
		a, b   interface{}
		want   bool
	}{
		{"both nil", NullWildcard, nil, nil, true},
		{"nil and value", NullWildcard, nil, 2, false},
		{"int and float", NullWildcard, 2, 2.0, true},
		{"int64 and json number", NullWildcard, int64(4), json.Number("4"), true},
		{"different numbers", NullWildcard, 2, 3, false},
		{"number and string", NullWildcard, 2, "2", false},
		{"strings", NullWildcard, "point_count", "point_count", true},
		{"bools", NullWildcard, true, true, true},
		{"bool and number", NullWildcard, true, 1, false},
		{"slices", NullWildcard, []interface{}{"a"}, []interface{}{"a"}, true},
		{"maps", NullWildcard, map[string]interface{}{"k": 1.0}, map[string]interface{}{"k": 2.0}, false},
		{"zero and nil under null policy", NullWildcard, 0, nil, false},
		{"zero and nil under falsy policy", FalsyWildcard, 0, nil, true},
		{"empty string and false under falsy policy", FalsyWildcard, "", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.policy.Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestParseWildcardPolicy(t *testing.T) {
	if ParseWildcardPolicy("falsy") != FalsyWildcard {
		t.Error("Expected falsy policy")
	}
	if ParseWildcardPolicy("null") != NullWildcard {
		t.Error("Expected null policy")
	}
	if ParseWildcardPolicy("") != NullWildcard {
		t.Error("Expected null policy for empty name")
	}
	if FalsyWildcard.String() != "falsy" || NullWildcard.String() != "null" {
		t.Error("Unexpected policy names")
	}
}

func TestWildcardPolicy_CountPresent(t *testing.T) {
	entry := map[string]interface{}{"entryID": "r1", "species": 2, "season": nil, "note": ""}

	if got := NullWildcard.CountPresent(entry, "entryID"); got != 2 {
		t.Errorf("NullWildcard.CountPresent = %d, want 2", got)
	}
	if got := FalsyWildcard.CountPresent(entry, "entryID"); got != 1 {
		t.Errorf("FalsyWildcard.CountPresent = %d, want 1", got)
	}
}
