package matcher

import (
	"encoding/json"
	"math"
	"reflect"
)

// WildcardPolicy decides which values count as absent.
type WildcardPolicy int

const (
	// NullWildcard treats only nil as absent. A missing key reads as nil.
	NullWildcard WildcardPolicy = iota
	// FalsyWildcard additionally treats false, numeric zero and "" as absent.
	FalsyWildcard
)

// ParseWildcardPolicy maps a settings value ("null", "falsy") to a policy.
// Anything unrecognised falls back to NullWildcard.
func ParseWildcardPolicy(name string) WildcardPolicy {
	if name == "falsy" {
		return FalsyWildcard
	}
	return NullWildcard
}

func (p WildcardPolicy) String() string {
	if p == FalsyWildcard {
		return "falsy"
	}
	return "null"
}

// IsAbsent reports whether v is a wildcard under the policy.
func (p WildcardPolicy) IsAbsent(v interface{}) bool {
	if v == nil {
		return true
	}
	if p != FalsyWildcard {
		return false
	}
	switch val := v.(type) {
	case bool:
		return !val
	case string:
		return val == ""
	case json.Number:
		f, err := val.Float64()
		return err == nil && f == 0
	}
	if f, ok := toFloat(v); ok {
		return f == 0 || math.IsNaN(f)
	}
	return false
}

// Equal is the comparison used when a constraint is applied. Two absent values are equal,
// numbers compare by value whatever their Go type, everything else by deep equality.
func (p WildcardPolicy) Equal(a, b interface{}) bool {
	aAbsent, bAbsent := p.IsAbsent(a), p.IsAbsent(b)
	if aAbsent || bAbsent {
		return aAbsent && bAbsent
	}

	if af, ok := toFloat(a); ok {
		bf, ok := toFloat(b)
		return ok && af == bf
	}

	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	}

	return reflect.DeepEqual(a, b)
}

// CountPresent returns the number of present fields of an entry, ignoring the reserved ID key.
func (p WildcardPolicy) CountPresent(entry map[string]interface{}, skip string) int {
	count := 0
	for k, v := range entry {
		if k == skip {
			continue
		}
		if !p.IsAbsent(v) {
			count++
		}
	}
	return count
}

// toFloat converts the numeric kinds decoded from JSON or built in Go code.
func toFloat(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int8:
		return float64(val), true
	case int16:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint8:
		return float64(val), true
	case uint16:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	}
	return 0, false
}
