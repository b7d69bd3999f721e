package services

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

const (
	minScore = 0
	maxScore = 100
)

// lookupField returns obj[key], falling back to a case-insensitive match so that
// "jscore" or "JScore" still land in the jScore field.
func lookupField(obj map[string]any, key string) any {
	if v, ok := obj[key]; ok {
		return v
	}
	// Several keys may differ only by case; the smallest one wins so the choice is stable.
	match, found := "", false
	for k := range obj {
		if strings.EqualFold(k, key) && (!found || k < match) {
			match, found = k, true
		}
	}
	if !found {
		return nil
	}
	return obj[match]
}

// coerceIdentity accepts only non-empty strings.
func coerceIdentity(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	return s, true
}

// coerceScore turns numbers and numeric strings ("82", "82%", "82/100") into a score
// within 0..100. Anything else reports false and the caller keeps the zero default.
func coerceScore(v any) (float64, bool) {
	var f float64

	switch val := v.(type) {
	case float64:
		f = val
	case float32:
		f = float64(val)
	case int:
		f = float64(val)
	case int64:
		f = float64(val)
	case json.Number:
		parsed, err := val.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		trimmed := strings.TrimSpace(val)
		if idx := strings.Index(trimmed, "/"); idx >= 0 {
			trimmed = strings.TrimSpace(trimmed[:idx])
		}
		trimmed = strings.TrimSuffix(trimmed, "%")
		if trimmed == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}

	return math.Min(maxScore, math.Max(minScore, f)), true
}

// coerceFlags reads a skill map entry by entry. Booleans and numbers keep their
// truth value, a string counts as present unless it reads as false ("Intermediate"
// is true), and any other value drops only its own entry.
func coerceFlags(v any) (map[string]bool, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}

	flags := make(map[string]bool, len(m))
	for name, raw := range m {
		if flag, ok := coerceFlag(raw); ok {
			flags[name] = flag
		}
	}
	return flags, true
}

func coerceFlag(v any) (bool, bool) {
	switch val := v.(type) {
	case bool:
		return val, true
	case float64:
		return val != 0, true
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return false, false
		}
		return f != 0, true
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "", "false", "no", "0", "none", "n/a":
			return false, true
		default:
			return true, true
		}
	default:
		return false, false
	}
}

// decodeWeak decodes v into target with weak typing ("true" -> true, "3" -> 3, a
// lone value -> one-element slice). target is left untouched on failure.
func decodeWeak(v any, target any) bool {
	if v == nil {
		return false
	}

	tmp := reflect.New(reflect.TypeOf(target).Elem())
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           tmp.Interface(),
	})
	if err != nil {
		return false
	}
	if err := decoder.Decode(v); err != nil {
		return false
	}

	reflect.ValueOf(target).Elem().Set(tmp.Elem())
	return true
}

// decodeSlice is decodeWeak for list fields; a decoded nil slice keeps the empty default.
func decodeSlice[T any](v any, target *[]T) bool {
	var out []T
	if !decodeWeak(v, &out) {
		return false
	}
	if out != nil {
		*target = out
	}
	return true
}
