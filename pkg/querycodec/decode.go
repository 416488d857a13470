package querycodec

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/vango-dev/querystate/internal/errors"
)

// ErrMissingRequiredField matches, under errors.Is, the error returned by
// Decode when a RequiredString field is absent.
var ErrMissingRequiredField error = errors.New("Q001")

// Decode reads every field of m from raw. It fails only when a
// RequiredString field has no value; the error names the first such field
// in mapping order.
func Decode(raw url.Values, m *Mapping) (Values, error) {
	out := make(Values, m.Len())
	for _, f := range m.fields {
		v, err := DecodeField(raw[f.Name], f.Name, f.Kind)
		if err != nil {
			return nil, err
		}
		out[f.Name] = v
	}
	return out, nil
}

// DecodeField decodes the raw occurrences of a single field. A nil slice
// means the key is absent.
func DecodeField(raw []string, name string, kind Kind) (Value, error) {
	switch kind {
	case String, DeferredString:
		return decodeString(raw), nil

	case Number, DeferredNumber:
		return decodeNumber(raw), nil

	case StringList:
		return List(copyStrings(raw)...), nil

	case StringSet:
		return SetOf(raw...), nil

	case OptionalStringList:
		if raw == nil {
			return Undefined(), nil
		}
		return List(copyStrings(raw)...), nil

	case RequiredString:
		v := decodeString(raw)
		if _, ok := v.Str(); !ok {
			return Value{}, errors.New("Q001").
				WithField(name).
				WithSuggestion("Redirect or supply a default before reading state when ?" + name + "= is missing")
		}
		return v, nil
	}
	return Undefined(), nil
}

// decodeString takes the first occurrence of a key.
func decodeString(raw []string) Value {
	if len(raw) == 0 {
		return Undefined()
	}
	return Str(raw[0])
}

// decodeNumber coerces the first occurrence to a float64. Input that is
// empty, unparsable or not finite decodes to undefined.
func decodeNumber(raw []string) Value {
	if len(raw) == 0 {
		return Undefined()
	}
	n, ok := parseNumber(strings.TrimSpace(raw[0]))
	if !ok {
		return Undefined()
	}
	return Num(n)
}

// parseNumber accepts decimal and exponent forms, plus unsigned 0x, 0o and
// 0b integers. Infinities, NaN, hex floats and digit separators are
// rejected.
func parseNumber(s string) (float64, bool) {
	if s == "" || strings.Contains(s, "_") {
		return 0, false
	}
	if len(s) > 2 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X', 'o', 'O', 'b', 'B':
			u, err := strconv.ParseUint(s, 0, 64)
			if err != nil {
				return 0, false
			}
			return float64(u), true
		}
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func copyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
