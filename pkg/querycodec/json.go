package querycodec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// MarshalJSON implements json.Marshaler. Undefined and null both render as
// null; sets render as arrays in insertion order; non-finite numbers render
// as strings.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.state {
	case stateString:
		return json.Marshal(v.str)
	case stateNumber:
		if math.IsInf(v.num, 0) || math.IsNaN(v.num) {
			return json.Marshal(formatNumber(v.num))
		}
		return json.Marshal(v.num)
	case stateList:
		return json.Marshal(v.list)
	case stateSet:
		return json.Marshal(v.set.Items())
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON implements json.Unmarshaler. It accepts null, a string, a
// number, or an array of strings.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("querycodec: empty JSON value")
	}

	switch data[0] {
	case 'n':
		*v = Null()
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Str(s)
		return nil
	case '[':
		var items []string
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("querycodec: list values must be strings: %w", err)
		}
		*v = List(items...)
		return nil
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("querycodec: unsupported JSON value %s", data)
		}
		*v = Num(n)
		return nil
	}
}

// MarshalJSON implements json.Marshaler. Undefined fields are omitted and
// keys are sorted.
func (vs Values) MarshalJSON() ([]byte, error) {
	names := make([]string, 0, len(vs))
	for name, v := range vs {
		if !v.IsUndefined() {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := vs[name].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
