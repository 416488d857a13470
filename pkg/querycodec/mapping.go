package querycodec

import (
	"fmt"
)

// Field declares one query field.
type Field struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}

// Mapping is an ordered, immutable set of field declarations with unique
// names.
type Mapping struct {
	fields []Field
	index  map[string]int
}

// NewMapping builds a Mapping. It fails on empty or duplicate names and on
// invalid kinds.
func NewMapping(fields ...Field) (*Mapping, error) {
	m := &Mapping{
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("querycodec: field with empty name")
		}
		if !f.Kind.Valid() {
			return nil, fmt.Errorf("querycodec: field %q: invalid kind %d", f.Name, uint8(f.Kind))
		}
		if _, dup := m.index[f.Name]; dup {
			return nil, fmt.Errorf("querycodec: duplicate field %q", f.Name)
		}
		m.index[f.Name] = len(m.fields)
		m.fields = append(m.fields, f)
	}
	return m, nil
}

// MustMapping is like NewMapping but panics on error. Intended for
// package-level mapping declarations.
func MustMapping(fields ...Field) *Mapping {
	m, err := NewMapping(fields...)
	if err != nil {
		panic(err)
	}
	return m
}

// Fields returns the declarations in order.
func (m *Mapping) Fields() []Field {
	out := make([]Field, len(m.fields))
	copy(out, m.fields)
	return out
}

// Kind returns the declared kind of a field.
func (m *Mapping) Kind(name string) (Kind, bool) {
	i, ok := m.index[name]
	if !ok {
		return 0, false
	}
	return m.fields[i].Kind, true
}

// Len returns the number of declared fields.
func (m *Mapping) Len() int {
	return len(m.fields)
}
