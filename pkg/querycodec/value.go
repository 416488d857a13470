package querycodec

import (
	"strconv"
	"strings"
)

type valueState uint8

const (
	stateUndefined valueState = iota
	stateNull
	stateString
	stateNumber
	stateList
	stateSet
)

// Value is a decoded query value, or an update to one.
//
// The zero Value is undefined: as decode output it means the field is
// absent, and as update input it leaves the field untouched. Null means
// "delete" when writing.
type Value struct {
	state valueState
	str   string
	num   float64
	list  []string
	set   *Set
}

// Undefined returns the undefined Value.
func Undefined() Value { return Value{} }

// Null returns the Value that deletes a field when written.
func Null() Value { return Value{state: stateNull} }

// Str returns a string Value.
func Str(s string) Value { return Value{state: stateString, str: s} }

// Num returns a number Value.
func Num(n float64) Value { return Value{state: stateNumber, num: n} }

// List returns an ordered list Value.
func List(items ...string) Value {
	if items == nil {
		items = []string{}
	}
	return Value{state: stateList, list: items}
}

// SetOf returns a set Value holding items, duplicates dropped.
func SetOf(items ...string) Value {
	return Value{state: stateSet, set: NewSet(items...)}
}

// SetValue wraps an existing Set.
func SetValue(s *Set) Value {
	if s == nil {
		s = NewSet()
	}
	return Value{state: stateSet, set: s}
}

// IsUndefined reports whether v is undefined.
func (v Value) IsUndefined() bool { return v.state == stateUndefined }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.state == stateNull }

// Str returns the string held by v.
func (v Value) Str() (string, bool) {
	return v.str, v.state == stateString
}

// Num returns the number held by v.
func (v Value) Num() (float64, bool) {
	return v.num, v.state == stateNumber
}

// List returns the list held by v, or nil if v is not a list.
func (v Value) List() []string {
	if v.state != stateList {
		return nil
	}
	return v.list
}

// IsList reports whether v is a list.
func (v Value) IsList() bool { return v.state == stateList }

// Set returns the set held by v, or nil if v is not a set.
func (v Value) Set() *Set {
	if v.state != stateSet {
		return nil
	}
	return v.set
}

// strings returns the elements v contributes to a multi-valued field.
func (v Value) strings() []string {
	switch v.state {
	case stateString:
		return []string{v.str}
	case stateNumber:
		return []string{formatNumber(v.num)}
	case stateList:
		return v.list
	case stateSet:
		return v.set.Items()
	default:
		return nil
	}
}

// text stringifies v for a single-valued field.
func (v Value) text() string {
	switch v.state {
	case stateString:
		return v.str
	case stateNumber:
		return formatNumber(v.num)
	case stateList, stateSet:
		return strings.Join(v.strings(), ",")
	default:
		return ""
	}
}

// String renders v for debugging.
func (v Value) String() string {
	switch v.state {
	case stateUndefined:
		return "undefined"
	case stateNull:
		return "null"
	case stateString:
		return strconv.Quote(v.str)
	case stateNumber:
		return formatNumber(v.num)
	case stateList:
		return "[" + strings.Join(v.list, " ") + "]"
	default:
		return "{" + strings.Join(v.set.Items(), " ") + "}"
	}
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// Values holds decoded values keyed by field name.
type Values map[string]Value

// Get returns the value of a field; undefined if missing.
func (vs Values) Get(name string) Value {
	return vs[name]
}

// String returns a string field.
func (vs Values) String(name string) (string, bool) {
	return vs[name].Str()
}

// Number returns a number field.
func (vs Values) Number(name string) (float64, bool) {
	return vs[name].Num()
}

// List returns a list field.
func (vs Values) List(name string) []string {
	return vs[name].List()
}

// Set returns a set field.
func (vs Values) Set(name string) *Set {
	return vs[name].Set()
}
