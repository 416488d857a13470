package querycodec

import (
	"math"
	"net/url"
)

// Op is the action a Directive performs on a query.
type Op uint8

const (
	// OpSkip leaves the field untouched.
	OpSkip Op = iota

	// OpDelete removes every occurrence of the field.
	OpDelete

	// OpWrite replaces the field with the directive's values, in order.
	OpWrite
)

func (o Op) String() string {
	switch o {
	case OpSkip:
		return "skip"
	case OpDelete:
		return "delete"
	case OpWrite:
		return "write"
	default:
		return "unknown"
	}
}

// Directive is the encoded form of one field update.
type Directive struct {
	Op     Op
	Values []string
}

// Encode turns an update to a field of the given kind into a Directive.
//
// Undefined skips. Null deletes, as does a NaN or infinite number since it
// could not be read back. Single-valued kinds are stringified and an empty
// string deletes. List kinds write one occurrence per element and
// delete when empty; sets do the same in insertion order.
func Encode(kind Kind, v Value) Directive {
	if v.IsUndefined() {
		return Directive{Op: OpSkip}
	}
	if v.IsNull() {
		return Directive{Op: OpDelete}
	}
	if n, ok := v.Num(); ok && (math.IsNaN(n) || math.IsInf(n, 0)) {
		return Directive{Op: OpDelete}
	}

	switch kind {
	case StringList, OptionalStringList:
		items := v.strings()
		if len(items) == 0 {
			return Directive{Op: OpDelete}
		}
		return Directive{Op: OpWrite, Values: copyStrings(items)}

	case StringSet:
		set := v.Set()
		if set == nil {
			set = NewSet(v.strings()...)
		}
		if set.Len() == 0 {
			return Directive{Op: OpDelete}
		}
		return Directive{Op: OpWrite, Values: set.Items()}

	default:
		s := v.text()
		if s == "" {
			return Directive{Op: OpDelete}
		}
		return Directive{Op: OpWrite, Values: []string{s}}
	}
}

// Apply performs the directive on q for the named field.
func (d Directive) Apply(q url.Values, name string) {
	switch d.Op {
	case OpDelete:
		q.Del(name)
	case OpWrite:
		q.Del(name)
		for _, v := range d.Values {
			q.Add(name, v)
		}
	}
}
