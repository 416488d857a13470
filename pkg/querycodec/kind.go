package querycodec

import "fmt"

// Kind selects how a single query field is decoded and encoded.
// The set of kinds is closed.
type Kind uint8

const (
	// String is a single string written to the URL immediately.
	String Kind = iota

	// DeferredString is a single string whose writes are debounced.
	DeferredString

	// StringList is an ordered list; absent decodes to an empty list.
	StringList

	// StringSet is a deduplicated list; absent decodes to an empty set.
	StringSet

	// OptionalStringList is a StringList whose absent state decodes to
	// undefined instead of an empty list.
	OptionalStringList

	// RequiredString is a String that must be present for Decode to succeed.
	RequiredString

	// Number is a float64 written to the URL immediately.
	Number

	// DeferredNumber is a float64 whose writes are debounced.
	DeferredNumber
)

var kindNames = [...]string{
	String:             "string",
	DeferredString:     "deferred_string",
	StringList:         "string_list",
	StringSet:          "string_set",
	OptionalStringList: "optional_string_list",
	RequiredString:     "required_string",
	Number:             "number",
	DeferredNumber:     "deferred_number",
}

// String returns the kind's textual name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return int(k) < len(kindNames)
}

// Deferred reports whether writes to fields of this kind are debounced.
func (k Kind) Deferred() bool {
	return k == DeferredString || k == DeferredNumber
}

// ParseKind returns the Kind with the given textual name.
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("querycodec: unknown field kind %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("querycodec: invalid field kind %d", uint8(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
