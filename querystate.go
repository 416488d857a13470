// Package querystate keeps typed application state in a URL's query string.
//
// This is the recommended import for most applications:
//
//	import "github.com/vango-dev/querystate"
//
// Usage:
//
//	m := querystate.MustMapping(
//	    querystate.Field{Name: "q", Kind: querystate.DeferredString},
//	    querystate.Field{Name: "page", Kind: querystate.Number},
//	)
//	p := querystate.NewProvider(loc)
//	defer p.Close()
//	b := p.Bind(m)
//	values, err := b.Values()
//	b.Update(querystate.Update{"q": querystate.Str("boots"), "page": querystate.Null()})
package querystate

import (
	"net/url"

	"github.com/vango-dev/querystate/pkg/querycodec"
	"github.com/vango-dev/querystate/pkg/querysync"
)

// =============================================================================
// Codec (re-export from pkg/querycodec)
// =============================================================================

// Kind selects the decode and encode rules of a field.
type Kind = querycodec.Kind

// Field kinds.
const (
	String             = querycodec.String
	DeferredString     = querycodec.DeferredString
	StringList         = querycodec.StringList
	StringSet          = querycodec.StringSet
	OptionalStringList = querycodec.OptionalStringList
	RequiredString     = querycodec.RequiredString
	Number             = querycodec.Number
	DeferredNumber     = querycodec.DeferredNumber
)

// Field declares one query field.
type Field = querycodec.Field

// Mapping is an ordered set of field declarations.
type Mapping = querycodec.Mapping

// Value is a typed field value.
type Value = querycodec.Value

// Values holds decoded field values by name.
type Values = querycodec.Values

// ErrMissingRequiredField is matched by errors.Is when a required field is
// absent.
var ErrMissingRequiredField = querycodec.ErrMissingRequiredField

// NewMapping builds a mapping from field declarations.
func NewMapping(fields ...Field) (*Mapping, error) {
	return querycodec.NewMapping(fields...)
}

// MustMapping is like NewMapping but panics on an invalid declaration.
func MustMapping(fields ...Field) *Mapping {
	return querycodec.MustMapping(fields...)
}

// Decode reads typed values from a raw query.
func Decode(raw url.Values, m *Mapping) (Values, error) {
	return querycodec.Decode(raw, m)
}

// Value constructors.
var (
	Null  = querycodec.Null
	Str   = querycodec.Str
	Num   = querycodec.Num
	List  = querycodec.List
	SetOf = querycodec.SetOf
)

// =============================================================================
// Synchronizer (re-export from pkg/querysync)
// =============================================================================

// Location is the URL a provider reads from and replaces.
type Location = querysync.Location

// Provider owns a deferred buffer and its flush timer.
type Provider = querysync.Provider

// Binding reads and writes the fields of one mapping.
type Binding = querysync.Binding

// Update is a partial set of field writes.
type Update = querysync.Update

// NewProvider creates a provider over loc.
func NewProvider(loc Location, opts ...querysync.Option) *Provider {
	return querysync.NewProvider(loc, opts...)
}

// NewMemoryLocation creates an in-process location at rawURL.
func NewMemoryLocation(rawURL string) (*querysync.MemoryLocation, error) {
	return querysync.NewMemoryLocation(rawURL)
}

// Provider and update options.
var (
	WithWindow  = querysync.WithWindow
	WithClock   = querysync.WithClock
	WithLogger  = querysync.WithLogger
	WithMetrics = querysync.WithMetrics
	WithTracer  = querysync.WithTracer
	Immediate   = querysync.Immediate
)
