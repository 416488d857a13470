// Package querycodec maps URL query parameters to typed values and back.
//
// A Mapping declares, for every query field an application cares about, a
// Kind that fixes how the field is read and written:
//
//	m := querycodec.MustMapping(
//	    querycodec.Field{Name: "q", Kind: querycodec.DeferredString},
//	    querycodec.Field{Name: "page", Kind: querycodec.Number},
//	    querycodec.Field{Name: "tags", Kind: querycodec.StringList},
//	)
//
//	values, err := querycodec.Decode(u.Query(), m)
//	page, ok := values.Number("page")
//
// Decode is total for every kind except RequiredString, which fails with
// ErrMissingRequiredField when the field is absent. Malformed numbers decode
// to undefined rather than failing.
//
// Encode is the inverse used when writing updates: it turns a Value into a
// Directive (skip, delete, or write one or more occurrences of the key) that
// is applied to a url.Values.
package querycodec
