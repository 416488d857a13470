// Package errors provides structured, coded errors for querystate.
//
// Each error carries a unique code (e.g., "Q001") that maps to a registered
// template with a category, a short message and a longer explanation. Errors
// can be enriched with the offending query field, a suggestion and a wrapped
// cause:
//
//	err := errors.New("Q001").
//	    WithField("page").
//	    WithSuggestion("Add ?page=... to the URL or redirect before reading state")
//
//	fmt.Println(err.FormatCompact())
//	// Output:
//	// Q001 [page]: Missing required query field
//
// Two errors compare equal under errors.Is when their codes match, so a bare
// template (errors.New("Q001")) works as a sentinel.
package errors
