package errors

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// FormatCompact returns a compact single-line error format.
func (e *QueryError) FormatCompact() string {
	var b strings.Builder

	if e.Code != "" {
		b.WriteString(e.Code)
		if e.Field != "" {
			b.WriteString(" [")
			b.WriteString(e.Field)
			b.WriteString("]")
		}
		b.WriteString(": ")
	}

	b.WriteString(e.Message)
	if e.Wrapped != nil {
		b.WriteString(": ")
		b.WriteString(e.Wrapped.Error())
	}

	return b.String()
}

// jsonError is the wire shape produced by FormatJSON.
type jsonError struct {
	Code       string   `json:"code,omitempty"`
	Category   Category `json:"category,omitempty"`
	Message    string   `json:"message"`
	Detail     string   `json:"detail,omitempty"`
	Field      string   `json:"field,omitempty"`
	Suggestion string   `json:"suggestion,omitempty"`
	Cause      string   `json:"cause,omitempty"`
}

// FormatJSON returns the error as a JSON object.
func (e *QueryError) FormatJSON() string {
	out := jsonError{
		Code:       e.Code,
		Category:   e.Category,
		Message:    e.Message,
		Detail:     e.Detail,
		Field:      e.Field,
		Suggestion: e.Suggestion,
	}
	if e.Wrapped != nil {
		out.Cause = e.Wrapped.Error()
	}
	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Sprintf(`{"message":%q}`, e.Message)
	}
	return string(data)
}

// Fprint writes a human-readable rendering of err to w, including the detail
// and suggestion of a QueryError.
func Fprint(w io.Writer, err error) {
	qe, ok := err.(*QueryError)
	if !ok {
		fmt.Fprintf(w, "error: %s\n", err.Error())
		return
	}
	fmt.Fprintf(w, "error: %s\n", qe.FormatCompact())
	if qe.Detail != "" {
		fmt.Fprintf(w, "  %s\n", qe.Detail)
	}
	if qe.Suggestion != "" {
		fmt.Fprintf(w, "  hint: %s\n", qe.Suggestion)
	}
}
