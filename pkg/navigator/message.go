package navigator

import (
	"github.com/vango-dev/querystate/pkg/querycodec"
)

// MessageType identifies a wire message.
type MessageType string

const (
	// TypeLocation reports the browser's current URL (initial load, popstate).
	TypeLocation MessageType = "location"

	// TypeUpdate carries a partial update from the client.
	TypeUpdate MessageType = "update"

	// TypeReset asks the server to clear all query state.
	TypeReset MessageType = "reset"

	// TypeReplace tells the client to shallow-replace its URL.
	TypeReplace MessageType = "replace"

	// TypeValues carries the bound values after a client message.
	TypeValues MessageType = "values"

	// TypeError reports a failed read or a malformed message.
	TypeError MessageType = "error"
)

// Message is a single JSON text frame.
type Message struct {
	Type      MessageType       `json:"type"`
	URL       string            `json:"url,omitempty"`
	Values    querycodec.Values `json:"values,omitempty"`
	Immediate bool              `json:"immediate,omitempty"`
	Error     *ErrorBody        `json:"error,omitempty"`
}

// ErrorBody describes an error frame.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}
