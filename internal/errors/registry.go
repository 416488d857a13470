package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Decode errors (Q001-Q099)
	"Q001": {
		Category: CategoryDecode,
		Message:  "Missing required query field",
		Detail:   "A field declared as required_string has no string value in the URL query.",
	},

	// Config errors (Q101-Q199)
	"Q101": {
		Category: CategoryConfig,
		Message:  "Config file not found",
		Detail:   "No querystate.json was found at the given path.",
	},
	"Q102": {
		Category: CategoryConfig,
		Message:  "Invalid config file",
		Detail:   "The config file could not be parsed as JSON.",
	},
	"Q103": {
		Category: CategoryConfig,
		Message:  "Invalid field declaration",
		Detail:   "Field names must be unique and non-empty, and kinds must be one of the known field kinds.",
	},

	// Protocol errors (Q201-Q299)
	"Q201": {
		Category: CategoryProtocol,
		Message:  "Malformed message",
		Detail:   "A navigator message could not be decoded or has an unknown type.",
	},
}

// GetAllCodes returns all registered error codes in sorted order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
