package errors

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "missing required field",
			code:    "Q001",
			wantMsg: "Missing required query field",
			wantCat: CategoryDecode,
		},
		{
			name:    "config error",
			code:    "Q103",
			wantMsg: "Invalid field declaration",
			wantCat: CategoryConfig,
		},
		{
			name:    "unknown error code",
			code:    "Q999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestErrorString(t *testing.T) {
	err := New("Q001").WithField("page")
	if got, want := err.Error(), `Q001: Missing required query field "page"`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	plain := Newf(CategoryCLI, "bad flag %q", "x")
	if got, want := plain.Error(), `bad flag "x"`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestIsMatchesCode(t *testing.T) {
	sentinel := New("Q001")
	err := fmt.Errorf("reading state: %w", New("Q001").WithField("id"))

	if !stderrors.Is(err, sentinel) {
		t.Error("errors.Is should match on code")
	}
	if stderrors.Is(err, New("Q102")) {
		t.Error("errors.Is should not match a different code")
	}
	if stderrors.Is(New("Q001"), Newf(CategoryDecode, "no code")) {
		t.Error("errors.Is should not match an uncoded error")
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("disk on fire")
	err := New("Q102").Wrap(cause)
	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause should be reachable")
	}
	if !strings.Contains(err.Error(), "disk on fire") {
		t.Errorf("Error() = %q, want cause included", err.Error())
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "Q102") != nil {
		t.Error("FromError(nil) should be nil")
	}

	qe := New("Q001")
	if FromError(qe, "Q102") != qe {
		t.Error("FromError should pass QueryError through")
	}

	wrapped := FromError(stderrors.New("boom"), "Q102")
	if wrapped.Code != "Q102" || wrapped.Wrapped == nil {
		t.Errorf("FromError = %+v", wrapped)
	}
}

func TestFormatCompact(t *testing.T) {
	err := New("Q001").WithField("page")
	if got, want := err.FormatCompact(), "Q001 [page]: Missing required query field"; got != want {
		t.Errorf("FormatCompact() = %q, want %q", got, want)
	}
}

func TestFormatJSON(t *testing.T) {
	err := New("Q001").WithField("page").WithSuggestion("redirect first")

	var decoded map[string]string
	if jerr := json.Unmarshal([]byte(err.FormatJSON()), &decoded); jerr != nil {
		t.Fatalf("FormatJSON produced invalid JSON: %v", jerr)
	}
	if decoded["code"] != "Q001" || decoded["field"] != "page" || decoded["suggestion"] != "redirect first" {
		t.Errorf("decoded = %v", decoded)
	}
}

func TestFprint(t *testing.T) {
	var buf bytes.Buffer
	Fprint(&buf, New("Q001").WithField("page").WithSuggestion("add ?page=1"))
	out := buf.String()
	for _, want := range []string{"Q001 [page]", "required_string", "hint: add ?page=1"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}

	buf.Reset()
	Fprint(&buf, stderrors.New("plain"))
	if buf.String() != "error: plain\n" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestGetAllCodes(t *testing.T) {
	codes := GetAllCodes()
	if len(codes) == 0 || codes[0] != "Q001" {
		t.Fatalf("codes = %v", codes)
	}
	for _, code := range codes {
		if _, ok := GetTemplate(code); !ok {
			t.Errorf("GetTemplate(%q) missing", code)
		}
	}
}
