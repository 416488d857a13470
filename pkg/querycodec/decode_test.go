package querycodec

import (
	"errors"
	"net/url"
	"reflect"
	"testing"

	qerrors "github.com/vango-dev/querystate/internal/errors"
)

func single(name string, kind Kind) *Mapping {
	return MustMapping(Field{Name: name, Kind: kind})
}

func TestDecodeEmptyQuery(t *testing.T) {
	t.Run("StringList", func(t *testing.T) {
		vs, err := Decode(url.Values{}, single("f", StringList))
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if !vs.Get("f").IsList() || len(vs.List("f")) != 0 {
			t.Errorf("f = %v, want empty list", vs.Get("f"))
		}
	})

	t.Run("OptionalStringList", func(t *testing.T) {
		vs, err := Decode(url.Values{}, single("f", OptionalStringList))
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if !vs.Get("f").IsUndefined() {
			t.Errorf("f = %v, want undefined", vs.Get("f"))
		}
	})

	t.Run("StringSet", func(t *testing.T) {
		vs, err := Decode(url.Values{}, single("f", StringSet))
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		set := vs.Set("f")
		if set == nil || set.Len() != 0 {
			t.Errorf("f = %v, want empty set", vs.Get("f"))
		}
	})

	t.Run("Scalars", func(t *testing.T) {
		for _, kind := range []Kind{String, DeferredString, Number, DeferredNumber} {
			vs, err := Decode(nil, single("f", kind))
			if err != nil {
				t.Fatalf("%s: Decode: %v", kind, err)
			}
			if !vs.Get("f").IsUndefined() {
				t.Errorf("%s: f = %v, want undefined", kind, vs.Get("f"))
			}
		}
	})
}

func TestDecodeStrings(t *testing.T) {
	tests := []struct {
		name string
		raw  []string
		want Value
	}{
		{"Absent", nil, Undefined()},
		{"EmptySequence", []string{}, Undefined()},
		{"Single", []string{"x"}, Str("x")},
		{"FirstOfMany", []string{"a", "b"}, Str("a")},
		{"EmptyString", []string{""}, Str("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeField(tt.raw, "f", String)
			if err != nil {
				t.Fatalf("DecodeField: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecodeNumbers(t *testing.T) {
	tests := []struct {
		raw    []string
		want   float64
		wantOK bool
	}{
		{[]string{"42"}, 42, true},
		{[]string{"-3.5"}, -3.5, true},
		{[]string{" 7 "}, 7, true},
		{[]string{"1e3"}, 1000, true},
		{[]string{"10", "20"}, 10, true},
		{[]string{"abc"}, 0, false},
		{[]string{"NaN"}, 0, false},
		{[]string{"inf"}, 0, false},
		{[]string{"-Infinity"}, 0, false},
		{[]string{"1e400"}, 0, false},
		{[]string{"0x10"}, 16, true},
		{[]string{"0b101"}, 5, true},
		{[]string{"0o17"}, 15, true},
		{[]string{"0x1p-2"}, 0, false},
		{[]string{"-0x10"}, 0, false},
		{[]string{"1_000"}, 0, false},
		{[]string{"+5"}, 5, true},
		{[]string{""}, 0, false},
		{nil, 0, false},
	}

	for _, tt := range tests {
		for _, kind := range []Kind{Number, DeferredNumber} {
			got, err := DecodeField(tt.raw, "n", kind)
			if err != nil {
				t.Fatalf("DecodeField(%q): %v", tt.raw, err)
			}
			n, ok := got.Num()
			if ok != tt.wantOK || n != tt.want {
				t.Errorf("%s %q: got (%v, %v), want (%v, %v)", kind, tt.raw, n, ok, tt.want, tt.wantOK)
			}
			if !tt.wantOK && !got.IsUndefined() {
				t.Errorf("%s %q: invalid number should decode to undefined, got %v", kind, tt.raw, got)
			}
		}
	}
}

func TestDecodeLists(t *testing.T) {
	vs, err := Decode(url.Values{"f": {"x"}}, single("f", StringList))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got := vs.List("f"); !reflect.DeepEqual(got, []string{"x"}) {
		t.Errorf("single = %v, want [x]", got)
	}

	vs, err = Decode(url.Values{"f": {"b", "a", "b"}}, single("f", OptionalStringList))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got := vs.List("f"); !reflect.DeepEqual(got, []string{"b", "a", "b"}) {
		t.Errorf("sequence = %v, want order and duplicates preserved", got)
	}
}

func TestDecodeListDoesNotAliasInput(t *testing.T) {
	raw := url.Values{"f": {"a", "b"}}
	vs, err := Decode(raw, single("f", StringList))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	raw["f"][0] = "mutated"
	if vs.List("f")[0] != "a" {
		t.Error("decoded list aliases the raw query")
	}
}

func TestDecodeSet(t *testing.T) {
	vs, err := Decode(url.Values{"f": {"a", "b", "a"}}, single("f", StringSet))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	set := vs.Set("f")
	if set.Len() != 2 || !set.Has("a") || !set.Has("b") {
		t.Errorf("set = %v, want {a b}", set.Items())
	}
}

func TestDecodeRequired(t *testing.T) {
	m := single("id", RequiredString)

	t.Run("Missing", func(t *testing.T) {
		_, err := Decode(url.Values{}, m)
		if !errors.Is(err, ErrMissingRequiredField) {
			t.Fatalf("err = %v, want ErrMissingRequiredField", err)
		}
		var qe *qerrors.QueryError
		if !errors.As(err, &qe) || qe.Field != "id" {
			t.Errorf("err = %#v, want field id", err)
		}
	})

	t.Run("EmptySequence", func(t *testing.T) {
		_, err := Decode(url.Values{"id": {}}, m)
		if !errors.Is(err, ErrMissingRequiredField) {
			t.Errorf("err = %v, want ErrMissingRequiredField", err)
		}
	})

	t.Run("Present", func(t *testing.T) {
		vs, err := Decode(url.Values{"id": {"7", "8"}}, m)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if s, ok := vs.String("id"); !ok || s != "7" {
			t.Errorf("id = %q, %v", s, ok)
		}
	})

	t.Run("FirstMissingInOrder", func(t *testing.T) {
		m := MustMapping(
			Field{Name: "b", Kind: RequiredString},
			Field{Name: "a", Kind: RequiredString},
		)
		_, err := Decode(url.Values{}, m)
		var qe *qerrors.QueryError
		if !errors.As(err, &qe) || qe.Field != "b" {
			t.Errorf("err = %v, want first declared field b", err)
		}
	})
}

func TestDecodeIgnoresUndeclaredKeys(t *testing.T) {
	vs, err := Decode(url.Values{"q": {"go"}, "other": {"x"}}, single("q", String))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(vs) != 1 {
		t.Errorf("len = %d, want 1", len(vs))
	}
}
