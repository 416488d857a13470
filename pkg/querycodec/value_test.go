package querycodec

import (
	"encoding/json"
	"math"
	"reflect"
	"testing"
)

func TestValueAccessors(t *testing.T) {
	if !Undefined().IsUndefined() || (Value{}).IsNull() {
		t.Error("zero Value should be undefined")
	}
	if !Null().IsNull() {
		t.Error("Null should be null")
	}
	if s, ok := Str("x").Str(); !ok || s != "x" {
		t.Errorf("Str = %q, %v", s, ok)
	}
	if _, ok := Str("x").Num(); ok {
		t.Error("string Value should not report a number")
	}
	if n, ok := Num(2).Num(); !ok || n != 2 {
		t.Errorf("Num = %v, %v", n, ok)
	}
	if List().List() == nil {
		t.Error("empty List should be non-nil")
	}
	if Str("x").List() != nil || Str("x").Set() != nil {
		t.Error("scalar should not expose list or set")
	}
	if SetValue(nil).Set().Len() != 0 {
		t.Error("SetValue(nil) should be an empty set")
	}
}

func TestValueString(t *testing.T) {
	tests := map[string]Value{
		"undefined": Undefined(),
		"null":      Null(),
		`"go"`:      Str("go"),
		"1.5":       Num(1.5),
		"[a b]":     List("a", "b"),
		"{b a}":     SetOf("b", "a"),
	}
	for want, v := range tests {
		if got := v.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}

func TestSet(t *testing.T) {
	s := NewSet("a", "b")
	if s.Add("a") {
		t.Error("Add of existing member should report false")
	}
	if !s.Add("c") {
		t.Error("Add of new member should report true")
	}
	if got := s.Items(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("Items = %v", got)
	}

	var zero Set
	zero.Add("x")
	if !zero.Has("x") {
		t.Error("zero Set should be usable")
	}

	var nilSet *Set
	if nilSet.Has("x") || nilSet.Len() != 0 || nilSet.Items() != nil {
		t.Error("nil Set should behave as empty")
	}
}

func TestValuesJSON(t *testing.T) {
	vs := Values{
		"q":    Str("go"),
		"page": Num(2),
		"tags": List("a", "b"),
		"set":  SetOf("x"),
		"gone": Undefined(),
		"inf":  Num(math.Inf(1)),
	}
	data, err := json.Marshal(vs)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"inf":"+Inf","page":2,"q":"go","set":["x"],"tags":["a","b"]}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}

func TestValueUnmarshalJSON(t *testing.T) {
	var in map[string]Value
	err := json.Unmarshal([]byte(`{"q":"go","page":3,"tags":["a","b"],"clear":null}`), &in)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if s, _ := in["q"].Str(); s != "go" {
		t.Errorf("q = %v", in["q"])
	}
	if n, _ := in["page"].Num(); n != 3 {
		t.Errorf("page = %v", in["page"])
	}
	if !reflect.DeepEqual(in["tags"].List(), []string{"a", "b"}) {
		t.Errorf("tags = %v", in["tags"])
	}
	if !in["clear"].IsNull() {
		t.Errorf("clear = %v, want null", in["clear"])
	}

	var v Value
	for _, bad := range []string{`true`, `{"a":1}`, `[1,2]`} {
		if err := json.Unmarshal([]byte(bad), &v); err == nil {
			t.Errorf("Unmarshal(%s) should fail", bad)
		}
	}
}
