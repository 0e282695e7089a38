package serialize

import (
	"strings"
	"testing"

	"github.com/repairkit/jrepair/jsonvalue"
	"github.com/repairkit/jrepair/repair"
)

func TestMarshalScalars(t *testing.T) {
	cases := []struct {
		v    jsonvalue.Value
		want string
	}{
		{jsonvalue.Null(), "null"},
		{jsonvalue.Bool(true), "true"},
		{jsonvalue.Bool(false), "false"},
		{jsonvalue.Integer(42), "42"},
		{jsonvalue.String("hi"), `"hi"`},
	}
	for _, c := range cases {
		got, err := Marshal(c.v, false)
		if err != nil {
			t.Fatalf("Marshal(%v): %v", c.v, err)
		}
		if string(got) != c.want {
			t.Errorf("Marshal(%v) = %q, want %q", c.v, got, c.want)
		}
	}
}

func TestMarshalEscapesStrings(t *testing.T) {
	v := jsonvalue.String(`she said "hi"` + "\n" + `back\slash`)
	got, err := Marshal(v, false)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(got), "\n") {
		t.Errorf("raw newline leaked into output: %q", got)
	}
	if !strings.Contains(string(got), `\"hi\"`) {
		t.Errorf("quotes not escaped: %q", got)
	}
	if !strings.Contains(string(got), `\\slash`) {
		t.Errorf("backslash not escaped: %q", got)
	}
}

func TestMarshalObjectAndArray(t *testing.T) {
	obj := jsonvalue.NewObject()
	obj.Set("a", jsonvalue.Integer(1))
	obj.Set("b", jsonvalue.Array([]jsonvalue.Value{jsonvalue.Integer(1), jsonvalue.Integer(2)}))
	got, err := Marshal(jsonvalue.ObjectValue(obj), false)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"a": 1, "b": [1, 2]}`
	if string(got) != want {
		t.Errorf("Marshal = %q, want %q", got, want)
	}
}

func TestMarshalIndent(t *testing.T) {
	obj := jsonvalue.NewObject()
	obj.Set("a", jsonvalue.Integer(1))
	got, err := Marshal(jsonvalue.ObjectValue(obj), true)
	if err != nil {
		t.Fatal(err)
	}
	want := "{\n  \"a\": 1\n}"
	if string(got) != want {
		t.Errorf("Marshal indented = %q, want %q", got, want)
	}
}

func TestRoundTripThroughRepairParser(t *testing.T) {
	v, _ := repair.Parse([]byte(`{"a": 1, "b": [1, 2, 3], "c": null, "d": true}`))
	text, err := Marshal(v, false)
	if err != nil {
		t.Fatal(err)
	}
	reparsed, _ := repair.Parse(text)
	if !v.Equal(reparsed) {
		t.Errorf("round trip mismatch: %v != %v", v, reparsed)
	}
}
