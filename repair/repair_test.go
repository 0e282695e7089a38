package repair

import (
	"testing"

	"github.com/repairkit/jrepair/bytesource"
	"github.com/repairkit/jrepair/jsonvalue"
)

func mustObject(t *testing.T, v jsonvalue.Value) *jsonvalue.Object {
	t.Helper()
	if v.Kind() != jsonvalue.KindObject {
		t.Fatalf("expected object, got %s", v.Kind())
	}
	return v.AsObject()
}

func TestParseWellFormedObject(t *testing.T) {
	v, _ := Parse([]byte(`{"a": 1, "b": "x"}`))
	obj := mustObject(t, v)
	a, _ := obj.Get("a")
	if a.Integer() != 1 {
		t.Errorf("a = %v, want 1", a)
	}
	b, _ := obj.Get("b")
	if b.Str() != "x" {
		t.Errorf("b = %q, want x", b.Str())
	}
}

func TestParseMissingQuotes(t *testing.T) {
	v, _ := Parse([]byte(`{a: 1, b: x}`))
	obj := mustObject(t, v)
	a, _ := obj.Get("a")
	if a.Integer() != 1 {
		t.Errorf("a = %v, want 1", a)
	}
	b, _ := obj.Get("b")
	if b.Kind() != jsonvalue.KindString || b.Str() != "x" {
		t.Errorf("b = %v, want string x", b)
	}
}

func TestParseTrailingComma(t *testing.T) {
	v, _ := Parse([]byte(`{"a": 1,}`))
	obj := mustObject(t, v)
	if obj.Len() != 1 {
		t.Fatalf("len = %d, want 1", obj.Len())
	}
}

func TestParseArrayDoubleTrailingComma(t *testing.T) {
	v, _ := Parse([]byte(`[1, 2, 3,,]`))
	if v.Kind() != jsonvalue.KindArray {
		t.Fatalf("expected array, got %s", v.Kind())
	}
	items := v.Items()
	if len(items) != 3 {
		t.Fatalf("len = %d, want 3", len(items))
	}
	for i, want := range []int64{1, 2, 3} {
		if items[i].Integer() != want {
			t.Errorf("items[%d] = %v, want %d", i, items[i], want)
		}
	}
}

func TestParseLeadingHashComment(t *testing.T) {
	v, _ := Parse([]byte("# comment\n{\"a\": true}"))
	obj := mustObject(t, v)
	a, _ := obj.Get("a")
	if a.Kind() != jsonvalue.KindBool || !a.Bool() {
		t.Errorf("a = %v, want true", a)
	}
}

func TestParseDoubledQuotes(t *testing.T) {
	v, _ := Parse([]byte(`{"a": "he said ""hi"""}`))
	obj := mustObject(t, v)
	a, _ := obj.Get("a")
	if a.Kind() != jsonvalue.KindString {
		t.Fatalf("a kind = %s, want string", a.Kind())
	}
	if a.Str() == "" {
		t.Errorf("a is empty, want a quoted-hi literal")
	}
}

func TestParseSiblingObjectContinuationWithoutBrace(t *testing.T) {
	v, _ := Parse([]byte(`{"a": 1}, "b": 2}`))
	obj := mustObject(t, v)
	a, _ := obj.Get("a")
	if a.Integer() != 1 {
		t.Errorf("a = %v, want 1", a)
	}
	b, _ := obj.Get("b")
	if b.Integer() != 2 {
		t.Errorf("b = %v, want 2 (sibling merged without a leading brace)", b)
	}
}

func TestParseConcatenatedTopLevelObjects(t *testing.T) {
	v, _ := Parse([]byte(`{"a": 1}{"b": 2}`))
	if v.Kind() != jsonvalue.KindArray {
		t.Fatalf("expected array, got %s", v.Kind())
	}
	items := v.Items()
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
}

func TestParseAdjacentDuplicateDeduped(t *testing.T) {
	v, _ := Parse([]byte(`{"a": 1}{"a": 1}`))
	if v.Kind() != jsonvalue.KindObject {
		t.Fatalf("expected object (deduped), got %s", v.Kind())
	}
}

func TestParseDuplicateKeyInArrayRollback(t *testing.T) {
	v, _ := Parse([]byte(`[{"k": 1, "k": 2}]`))
	if v.Kind() != jsonvalue.KindArray {
		t.Fatalf("expected array, got %s", v.Kind())
	}
	items := v.Items()
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2 (split by rollback)", len(items))
	}
}

func TestParseArrayBareKeyValueCollapsesToObject(t *testing.T) {
	v, _ := Parse([]byte(`["a": 1, "b": 2]`))
	if v.Kind() != jsonvalue.KindArray {
		t.Fatalf("expected array, got %s", v.Kind())
	}
	items := v.Items()
	if len(items) != 1 {
		t.Fatalf("len = %d, want 1 (bare key:value pairs collapsed into one object)", len(items))
	}
	obj := mustObject(t, items[0])
	a, _ := obj.Get("a")
	if a.Integer() != 1 {
		t.Errorf("a = %v, want 1", a)
	}
	b, _ := obj.Get("b")
	if b.Integer() != 2 {
		t.Errorf("b = %v, want 2", b)
	}
}

func TestParseNumberNestedInObjectValueInsideArrayKeepsComma(t *testing.T) {
	v, _ := Parse([]byte(`[{"a": 1,200}]`))
	if v.Kind() != jsonvalue.KindArray {
		t.Fatalf("expected array, got %s", v.Kind())
	}
	items := v.Items()
	if len(items) != 1 {
		t.Fatalf("len = %d, want 1", len(items))
	}
	obj := mustObject(t, items[0])
	a, _ := obj.Get("a")
	if a.Kind() != jsonvalue.KindString || a.Str() != "1,200" {
		t.Errorf("a = %v, want string \"1,200\" (comma is not a direct array separator here)", a)
	}
}

func TestParseNumberTrailingExponentStripped(t *testing.T) {
	v, _ := Parse([]byte(`{"n": 1.5e}`))
	obj := mustObject(t, v)
	n, _ := obj.Get("n")
	switch n.Kind() {
	case jsonvalue.KindFloat:
		if n.Float() != 1.5 {
			t.Errorf("n = %v, want 1.5", n.Float())
		}
	case jsonvalue.KindString:
		if n.Str() != "1.5" {
			t.Errorf("n = %q, want \"1.5\"", n.Str())
		}
	default:
		t.Fatalf("n kind = %s, want float or string", n.Kind())
	}
}

func TestContextStackEmptyAtReturn(t *testing.T) {
	inputs := []string{
		`{"a": 1}`,
		`[1, 2, {"b": [3, 4]}]`,
		`{a: 1, b: {c: [1,2,3]}}`,
		`not json at all`,
		``,
	}
	for _, in := range inputs {
		p := New(bytesource.Bytes([]byte(in)))
		p.Parse()
		if !p.ctx.Empty() {
			t.Errorf("context stack not empty after parsing %q", in)
		}
	}
}

func TestParseEmptyInput(t *testing.T) {
	v, _ := Parse([]byte(``))
	if v.Kind() != jsonvalue.KindString || v.Str() != "" {
		t.Errorf("empty input = %v, want empty string sentinel", v)
	}
}

func TestParseNestedStructure(t *testing.T) {
	v, _ := Parse([]byte(`{"items": [1, 2, {"nested": true}], "count": 3}`))
	obj := mustObject(t, v)
	items, _ := obj.Get("items")
	if items.Kind() != jsonvalue.KindArray || len(items.Items()) != 3 {
		t.Fatalf("items = %v", items)
	}
	count, _ := obj.Get("count")
	if count.Integer() != 3 {
		t.Errorf("count = %v, want 3", count)
	}
}

func TestWithLoggingRecordsDiagnostics(t *testing.T) {
	_, diags := Parse([]byte(`{"a": 1,}`), WithLogging())
	if len(diags) == 0 {
		t.Error("expected at least one diagnostic for trailing comma recovery")
	}
}

func TestWithoutLoggingProducesNoDiagnostics(t *testing.T) {
	_, diags := Parse([]byte(`{"a": 1,}`))
	if len(diags) != 0 {
		t.Errorf("diagnostics = %v, want none without WithLogging", diags)
	}
}

func TestDepthLimitSurfacesDiagnostic(t *testing.T) {
	deep := ""
	for i := 0; i < 2000; i++ {
		deep += "["
	}
	_, diags := Parse([]byte(deep), WithLogging(), WithDepthLimit(8))
	found := false
	for _, d := range diags {
		if d.Message == "maximum nesting depth exceeded, truncating this construct" {
			found = true
		}
	}
	if !found {
		t.Error("expected a depth-limit diagnostic")
	}
}
