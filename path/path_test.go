// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package path_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strconv"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/creachadair/jevent"
	"github.com/creachadair/jevent/ast"
	"github.com/creachadair/jevent/path"
	"github.com/creachadair/mds/mtest"
	"github.com/google/go-cmp/cmp"
	"github.com/tailscale/hujson"
	"github.com/theory/jsonpath"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"", "$"},
		{"$", "$"},
		{"$.store.book[*]", "$.store.book[*]"},
		{"$.store.*", "$.store[*]"},
		{"$['store'].book[2]", "$.store.book[2]"},
		{"$['apple sauce'].pearPlum['cherry apple']", "$['apple sauce'].pearPlum['cherry apple']"},
		{`$['it\'s']`, `$['it\'s']`},
		{"[1]", "$[1]"},
		{"details.favorites[3].name", "$.details.favorites[3].name"},
		{".a[*][0]", "$.a[*][0]"},
	}
	for _, test := range tests {
		e, err := path.Parse(test.input)
		if err != nil {
			t.Errorf("Parse %q: %v", test.input, err)
			continue
		}
		if got := e.String(); got != test.want {
			t.Errorf("Parse %q:\n got %q\nwant %q", test.input, got, test.want)
		}

		// The normalized form parses to the same expression.
		f, err := path.Parse(e.String())
		if err != nil {
			t.Errorf("Reparse %q: %v", e.String(), err)
		} else if diff := cmp.Diff(e, f); diff != "" {
			t.Errorf("Reparse %q (-want, +got):\n%s", e.String(), diff)
		}
	}
}

func TestParse_invalid(t *testing.T) {
	for _, input := range []string{
		"$.", "$[", "$[1", "$[-1]", "$['open]", "$..a", "$[?(@.x)]", "$[1:2]", "$a",
	} {
		if e, err := path.Parse(input); err == nil {
			t.Errorf("Parse %q: got %v, want error", input, e)
		} else {
			t.Logf("Parse %q: got expected error: %v", input, err)
		}
	}
	mtest.MustPanic(t, func() { path.MustParse("$[") })
}

func TestDefinite(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"$", true},
		{"$.a[1]['b']", true},
		{"$.a[*]", false},
		{"$.*.b", false},
	}
	for _, test := range tests {
		if got := path.MustParse(test.input).Definite(); got != test.want {
			t.Errorf("Definite(%q): got %v, want %v", test.input, got, test.want)
		}
	}
}

const testJSON = `{
  "store": {
    "book": [
      {"title": "Sayings of the Century", "price": 8.95, "tags": ["a", "b"]},
      {"title": "Sword of Honour", "price": 12.99, "tags": []},
      {"title": "Moby Dick", "price": 8.99, "isbn": "0-553-21311-3"}
    ],
    "bicycle": {"color": "red", "price": 19.95}
  },
  "expensive": 10,
  "list": [[1, 2], [3, [4, 5]], {"x": null}]
}`

// decodeJSON decodes input with encoding/json, converting numbers to int64
// where they have integer syntax and float64 otherwise, to agree with the
// representation of ast values.
func decodeJSON(t *testing.T, input string) any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(input))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	var fix func(any) any
	fix = func(v any) any {
		switch x := v.(type) {
		case json.Number:
			if z, err := x.Int64(); err == nil && !strings.ContainsAny(string(x), ".eE") {
				return z
			}
			f, _ := x.Float64()
			return f
		case []any:
			for i, elt := range x {
				x[i] = fix(elt)
			}
		case map[string]any:
			for k, elt := range x {
				x[k] = fix(elt)
			}
		}
		return v
	}
	return fix(v)
}

func matchValues(ms []path.Match) []any {
	var out []any
	for _, m := range ms {
		out = append(out, m.Value.Interface())
	}
	return out
}

// These expressions do not apply wildcards to objects, so their results
// have a well-defined order for comparison.
var refPaths = []string{
	"$",
	"$.store.book[0].title",
	"$.store.book[*].title",
	"$.store.book[*].price",
	"$.store.book[*].isbn",
	"$.store.book[*].tags[*]",
	"$.store.bicycle",
	"$.store.bicycle.color",
	"$['store']['book'][1]",
	"$.expensive",
	"$.list[*][1]",
	"$.list[1][1][*]",
	"$.list[2].x",
	"$.nonesuch",
	"$.store.book[7]",
	"$.expensive[0]",
	"$.list.x",
}

func TestReference(t *testing.T) {
	data := decodeJSON(t, testJSON)
	tree, err := ast.Parse(strings.NewReader(testJSON))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	for _, expr := range refPaths {
		ref, err := jsonpath.Parse(expr)
		if err != nil {
			t.Fatalf("Reference parse %q: %v", expr, err)
		}
		var want []any
		for _, v := range ref.Select(data) {
			want = append(want, v)
		}

		e := path.MustParse(expr)
		if diff := cmp.Diff(want, matchValues(e.Select(tree))); diff != "" {
			t.Errorf("Select %q (-want, +got):\n%s", expr, diff)
		}

		got, err := e.Find(strings.NewReader(testJSON))
		if err != nil {
			t.Errorf("Find %q: unexpected error: %v", expr, err)
			continue
		}
		if diff := cmp.Diff(want, matchValues(got)); diff != "" {
			t.Errorf("Find %q (-want, +got):\n%s", expr, diff)
		}
	}
}

// pointer renders a definite expression as a JSON Pointer (RFC 6901).
func pointer(e path.Expr) string {
	var sb strings.Builder
	for _, s := range e {
		sb.WriteByte('/')
		if s.Op == path.Index {
			sb.WriteString(strconv.Itoa(s.Index))
		} else {
			sb.WriteString(strings.NewReplacer("~", "~0", "/", "~1").Replace(s.Key))
		}
	}
	return sb.String()
}

func TestPointerReference(t *testing.T) {
	ref, err := hujson.Parse([]byte(testJSON))
	if err != nil {
		t.Fatalf("Reference parse: %v", err)
	}
	for _, expr := range refPaths {
		e := path.MustParse(expr)
		if !e.Definite() {
			continue
		}
		var want []string
		if found := ref.Find(pointer(e)); found != nil {
			v := found.Clone()
			v.Minimize()
			want = append(want, string(v.Pack()))
		}

		got, err := e.Find(strings.NewReader(testJSON))
		if err != nil {
			t.Errorf("Find %q: unexpected error: %v", expr, err)
			continue
		}
		var texts []string
		for _, m := range got {
			texts = append(texts, m.Value.JSON())
		}
		if diff := cmp.Diff(want, texts); diff != "" {
			t.Errorf("Find %q [%s] (-want, +got):\n%s", expr, pointer(e), diff)
		}
	}
}

func TestObjectWildcard(t *testing.T) {
	tree, err := ast.Parse(strings.NewReader(testJSON))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	const expr = "$.store.bicycle.*"
	want := []string{
		`$.store.bicycle.color = "red"`,
		`$.store.bicycle.price = 19.95`,
	}

	render := func(ms []path.Match) []string {
		var out []string
		for _, m := range ms {
			out = append(out, m.Path.String()+" = "+m.Value.JSON())
		}
		return out
	}
	if diff := cmp.Diff(want, render(path.MustParse(expr).Select(tree))); diff != "" {
		t.Errorf("Select %q (-want, +got):\n%s", expr, diff)
	}
	got, err := path.Find(strings.NewReader(testJSON), expr)
	if err != nil {
		t.Fatalf("Find %q: %v", expr, err)
	}
	if diff := cmp.Diff(want, render(got)); diff != "" {
		t.Errorf("Find %q (-want, +got):\n%s", expr, diff)
	}
}

func TestFind_paths(t *testing.T) {
	got, err := path.Find(strings.NewReader(testJSON), "$.list[*][*]")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	var paths []string
	for _, m := range got {
		paths = append(paths, m.Path.String())
	}
	want := []string{
		"$.list[0][0]", "$.list[0][1]", "$.list[1][0]", "$.list[1][1]", "$.list[2].x",
	}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Errorf("Paths (-want, +got):\n%s", diff)
	}
}

func TestFind_arrayIndex(t *testing.T) {
	got, err := path.Find(strings.NewReader("[1,2,3]"), "[1]")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Find: got %d matches, want 1", len(got))
	}
	if v, ok := got[0].Value.(*ast.Integer); !ok || v.Value != 2 {
		t.Errorf("Find: got %s, want 2", got[0].Value.JSON())
	}
}

func TestFind_stopsEarly(t *testing.T) {
	// A definite path stops at the first match, so the parser never reaches
	// the broken tail or the failing reader.
	bad := errors.New("not reached")
	input := bytes.NewReader([]byte(`{"a": {"b": [10, 20]}, "c": tru`))
	r := iotest.OneByteReader(&stopReader{r: input, err: bad})

	p := jevent.NewParser(r)
	x := path.NewExtractor(path.MustParse("$.a.b[1]"))
	p.Register(x)
	if err := x.Drive(p); err != nil {
		t.Fatalf("Drive: unexpected error: %v", err)
	}
	if !x.Done() {
		t.Error("Extractor is not done after a definite match")
	}
	ms := x.Matches()
	if len(ms) != 1 || ms[0].Value.JSON() != "20" {
		t.Errorf("Matches: got %+v, want one match of 20", ms)
	}

	// The same path with a wildcard must read the whole document, and so
	// reports the syntax error.
	if _, err := path.Find(strings.NewReader(`{"a": {"b": [10, 20]}, "c": tru`), "$.a.b[*]"); err == nil {
		t.Error("Find with wildcard: got nil, want error")
	}
}

// stopReader reads from r, and reports err once r is exhausted.
type stopReader struct {
	r   *bytes.Reader
	err error
}

func (s *stopReader) Read(data []byte) (int, error) {
	if s.r.Len() == 0 {
		return 0, s.err
	}
	return s.r.Read(data)
}

func TestFind_testdata(t *testing.T) {
	f, err := os.Open("../testdata/input.json")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	got, err := path.Find(f, "episodes[*].guest.name")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if diff := cmp.Diff([]any{"Observer", "Sink"}, matchValues(got)); diff != "" {
		t.Errorf("Find (-want, +got):\n%s", diff)
	}
}
