// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/creachadair/jevent/ast"
	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/gzip"
)

// run executes the command line args and returns its output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

const testJSON = `{"a": {"b": [1, "x"]}, "c": true}`

func TestEvents(t *testing.T) {
	path := writeFile(t, "test.json", testJSON)
	got, err := run(t, "events", path)
	if err != nil {
		t.Fatalf("events: unexpected error: %v", err)
	}
	want := strings.Join([]string{
		"object_start",
		`object_key("a")`,
		"object_start",
		`object_key("b")`,
		"array_start",
		"integer_value(1)",
		`string_value("x")`,
		"array_end",
		"object_end",
		`object_key("c")`,
		"bool_value(true)",
		"object_end",
	}, "\n") + "\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events (-want, +got):\n%s", diff)
	}
}

func TestEvents_loc(t *testing.T) {
	path := writeFile(t, "test.json", "[\n true]")
	got, err := run(t, "events", "--loc", path)
	if err != nil {
		t.Fatalf("events: unexpected error: %v", err)
	}
	want := "1:0-1\tarray_start\n2:1-5\tbool_value(true)\n2:5-6\tarray_end\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events --loc (-want, +got):\n%s", diff)
	}
}

func TestEvents_error(t *testing.T) {
	path := writeFile(t, "bad.json", `[1],2`)
	out, err := run(t, "events", path)
	if err == nil {
		t.Fatalf("events: got nil, want error; output:\n%s", out)
	}
	const want = "at offset 3 (1:3): unexpected comma (symbol \",\"), expecting any of: eof"
	if err.Error() != want {
		t.Errorf("events: got error %q, want %q", err, want)
	}
}

func TestGet(t *testing.T) {
	path := writeFile(t, "test.json", testJSON)
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"get", "--json", "a", path}, `{"b":[1,"x"]}` + "\n"},
		{[]string{"get", "--json", "$.a.b[*]", path}, "1\n\"x\"\n"},
		{[]string{"get", "a.b[1]", path}, "x\n"},
		{[]string{"get", "$.c", path}, "true\n"},
	}
	for _, test := range tests {
		got, err := run(t, test.args...)
		if err != nil {
			t.Errorf("%v: unexpected error: %v", test.args, err)
			continue
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("%v (-want, +got):\n%s", test.args, diff)
		}
	}

	if _, err := run(t, "get", "$.nonesuch", path); err == nil {
		t.Error("get of missing path: got nil, want error")
	}
	if _, err := run(t, "get", "$[", path); err == nil {
		t.Error("get of invalid path: got nil, want error")
	}
}

func TestGet_yaml(t *testing.T) {
	path := writeFile(t, "test.json", testJSON)
	got, err := run(t, "get", "$.a.b[*]", path)
	if err != nil {
		t.Fatalf("get: unexpected error: %v", err)
	}
	for _, want := range []string{"path:", "value: 1", "value: x"} {
		if !strings.Contains(got, want) {
			t.Errorf("get: output does not contain %q:\n%s", want, got)
		}
	}
	if n := strings.Count(got, "path:"); n != 2 {
		t.Errorf("get: got %d matches, want 2:\n%s", n, got)
	}
}

func TestToYAML(t *testing.T) {
	v, err := ast.Parse(strings.NewReader(`{"z": 1, "a": [null, 2.5, "s"], "m": {}}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got := toYAML(v)
	want := `[{z 1} {a [<nil> 2.5 s]} {m []}]`
	if s := fmt.Sprint(got); s != want {
		t.Errorf("toYAML: got %s, want %s", s, want)
	}
}

func TestCheck(t *testing.T) {
	compact := writeFile(t, "a.json", `{"k":[1,2]}`)
	pretty := writeFile(t, "b.json", "{\n  \"k\": [\n    1,\n    2\n  ]\n}\n")

	var gz bytes.Buffer
	w := gzip.NewWriter(&gz)
	w.Write([]byte(`{"k": [1, 2]}`))
	w.Close()
	zipped := writeFile(t, "c.json.gz", gz.String())

	out, err := run(t, "check", compact, pretty, zipped)
	if err != nil {
		t.Fatalf("check: unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("check: got %d lines, want 3:\n%s", len(lines), out)
	}
	var sums []string
	for _, line := range lines {
		fields := strings.Split(line, "\t")
		if len(fields) != 3 {
			t.Fatalf("check: malformed line %q", line)
		}
		if fields[1] != "7" {
			t.Errorf("check %s: got %s events, want 7", fields[0], fields[1])
		}
		sums = append(sums, fields[2])
	}
	if sums[0] != sums[1] || sums[0] != sums[2] {
		t.Errorf("check: digests differ: %q", sums)
	}

	bad := writeFile(t, "bad.json", `{"k": [1, 2}`)
	empty := writeFile(t, "empty.json", "  \n")
	if out, err := run(t, "check", compact, bad, empty); err == nil {
		t.Errorf("check: got nil, want error; output:\n%s", out)
	} else if want := "2 of 3 inputs are invalid"; err.Error() != want {
		t.Errorf("check: got error %q, want %q", err, want)
	}
}

func TestFmt(t *testing.T) {
	path := writeFile(t, "test.json", testJSON)
	got, err := run(t, "fmt", path)
	if err != nil {
		t.Fatalf("fmt: unexpected error: %v", err)
	}
	const want = `{
  "a": {"b": [1, "x"]},
  "c": true
}
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("fmt (-want, +got):\n%s", diff)
	}

	got, err = run(t, "fmt", "--compact", path)
	if err != nil {
		t.Fatalf("fmt --compact: unexpected error: %v", err)
	}
	if want := `{"a":{"b":[1,"x"]},"c":true}` + "\n"; got != want {
		t.Errorf("fmt --compact: got %q, want %q", got, want)
	}
}
