package loader

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/dshills/confstore/internal/store"
)

func sectionOrder(s *store.Section) []string {
	var names []string
	for _, it := range s.Children() {
		names = append(names, it.Name())
	}
	return names
}

func TestImportYAML_Order(t *testing.T) {
	c := newConfig(t)
	doc := `
zeta: 1
alpha:
  second: b
  first: a
mid: [x, y]
`
	if err := Decode(c, FormatYAML, []byte(doc), false); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]string{"zeta", "alpha", "mid"}, sectionOrder(c.Root())); diff != "" {
		t.Errorf("root order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"second", "first"}, sectionOrder(c.GetSection("alpha", ""))); diff != "" {
		t.Errorf("nested order mismatch (-want +got):\n%s", diff)
	}
	if c.GetSection("mid", "").GetEntry("1").GetString() != "y" {
		t.Error("sequence not imported as index-named section")
	}
}

func TestImportYAML_Scalars(t *testing.T) {
	c := newConfig(t)
	doc := `
int: 42
big: 18446744073709551615
float: 1.5
bool: yes_is_a_string
flag: true
null_value: ~
quoted: "123"
`
	if err := Decode(c, FormatYAML, []byte(doc), false); err != nil {
		t.Fatal(err)
	}

	want := map[string]any{
		"int":        int64(42),
		"big":        uint64(math.MaxUint64),
		"float":      1.5,
		"bool":       "yes_is_a_string",
		"flag":       true,
		"null_value": nil,
		"quoted":     "123",
	}
	if diff := cmp.Diff(want, c.Root().Export()); diff != "" {
		t.Errorf("scalars mismatch (-want +got):\n%s", diff)
	}
}

func TestImportYAML_AliasAndMerge(t *testing.T) {
	c := newConfig(t)
	doc := `
base: &base
  width: 800
  height: 600
window:
  <<: *base
  width: 1024
copy: *base
`
	if err := Decode(c, FormatYAML, []byte(doc), false); err != nil {
		t.Fatal(err)
	}

	w := c.GetSection("window", "")
	if w.GetEntry("width").GetInt64() != 1024 {
		t.Errorf("explicit key lost to merge: width = %d", w.GetEntry("width").GetInt64())
	}
	if w.GetEntry("height").GetInt64() != 600 {
		t.Error("merged key missing")
	}
	if c.GetSection("copy", "").GetEntry("height").GetInt64() != 600 {
		t.Error("alias not resolved")
	}
}

func TestImportYAML_Errors(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		target error
	}{
		{"sequence root", "- a\n- b\n", store.ErrNotObject},
		{"scalar root", "just text\n", store.ErrNotObject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Decode(newConfig(t), FormatYAML, []byte(tt.doc), false)
			if !errors.Is(err, tt.target) {
				t.Errorf("Decode = %v, want %v", err, tt.target)
			}
		})
	}

	err := Decode(newConfig(t), FormatYAML, []byte("a: [1, 2\nb: 3\n"), false)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Decode(malformed) = %v, want *ParseError", err)
	}

	if err := Decode(newConfig(t), FormatYAML, nil, false); err != nil {
		t.Errorf("Decode(empty) = %v", err)
	}
}

func TestEncodeYAML(t *testing.T) {
	c := newConfig(t)
	c.AddEntryString("title", "true", "")
	c.AddEntryFloat64("ratio", 2, "")
	c.AddEntryFloat64("nan", math.NaN(), "")
	c.AddEntry("unset", "")
	c.AddEntryChar("grade", 'B', "")
	l := c.AddList("mixed", "")
	l.AppendInt8(-3)
	l.AppendUint16(7)

	out, err := Encode(c, FormatYAML)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(out, &doc); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, out)
	}
	keys := []string{}
	root := doc.Content[0]
	for i := 0; i < len(root.Content); i += 2 {
		keys = append(keys, root.Content[i].Value)
	}
	if diff := cmp.Diff([]string{"title", "ratio", "nan", "unset", "grade", "mixed"}, keys); diff != "" {
		t.Errorf("key order mismatch (-want +got):\n%s\n%s", diff, out)
	}

	back := newConfig(t)
	if err := Decode(back, FormatYAML, out, false); err != nil {
		t.Fatal(err)
	}
	if back.GetEntry("title", "").GetString() != "true" {
		t.Error("string that looks like a bool was not quoted")
	}
	if back.GetEntry("ratio", "").GetFloat64() != 2 {
		t.Error("integral float did not read back as a float")
	}
	if !math.IsNaN(back.GetEntry("nan", "").GetFloat64()) {
		t.Error("NaN lost")
	}
	if back.GetEntry("unset", "").IsSet() {
		t.Error("null read back as a value")
	}
	if back.GetEntry("grade", "").GetString() != "B" {
		t.Error("char not written as a string")
	}
}

func TestEncodeYAML_SharedNames(t *testing.T) {
	c := newConfig(t)
	c.AddEntryInt32("x", 1, "")
	c.AddSection("x", "").AddEntryInt32("y", 2)

	out, err := Encode(c, FormatYAML)
	if err != nil {
		t.Fatal(err)
	}

	var m map[string]any
	if err := yaml.Unmarshal(out, &m); err != nil {
		t.Fatalf("duplicate keys in output: %v\n%s", err, out)
	}
	if diff := cmp.Diff(map[string]any{"x": map[string]any{"y": 2}}, m); diff != "" {
		t.Errorf("shared names mismatch (-want +got):\n%s", diff)
	}
}
