package loader

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEnvLoader_Load(t *testing.T) {
	t.Setenv("CONFTEST_GRAPHICS_WIDTH", "1024")
	t.Setenv("CONFTEST_GRAPHICS_FULL_SCREEN", "on")
	t.Setenv("CONFTEST_NAME", "demo")
	t.Setenv("OTHER_GRAPHICS_WIDTH", "1")

	m, err := NewEnvLoader("CONFTEST_").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := map[string]any{
		"graphics": map[string]any{
			"width":      int64(1024),
			"fullScreen": true,
		},
		"name": "demo",
	}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestEnvLoader_Mapping(t *testing.T) {
	t.Setenv("GAME_RES", "800")
	t.Setenv("CONFTEST_RES", "ignored")

	l := NewEnvLoaderWithMapping("CONFTEST_", map[string]string{"CONFTEST_RES": "display.res"})
	l.AddMapping("GAME_RES", "display.width")

	m, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}
	display, ok := m["display"].(map[string]any)
	if !ok || display["width"] != int64(800) || display["res"] != "ignored" {
		t.Errorf("display = %v", m["display"])
	}
	if _, ok := m["res"]; ok {
		t.Error("mapped variable also applied by prefix rule")
	}

	l.RemoveMapping("GAME_RES")
	m, _ = l.Load()
	if _, ok := m["display"].(map[string]any)["width"]; ok {
		t.Error("removed mapping still applied")
	}
}

func TestEnvLoader_Apply(t *testing.T) {
	t.Setenv("CONFTEST_GRAPHICS_WIDTH", "1024")

	c := newConfig(t)
	c.AddEntryInt32("width", 800, "graphics")

	l := NewEnvLoader("CONFTEST_")
	if err := l.Apply(c, false); err != nil {
		t.Fatal(err)
	}
	if c.GetEntry("width", "graphics").GetInt32() != 800 {
		t.Error("Apply without overwrite replaced the value")
	}

	if err := l.Apply(c, true); err != nil {
		t.Fatal(err)
	}
	if c.GetEntry("width", "graphics").GetInt64() != 1024 {
		t.Error("Apply with overwrite kept the old value")
	}
}

func TestEnvLoader_envToPath(t *testing.T) {
	l := NewEnvLoader("CONFTEST_")

	tests := []struct {
		env      string
		expected string
	}{
		{"CONFTEST_GRAPHICS_TAB_SIZE", "graphics.tabSize"},
		{"CONFTEST_UI_THEME", "ui.theme"},
		{"CONFTEST_SIMPLE", "simple"},
		{"CONFTEST_DEEP_NESTED_PATH", "deep.nestedPath"},
	}

	for _, tt := range tests {
		if got := l.envToPath(tt.env); got != tt.expected {
			t.Errorf("envToPath(%q) = %q, want %q", tt.env, got, tt.expected)
		}
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input    string
		expected any
	}{
		{"true", true},
		{"TRUE", true},
		{"yes", true},
		{"on", true},
		{"false", false},
		{"no", false},
		{"off", false},

		{"1", int64(1)},
		{"0", int64(0)},
		{"-10", int64(-10)},

		{"3.14", 3.14},
		{"1e3", "1e3"},

		{`["a","b"]`, []any{"a", "b"}},
		{`{"k":1}`, map[string]any{"k": 1.0}},
		{`[broken`, `[broken`},

		{"hello world", "hello world"},
		{"", ""},
	}

	for _, tt := range tests {
		if diff := cmp.Diff(tt.expected, ParseValue(tt.input)); diff != "" {
			t.Errorf("ParseValue(%q) mismatch (-want +got):\n%s", tt.input, diff)
		}
	}
}
