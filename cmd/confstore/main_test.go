package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRun_Usage(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"no command", nil, 2},
		{"unknown command", []string{"frobnicate"}, 2},
		{"help", []string{"-h"}, 0},
		{"bad flag", []string{"-nope"}, 2},
		{"missing args", []string{"get", "only.json"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, tt.args...)
			if code != tt.code {
				t.Errorf("exit code = %d, want %d (stderr: %s)", code, tt.code, stderr)
			}
			if tt.code == 2 && !strings.Contains(stderr, "Usage:") {
				t.Errorf("stderr has no usage text:\n%s", stderr)
			}
		})
	}
}

func TestRun_Version(t *testing.T) {
	code, stdout, _ := runCLI(t, "version")
	if code != 0 || !strings.HasPrefix(stdout, "confstore dev") {
		t.Errorf("version = %d %q", code, stdout)
	}
}

func TestRun_Fmt(t *testing.T) {
	path := writeFile(t, t.TempDir(), "game.json", `{"Graphics":{"Width":800,"Ratio":1.5},"Tags":["a","b"]}`)

	code, stdout, stderr := runCLI(t, "fmt", path)
	if code != 0 {
		t.Fatalf("fmt exit code = %d: %s", code, stderr)
	}
	if !gjson.Valid(stdout) {
		t.Fatalf("fmt output is not JSON:\n%s", stdout)
	}
	if got := gjson.Get(stdout, "Graphics.Ratio").Raw; got != "1.5" {
		t.Errorf("Graphics.Ratio = %s", got)
	}
	if !strings.Contains(stdout, "\n  ") {
		t.Errorf("fmt output is not indented:\n%s", stdout)
	}

	if code, _, _ := runCLI(t, "fmt", filepath.Join(t.TempDir(), "missing.json")); code != 1 {
		t.Errorf("fmt on a missing file exit code = %d, want 1", code)
	}
}

func TestRun_Get(t *testing.T) {
	path := writeFile(t, t.TempDir(), "game.yaml", "graphics:\n  width: 800\n  window:\n    title: demo\nname: test\n")

	tests := []struct {
		name string
		args []string
		code int
		want string
	}{
		{"root entry", []string{"", "name"}, 0, "test\n"},
		{"nested entry", []string{"graphics.window", "title"}, 0, "demo\n"},
		{"section as JSON", []string{"graphics", "window"}, 0, "{\"title\":\"demo\"}\n"},
		{"missing entry", []string{"graphics", "height"}, 1, ""},
		{"missing section", []string{"audio", "volume"}, 1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(t, append([]string{"get", path}, tt.args...)...)
			if code != tt.code {
				t.Fatalf("exit code = %d, want %d (stderr: %s)", code, tt.code, stderr)
			}
			if stdout != tt.want {
				t.Errorf("stdout = %q, want %q", stdout, tt.want)
			}
		})
	}
}

func TestRun_Set(t *testing.T) {
	path := writeFile(t, t.TempDir(), "game.json", `{"graphics":{"width":800}}`)

	for _, args := range [][]string{
		{"graphics", "width", "1024"},
		{"graphics", "fullscreen", "on"},
		{"audio", "devices", `["hdmi","usb"]`},
	} {
		if code, _, stderr := runCLI(t, append([]string{"set", path}, args...)...); code != 0 {
			t.Fatalf("set %v exit code = %d: %s", args, code, stderr)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	doc := string(data)
	if got := gjson.Get(doc, "graphics.width").Raw; got != "1024" {
		t.Errorf("graphics.width = %s, want 1024", got)
	}
	if !gjson.Get(doc, "graphics.fullscreen").Bool() {
		t.Errorf("graphics.fullscreen not true:\n%s", doc)
	}
	if got := gjson.Get(doc, "audio.devices.1").String(); got != "usb" {
		t.Errorf("audio.devices.1 = %q, want usb", got)
	}
}

func TestRun_Convert(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "game.json", `{"graphics":{"width":800,"modes":[1,2]},"name":"demo"}`)
	out := filepath.Join(dir, "game.yaml")

	if code, _, stderr := runCLI(t, "convert", in, out); code != 0 {
		t.Fatalf("convert exit code = %d: %s", code, stderr)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, data)
	}
	if m["name"] != "demo" {
		t.Errorf("name = %v", m["name"])
	}

	if code, _, _ := runCLI(t, "convert", in, filepath.Join(dir, "game.ini")); code != 1 {
		t.Errorf("convert to an unknown format exit code = %d, want 1", code)
	}
}

func TestRun_Script(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "game.toml", "[graphics]\nwidth = 800\n")
	lua := writeFile(t, dir, "double.lua", `
local w = confstore.get("graphics", "width")
confstore.set("graphics", "width", w * 2)
`)

	if code, _, stderr := runCLI(t, "run", path, lua); code != 0 {
		t.Fatalf("run exit code = %d: %s", code, stderr)
	}
	if code, stdout, _ := runCLI(t, "get", path, "graphics", "width"); code != 0 || stdout != "800\n" {
		t.Errorf("run without -save changed the file: %q", stdout)
	}

	if code, _, stderr := runCLI(t, "run", "-save", path, lua); code != 0 {
		t.Fatalf("run -save exit code = %d: %s", code, stderr)
	}
	if code, stdout, _ := runCLI(t, "get", path, "graphics", "width"); code != 0 || stdout != "1600\n" {
		t.Errorf("width after run -save = %q, want 1600", stdout)
	}

	bad := writeFile(t, dir, "bad.lua", `error("nope")`)
	if code, _, stderr := runCLI(t, "run", path, bad); code != 1 || !strings.Contains(stderr, "nope") {
		t.Errorf("failing script exit code = %d, stderr = %q", code, stderr)
	}
}

func TestRun_EnvOverlay(t *testing.T) {
	t.Setenv("CSTEST_GRAPHICS_WIDTH", "2048")
	path := writeFile(t, t.TempDir(), "game.json", `{"graphics":{"width":800}}`)

	code, stdout, stderr := runCLI(t, "-env", "CSTEST_", "get", path, "graphics", "width")
	if code != 0 {
		t.Fatalf("exit code = %d: %s", code, stderr)
	}
	if stdout != "2048\n" {
		t.Errorf("overlaid width = %q, want 2048", stdout)
	}
}
