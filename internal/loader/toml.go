package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/confstore/internal/store"
)

// TOMLLoader loads configuration maps from TOML files.
type TOMLLoader struct {
	fs   FileSystem
	path string
}

// NewTOMLLoader creates a new TOML loader for the given path.
func NewTOMLLoader(path string) *TOMLLoader {
	return &TOMLLoader{
		fs:   DefaultFS(),
		path: path,
	}
}

// NewTOMLLoaderWithFS creates a TOML loader with a custom file system.
func NewTOMLLoaderWithFS(fs FileSystem, path string) *TOMLLoader {
	return &TOMLLoader{
		fs:   fs,
		path: path,
	}
}

// Load reads configuration from the configured path.
// Returns nil, nil if the file doesn't exist.
func (l *TOMLLoader) Load() (map[string]any, error) {
	return l.LoadFrom(l.path)
}

// LoadFrom reads configuration from a specific path.
func (l *TOMLLoader) LoadFrom(path string) (map[string]any, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	return parseTOML(path, data)
}

// LoadFromReader reads configuration from an io.Reader.
func (l *TOMLLoader) LoadFromReader(r io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	return parseTOML("<reader>", data)
}

func parseTOML(source string, data []byte) (map[string]any, error) {
	var m map[string]any
	if err := toml.Unmarshal(data, &m); err != nil {
		perr := &ParseError{
			Path:    source,
			Message: err.Error(),
			Err:     err,
		}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return nil, perr
	}

	return m, nil
}

// LoadWithIncludes loads a TOML file and processes @include directives.
// Included files are merged below the including file, so its own keys win.
// The maxDepth parameter limits nested includes to prevent infinite loops.
func (l *TOMLLoader) LoadWithIncludes(path string, maxDepth int) (map[string]any, error) {
	if maxDepth <= 0 {
		return nil, fmt.Errorf("include depth exceeded for %s", path)
	}

	m, err := l.LoadFrom(path)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, nil
	}

	includes, ok := m["@include"]
	if !ok {
		return m, nil
	}
	delete(m, "@include")

	var includeList []string
	switch v := includes.(type) {
	case string:
		includeList = []string{v}
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("@include must be string or array of strings")
			}
			includeList = append(includeList, s)
		}
	default:
		return nil, fmt.Errorf("@include must be string or array of strings, got %T", includes)
	}

	baseDir := filepath.Dir(path)
	for _, inc := range includeList {
		incPath := inc
		if !filepath.IsAbs(inc) {
			incPath = filepath.Join(baseDir, inc)
		}

		incMap, err := l.LoadWithIncludes(incPath, maxDepth-1)
		if err != nil {
			return nil, fmt.Errorf("loading include %s: %w", incPath, err)
		}
		m = DeepMerge(incMap, m)
	}

	return m, nil
}

// DeepMerge recursively merges src into dst.
// Values in src override values in dst.
// Maps are merged recursively; other types are replaced.
func DeepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any)
	}
	for key, srcVal := range src {
		srcMap, srcIsMap := srcVal.(map[string]any)
		dstMap, dstIsMap := dst[key].(map[string]any)
		if srcIsMap && dstIsMap {
			dst[key] = DeepMerge(dstMap, srcMap)
		} else {
			dst[key] = srcVal
		}
	}
	return dst
}

func encodeTOML(root *store.Section) ([]byte, error) {
	out, err := toml.Marshal(tomlTable(root))
	if err != nil {
		return nil, fmt.Errorf("encoding TOML: %w", err)
	}
	return out, nil
}

// tomlTable converts s to a map for the TOML encoder. TOML has no null,
// so unset entries and list elements are left out, along with pointers.
func tomlTable(s *store.Section) map[string]any {
	out := make(map[string]any)
	for _, it := range s.Children() {
		if v, ok := tomlValue(it); ok {
			out[it.Name()] = v
		}
	}
	return out
}

func tomlValue(it store.Item) (any, bool) {
	switch it.Kind() {
	case store.ItemEntry:
		v, ok := scalar(it.Entry().Value())
		return v, ok && v != nil
	case store.ItemList:
		var arr []any
		for _, v := range it.List().Values() {
			if x, ok := scalar(v); ok && x != nil {
				arr = append(arr, x)
			}
		}
		if arr == nil {
			arr = []any{}
		}
		return arr, true
	case store.ItemSection:
		s := it.Section()
		if !s.IsArray() {
			return tomlTable(s), true
		}
		arr := []any{}
		for _, c := range s.Children() {
			if x, ok := tomlValue(c); ok {
				arr = append(arr, x)
			}
		}
		return arr, true
	}
	return nil, false
}
