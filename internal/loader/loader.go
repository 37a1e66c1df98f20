// Package loader moves configuration trees between files and a store.Config.
//
// JSON goes through the store's own reader and writer. TOML and YAML are
// decoded into sections and entries with the same merge rules as JSON: maps
// become sections, arrays become index-named sections, scalars become
// entries overwritten only on request. The file format is chosen from the
// path extension.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/confstore/internal/store"
)

// ErrUnknownFormat indicates a path whose extension maps to no format.
var ErrUnknownFormat = errors.New("unknown configuration format")

// maxIncludeDepth bounds nested TOML @include directives.
const maxIncludeDepth = 8

// Format is a serialization format for a configuration tree.
type Format int

const (
	FormatJSON Format = iota
	FormatTOML
	FormatYAML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// FormatFromPath picks the format from the extension of path.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// FileSystem is an abstraction for file system operations.
// This allows for easy testing with in-memory file systems.
type FileSystem interface {
	fs.FS
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
	// Stat returns file info for path.
	Stat(path string) (fs.FileInfo, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// Open implements fs.FS.
func (OSFS) Open(name string) (fs.File, error) {
	return os.Open(name)
}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat returns file info for path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}

// LoadFile merges the file at path into cfg. A missing file is reported as
// an error wrapping fs.ErrNotExist.
func LoadFile(cfg *store.Config, path string, overwrite bool) error {
	return LoadFileFS(DefaultFS(), cfg, path, overwrite)
}

// LoadFileFS is LoadFile reading from fsys.
func LoadFileFS(fsys FileSystem, cfg *store.Config, path string, overwrite bool) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	if format == FormatTOML {
		if _, err := fsys.Stat(path); err != nil {
			return fmt.Errorf("reading config file %s: %w", path, err)
		}
		m, err := NewTOMLLoaderWithFS(fsys, path).LoadWithIncludes(path, maxIncludeDepth)
		if err != nil {
			return err
		}
		cfg.Root().ImportMap(m, overwrite)
		return nil
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	return decode(cfg, format, path, data, overwrite)
}

// Decode merges data in the given format into cfg.
func Decode(cfg *store.Config, format Format, data []byte, overwrite bool) error {
	return decode(cfg, format, "<input>", data, overwrite)
}

func decode(cfg *store.Config, format Format, source string, data []byte, overwrite bool) error {
	switch format {
	case FormatJSON:
		if err := cfg.Read(data, overwrite); err != nil {
			return &ParseError{Path: source, Message: err.Error(), Err: err}
		}
		return nil
	case FormatTOML:
		m, err := parseTOML(source, data)
		if err != nil {
			return err
		}
		cfg.Root().ImportMap(m, overwrite)
		return nil
	case FormatYAML:
		return importYAML(cfg.Root(), source, data, overwrite)
	default:
		return ErrUnknownFormat
	}
}

// Encode serializes cfg in the given format. An empty tree returns
// store.ErrEmpty.
func Encode(cfg *store.Config, format Format) ([]byte, error) {
	root := cfg.Root()
	if root.IsEmpty() {
		return nil, store.ErrEmpty
	}
	switch format {
	case FormatJSON:
		out := cfg.WritePretty()
		if out == nil {
			return nil, store.ErrEmpty
		}
		return out, nil
	case FormatTOML:
		return encodeTOML(root)
	case FormatYAML:
		return encodeYAML(root)
	default:
		return nil, ErrUnknownFormat
	}
}

// SaveFile writes cfg to path in the format named by its extension.
func SaveFile(cfg *store.Config, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := Encode(cfg, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

// Error formats the position when it is known.
func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// Unwrap returns the decoder error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
