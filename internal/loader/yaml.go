package loader

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/confstore/internal/store"
	"github.com/dshills/confstore/internal/variant"
)

// maxAliasDepth bounds alias chains while walking a YAML document.
const maxAliasDepth = 32

// importYAML walks the document node by node so members are added to s in
// document order, unlike a decode into map[string]any.
func importYAML(s *store.Section, source string, data []byte, overwrite bool) error {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return yamlParseError(source, err)
	}
	if doc.Kind == 0 {
		return nil
	}

	root := &doc
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return nil
		}
		root = doc.Content[0]
	}
	root = resolveAlias(root)
	if root.Kind != yaml.MappingNode {
		return &ParseError{
			Path:    source,
			Line:    root.Line,
			Column:  root.Column,
			Message: "document root is not a mapping",
			Err:     store.ErrNotObject,
		}
	}
	return yamlMapping(s, source, root, overwrite)
}

func yamlMapping(s *store.Section, source string, n *yaml.Node, overwrite bool) error {
	var merges []*yaml.Node
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		if isMergeKey(key) {
			merges = append(merges, val)
			continue
		}
		if err := yamlValue(s, source, key.Value, val, overwrite); err != nil {
			return err
		}
	}

	// Merged mappings only fill in keys the mapping did not set itself.
	for _, m := range merges {
		m = resolveAlias(m)
		var sources []*yaml.Node
		switch m.Kind {
		case yaml.MappingNode:
			sources = []*yaml.Node{m}
		case yaml.SequenceNode:
			sources = m.Content
		}
		for _, src := range sources {
			if src = resolveAlias(src); src.Kind == yaml.MappingNode {
				if err := yamlMapping(s, source, src, false); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func yamlValue(s *store.Section, source, name string, n *yaml.Node, overwrite bool) error {
	n = resolveAlias(n)
	switch n.Kind {
	case yaml.MappingNode:
		return yamlMapping(s.AddSection(name), source, n, overwrite)
	case yaml.SequenceNode:
		child := s.AddSection(name)
		for i, c := range n.Content {
			if err := yamlValue(child, source, strconv.Itoa(i), c, overwrite); err != nil {
				return err
			}
		}
		return nil
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return &ParseError{Path: source, Line: n.Line, Column: n.Column, Message: err.Error(), Err: err}
		}
		if !s.Import(name, v, overwrite) {
			return &ParseError{
				Path:    source,
				Line:    n.Line,
				Column:  n.Column,
				Message: fmt.Sprintf("unsupported value for %q", name),
			}
		}
		return nil
	default:
		return nil
	}
}

func isMergeKey(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Value == "<<" && (n.Tag == "" || n.ShortTag() == "!!merge")
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for i := 0; n.Kind == yaml.AliasNode && n.Alias != nil && i < maxAliasDepth; i++ {
		n = n.Alias
	}
	return n
}

func yamlParseError(source string, err error) *ParseError {
	perr := &ParseError{Path: source, Message: err.Error(), Err: err}
	msg := err.Error()
	if strings.HasPrefix(msg, "yaml: line ") {
		var line int
		if _, serr := fmt.Sscanf(msg, "yaml: line %d:", &line); serr == nil {
			perr.Line = line
		}
	}
	return perr
}

func encodeYAML(root *store.Section) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(yamlMappingNode(root)); err != nil {
		return nil, fmt.Errorf("encoding YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding YAML: %w", err)
	}
	return buf.Bytes(), nil
}

// yamlMappingNode builds a mapping in child insertion order. YAML keys must
// be unique, so when an entry, list and section share a name the later
// child replaces the earlier one in place.
func yamlMappingNode(s *store.Section) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	pos := make(map[string]int)
	for _, it := range s.Children() {
		val, ok := yamlItemNode(it)
		if !ok {
			continue
		}
		if i, dup := pos[it.Name()]; dup {
			m.Content[i+1] = val
			continue
		}
		pos[it.Name()] = len(m.Content)
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: it.Name()}
		m.Content = append(m.Content, key, val)
	}
	return m
}

func yamlItemNode(it store.Item) (*yaml.Node, bool) {
	switch it.Kind() {
	case store.ItemEntry:
		return yamlScalarNode(it.Entry().Value())
	case store.ItemList:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, v := range it.List().Values() {
			n, ok := yamlScalarNode(v)
			if !ok {
				n = yamlNull()
			}
			seq.Content = append(seq.Content, n)
		}
		return seq, true
	case store.ItemSection:
		s := it.Section()
		if !s.IsArray() {
			return yamlMappingNode(s), true
		}
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, c := range s.Children() {
			n, ok := yamlItemNode(c)
			if !ok {
				n = yamlNull()
			}
			seq.Content = append(seq.Content, n)
		}
		return seq, true
	}
	return nil, false
}

func yamlNull() *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

func yamlScalarNode(v variant.Variant) (*yaml.Node, bool) {
	n := &yaml.Node{Kind: yaml.ScalarNode}
	switch v.Kind() {
	case variant.KindNone:
		return yamlNull(), true
	case variant.KindPointer:
		return nil, false
	case variant.KindBool:
		n.Tag, n.Value = "!!bool", strconv.FormatBool(v.AsBool())
	case variant.KindNumber:
		n.Tag, n.Value = yamlNumber(v)
	default:
		x, _ := scalar(v)
		n.Tag, n.Value = "!!str", x.(string)
	}
	return n, true
}

func yamlNumber(v variant.Variant) (tag, value string) {
	sub := v.Subtype()
	switch {
	case sub.IsFloat():
		f := v.AsFloat64()
		switch {
		case math.IsNaN(f):
			return "!!float", ".nan"
		case math.IsInf(f, 1):
			return "!!float", ".inf"
		case math.IsInf(f, -1):
			return "!!float", "-.inf"
		}
		bits := 64
		if sub == variant.SubFloat32 {
			bits = 32
		}
		s := strconv.FormatFloat(f, 'g', -1, bits)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return "!!float", s
	case sub.IsUnsigned():
		return "!!int", strconv.FormatUint(v.AsUint64(), 10)
	default:
		return "!!int", strconv.FormatInt(v.AsInt64(), 10)
	}
}
