package pdx

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// =========================
// Node Definitions
// =========================

type NodeKind uint8

const (
	KindScalar NodeKind = iota
	KindAssignment
	KindBare
	KindList
	KindMap
)

// Node is one parsed value. Every consumer must handle each of the five
// shapes: Scalar, Assignment, Bare, List, Map.
type Node interface {
	Kind() NodeKind
}

// -------- Scalar --------

type ScalarKind uint8

const (
	ScalarString ScalarKind = iota
	ScalarInt
	ScalarFloat
)

// Scalar holds an identifier, date or quoted string as a verbatim string,
// or a number as int64 / float64.
type Scalar struct {
	Type ScalarKind
	V    any
}

func (*Scalar) Kind() NodeKind { return KindScalar }

func (s *Scalar) MarshalYAML() (any, error) { return s.V, nil }

func (s *Scalar) MarshalJSON() ([]byte, error) { return json.Marshal(s.V) }

// -------- Assignment --------

// Assignment is the right-hand side of `key <op> value`. Op is the
// operator text verbatim: "=", "<", ">=", ...
type Assignment struct {
	Op    string
	Value Node
}

func (*Assignment) Kind() NodeKind { return KindAssignment }

func (a *Assignment) MarshalYAML() (any, error) { return []any{a.Op, a.Value}, nil }

func (a *Assignment) MarshalJSON() ([]byte, error) { return json.Marshal([]any{a.Op, a.Value}) }

// -------- Bare --------

// Bare is a key with no operator after it: present but valueless.
type Bare struct{}

func (*Bare) Kind() NodeKind { return KindBare }

func (*Bare) MarshalYAML() (any, error) { return nil, nil }

func (*Bare) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

// -------- List --------

// List holds the values of a key that repeated within one block, in
// encounter order. It is only ever produced by coalescing.
type List struct {
	Elems []Node
}

func (*List) Kind() NodeKind { return KindList }

func (l *List) MarshalYAML() (any, error) { return l.Elems, nil }

func (l *List) MarshalJSON() ([]byte, error) { return json.Marshal(l.Elems) }

// -------- Map --------

// Map is an insertion-ordered key to Node association: the result of
// parsing a brace-delimited block, or the whole document.
type Map struct {
	keys  []string
	items map[string]Node
}

func NewMap() *Map {
	return &Map{items: make(map[string]Node)}
}

func (*Map) Kind() NodeKind { return KindMap }

func (m *Map) Len() int { return len(m.keys) }

// Keys returns the keys in first-seen order. The returned slice is
// owned by the Map.
func (m *Map) Keys() []string { return m.keys }

func (m *Map) Get(key string) (Node, bool) {
	n, ok := m.items[key]
	return n, ok
}

// Insert adds val under key, coalescing repeats: the second occurrence
// of a key promotes the existing value in place to a List holding it,
// and every occurrence after the first appends to that List.
func (m *Map) Insert(key string, val Node) {
	existing, ok := m.items[key]
	if !ok {
		m.keys = append(m.keys, key)
		m.items[key] = val
		return
	}
	l, isList := existing.(*List)
	if !isList {
		l = &List{Elems: []Node{existing}}
		m.items[key] = l
	}
	l.Elems = append(l.Elems, val)
}

// InsertUnique adds val under key and reports whether the key was new.
// Used at the document's top level, where repeats are a parse error.
func (m *Map) InsertUnique(key string, val Node) bool {
	if _, ok := m.items[key]; ok {
		return false
	}
	m.keys = append(m.keys, key)
	m.items[key] = val
	return true
}

func (m *Map) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range m.keys {
		keyNode := &yaml.Node{}
		keyNode.SetString(k)
		valNode := &yaml.Node{}
		if err := valNode.Encode(m.items[k]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, keyNode, valNode)
	}
	return node, nil
}

func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(m.items[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// =========================
// Safe Access Helpers
// =========================

// Unwrap strips an Assignment wrapper, exposing the bound value.
// Any other node is returned unchanged.
func Unwrap(n Node) Node {
	if a, ok := n.(*Assignment); ok {
		return a.Value
	}
	return n
}

// Get walks nested maps by key, unwrapping assignments along the way.
func Get(root *Map, path ...string) (Node, bool) {
	var cur Node = root
	for _, p := range path {
		m, ok := Unwrap(cur).(*Map)
		if !ok {
			return nil, false
		}
		cur, ok = m.Get(p)
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func AsMap(n Node) (*Map, bool) {
	m, ok := Unwrap(n).(*Map)
	return m, ok
}

func AsList(n Node) (*List, bool) {
	l, ok := Unwrap(n).(*List)
	return l, ok
}

// Float reads a numeric scalar as float64, widening integers.
func Float(n Node) (float64, bool) {
	s, ok := Unwrap(n).(*Scalar)
	if !ok {
		return 0, false
	}
	switch v := s.V.(type) {
	case int64:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}

func Int(n Node) (int64, bool) {
	s, ok := Unwrap(n).(*Scalar)
	if !ok {
		return 0, false
	}
	i, ok := s.V.(int64)
	return i, ok
}

func MustString(n Node) string {
	s := Unwrap(n).(*Scalar)
	return s.V.(string)
}
