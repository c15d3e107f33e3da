// Package pdx implements a lexer and recursive-descent parser for the
// brace-delimited key/value scripting format used by Paradox
// strategy-game data files. It produces an explicit node tree with
// insertion-ordered maps, coalesces repeated keys inside blocks, and
// reports errors with exact 1-based line/column positions.
//
// It does not serialize a tree back to script text and does not
// validate keys or values against a schema.
package pdx

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// =========================
// Public API
// =========================

// ParseDocument tokenizes the whole stream, then parses top-level list
// items until no tokens remain. Top-level keys must be unique; inside
// every brace-delimited block repeated keys coalesce into a List instead.
// It fails with a *LexError or *ParseError, both carrying 1-based
// line/column; a malformed document yields no document.
func ParseDocument(r io.Reader) (*Map, error) {
	lx := &lexer{}
	if err := lx.tokenize(r); err != nil {
		return nil, err
	}

	p := &parser{tokens: lx.tokens, endLine: lx.endLine, endCol: lx.endCol}
	doc := NewMap()
	for p.hasTokens() {
		key, val, err := p.parseListItem()
		if err != nil {
			return nil, err
		}
		if !doc.InsertUnique(key.Text, val) {
			return nil, &ParseError{
				Line: key.Line,
				Col:  key.Col,
				Msg:  fmt.Sprintf("duplicate top-level item %q", key.Text),
			}
		}
	}
	return doc, nil
}

// ParseFile opens and parses a single script file.
func ParseFile(path string) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseDocument(f)
}

// =========================
// Parser Implementation
// =========================

// parser is an index cursor over the pre-built token buffer. It holds no
// state across ParseDocument calls; recursion depth equals brace depth.
type parser struct {
	tokens  []Token
	pos     int
	endLine int
	endCol  int
}

func (p *parser) hasTokens() bool { return p.pos < len(p.tokens) }

func (p *parser) peek() (Token, bool) {
	if !p.hasTokens() {
		return Token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) next() (Token, error) {
	if !p.hasTokens() {
		return Token{}, p.eofErr("expected more tokens")
	}
	tok := p.tokens[p.pos]
	p.pos++
	return tok, nil
}

func (p *parser) expect(kinds ...TokenKind) (Token, error) {
	tok, err := p.next()
	if err != nil {
		return Token{}, err
	}
	for _, k := range kinds {
		if tok.Kind == k {
			return tok, nil
		}
	}
	return Token{}, &ParseError{
		Line: tok.Line,
		Col:  tok.Col,
		Msg:  fmt.Sprintf("unexpected %s %q, expected %s", tok.Kind, tok.Text, kindList(kinds)),
	}
}

func (p *parser) eofErr(msg string) error {
	return &ParseError{Line: p.endLine, Col: p.endCol, Msg: msg + " at end of input"}
}

func kindList(kinds []TokenKind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return strings.Join(names, " or ")
}

// parseAtom parses one value: a nested block, or a single scalar token.
// Identifiers, dates and quoted strings stay verbatim strings; a number
// containing '.' becomes float64, otherwise int64.
func (p *parser) parseAtom() (Node, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, p.eofErr("expected a value")
	}
	switch tok.Kind {
	case Open:
		return p.parseList()
	case StringLiteral, Identifier, Date:
		p.pos++
		return &Scalar{Type: ScalarString, V: tok.Text}, nil
	case Number:
		p.pos++
		if strings.Contains(tok.Text, ".") {
			f, err := strconv.ParseFloat(tok.Text, 64)
			if err != nil {
				return nil, &ParseError{Line: tok.Line, Col: tok.Col, Msg: fmt.Sprintf("bad number %q", tok.Text)}
			}
			return &Scalar{Type: ScalarFloat, V: f}, nil
		}
		i, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			return nil, &ParseError{Line: tok.Line, Col: tok.Col, Msg: fmt.Sprintf("bad number %q", tok.Text)}
		}
		return &Scalar{Type: ScalarInt, V: i}, nil
	default:
		return nil, &ParseError{
			Line: tok.Line,
			Col:  tok.Col,
			Msg:  fmt.Sprintf("unexpected %s %q, not an atom", tok.Kind, tok.Text),
		}
	}
}

// parseListItem parses `key`, `key = atom` or `key <op> atom`. Numbers
// are legal keys (numeric IDs). A key with no operator after it is a
// Bare entry and consumes nothing further.
func (p *parser) parseListItem() (Token, Node, error) {
	key, err := p.expect(Identifier, Number)
	if err != nil {
		return Token{}, nil, err
	}

	tok, ok := p.peek()
	if !ok || (tok.Kind != Equal && tok.Kind != ComparisonOp) {
		return key, &Bare{}, nil
	}
	p.pos++

	val, err := p.parseAtom()
	if err != nil {
		return Token{}, nil, err
	}
	return key, &Assignment{Op: tok.Text, Value: val}, nil
}

// parseList parses a brace-delimited block into a Map, coalescing
// repeated keys as it inserts each item.
func (p *parser) parseList() (Node, error) {
	if _, err := p.expect(Open); err != nil {
		return nil, err
	}

	m := NewMap()
	for {
		tok, ok := p.peek()
		if !ok {
			return nil, p.eofErr("unterminated block, expected '}'")
		}
		if tok.Kind == Close {
			p.pos++
			return m, nil
		}

		key, val, err := p.parseListItem()
		if err != nil {
			return nil, err
		}
		m.Insert(key.Text, val)
	}
}
