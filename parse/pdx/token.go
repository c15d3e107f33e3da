package pdx

import "fmt"

// =========================
// Tokens
// =========================

type TokenKind uint8

const (
	Open          TokenKind = iota // {
	Close                          // }
	Equal                          // = (structural, never ==)
	Identifier                     // naval_speed, owner.tag, ROOT^PREV
	ComparisonOp                   // < > <= >= == !=
	StringLiteral                  // "quoted text", quotes included
	Number                         // 42, -3.25
	Date                           // 1936.1.1
)

func (k TokenKind) String() string {
	switch k {
	case Open:
		return "'{'"
	case Close:
		return "'}'"
	case Equal:
		return "'='"
	case Identifier:
		return "identifier"
	case ComparisonOp:
		return "comparison operator"
	case StringLiteral:
		return "string"
	case Number:
		return "number"
	case Date:
		return "date"
	default:
		return "invalid token"
	}
}

// Token is one classified lexical unit. Line and Col are 1-based and
// point at the first character of Text in the source.
type Token struct {
	Line int
	Col  int
	Text string
	Kind TokenKind
}

// =========================
// Errors
// =========================

// LexError reports an input character sequence that matches no token
// shape. It aborts the whole parse; there is no recovery.
type LexError struct {
	Line int
	Col  int
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("pdx:%d:%d: %s", e.Line, e.Col, e.Msg)
}

// ParseError reports a token of an unexpected kind, or a key repeated
// where repetition is disallowed. It aborts the whole parse.
type ParseError struct {
	Line int
	Col  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("pdx:%d:%d: %s", e.Line, e.Col, e.Msg)
}
