package pdx

import (
	"bufio"
	"fmt"
	"io"
)

// =========================
// Lexer
// =========================

// lexer turns input lines into a flat ordered token list with 1-based
// line/column positions. Columns advance by the consumed length of every
// match, including discarded comments and whitespace, so error
// coordinates stay exact across untokenized spans.
type lexer struct {
	line    int
	col     int
	tokens  []Token
	endLine int // position just past the last consumed character,
	endCol  int // reported on errors at end of input
}

func (lx *lexer) tokenize(r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lx.line = 1
	lx.endLine, lx.endCol = 1, 1
	for sc.Scan() {
		lx.col = 1
		if err := lx.tokenizeLine(sc.Text()); err != nil {
			return err
		}
		lx.endLine, lx.endCol = lx.line, lx.col
		lx.line++
	}
	return sc.Err()
}

// tokenizeLine scans one line left to right. Matcher order is critical:
//  1. braces
//  2. comment to end of line
//  3. '=' not followed by '=' (so '==' falls through to the operator match)
//  4. identifier
//  5. comparison operator
//  6. quoted string
//  7. date, which must run before number so 1936.1.1 is not a number
//     followed by stray dots
//  8. number
//  9. whitespace
func (lx *lexer) tokenizeLine(s string) error {
	for len(s) > 0 {
		switch {
		case s[0] == '{':
			s = lx.emit(s, 1, Open)
		case s[0] == '}':
			s = lx.emit(s, 1, Close)
		case s[0] == '#':
			s = lx.skip(s, len(s))
		case s[0] == '=' && (len(s) == 1 || s[1] != '='):
			s = lx.emit(s, 1, Equal)
		default:
			if n := matchIdentifier(s); n > 0 {
				s = lx.emit(s, n, Identifier)
				continue
			}
			if n := matchComparison(s); n > 0 {
				s = lx.emit(s, n, ComparisonOp)
				continue
			}
			if n := matchString(s); n > 0 {
				s = lx.emit(s, n, StringLiteral)
				continue
			}
			if n := matchDate(s); n > 0 {
				s = lx.emit(s, n, Date)
				continue
			}
			if n := matchNumber(s); n > 0 {
				s = lx.emit(s, n, Number)
				continue
			}
			if n := matchWhitespace(s); n > 0 {
				s = lx.skip(s, n)
				continue
			}
			return &LexError{
				Line: lx.line,
				Col:  lx.col,
				Msg:  fmt.Sprintf("invalid character %q", s[0]),
			}
		}
	}
	return nil
}

func (lx *lexer) emit(s string, n int, kind TokenKind) string {
	lx.tokens = append(lx.tokens, Token{Line: lx.line, Col: lx.col, Text: s[:n], Kind: kind})
	lx.col += n
	return s[n:]
}

func (lx *lexer) skip(s string, n int) string {
	lx.col += n
	return s[n:]
}

// =========================
// Matchers
// =========================
//
// Each matcher returns the consumed length, 0 when it does not apply.

func isSelector(c byte) bool {
	return c == '.' || c == '^' || c == '\'' || c == ':'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isNameStart(c byte) bool {
	return isLetter(c) || c == '_' || c == '-'
}

func isNamePart(c byte) bool {
	return isNameStart(c) || isDigit(c)
}

// matchIdentifier accepts an optional leading scope-selector character
// (. ^ ' :), a letter/underscore/hyphen run, then further
// selector-prefixed segments, greedily: owner.tag, ROOT^PREV, .var.x.
// A '-' directly before a digit is a sign, left for the number matcher.
func matchIdentifier(s string) int {
	i := 0
	if i < len(s) && isSelector(s[i]) {
		i++
	}
	if i >= len(s) || !isNameStart(s[i]) {
		return 0
	}
	if i == 0 && s[i] == '-' && i+1 < len(s) && isDigit(s[i+1]) {
		return 0
	}
	i++
	for i < len(s) && isNamePart(s[i]) {
		i++
	}
	for i < len(s) && isSelector(s[i]) {
		j := i + 1
		if j >= len(s) || !isNamePart(s[j]) {
			break
		}
		for j < len(s) && isNamePart(s[j]) {
			j++
		}
		i = j
	}
	return i
}

func matchComparison(s string) int {
	if len(s) >= 2 {
		switch s[:2] {
		case "<=", ">=", "==", "!=":
			return 2
		}
	}
	if len(s) >= 1 && (s[0] == '<' || s[0] == '>') {
		return 1
	}
	return 0
}

// matchString accepts a double-quoted run with backslash escapes, quotes
// included in the token. An unterminated quote matches nothing and falls
// through to a LexError at the opening quote.
func matchString(s string) int {
	if len(s) == 0 || s[0] != '"' {
		return 0
	}
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
			if i >= len(s) {
				return 0
			}
		case '"':
			return i + 1
		}
	}
	return 0
}

// matchDate accepts three dot-separated digit groups: 1936.1.1.
func matchDate(s string) int {
	i := digitRun(s, 0)
	if i == 0 {
		return 0
	}
	for range 2 {
		if i >= len(s) || s[i] != '.' {
			return 0
		}
		j := digitRun(s, i+1)
		if j == i+1 {
			return 0
		}
		i = j
	}
	return i
}

// matchNumber accepts an optional sign, an integer digit run, and an
// optional fraction. A trailing '.' with no digit after it is never
// consumed, so a structural dot is not swallowed.
func matchNumber(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	j := digitRun(s, i)
	if j == i {
		return 0
	}
	i = j
	if i+1 < len(s) && s[i] == '.' && isDigit(s[i+1]) {
		i = digitRun(s, i+1)
	}
	return i
}

func matchWhitespace(s string) int {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\r' || s[i] == '\n') {
		i++
	}
	return i
}

func digitRun(s string, i int) int {
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return i
}
