// Package lexer implements the deterministic scanner that turns TDL source
// text into an ordered token stream with precise spans. It never raises an
// error: unrecognized input becomes an Unknown token and scanning
// continues, so a partial or malformed document still yields a useful
// stream for the parser and, ultimately, an editor host.
//
// The scanner is a rune-at-a-time cursor carrying (pos, line, col), with
// small isX predicate helpers and an advance/current pair.
package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/cosine-software/tdl/internal/span"
	"github.com/cosine-software/tdl/internal/token"
)

const eofRune rune = -1

// Lexer scans a fixed source string into a token stream. It carries no
// state beyond the cursor position; it is not reused across sources.
type Lexer struct {
	src  string
	pos  int // byte offset of the next unread rune
	line int
	col  int
}

// New creates a Lexer positioned at the start of src.
func New(src string) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

// Lex scans the entire source and returns its token stream, terminated by
// a synthetic EOF token at the logical end position. Trivia (Comment,
// Newline) is retained in the stream; Whitespace is consumed and dropped
// per spec rule 1 and never materializes as a token. The lexer never
// returns an error.
func Lex(src string) []token.Token {
	l := New(src)
	var out []token.Token
	for {
		tok, ok := l.next()
		if ok {
			out = append(out, tok)
		}
		if tok.Kind == token.EOF {
			return out
		}
	}
}

// next scans one token. ok is false only when whitespace was consumed and
// dropped without producing a token (the caller should loop again).
func (l *Lexer) next() (token.Token, bool) {
	if l.isEOF() {
		return l.emit(token.EOF, l.startSpan()), true
	}

	start := l.startSpan()
	ch := l.current()

	switch {
	case ch == ' ' || ch == '\t' || ch == '\r':
		l.skipWhitespace()
		return token.Token{}, false

	case ch == '\n':
		l.advance()
		return l.finish(token.Newline, start), true

	case ch == '-' && l.peek(1) == '-':
		return l.scanComment(start), true

	case ch == '"':
		return l.scanString(start), true

	case isDigit(ch):
		return l.scanNumber(start), true

	case ch == 'J' && isDigit(l.peek(1)):
		return l.scanJMessage(start), true

	case isIdentStart(ch):
		return l.scanIdentifier(start), true

	case ch == '{':
		l.advance()
		return l.finish(token.LBrace, start), true
	case ch == '}':
		l.advance()
		return l.finish(token.RBrace, start), true
	case ch == '[':
		l.advance()
		return l.finish(token.LBracket, start), true
	case ch == ']':
		l.advance()
		return l.finish(token.RBracket, start), true
	case ch == ':':
		l.advance()
		return l.finish(token.Colon, start), true
	case ch == ',':
		l.advance()
		return l.finish(token.Comma, start), true

	case ch == '>':
		l.advance()
		if l.current() == '=' {
			l.advance()
			return l.finish(token.GE, start), true
		}
		return l.finish(token.GT, start), true
	case ch == '<':
		l.advance()
		if l.current() == '=' {
			l.advance()
			return l.finish(token.LE, start), true
		}
		return l.finish(token.LT, start), true
	case ch == '=':
		l.advance()
		if l.current() == '=' {
			l.advance()
			return l.finish(token.EQ, start), true
		}
		return l.finish(token.Unknown, start), true
	case ch == '!':
		l.advance()
		if l.current() == '=' {
			l.advance()
			return l.finish(token.NE, start), true
		}
		return l.finish(token.Unknown, start), true

	default:
		l.advance()
		return l.finish(token.Unknown, start), true
	}
}

func (l *Lexer) scanComment(start span.Span) token.Token {
	// "--" to end of line; the lexeme is verbatim and never includes the
	// terminating newline.
	l.advance()
	l.advance()
	for !l.isEOF() && l.current() != '\n' {
		l.advance()
	}
	return l.finish(token.Comment, start)
}

func (l *Lexer) scanString(start span.Span) token.Token {
	l.advance() // opening quote
	for !l.isEOF() && l.current() != '"' && l.current() != '\n' {
		l.advance()
	}
	if !l.isEOF() && l.current() == '"' {
		l.advance() // closing quote
	}
	// Unterminated: we stop before the newline (or at EOF) and still emit
	// a String token.
	return l.finish(token.String, start)
}

func (l *Lexer) scanNumber(start span.Span) token.Token {
	if l.current() == '0' && (l.peek(1) == 'x' || l.peek(1) == 'X') && isHexDigit(l.peek(2)) {
		l.advance() // 0
		l.advance() // x/X
		for isHexDigit(l.current()) {
			l.advance()
		}
		return l.finish(token.HexNumber, start)
	}

	for isDigit(l.current()) {
		l.advance()
	}
	if l.current() == '.' && isDigit(l.peek(1)) {
		l.advance() // .
		for isDigit(l.current()) {
			l.advance()
		}
	}

	if l.current() == '%' {
		l.advance()
		return l.finish(token.Percent, start)
	}

	if suffixLen := l.durationSuffixLength(); suffixLen > 0 {
		for i := 0; i < suffixLen; i++ {
			l.advance()
		}
		return l.finish(token.Duration, start)
	}

	return l.finish(token.Number, start)
}

// durationSuffixLength returns the length of a recognized duration suffix
// (s, ms, min, h) at the current position, provided it is followed by a
// non-identifier-continue character (or end of input); otherwise 0.
func (l *Lexer) durationSuffixLength() int {
	rest := l.src[l.pos:]
	for _, suf := range []string{"min", "ms", "h", "s"} {
		if strings.HasPrefix(rest, suf) {
			next, _ := utf8.DecodeRuneInString(rest[len(suf):])
			if rest[len(suf):] == "" || !isIdentContinue(next) {
				return len(suf)
			}
		}
	}
	return 0
}

func (l *Lexer) scanJMessage(start span.Span) token.Token {
	l.advance() // J
	for isDigit(l.current()) {
		l.advance()
	}
	if l.current() == '/' && isDigit(l.peek(1)) {
		l.advance() // /
		for isDigit(l.current()) {
			l.advance()
		}
	}
	return l.finish(token.JMessage, start)
}

func (l *Lexer) scanIdentifier(start span.Span) token.Token {
	for isIdentContinue(l.current()) {
		l.advance()
	}
	lexeme := l.src[start.Offset:l.pos]
	switch lexeme {
	case "true", "false":
		return l.finish(token.Boolean, start)
	}
	if token.Reserved[lexeme] {
		return l.finish(token.Keyword, start)
	}
	return l.finish(token.Identifier, start)
}

func (l *Lexer) skipWhitespace() {
	for !l.isEOF() {
		ch := l.current()
		if ch == ' ' || ch == '\t' || ch == '\r' {
			l.advance()
			continue
		}
		break
	}
}

// ---- cursor primitives ----

func (l *Lexer) isEOF() bool {
	return l.pos >= len(l.src)
}

func (l *Lexer) current() rune {
	return l.peek(0)
}

func (l *Lexer) peek(n int) rune {
	pos := l.pos
	var r rune
	for i := 0; i <= n; i++ {
		if pos >= len(l.src) {
			return eofRune
		}
		var w int
		r, w = utf8.DecodeRuneInString(l.src[pos:])
		pos += w
	}
	return r
}

func (l *Lexer) advance() {
	if l.pos >= len(l.src) {
		return
	}
	r, w := utf8.DecodeRuneInString(l.src[l.pos:])
	l.pos += w
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
}

func (l *Lexer) startSpan() span.Span {
	return span.Span{Line: l.line, Column: l.col, Offset: l.pos, Length: 0}
}

func (l *Lexer) finish(kind token.Kind, start span.Span) token.Token {
	return l.emit(kind, start)
}

func (l *Lexer) emit(kind token.Kind, start span.Span) token.Token {
	sp := span.Span{
		Line:   start.Line,
		Column: start.Column,
		Offset: start.Offset,
		Length: l.pos - start.Offset,
	}
	return token.Token{Kind: kind, Lexeme: l.src[sp.Offset:l.pos], Span: sp}
}

// ---- character classification ----

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isIdentStart(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

func isIdentContinue(r rune) bool {
	return isIdentStart(r) || isDigit(r) || r == '-'
}
