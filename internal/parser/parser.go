// Package parser implements a recursive-descent parser: a significant-token
// stream (trivia already filtered) in, *ast.Document plus an ordered
// parse-diagnostic list out. The parser never panics and always
// terminates after at most O(n) token advances; a partial AST is
// produced whenever any recognizable sub-tree was seen.
//
// Parser state is a token slice plus a cursor plus an append-only
// diagnostic list, with a wantKind expectation helper and a
// single synchronization helper that resumes at a closing brace or a
// declaration keyword.
package parser

import (
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/cosine-software/tdl/internal/ast"
	"github.com/cosine-software/tdl/internal/diag"
	"github.com/cosine-software/tdl/internal/lexer"
	"github.com/cosine-software/tdl/internal/span"
	"github.com/cosine-software/tdl/internal/token"
)

// declStartWords are the start-of-declaration keywords that double as
// synchronization points.
var declStartWords = map[string]bool{
	"network": true, "terminal": true, "net": true, "subnetwork": true,
	"messages": true, "filters": true,
}

// Parse runs the lexer and the parser over src and returns the resulting
// Document together with the ordered parse-diagnostic list. Comments are
// sliced out of the significant-token stream into a side list, retained by
// offset, for a host that wants to attach them to AST nodes; they are not
// otherwise consumed here.
func Parse(src string) (*ast.Document, []token.Token, []diag.Diagnostic) {
	all := lexer.Lex(src)

	var toks []token.Token
	var comments []token.Token
	for _, t := range all {
		switch t.Kind {
		case token.Comment:
			comments = append(comments, t)
		case token.Whitespace, token.Newline:
			// dropped; carries no parse-level meaning.
		default:
			toks = append(toks, t)
		}
	}

	p := &Parser{tokens: toks}
	doc := p.parseDocument()
	return doc, comments, p.diags
}

// Parser holds parse state as a value: a token slice, a cursor, and an
// append-only diagnostic list. Every production is a method that returns
// an optional node and mutates this state; synchronization is the single
// shared recovery helper.
type Parser struct {
	tokens []token.Token
	cursor int
	diags  []diag.Diagnostic
	last   span.Span // span of the most recently consumed token
}

func (p *Parser) parseDocument() *ast.Document {
	doc := &ast.Document{}
	for !p.atEOF() {
		if p.atKeyword("network") {
			if n := p.parseNetwork(); n != nil {
				doc.Networks = append(doc.Networks, n)
			}
			continue
		}
		tok := p.cur()
		p.errorf(p.insertionSpan(), "expected 'network', got %s", p.describe(tok))
		p.synchronize()
	}
	return doc
}

// ---- declarations ----

func (p *Parser) parseNetwork() *ast.Network {
	kw := p.bump() // "network"
	first := kw.Span

	name, _ := p.parseDeclName()
	net := &ast.Network{Name: name}

	if !p.wantKind(token.LBrace) {
		p.synchronize()
		net.Span = span.Merge(first, p.last)
		return net
	}

	for !p.atEOF() && !p.atKind(token.RBrace) {
		switch {
		case p.atKeyword("terminal"):
			if t := p.parseSimpleDecl("terminal"); t != nil {
				net.Terminals = append(net.Terminals, &ast.Terminal{Name: t.name, Properties: t.props, Span: t.span})
			}
		case p.atKeyword("net"):
			if t := p.parseSimpleDecl("net"); t != nil {
				net.Nets = append(net.Nets, &ast.Net{Name: t.name, Properties: t.props, Span: t.span})
			}
		case p.atKeyword("subnetwork"):
			if s := p.parseSubnetwork(); s != nil {
				net.Subnetworks = append(net.Subnetworks, s)
			}
		case p.atKeyword("messages"):
			net.Messages = p.parseMessageCatalog()
		case p.atKeyword("filters"):
			net.Filters = p.parseFilterBlock()
		case p.isPropertyKeyStart():
			if prop, ok := p.parseProperty(); ok {
				net.Properties = append(net.Properties, prop)
			} else {
				p.synchronize()
				net.Span = span.Merge(first, p.last)
				return net
			}
		default:
			tok := p.cur()
			p.errorf(tok.Span, "unexpected token %s", p.describe(tok))
			p.bump()
		}
	}
	p.wantKind(token.RBrace)
	net.Span = span.Merge(first, p.last)
	return net
}

// simpleDecl is the shared result of parsing "<name> { property* }" for
// Terminal, Net, and Member, which share an identical grammar.
type simpleDecl struct {
	name  string
	props []ast.Property
	span  span.Span
}

func (p *Parser) parseSimpleDecl(keyword string) *simpleDecl {
	kw := p.bump() // the keyword
	first := kw.Span

	name, _ := p.parseDeclName()
	d := &simpleDecl{name: name}

	if !p.wantKind(token.LBrace) {
		p.synchronize()
		d.span = span.Merge(first, p.last)
		return d
	}

	for !p.atEOF() && !p.atKind(token.RBrace) {
		if p.isPropertyKeyStart() {
			if prop, ok := p.parseProperty(); ok {
				d.props = append(d.props, prop)
			} else {
				p.synchronize()
				d.span = span.Merge(first, p.last)
				return d
			}
			continue
		}
		tok := p.cur()
		p.errorf(tok.Span, "unexpected token %s", p.describe(tok))
		p.bump()
	}
	p.wantKind(token.RBrace)
	d.span = span.Merge(first, p.last)
	return d
}

func (p *Parser) parseSubnetwork() *ast.Subnetwork {
	kw := p.bump() // "subnetwork"
	first := kw.Span

	name, _ := p.parseDeclName()
	sub := &ast.Subnetwork{Name: name}

	if !p.wantKind(token.LBrace) {
		p.synchronize()
		sub.Span = span.Merge(first, p.last)
		return sub
	}

	for !p.atEOF() && !p.atKind(token.RBrace) {
		switch {
		case p.atKeyword("member"):
			if m := p.parseSimpleDecl("member"); m != nil {
				sub.Members = append(sub.Members, &ast.Member{Name: m.name, Properties: m.props, Span: m.span})
			}
		case p.isPropertyKeyStart():
			if prop, ok := p.parseProperty(); ok {
				sub.Properties = append(sub.Properties, prop)
			} else {
				p.synchronize()
				sub.Span = span.Merge(first, p.last)
				return sub
			}
		default:
			tok := p.cur()
			p.errorf(tok.Span, "unexpected token %s", p.describe(tok))
			p.bump()
		}
	}
	p.wantKind(token.RBrace)
	sub.Span = span.Merge(first, p.last)
	return sub
}

func (p *Parser) parseMessageCatalog() *ast.MessageCatalog {
	kw := p.bump() // "messages"
	first := kw.Span
	cat := &ast.MessageCatalog{}

	if !p.wantKind(token.LBrace) {
		p.synchronize()
		cat.Span = span.Merge(first, p.last)
		return cat
	}

	for !p.atEOF() && !p.atKind(token.RBrace) {
		if p.atKind(token.JMessage) {
			cat.Entries = append(cat.Entries, p.parseMessageEntry())
			continue
		}
		tok := p.cur()
		p.errorf(tok.Span, "unexpected token %s", p.describe(tok))
		p.bump()
	}
	p.wantKind(token.RBrace)
	cat.Span = span.Merge(first, p.last)
	return cat
}

func (p *Parser) parseMessageEntry() *ast.MessageEntry {
	idTok := p.bump() // j-message
	first := idTok.Span
	e := &ast.MessageEntry{MessageID: idTok.Lexeme}

	if !p.wantKind(token.LBrace) {
		p.synchronize()
		e.Span = span.Merge(first, p.last)
		return e
	}

	for !p.atEOF() && !p.atKind(token.RBrace) {
		if p.isPropertyKeyStart() {
			if prop, ok := p.parseProperty(); ok {
				e.Properties = append(e.Properties, prop)
			} else {
				p.synchronize()
				e.Span = span.Merge(first, p.last)
				return e
			}
			continue
		}
		tok := p.cur()
		p.errorf(tok.Span, "unexpected token %s", p.describe(tok))
		p.bump()
	}
	p.wantKind(token.RBrace)
	e.Span = span.Merge(first, p.last)
	return e
}

func (p *Parser) parseFilterBlock() *ast.FilterBlock {
	kw := p.bump() // "filters"
	first := kw.Span
	fb := &ast.FilterBlock{}

	if !p.wantKind(token.LBrace) {
		p.synchronize()
		fb.Span = span.Merge(first, p.last)
		return fb
	}

	for !p.atEOF() && !p.atKind(token.RBrace) {
		switch {
		case p.atKeyword("inbound"):
			fb.Inbound = p.parseFilterDirection()
		case p.atKeyword("outbound"):
			fb.Outbound = p.parseFilterDirection()
		default:
			tok := p.cur()
			p.errorf(tok.Span, "unexpected token %s", p.describe(tok))
			p.bump()
		}
	}
	p.wantKind(token.RBrace)
	fb.Span = span.Merge(first, p.last)
	return fb
}

func (p *Parser) parseFilterDirection() []*ast.FilterRule {
	p.bump() // "inbound" | "outbound"
	if !p.wantKind(token.LBrace) {
		p.synchronize()
		return nil
	}

	var rules []*ast.FilterRule
	for !p.atEOF() && !p.atKind(token.RBrace) {
		switch {
		case p.atKeyword("accept"), p.atKeyword("drop"):
			rules = append(rules, p.parseFilterRule())
		default:
			tok := p.cur()
			p.errorf(tok.Span, "unexpected token %s", p.describe(tok))
			p.bump()
		}
	}
	p.wantKind(token.RBrace)
	return rules
}

func (p *Parser) parseFilterRule() *ast.FilterRule {
	actionTok := p.bump() // "accept" | "drop"
	first := actionTok.Span
	rule := &ast.FilterRule{Action: ast.FilterAction(actionTok.Lexeme)}

	if !p.atKind(token.JMessage) {
		p.errorf(p.insertionSpan(), "expected J-message, got %s", p.describe(p.cur()))
		rule.Span = span.Merge(first, p.last)
		return rule
	}
	idTok := p.bump()
	rule.MessageID = idTok.Lexeme

	if p.atKeyword("where") {
		rule.Where = p.parseWhereClause()
	}
	rule.Span = span.Merge(first, p.last)
	return rule
}

func (p *Parser) parseWhereClause() *ast.WhereClause {
	kw := p.bump() // "where"
	first := kw.Span
	wc := &ast.WhereClause{}

	if !p.wantKind(token.LBrace) {
		p.synchronize()
		wc.Span = span.Merge(first, p.last)
		return wc
	}

	wc.Condition = p.parseCondition()

	p.wantKind(token.RBrace)
	wc.Span = span.Merge(first, p.last)
	return wc
}

func (p *Parser) parseCondition() ast.Condition {
	fieldTok := p.cur()
	cond := ast.Condition{}
	first := fieldTok.Span

	if p.atKind(token.Identifier) || p.atKind(token.Keyword) {
		p.bump()
		cond.Field = fieldTok.Lexeme
	} else {
		p.errorf(p.insertionSpan(), "expected field name, got %s", p.describe(fieldTok))
	}

	opTok := p.cur()
	if isComparisonOp(opTok.Kind) {
		p.bump()
		cond.Operator = opTok.Lexeme
	} else {
		p.errorf(p.insertionSpan(), "expected comparison operator, got %s", p.describe(opTok))
	}

	valTok := p.cur()
	if isValueStart(valTok.Kind) {
		p.bump()
		cond.ValueLexeme = unquoteIfString(valTok)
	} else {
		p.errorf(p.insertionSpan(), "expected value, got %s", p.describe(valTok))
	}

	cond.Span = span.Merge(first, p.last)
	return cond
}

// ---- properties and values ----

func (p *Parser) parseProperty() (ast.Property, bool) {
	keyTok := p.bump() // identifier | keyword
	first := keyTok.Span

	if !p.wantKind(token.Colon) {
		return ast.Property{}, false
	}

	valTok := p.cur()
	if !isValueStart(valTok.Kind) {
		p.errorf(p.insertionSpan(), "expected value, got %s", p.describe(valTok))
		return ast.Property{}, false
	}
	val := p.parseValue()

	// Optional trailing comma, consumed silently.
	if p.atKind(token.Comma) {
		p.bump()
	}

	return ast.Property{Key: keyTok.Lexeme, Value: val, Span: span.Merge(first, p.last)}, true
}

func (p *Parser) parseValue() ast.Value {
	tok := p.bump()
	switch tok.Kind {
	case token.String:
		return ast.Value{Kind: ast.StringValue, Text: unquote(tok.Lexeme)}
	case token.Number:
		f, _ := cast.ToFloat64E(tok.Lexeme)
		return ast.Value{Kind: ast.NumberValue, Number: f}
	case token.Percent:
		f, _ := cast.ToFloat64E(strings.TrimSuffix(tok.Lexeme, "%"))
		return ast.Value{Kind: ast.PercentValue, Number: f}
	case token.Duration:
		return ast.Value{Kind: ast.DurationValue, Text: tok.Lexeme}
	case token.Boolean:
		return ast.Value{Kind: ast.BooleanValue, Bool: tok.Lexeme == "true"}
	case token.HexNumber:
		return ast.Value{Kind: ast.HexValue, Text: tok.Lexeme}
	case token.Identifier, token.Keyword, token.JMessage:
		return ast.Value{Kind: ast.IdentifierValue, Text: tok.Lexeme}
	case token.LBracket:
		return p.parseArray(tok.Span)
	default:
		return ast.Value{Kind: ast.IdentifierValue, Text: tok.Lexeme}
	}
}

func (p *Parser) parseArray(open span.Span) ast.Value {
	val := ast.Value{Kind: ast.ArrayValue}

	if p.atKind(token.RBracket) {
		p.bump()
		return val
	}

	for {
		tok := p.cur()
		if !isArrayItemStart(tok.Kind) {
			p.errorf(p.insertionSpan(), "expected ']', got %s", p.describe(tok))
			return val
		}
		p.bump()
		val.Items = append(val.Items, unquoteIfString(tok))

		if p.atKind(token.Comma) {
			p.bump()
			continue
		}
		break
	}

	p.wantKind(token.RBracket)
	return val
}

// parseDeclName expects the string name following a declaration head. On
// failure it yields the placeholder "<missing>" without consuming the
// offending token.
func (p *Parser) parseDeclName() (string, bool) {
	if p.atKind(token.String) {
		tok := p.bump()
		return unquote(tok.Lexeme), true
	}
	p.errorf(p.insertionSpan(), "expected string, got %s", p.describe(p.cur()))
	return "<missing>", false
}

// ---- token-stream primitives ----

func (p *Parser) cur() token.Token {
	if p.cursor >= len(p.tokens) {
		return token.Token{Kind: token.EOF}
	}
	return p.tokens[p.cursor]
}

func (p *Parser) atEOF() bool {
	return p.cursor >= len(p.tokens) || p.tokens[p.cursor].Kind == token.EOF
}

func (p *Parser) atKind(k token.Kind) bool {
	return !p.atEOF() && p.tokens[p.cursor].Kind == k
}

func (p *Parser) atKeyword(word string) bool {
	t := p.cur()
	return t.Kind == token.Keyword && t.Lexeme == word
}

func (p *Parser) atDeclStart() bool {
	t := p.cur()
	return t.Kind == token.Keyword && declStartWords[t.Lexeme]
}

// isPropertyKeyStart reports whether the current token can begin a
// property (an identifier or a keyword not otherwise claimed by a nested
// declaration/structural production in the caller's dispatch).
func (p *Parser) isPropertyKeyStart() bool {
	t := p.cur()
	return t.Kind == token.Identifier || t.Kind == token.Keyword
}

func (p *Parser) bump() token.Token {
	t := p.cur()
	if t.Kind != token.EOF {
		p.cursor++
	}
	p.last = t.Span
	return t
}

func (p *Parser) wantKind(k token.Kind) bool {
	if p.atKind(k) {
		p.bump()
		return true
	}
	p.errorf(p.insertionSpan(), "expected %s, got %s", describeKind(k), p.describe(p.cur()))
	return false
}

// insertionSpan is the zero-length span at which a missing token would
// have been expected: the current lookahead's span, or one past the last
// consumed token at EOF.
func (p *Parser) insertionSpan() span.Span {
	if !p.atEOF() {
		t := p.tokens[p.cursor]
		return span.Span{Line: t.Span.Line, Column: t.Span.Column, Offset: t.Span.Offset, Length: 0}
	}
	return span.Span{Line: p.last.Line, Column: p.last.Column, Offset: p.last.End(), Length: 0}
}

// synchronize advances tokens until '}' (consumed) or a declaration-start
// keyword (not consumed) is seen, or EOF is reached.
func (p *Parser) synchronize() {
	for !p.atEOF() {
		if p.atKind(token.RBrace) {
			p.bump()
			return
		}
		if p.atDeclStart() {
			return
		}
		p.bump()
	}
}

func (p *Parser) errorf(sp span.Span, format string, args ...any) {
	p.diags = append(p.diags, diag.Syntax(sp, format, args...))
}

func (p *Parser) describe(t token.Token) string {
	if t.Kind == token.EOF {
		return "EOF"
	}
	return "'" + t.Lexeme + "'"
}

func describeKind(k token.Kind) string {
	switch k {
	case token.LBrace:
		return "'{'"
	case token.RBrace:
		return "'}'"
	case token.LBracket:
		return "'['"
	case token.RBracket:
		return "']'"
	case token.Colon:
		return "':'"
	case token.Comma:
		return "','"
	default:
		return k.String()
	}
}

func isComparisonOp(k token.Kind) bool {
	switch k {
	case token.GE, token.LE, token.GT, token.LT, token.EQ, token.NE:
		return true
	default:
		return false
	}
}

func isValueStart(k token.Kind) bool {
	switch k {
	case token.String, token.Number, token.Percent, token.Duration,
		token.Boolean, token.HexNumber, token.Identifier, token.Keyword,
		token.JMessage, token.LBracket:
		return true
	default:
		return false
	}
}

func isArrayItemStart(k token.Kind) bool {
	switch k {
	case token.Identifier, token.Keyword, token.JMessage, token.String:
		return true
	default:
		return false
	}
}

func unquote(lexeme string) string {
	if len(lexeme) >= 2 && strings.HasPrefix(lexeme, `"`) && strings.HasSuffix(lexeme, `"`) {
		return lexeme[1 : len(lexeme)-1]
	}
	return strings.TrimPrefix(lexeme, `"`)
}

func unquoteIfString(t token.Token) string {
	if t.Kind == token.String {
		return unquote(t.Lexeme)
	}
	return t.Lexeme
}

// ParseFloat parses lexeme as a base-10 float64 with strconv.ParseFloat.
// The parser itself converts Number and Percent lexemes with
// cast.ToFloat64E, not with this function.
func ParseFloat(lexeme string) (float64, error) {
	return strconv.ParseFloat(lexeme, 64)
}
