// Package tdl is the public entry point for the TDL language engine: a
// single-threaded, synchronous pipeline from source text to an AST plus
// an ordered diagnostic list, described in full by the lexer, parser, and
// validator packages it composes.
//
// The package exposes exactly two operations, matching two operations: Analyze
// (the full pipeline) and Tokenize (lexer output only, for editor
// integrations). Both are pure: the same source string always produces
// the same result, and neither call retains state between invocations —
// the only shared data is the immutable spec database built once at
// package init.
package tdl

import (
	"github.com/cosine-software/tdl/internal/ast"
	"github.com/cosine-software/tdl/internal/diag"
	"github.com/cosine-software/tdl/internal/lexer"
	"github.com/cosine-software/tdl/internal/parser"
	"github.com/cosine-software/tdl/internal/specdb"
	"github.com/cosine-software/tdl/internal/token"
	"github.com/cosine-software/tdl/internal/validator"
)

// Result is the output of Analyze: an always-present AST (possibly with
// zero networks) and the concatenation of parse diagnostics followed by
// validator diagnostics, in that order.
type Result struct {
	AST         *ast.Document     `json:"ast"`
	Diagnostics []diag.Diagnostic `json:"diagnostics"`
	Comments    []token.Token     `json:"comments"`
}

// Analyze runs the complete pipeline — lex, parse with recovery, validate
// against the reference database — over source and returns the AST together
// with every diagnostic the pipeline produced.
func Analyze(source string) Result {
	doc, comments, parseDiags := parser.Parse(source)
	validatorDiags := validator.Validate(doc, specdb.Default())

	diagnostics := make([]diag.Diagnostic, 0, len(parseDiags)+len(validatorDiags))
	diagnostics = append(diagnostics, parseDiags...)
	diagnostics = append(diagnostics, validatorDiags...)

	return Result{AST: doc, Diagnostics: diagnostics, Comments: comments}
}

// Tokenize runs the lexer alone and returns its full token stream,
// including trivia, terminated by a synthetic EOF token.
func Tokenize(source string) []token.Token {
	return lexer.Lex(source)
}
