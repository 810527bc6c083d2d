// Package token defines the closed set of lexical token kinds the lexer
// produces and the Token value type that carries a kind, its verbatim
// source lexeme, and a span.
package token

import (
	"fmt"

	"github.com/cosine-software/tdl/internal/span"
)

// Kind is the closed set of token kinds. New kinds are never added at
// runtime; the set is fixed by the grammar.
type Kind int

const (
	// Sentinels
	EOF Kind = iota
	Unknown

	// Literals
	String
	Number
	HexNumber
	Percent
	Duration
	Boolean

	// Identifiers and keywords
	Keyword
	Identifier
	JMessage

	// Punctuation
	LBrace
	RBrace
	LBracket
	RBracket
	Colon
	Comma

	// Comparison operators
	GE
	LE
	GT
	LT
	EQ
	NE

	// Trivia
	Comment
	Whitespace
	Newline
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Unknown:
		return "Unknown"
	case String:
		return "String"
	case Number:
		return "Number"
	case HexNumber:
		return "HexNumber"
	case Percent:
		return "Percent"
	case Duration:
		return "Duration"
	case Boolean:
		return "Boolean"
	case Keyword:
		return "Keyword"
	case Identifier:
		return "Identifier"
	case JMessage:
		return "JMessage"
	case LBrace:
		return "LBrace"
	case RBrace:
		return "RBrace"
	case LBracket:
		return "LBracket"
	case RBracket:
		return "RBracket"
	case Colon:
		return "Colon"
	case Comma:
		return "Comma"
	case GE:
		return ">="
	case LE:
		return "<="
	case GT:
		return ">"
	case LT:
		return "<"
	case EQ:
		return "=="
	case NE:
		return "!="
	case Comment:
		return "Comment"
	case Whitespace:
		return "Whitespace"
	case Newline:
		return "Newline"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// IsTrivia reports whether the kind carries no parse-level meaning.
func (k Kind) IsTrivia() bool {
	return k == Comment || k == Whitespace || k == Newline
}

// Token is a single lexical unit: a kind, its verbatim source slice (the
// lexeme), and the span it occupies.
type Token struct {
	Kind   Kind      `json:"kind"`
	Lexeme string    `json:"lexeme"`
	Span   span.Span `json:"span"`
}

// Reserved is the keyword set: identifiers lexed as Keyword
// rather than Identifier.
var Reserved = map[string]bool{
	"network": true, "terminal": true, "net": true, "subnetwork": true,
	"member": true, "messages": true, "filters": true, "inbound": true,
	"outbound": true, "accept": true, "drop": true, "where": true,
	"link": true, "classification": true, "track_number": true,
	"platform_type": true, "role": true, "subscribes": true,
	"transmits": true, "net_number": true, "npg": true, "stacked": true,
	"stacking_level": true, "tsdf": true, "participants": true,
	"enabled": true, "operating_mode": true, "data_rate": true,
	"unit_id": true, "forwarding": true, "quality": true, "age": true,
}
