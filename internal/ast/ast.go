// Package ast defines the AST produced by internal/parser: a Document
// tolerant of partial or malformed input, every node carrying a Span
// covering its first through last consumed token.
//
// Node shapes are a small struct per declaration kind, each holding a
// Property list and a Span; composite nodes additionally hold ordered
// child slices.
package ast

import "github.com/cosine-software/tdl/internal/span"

// Document owns an ordered sequence of Network declarations. It is always
// present, even for empty or fully malformed input — possibly with zero
// networks.
type Document struct {
	Networks []*Network
}

// Property is a single key/value assignment, in source order. Duplicate
// keys are permitted syntactically; the validator decides whether to flag
// them.
type Property struct {
	Key   string
	Value Value
	Span  span.Span
}

// Network is the top-level declaration: a name, its own properties, and
// the ordered child declarations nested in its body.
type Network struct {
	Name        string
	Properties  []Property
	Terminals   []*Terminal
	Nets        []*Net
	Subnetworks []*Subnetwork
	Messages    *MessageCatalog // nil if absent
	Filters     *FilterBlock    // nil if absent
	Span        span.Span
}

// Terminal is a named declaration with a property list.
type Terminal struct {
	Name       string
	Properties []Property
	Span       span.Span
}

// Net is a named declaration with a property list.
type Net struct {
	Name       string
	Properties []Property
	Span       span.Span
}

// Member is a named declaration owned by a Subnetwork.
type Member struct {
	Name       string
	Properties []Property
	Span       span.Span
}

// Subnetwork additionally owns an ordered list of Member declarations.
type Subnetwork struct {
	Name       string
	Properties []Property
	Members    []*Member
	Span       span.Span
}

// MessageCatalog owns an ordered sequence of MessageEntry declarations.
// Duplicate message IDs are permitted syntactically.
type MessageCatalog struct {
	Entries []*MessageEntry
	Span    span.Span
}

// MessageEntry is a single catalog entry, keyed by a J-message identifier
// such as "J3/2".
type MessageEntry struct {
	MessageID  string
	Properties []Property
	Span       span.Span
}

// FilterAction is the closed set of FilterRule actions.
type FilterAction string

const (
	ActionAccept FilterAction = "accept"
	ActionDrop   FilterAction = "drop"
)

// FilterBlock holds the inbound/outbound filter rule lists.
type FilterBlock struct {
	Inbound  []*FilterRule
	Outbound []*FilterRule
	Span     span.Span
}

// FilterRule is one accept/drop rule, optionally guarded by a where
// clause. Action is always exactly "accept" or "drop"; any other value
// reaching a consumer is a parser bug.
type FilterRule struct {
	Action    FilterAction
	MessageID string
	Where     *WhereClause // nil if absent
	Span      span.Span
}

// WhereClause owns the single condition guarding a FilterRule.
type WhereClause struct {
	Condition Condition
	Span      span.Span
}

// Condition is a (field, operator, value-lexeme) triple. Operator is one
// of ">=", "<=", ">", "<", "==", "!=".
type Condition struct {
	Field       string
	Operator    string
	ValueLexeme string
	Span        span.Span
}
