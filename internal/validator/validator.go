// Package validator walks a parsed Document and emits the semantic and
// domain-rule diagnostics described by the rule catalog: reference/type
// checks that apply regardless of link type, followed by the Link-16 or
// Link-22 rule set selected by each network's declared `link` property.
// The validator only reads the AST; it never mutates it.
//
// Each rule is a pure function over (*ast.Network, *specdb.DB) returning
// its own diagnostic slice, with no hidden state; ruleValidLinkType also
// returns the LinkKind that selects the link-specific rule set.
// github.com/samber/lo supplies the lo.Contains membership test the
// Link-16 rules lean on.
package validator

import (
	"strconv"

	"github.com/cosine-software/tdl/internal/ast"
	"github.com/cosine-software/tdl/internal/diag"
	"github.com/cosine-software/tdl/internal/specdb"
)

// LinkKind is the closed set of link types a network may declare.
type LinkKind int

const (
	LinkUnknown LinkKind = iota
	Link16
	Link22
)

// Validate runs the full rule catalog, network by network, in document
// order, and returns the concatenation of every rule's output in the
// fixed catalog order.
func Validate(doc *ast.Document, db *specdb.DB) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, net := range doc.Networks {
		out = append(out, validateNetwork(net, db)...)
	}
	return out
}

func validateNetwork(net *ast.Network, db *specdb.DB) []diag.Diagnostic {
	var out []diag.Diagnostic

	kind, linkDiags := ruleValidLinkType(net, db)
	out = append(out, linkDiags...)
	out = append(out, ruleValidClassification(net, db)...)
	out = append(out, ruleTrackNumberUniqueness(net, db)...)
	out = append(out, ruleNetNumberUniqueness(net, db)...)

	switch kind {
	case Link16:
		out = append(out, link16Rules(net, db)...)
	case Link22:
		out = append(out, link22Rules(net, db)...)
	}

	return out
}

// ---- property lookup helpers ----

// getProperty returns the first property keyed by key, if any.
func getProperty(props []ast.Property, key string) (ast.Property, bool) {
	for _, p := range props {
		if p.Key == key {
			return p, true
		}
	}
	return ast.Property{}, false
}

// getIdentifier is the shared get_identifier lookup: the first property
// keyed by key whose value is an Identifier or String.
func getIdentifier(props []ast.Property, key string) (ast.Property, bool) {
	for _, p := range props {
		if p.Key != key {
			continue
		}
		if _, ok := p.Value.AsIdentifier(); ok {
			return p, true
		}
	}
	return ast.Property{}, false
}

func getNumeric(props []ast.Property, key string) (ast.Property, bool) {
	for _, p := range props {
		if p.Key != key {
			continue
		}
		if p.Value.Kind == ast.NumberValue || p.Value.Kind == ast.PercentValue {
			return p, true
		}
	}
	return ast.Property{}, false
}

func getBool(props []ast.Property, key string) (ast.Property, bool) {
	for _, p := range props {
		if p.Key == key && p.Value.Kind == ast.BooleanValue {
			return p, true
		}
	}
	return ast.Property{}, false
}

func getHex(props []ast.Property, key string) (ast.Property, bool) {
	for _, p := range props {
		if p.Key == key && p.Value.Kind == ast.HexValue {
			return p, true
		}
	}
	return ast.Property{}, false
}

func getArray(props []ast.Property, key string) (ast.Property, bool) {
	for _, p := range props {
		if p.Key == key && p.Value.Kind == ast.ArrayValue {
			return p, true
		}
	}
	return ast.Property{}, false
}

// numKey renders a Number/Percent value as a stable map key for the
// *-uniqueness rules.
func numKey(v ast.Value) string {
	return strconv.FormatFloat(v.Number, 'g', -1, 64)
}
