// Package diag defines the Diagnostic record shared by the parser and the
// validator, the single stable contract shared between them.
//
// A Diagnostic carries a Severity, an optional stable Rule code, a Span,
// and a formatted Message, plus an optional SpecRef for diagnostics tied
// to a specific domain rule.
package diag

import (
	"encoding/json"
	"fmt"

	"github.com/cosine-software/tdl/internal/span"
)

// Severity is the closed set of diagnostic severities. Info and Hint are
// reserved for advisory notes and host-side quick-fixes respectively; the
// core engine never emits them.
type Severity int

const (
	Error Severity = iota
	Warning
	Info
	Hint
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	case Hint:
		return "hint"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes Severity as its wire name ("error", "warning",
// "info", "hint") rather than its underlying int value.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON parses a severity wire name back into a Severity.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "error":
		*s = Error
	case "warning":
		*s = Warning
	case "info":
		*s = Info
	case "hint":
		*s = Hint
	default:
		return fmt.Errorf("diag: unknown severity %q", name)
	}
	return nil
}

// Diagnostic is the engine's single diagnostic record. Syntax diagnostics
// (from the parser) never carry a Rule. Semantic and domain diagnostics
// (from the validator) always carry a Rule, and domain diagnostics carry a
// SpecRef when a spec section is known.
type Diagnostic struct {
	Message  string    `json:"message"`
	Severity Severity  `json:"severity"`
	Span     span.Span `json:"span"`
	Rule     string    `json:"rule,omitempty"`     // "" for syntax diagnostics
	SpecRef  string    `json:"spec_ref,omitempty"` // "" unless a reference-database cross-reference is known
}

func (d Diagnostic) String() string {
	if d.Rule == "" {
		return fmt.Sprintf("%s: %s: %s", d.Span, d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: %s[%s]: %s", d.Span, d.Severity, d.Rule, d.Message)
}

// Syntax builds a parser-level diagnostic: always an error, never a rule.
func Syntax(sp span.Span, format string, args ...any) Diagnostic {
	return Diagnostic{
		Message:  fmt.Sprintf(format, args...),
		Severity: Error,
		Span:     sp,
	}
}

// Rule builds a validator-level diagnostic for a rule-catalog entry.
func Rule(severity Severity, sp span.Span, rule, specRef, format string, args ...any) Diagnostic {
	return Diagnostic{
		Message:  fmt.Sprintf(format, args...),
		Severity: severity,
		Span:     sp,
		Rule:     rule,
		SpecRef:  specRef,
	}
}
