package ast

import (
	"encoding/json"
	"fmt"
)

// ValueKind is the closed set of Property value variants. The variant tag
// is chosen solely by the token kind the value derives from — never by a
// runtime coercion.
//
// The tagged-struct shape (a discriminant plus one field per variant)
// follows graph.Value in the ritamzico/pgraph example repo
// (internal/graph/value.go), which unions {Int, Float, String, Bool} the
// same way; it is generalized here to this engine's eight variants.
type ValueKind int

const (
	StringValue ValueKind = iota
	NumberValue
	PercentValue
	DurationValue
	BooleanValue
	IdentifierValue
	HexValue
	ArrayValue
)

func (k ValueKind) String() string {
	switch k {
	case StringValue:
		return "String"
	case NumberValue:
		return "Number"
	case PercentValue:
		return "Percent"
	case DurationValue:
		return "Duration"
	case BooleanValue:
		return "Boolean"
	case IdentifierValue:
		return "Identifier"
	case HexValue:
		return "Hex"
	case ArrayValue:
		return "Array"
	default:
		return "Unknown"
	}
}

// Value is a Property's value: a tagged union with one variant per token
// kind the parser can produce a value from. Only the field(s) matching
// Kind are meaningful.
type Value struct {
	Kind ValueKind

	Text   string  // String, Identifier: decoded/raw text. Duration, Hex: raw lexeme.
	Number float64 // Number, Percent
	Bool   bool    // Boolean
	Items  []string // Array: element lexemes, source order
}

// AsIdentifier returns (text, true) when the value is a String or
// Identifier — the two variants validator.getIdentifier accepts.
func (v Value) AsIdentifier() (string, bool) {
	switch v.Kind {
	case StringValue, IdentifierValue:
		return v.Text, true
	default:
		return "", false
	}
}

// jsonValue is Value's wire shape: the variant tag spelled out as a
// string (so the JSON stays readable) plus only the field(s) that
// variant carries.
type jsonValue struct {
	Kind   string   `json:"kind"`
	Text   string   `json:"text,omitempty"`
	Number float64  `json:"number,omitempty"`
	Bool   bool     `json:"bool,omitempty"`
	Items  []string `json:"items,omitempty"`
}

// MarshalJSON serializes Value with its variant tag spelled out, so the
// tag survives alongside whichever field(s) are meaningful for it.
func (v Value) MarshalJSON() ([]byte, error) {
	jv := jsonValue{Kind: v.Kind.String()}
	switch v.Kind {
	case StringValue, IdentifierValue, DurationValue, HexValue:
		jv.Text = v.Text
	case NumberValue, PercentValue:
		jv.Number = v.Number
	case BooleanValue:
		jv.Bool = v.Bool
	case ArrayValue:
		jv.Items = v.Items
	}
	return json.Marshal(jv)
}

// UnmarshalJSON parses a Value back from its wire shape, restoring the
// Kind its tag names and only the field(s) that Kind carries.
func (v *Value) UnmarshalJSON(data []byte) error {
	var jv jsonValue
	if err := json.Unmarshal(data, &jv); err != nil {
		return err
	}
	var kind ValueKind
	switch jv.Kind {
	case "String":
		kind = StringValue
	case "Number":
		kind = NumberValue
	case "Percent":
		kind = PercentValue
	case "Duration":
		kind = DurationValue
	case "Boolean":
		kind = BooleanValue
	case "Identifier":
		kind = IdentifierValue
	case "Hex":
		kind = HexValue
	case "Array":
		kind = ArrayValue
	default:
		return fmt.Errorf("ast: unknown value kind %q", jv.Kind)
	}
	*v = Value{Kind: kind, Text: jv.Text, Number: jv.Number, Bool: jv.Bool, Items: jv.Items}
	return nil
}
