package ast

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
)

// reconstruct renders a Document back to TDL-shaped text. It is test-only:
// a stand-in for the out-of-scope exporter, checked here only for the
// declarations and properties it writes (filter blocks are not rendered).
// Its output is never parsed again; the variant-tag round-trip law is
// checked separately through a JSON marshal/unmarshal cycle.
func reconstruct(doc *Document) string {
	var b strings.Builder
	for _, net := range doc.Networks {
		fmt.Fprintf(&b, "network %q {\n", net.Name)
		writeProperties(&b, net.Properties, "  ")
		for _, term := range net.Terminals {
			fmt.Fprintf(&b, "  terminal %q {\n", term.Name)
			writeProperties(&b, term.Properties, "    ")
			b.WriteString("  }\n")
		}
		for _, n := range net.Nets {
			fmt.Fprintf(&b, "  net %q {\n", n.Name)
			writeProperties(&b, n.Properties, "    ")
			b.WriteString("  }\n")
		}
		for _, sub := range net.Subnetworks {
			fmt.Fprintf(&b, "  subnetwork %q {\n", sub.Name)
			writeProperties(&b, sub.Properties, "    ")
			for _, m := range sub.Members {
				fmt.Fprintf(&b, "    member %q {\n", m.Name)
				writeProperties(&b, m.Properties, "      ")
				b.WriteString("    }\n")
			}
			b.WriteString("  }\n")
		}
		if net.Messages != nil {
			b.WriteString("  messages {\n")
			for _, e := range net.Messages.Entries {
				fmt.Fprintf(&b, "    %s {\n", e.MessageID)
				writeProperties(&b, e.Properties, "      ")
				b.WriteString("    }\n")
			}
			b.WriteString("  }\n")
		}
		b.WriteString("}\n")
	}
	return b.String()
}

func writeProperties(b *strings.Builder, props []Property, indent string) {
	for _, p := range props {
		fmt.Fprintf(b, "%s%s: %s\n", indent, p.Key, renderValue(p.Value))
	}
}

func renderValue(v Value) string {
	switch v.Kind {
	case StringValue:
		return fmt.Sprintf("%q", v.Text)
	case NumberValue:
		return fmt.Sprintf("%g", v.Number)
	case PercentValue:
		return fmt.Sprintf("%g%%", v.Number)
	case DurationValue, HexValue, IdentifierValue:
		return v.Text
	case BooleanValue:
		return fmt.Sprintf("%t", v.Bool)
	case ArrayValue:
		return "[" + strings.Join(v.Items, ", ") + "]"
	default:
		return "<unknown>"
	}
}

func TestReconstructPreservesStructure(t *testing.T) {
	doc := &Document{
		Networks: []*Network{
			{
				Name: "Strike Group Alpha",
				Properties: []Property{
					{Key: "link", Value: Value{Kind: IdentifierValue, Text: "Link16"}},
				},
				Terminals: []*Terminal{
					{
						Name: "NCS-1",
						Properties: []Property{
							{Key: "role", Value: Value{Kind: IdentifierValue, Text: "NetControlStation"}},
						},
					},
				},
			},
		},
	}

	out := reconstruct(doc)
	for _, want := range []string{
		`network "Strike Group Alpha"`,
		`link: Link16`,
		`terminal "NCS-1"`,
		`role: NetControlStation`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("reconstruct output missing %q, got:\n%s", want, out)
		}
	}
}

// TestValueJSONRoundTrip is the round-trip law itself: every
// Property.Value variant's Kind and payload field survive a JSON
// marshal/unmarshal cycle unchanged.
func TestValueJSONRoundTrip(t *testing.T) {
	cases := []Value{
		{Kind: StringValue, Text: "terminal one"},
		{Kind: NumberValue, Number: 42},
		{Kind: PercentValue, Number: 90},
		{Kind: DurationValue, Text: "250ms"},
		{Kind: BooleanValue, Bool: true},
		{Kind: BooleanValue, Bool: false},
		{Kind: IdentifierValue, Text: "Participant"},
		{Kind: HexValue, Text: "0xA4F0"},
		{Kind: ArrayValue, Items: []string{"NPG_A", "NPG_B"}},
	}

	for _, want := range cases {
		t.Run(want.Kind.String(), func(t *testing.T) {
			data, err := json.Marshal(want)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			var got Value
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if got.Kind != want.Kind {
				t.Errorf("Kind: want %s, got %s", want.Kind, got.Kind)
			}
			if got.Text != want.Text {
				t.Errorf("Text: want %q, got %q", want.Text, got.Text)
			}
			if got.Number != want.Number {
				t.Errorf("Number: want %v, got %v", want.Number, got.Number)
			}
			if got.Bool != want.Bool {
				t.Errorf("Bool: want %v, got %v", want.Bool, got.Bool)
			}
			if len(got.Items) != len(want.Items) {
				t.Fatalf("Items: want %v, got %v", want.Items, got.Items)
			}
			for i := range want.Items {
				if got.Items[i] != want.Items[i] {
					t.Errorf("Items[%d]: want %q, got %q", i, want.Items[i], got.Items[i])
				}
			}
		})
	}
}

// TestReconstructedPropertyValuesRoundTripThroughJSON ties the two
// helpers together: properties produced by reconstruct's input document
// still carry their original variant tag after a JSON cycle, the same
// invariant an exporter/importer pair would need to uphold.
func TestReconstructedPropertyValuesRoundTripThroughJSON(t *testing.T) {
	net := &Network{
		Name: "N",
		Properties: []Property{
			{Key: "link", Value: Value{Kind: IdentifierValue, Text: "Link16"}},
			{Key: "quality", Value: Value{Kind: PercentValue, Number: 90}},
			{Key: "age", Value: Value{Kind: DurationValue, Text: "250ms"}},
			{Key: "subscribes", Value: Value{Kind: ArrayValue, Items: []string{"NPG_A", "NPG_B"}}},
		},
	}
	doc := &Document{Networks: []*Network{net}}
	_ = reconstruct(doc) // sanity: must not panic on a realistic document

	for _, p := range net.Properties {
		data, err := json.Marshal(p.Value)
		if err != nil {
			t.Fatalf("Marshal(%s): %v", p.Key, err)
		}
		var got Value
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("Unmarshal(%s): %v", p.Key, err)
		}
		if got.Kind != p.Value.Kind {
			t.Errorf("%s: Kind want %s, got %s", p.Key, p.Value.Kind, got.Kind)
		}
	}
}
