package validator_test

import (
	"strings"
	"testing"

	"github.com/cosine-software/tdl/internal/ast"
	"github.com/cosine-software/tdl/internal/diag"
	"github.com/cosine-software/tdl/internal/specdb"
	"github.com/cosine-software/tdl/internal/validator"
)

func ident(key, text string) ast.Property {
	return ast.Property{Key: key, Value: ast.Value{Kind: ast.IdentifierValue, Text: text}}
}

func str(key, text string) ast.Property {
	return ast.Property{Key: key, Value: ast.Value{Kind: ast.StringValue, Text: text}}
}

func num(key string, n float64) ast.Property {
	return ast.Property{Key: key, Value: ast.Value{Kind: ast.NumberValue, Number: n}}
}

func pct(key string, n float64) ast.Property {
	return ast.Property{Key: key, Value: ast.Value{Kind: ast.PercentValue, Number: n}}
}

func boolProp(key string, b bool) ast.Property {
	return ast.Property{Key: key, Value: ast.Value{Kind: ast.BooleanValue, Bool: b}}
}

func hex(key, text string) ast.Property {
	return ast.Property{Key: key, Value: ast.Value{Kind: ast.HexValue, Text: text}}
}

func arr(key string, items ...string) ast.Property {
	return ast.Property{Key: key, Value: ast.Value{Kind: ast.ArrayValue, Items: items}}
}

func hasRule(diags []diag.Diagnostic, rule string) bool {
	for _, d := range diags {
		if d.Rule == rule {
			return true
		}
	}
	return false
}

func countRule(diags []diag.Diagnostic, rule string) int {
	n := 0
	for _, d := range diags {
		if d.Rule == rule {
			n++
		}
	}
	return n
}

func TestValidLinkTypeRejectsUnknown(t *testing.T) {
	net := &ast.Network{Name: "N", Properties: []ast.Property{ident("link", "Link9")}}
	diags := validator.Validate(&ast.Document{Networks: []*ast.Network{net}}, specdb.Default())
	if !hasRule(diags, "valid-link-type") {
		t.Errorf("want valid-link-type diagnostic, got %v", diags)
	}
}

func TestValidLinkTypeAbsentSkipsLinkRules(t *testing.T) {
	net := &ast.Network{Name: "N"}
	diags := validator.Validate(&ast.Document{Networks: []*ast.Network{net}}, specdb.Default())
	if len(diags) != 0 {
		t.Errorf("want no diagnostics for a network with no link property, got %v", diags)
	}
}

func TestValidClassification(t *testing.T) {
	net := &ast.Network{Properties: []ast.Property{ident("classification", "EYES_ONLY")}}
	diags := validator.Validate(&ast.Document{Networks: []*ast.Network{net}}, specdb.Default())
	if !hasRule(diags, "valid-classification") {
		t.Errorf("want valid-classification diagnostic, got %v", diags)
	}
}

func TestTrackNumberUniqueness(t *testing.T) {
	net := &ast.Network{
		Properties: []ast.Property{ident("link", "Link16")},
		Terminals: []*ast.Terminal{
			{Name: "T1", Properties: []ast.Property{ident("role", "NetControlStation"), num("track_number", 100)}},
			{Name: "T2", Properties: []ast.Property{ident("role", "Participant"), num("track_number", 100)}},
		},
	}
	diags := validator.Validate(&ast.Document{Networks: []*ast.Network{net}}, specdb.Default())
	if countRule(diags, "track-number-uniqueness") != 1 {
		t.Errorf("want exactly 1 track-number-uniqueness diagnostic (second occurrence only), got %v", diags)
	}
}

func TestNetNumberUniqueness(t *testing.T) {
	net := &ast.Network{
		Properties: []ast.Property{ident("link", "Link16")},
		Terminals:  []*ast.Terminal{{Name: "T1", Properties: []ast.Property{ident("role", "NetControlStation")}}},
		Nets: []*ast.Net{
			{Name: "A", Properties: []ast.Property{num("net_number", 5)}},
			{Name: "B", Properties: []ast.Property{num("net_number", 5)}},
		},
	}
	diags := validator.Validate(&ast.Document{Networks: []*ast.Network{net}}, specdb.Default())
	if countRule(diags, "net-number-uniqueness") != 1 {
		t.Errorf("want exactly 1 net-number-uniqueness diagnostic, got %v", diags)
	}
}

func TestNCSRequired(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		net := &ast.Network{Name: "N", Properties: []ast.Property{ident("link", "Link16")}}
		diags := validator.Validate(&ast.Document{Networks: []*ast.Network{net}}, specdb.Default())
		if countRule(diags, "ncs-required") != 1 {
			t.Errorf("want 1 ncs-required diagnostic for zero NCS terminals, got %v", diags)
		}
	})
	t.Run("duplicate", func(t *testing.T) {
		net := &ast.Network{
			Name:       "N",
			Properties: []ast.Property{ident("link", "Link16")},
			Terminals: []*ast.Terminal{
				{Name: "T1", Properties: []ast.Property{ident("role", "NetControlStation")}},
				{Name: "T2", Properties: []ast.Property{ident("role", "NetControlStation")}},
			},
		}
		diags := validator.Validate(&ast.Document{Networks: []*ast.Network{net}}, specdb.Default())
		if countRule(diags, "ncs-required") != 1 {
			t.Errorf("want exactly 1 ncs-required diagnostic for the second NCS, got %v", diags)
		}
	})
}

func TestTotalTSDFBudget(t *testing.T) {
	t.Run("over budget", func(t *testing.T) {
		net := &ast.Network{
			Name:       "N",
			Properties: []ast.Property{ident("link", "Link16")},
			Terminals:  []*ast.Terminal{{Name: "T1", Properties: []ast.Property{ident("role", "NetControlStation")}}},
			Nets: []*ast.Net{
				{Name: "A", Properties: []ast.Property{pct("tsdf", 60)}},
				{Name: "B", Properties: []ast.Property{pct("tsdf", 50)}},
			},
		}
		diags := validator.Validate(&ast.Document{Networks: []*ast.Network{net}}, specdb.Default())
		var found *diag.Diagnostic
		for i := range diags {
			if diags[i].Rule == "total-tsdf-budget" {
				found = &diags[i]
			}
		}
		if found == nil {
			t.Fatalf("want a total-tsdf-budget diagnostic, got %v", diags)
		}
		if found.Severity != diag.Error {
			t.Errorf("severity: want Error, got %s", found.Severity)
		}
		if !strings.Contains(found.Message, "110%") {
			t.Errorf("message: want it to mention 110%%, got %q", found.Message)
		}
	})
	t.Run("approaching limit", func(t *testing.T) {
		net := &ast.Network{
			Name:       "N",
			Properties: []ast.Property{ident("link", "Link16")},
			Terminals:  []*ast.Terminal{{Name: "T1", Properties: []ast.Property{ident("role", "NetControlStation")}}},
			Nets:       []*ast.Net{{Name: "A", Properties: []ast.Property{pct("tsdf", 95)}}},
		}
		diags := validator.Validate(&ast.Document{Networks: []*ast.Network{net}}, specdb.Default())
		var found *diag.Diagnostic
		for i := range diags {
			if diags[i].Rule == "total-tsdf-budget" {
				found = &diags[i]
			}
		}
		if found == nil || found.Severity != diag.Warning {
			t.Errorf("want a Warning total-tsdf-budget diagnostic, got %v", found)
		}
	})
}

func TestStackingConsistency(t *testing.T) {
	for _, tc := range []struct {
		name  string
		props []ast.Property
		want  int
		sev   diag.Severity
	}{
		{"stacked without level", []ast.Property{boolProp("stacked", true)}, 1, diag.Error},
		{"stacked with bad level", []ast.Property{boolProp("stacked", true), num("stacking_level", 3)}, 1, diag.Error},
		{"stacked with good level", []ast.Property{boolProp("stacked", true), num("stacking_level", 2)}, 0, 0},
		{"level without stacked", []ast.Property{num("stacking_level", 2)}, 1, diag.Warning},
	} {
		t.Run(tc.name, func(t *testing.T) {
			net := &ast.Network{
				Name:       "N",
				Properties: []ast.Property{ident("link", "Link16")},
				Terminals:  []*ast.Terminal{{Name: "T1", Properties: []ast.Property{ident("role", "NetControlStation")}}},
				Nets:       []*ast.Net{{Name: "A", Properties: tc.props}},
			}
			diags := validator.Validate(&ast.Document{Networks: []*ast.Network{net}}, specdb.Default())
			got := countRule(diags, "stacking-consistency")
			if got != tc.want {
				t.Fatalf("stacking-consistency count: want %d, got %d (%v)", tc.want, got, diags)
			}
			if tc.want > 0 {
				for _, d := range diags {
					if d.Rule == "stacking-consistency" && d.Severity != tc.sev {
						t.Errorf("severity: want %s, got %s", tc.sev, d.Severity)
					}
				}
			}
		})
	}
}

func TestMessageNPGMatch(t *testing.T) {
	net := &ast.Network{
		Name:       "N",
		Properties: []ast.Property{ident("link", "Link16")},
		Terminals:  []*ast.Terminal{{Name: "T1", Properties: []ast.Property{ident("role", "NetControlStation")}}},
		Messages: &ast.MessageCatalog{Entries: []*ast.MessageEntry{
			{MessageID: "J3/2", Properties: []ast.Property{ident("npg", "NPG_6")}},
		}},
	}
	diags := validator.Validate(&ast.Document{Networks: []*ast.Network{net}}, specdb.Default())
	if !hasRule(diags, "message-npg-match") {
		t.Errorf("want a message-npg-match diagnostic for J3/2 on NPG_6, got %v", diags)
	}

	netOK := &ast.Network{
		Name:       "N",
		Properties: []ast.Property{ident("link", "Link16")},
		Terminals:  []*ast.Terminal{{Name: "T1", Properties: []ast.Property{ident("role", "NetControlStation")}}},
		Messages: &ast.MessageCatalog{Entries: []*ast.MessageEntry{
			{MessageID: "J3/2", Properties: []ast.Property{ident("npg", "NPG_7")}},
		}},
	}
	diagsOK := validator.Validate(&ast.Document{Networks: []*ast.Network{netOK}}, specdb.Default())
	if hasRule(diagsOK, "message-npg-match") {
		t.Errorf("want no message-npg-match diagnostic for J3/2 on NPG_7, got %v", diagsOK)
	}
}

func TestValidNPGReferenceLink16(t *testing.T) {
	net := &ast.Network{
		Name:       "N",
		Properties: []ast.Property{ident("link", "Link16")},
		Terminals: []*ast.Terminal{
			{Name: "T1", Properties: []ast.Property{ident("role", "NetControlStation"), arr("subscribes", "NPG_999")}},
		},
	}
	diags := validator.Validate(&ast.Document{Networks: []*ast.Network{net}}, specdb.Default())
	if !hasRule(diags, "valid-npg-reference") {
		t.Errorf("want a valid-npg-reference diagnostic, got %v", diags)
	}
}

func TestLink22ControllerAndForwardingRequired(t *testing.T) {
	net := &ast.Network{
		Name:       "N",
		Properties: []ast.Property{ident("link", "Link22")},
		Subnetworks: []*ast.Subnetwork{
			{Name: "Sub1", Members: []*ast.Member{
				{Name: "M1", Properties: []ast.Property{ident("role", "Participant"), hex("unit_id", "0x01")}},
			}},
		},
	}
	diags := validator.Validate(&ast.Document{Networks: []*ast.Network{net}}, specdb.Default())
	if !hasRule(diags, "link22-controller-required") {
		t.Errorf("want link22-controller-required, got %v", diags)
	}
	if !hasRule(diags, "link22-forwarding") {
		t.Errorf("want link22-forwarding, got %v", diags)
	}
}

func TestUnitIDUniquenessIsDeterministic(t *testing.T) {
	net := &ast.Network{
		Name:       "N",
		Properties: []ast.Property{ident("link", "Link22")},
		Subnetworks: []*ast.Subnetwork{
			{Name: "Sub1", Members: []*ast.Member{
				{Name: "M1", Properties: []ast.Property{ident("role", "Controller"), hex("unit_id", "0x01"), ident("forwarding", "enabled")}},
				{Name: "M2", Properties: []ast.Property{ident("role", "Participant"), hex("unit_id", "0x01")}},
			}},
		},
	}
	var first []diag.Diagnostic
	for i := 0; i < 10; i++ {
		diags := validator.Validate(&ast.Document{Networks: []*ast.Network{net}}, specdb.Default())
		var unitIDDiags []diag.Diagnostic
		for _, d := range diags {
			if d.Rule == "unit-id-uniqueness" {
				unitIDDiags = append(unitIDDiags, d)
			}
		}
		if i == 0 {
			first = unitIDDiags
			continue
		}
		if len(unitIDDiags) != len(first) {
			t.Fatalf("run %d: unit-id-uniqueness diagnostic count changed: %d vs %d", i, len(unitIDDiags), len(first))
		}
		for j := range unitIDDiags {
			if unitIDDiags[j].Message != first[j].Message {
				t.Fatalf("run %d: diagnostic order/content changed: %q vs %q", i, unitIDDiags[j].Message, first[j].Message)
			}
		}
	}
	if len(first) != 1 {
		t.Fatalf("want exactly 1 unit-id-uniqueness diagnostic, got %v", first)
	}
}

func TestValidUnitIDRequiresHex(t *testing.T) {
	net := &ast.Network{
		Name:       "N",
		Properties: []ast.Property{ident("link", "Link22")},
		Subnetworks: []*ast.Subnetwork{
			{Name: "Sub1", Members: []*ast.Member{
				{Name: "M1", Properties: []ast.Property{ident("role", "Controller"), str("unit_id", "not-hex"), ident("forwarding", "enabled")}},
			}},
		},
	}
	diags := validator.Validate(&ast.Document{Networks: []*ast.Network{net}}, specdb.Default())
	if !hasRule(diags, "valid-unit-id") {
		t.Errorf("want valid-unit-id diagnostic, got %v", diags)
	}
}

func TestRequiredPropertyWarnings(t *testing.T) {
	net := &ast.Network{
		Name:       "N",
		Properties: []ast.Property{ident("link", "Link16")},
		Terminals: []*ast.Terminal{
			{Name: "T1", Properties: []ast.Property{ident("role", "NetControlStation")}},
			{Name: "T2"}, // no role
		},
	}
	diags := validator.Validate(&ast.Document{Networks: []*ast.Network{net}}, specdb.Default())
	if countRule(diags, "required-property") != 1 {
		t.Errorf("want 1 required-property warning for T2, got %v", diags)
	}
}
