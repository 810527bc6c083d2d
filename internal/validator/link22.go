package validator

import (
	"strings"

	"github.com/cosine-software/tdl/internal/ast"
	"github.com/cosine-software/tdl/internal/diag"
	"github.com/cosine-software/tdl/internal/specdb"
)

// link22Rules runs the Link-22 rule set, in catalog order, for a network
// already classified as Link22 by ruleValidLinkType.
func link22Rules(net *ast.Network, db *specdb.DB) []diag.Diagnostic {
	var out []diag.Diagnostic
	out = append(out, ruleValidRoleLink22(net, db)...)
	out = append(out, ruleValidOperatingMode(net, db)...)
	out = append(out, ruleValidDataRate(net, db)...)
	out = append(out, ruleValidUnitID(net, db)...)
	out = append(out, ruleValidForwarding(net, db)...)
	out = append(out, ruleLink22ControllerRequired(net, db)...)
	out = append(out, ruleLink22Forwarding(net, db)...)
	out = append(out, ruleUnitIDUniqueness(net, db)...)
	out = append(out, ruleRequiredPropertyLink22(net, db)...)
	return out
}

func ruleValidRoleLink22(net *ast.Network, db *specdb.DB) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, sub := range net.Subnetworks {
		for _, m := range sub.Members {
			prop, ok := getIdentifier(m.Properties, "role")
			if !ok {
				continue
			}
			text, _ := prop.Value.AsIdentifier()
			if !db.IsLink22Role(text) {
				out = append(out, diag.Rule(diag.Error, prop.Span, "valid-role", "",
					"%q is not a declared Link-22 role", text))
			}
		}
	}
	return out
}

func ruleValidOperatingMode(net *ast.Network, db *specdb.DB) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, sub := range net.Subnetworks {
		prop, ok := getIdentifier(sub.Properties, "operating_mode")
		if !ok {
			continue
		}
		text, _ := prop.Value.AsIdentifier()
		if !db.IsOperatingMode(text) {
			out = append(out, diag.Rule(diag.Error, prop.Span, "valid-operating-mode", "",
				"%q is not a declared Link-22 operating mode", text))
		}
	}
	return out
}

func ruleValidDataRate(net *ast.Network, db *specdb.DB) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, sub := range net.Subnetworks {
		prop, ok := getIdentifier(sub.Properties, "data_rate")
		if !ok {
			continue
		}
		text, _ := prop.Value.AsIdentifier()
		if !db.IsDataRate(text) {
			out = append(out, diag.Rule(diag.Error, prop.Span, "valid-data-rate", "",
				"%q is not a declared Link-22 data rate", text))
		}
	}
	return out
}

func ruleValidUnitID(net *ast.Network, _ *specdb.DB) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, sub := range net.Subnetworks {
		for _, m := range sub.Members {
			prop, present := getProperty(m.Properties, "unit_id")
			if !present {
				continue
			}
			if prop.Value.Kind != ast.HexValue {
				out = append(out, diag.Rule(diag.Error, prop.Span, "valid-unit-id", "",
					"unit_id must be a hex literal, got %s", prop.Value.Kind))
			}
		}
	}
	return out
}

func ruleValidForwarding(net *ast.Network, _ *specdb.DB) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, sub := range net.Subnetworks {
		for _, m := range sub.Members {
			prop, ok := getIdentifier(m.Properties, "forwarding")
			if !ok {
				continue
			}
			text, _ := prop.Value.AsIdentifier()
			if text != "enabled" && text != "disabled" {
				out = append(out, diag.Rule(diag.Error, prop.Span, "valid-forwarding", "",
					"forwarding must be enabled or disabled, got %q", text))
			}
		}
	}
	return out
}

func ruleLink22ControllerRequired(net *ast.Network, _ *specdb.DB) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, sub := range net.Subnetworks {
		hasController := false
		for _, m := range sub.Members {
			prop, ok := getIdentifier(m.Properties, "role")
			if !ok {
				continue
			}
			text, _ := prop.Value.AsIdentifier()
			if text == "Controller" {
				hasController = true
				break
			}
		}
		if !hasController {
			out = append(out, diag.Rule(diag.Error, sub.Span, "link22-controller-required", "",
				"subnetwork %q has no member with role: Controller", sub.Name))
		}
	}
	return out
}

func ruleLink22Forwarding(net *ast.Network, _ *specdb.DB) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, sub := range net.Subnetworks {
		if len(sub.Members) == 0 {
			continue
		}
		hasForwarder := false
		for _, m := range sub.Members {
			prop, ok := getIdentifier(m.Properties, "forwarding")
			if !ok {
				continue
			}
			text, _ := prop.Value.AsIdentifier()
			if text == "enabled" {
				hasForwarder = true
				break
			}
		}
		if !hasForwarder {
			out = append(out, diag.Rule(diag.Error, sub.Span, "link22-forwarding", "",
				"subnetwork %q has no member with forwarding: enabled", sub.Name))
		}
	}
	return out
}

func ruleUnitIDUniqueness(net *ast.Network, _ *specdb.DB) []diag.Diagnostic {
	type occurrence struct {
		name string
		prop ast.Property
	}
	byUnitID := map[string][]occurrence{}
	var order []string
	for _, sub := range net.Subnetworks {
		for _, m := range sub.Members {
			prop, ok := getHex(m.Properties, "unit_id")
			if !ok {
				continue
			}
			key := strings.ToLower(prop.Value.Text)
			if _, seen := byUnitID[key]; !seen {
				order = append(order, key)
			}
			byUnitID[key] = append(byUnitID[key], occurrence{name: m.Name, prop: prop})
		}
	}
	var out []diag.Diagnostic
	for _, key := range order {
		occs := byUnitID[key]
		firstName := occs[0].name
		for _, o := range occs[1:] {
			if o.name == firstName {
				continue // dual membership with the same name: allowed
			}
			out = append(out, diag.Rule(diag.Warning, o.prop.Span, "unit-id-uniqueness", "",
				"unit_id %s is shared by %q and %q", o.prop.Value.Text, firstName, o.name))
		}
	}
	return out
}

func ruleRequiredPropertyLink22(net *ast.Network, _ *specdb.DB) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, sub := range net.Subnetworks {
		for _, m := range sub.Members {
			if _, ok := getProperty(m.Properties, "role"); !ok {
				out = append(out, diag.Rule(diag.Warning, m.Span, "required-property", "",
					"member %q has no role", m.Name))
			}
			if _, ok := getProperty(m.Properties, "unit_id"); !ok {
				out = append(out, diag.Rule(diag.Warning, m.Span, "required-property", "",
					"member %q has no unit_id", m.Name))
			}
		}
	}
	return out
}
