package validator

import (
	"github.com/samber/lo"

	"github.com/cosine-software/tdl/internal/ast"
	"github.com/cosine-software/tdl/internal/diag"
	"github.com/cosine-software/tdl/internal/specdb"
)

// link16Rules runs the Link-16 rule set, in catalog order, for a network
// already classified as Link16 by ruleValidLinkType.
func link16Rules(net *ast.Network, db *specdb.DB) []diag.Diagnostic {
	var out []diag.Diagnostic
	out = append(out, ruleNCSRequired(net, db)...)
	out = append(out, ruleValidRoleLink16(net, db)...)
	out = append(out, ruleValidPlatformType(net, db)...)
	out = append(out, ruleValidTrackNumber(net, db)...)
	out = append(out, ruleValidNetNumber(net, db)...)
	out = append(out, ruleValidTSDF(net, db)...)
	out = append(out, ruleTotalTSDFBudget(net, db)...)
	out = append(out, ruleStackingConsistency(net, db)...)
	out = append(out, ruleNPGSubscriberCoverage(net, db)...)
	out = append(out, rulePPLIRequired(net, db)...)
	out = append(out, ruleValidNPGReferenceLink16(net, db)...)
	out = append(out, ruleValidJMessageReference(net, db)...)
	out = append(out, ruleMessageNPGMatch(net, db)...)
	out = append(out, ruleParticipantReference(net, db)...)
	out = append(out, ruleRequiredPropertyLink16(net, db)...)
	return out
}

func ruleNCSRequired(net *ast.Network, _ *specdb.DB) []diag.Diagnostic {
	var ncsCount int
	var out []diag.Diagnostic
	for _, t := range net.Terminals {
		prop, ok := getIdentifier(t.Properties, "role")
		if !ok {
			continue
		}
		text, _ := prop.Value.AsIdentifier()
		if text != "NetControlStation" {
			continue
		}
		ncsCount++
		if ncsCount > 1 {
			out = append(out, diag.Rule(diag.Error, t.Span, "ncs-required", "",
				"terminal %q: only one NetControlStation is permitted per network", t.Name))
		}
	}
	if ncsCount == 0 {
		out = append([]diag.Diagnostic{
			diag.Rule(diag.Error, net.Span, "ncs-required", "",
				"network %q has no terminal with role: NetControlStation", net.Name),
		}, out...)
	}
	return out
}

func ruleValidRoleLink16(net *ast.Network, db *specdb.DB) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, t := range net.Terminals {
		prop, ok := getIdentifier(t.Properties, "role")
		if !ok {
			continue
		}
		text, _ := prop.Value.AsIdentifier()
		if !db.IsLink16Role(text) {
			out = append(out, diag.Rule(diag.Error, prop.Span, "valid-role", "",
				"%q is not a declared Link-16 role", text))
		}
	}
	return out
}

func ruleValidPlatformType(net *ast.Network, db *specdb.DB) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, t := range net.Terminals {
		prop, ok := getIdentifier(t.Properties, "platform_type")
		if !ok {
			continue
		}
		text, _ := prop.Value.AsIdentifier()
		if !db.IsPlatformType(text) {
			out = append(out, diag.Rule(diag.Warning, prop.Span, "valid-platform-type", "",
				"%q is not a declared platform type", text))
		}
	}
	return out
}

func ruleValidTrackNumber(net *ast.Network, _ *specdb.DB) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, t := range net.Terminals {
		prop, ok := getNumeric(t.Properties, "track_number")
		if !ok {
			continue
		}
		if prop.Value.Number < 0 || prop.Value.Number > 77777 {
			out = append(out, diag.Rule(diag.Error, prop.Span, "valid-track-number", "",
				"track_number %v out of range 0..=77777", prop.Value.Number))
		}
	}
	return out
}

func ruleValidNetNumber(net *ast.Network, _ *specdb.DB) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, n := range net.Nets {
		prop, ok := getNumeric(n.Properties, "net_number")
		if !ok {
			continue
		}
		if prop.Value.Number < 0 || prop.Value.Number > 127 {
			out = append(out, diag.Rule(diag.Error, prop.Span, "valid-net-number", "",
				"net_number %v out of range 0..=127", prop.Value.Number))
		}
	}
	return out
}

func ruleValidTSDF(net *ast.Network, _ *specdb.DB) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, n := range net.Nets {
		prop, ok := getNumeric(n.Properties, "tsdf")
		if !ok {
			continue
		}
		if prop.Value.Number < 0 || prop.Value.Number > 100 {
			out = append(out, diag.Rule(diag.Error, prop.Span, "valid-tsdf", "",
				"tsdf %v%% out of range 0..=100", prop.Value.Number))
		}
	}
	return out
}

func ruleTotalTSDFBudget(net *ast.Network, _ *specdb.DB) []diag.Diagnostic {
	var sum float64
	for _, n := range net.Nets {
		if prop, ok := getNumeric(n.Properties, "tsdf"); ok {
			sum += prop.Value.Number
		}
	}
	switch {
	case sum > 100:
		return []diag.Diagnostic{diag.Rule(diag.Error, net.Span, "total-tsdf-budget", "",
			"network %q: total tsdf budget is %v%%, exceeding 100%%", net.Name, sum)}
	case sum > 90:
		return []diag.Diagnostic{diag.Rule(diag.Warning, net.Span, "total-tsdf-budget", "",
			"network %q: total tsdf budget is %v%%, approaching the 100%% limit", net.Name, sum)}
	default:
		return nil
	}
}

func ruleStackingConsistency(net *ast.Network, _ *specdb.DB) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, n := range net.Nets {
		stackedProp, hasStacked := getBool(n.Properties, "stacked")
		stacked := hasStacked && stackedProp.Value.Bool
		levelProp, hasLevel := getNumeric(n.Properties, "stacking_level")

		switch {
		case stacked && !hasLevel:
			out = append(out, diag.Rule(diag.Error, n.Span, "stacking-consistency", "",
				"net %q: stacked: true requires a stacking_level property", n.Name))
		case stacked && hasLevel:
			if levelProp.Value.Number != 2 && levelProp.Value.Number != 4 {
				out = append(out, diag.Rule(diag.Error, levelProp.Span, "stacking-consistency", "",
					"stacking_level must be 2 or 4, got %v", levelProp.Value.Number))
			}
		case !stacked && hasLevel:
			out = append(out, diag.Rule(diag.Warning, levelProp.Span, "stacking-consistency", "",
				"stacking_level is present but stacked is missing or false"))
		}
	}
	return out
}

func ruleNPGSubscriberCoverage(net *ast.Network, _ *specdb.DB) []diag.Diagnostic {
	var out []diag.Diagnostic
	for i, t := range net.Terminals {
		transmits, ok := getArray(t.Properties, "transmits")
		if !ok {
			continue
		}
		for _, npgID := range transmits.Value.Items {
			covered := false
			for j, other := range net.Terminals {
				if j == i {
					continue
				}
				subs, ok := getArray(other.Properties, "subscribes")
				if !ok {
					continue
				}
				if lo.Contains(subs.Value.Items, npgID) {
					covered = true
					break
				}
			}
			if !covered {
				out = append(out, diag.Rule(diag.Warning, transmits.Span, "npg-subscriber-coverage", "",
					"no other terminal subscribes to %s, transmitted by %q", npgID, t.Name))
			}
		}
	}
	return out
}

func rulePPLIRequired(net *ast.Network, _ *specdb.DB) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, t := range net.Terminals {
		subs, ok := getArray(t.Properties, "subscribes")
		if !ok {
			continue
		}
		if !lo.Contains(subs.Value.Items, "NPG_A") && !lo.Contains(subs.Value.Items, "NPG_B") {
			out = append(out, diag.Rule(diag.Warning, subs.Span, "ppli-required", "",
				"terminal %q subscribes to no PPLI channel (NPG_A or NPG_B)", t.Name))
		}
	}
	return out
}

func ruleValidNPGReferenceLink16(net *ast.Network, db *specdb.DB) []diag.Diagnostic {
	var out []diag.Diagnostic
	checkArray := func(prop ast.Property) {
		for _, id := range prop.Value.Items {
			if !db.IsNPG(id) {
				out = append(out, diag.Rule(diag.Error, prop.Span, "valid-npg-reference", "",
					"%q is not a declared NPG", id))
			}
		}
	}
	for _, t := range net.Terminals {
		if prop, ok := getArray(t.Properties, "subscribes"); ok {
			checkArray(prop)
		}
		if prop, ok := getArray(t.Properties, "transmits"); ok {
			checkArray(prop)
		}
	}
	for _, n := range net.Nets {
		if prop, ok := getIdentifier(n.Properties, "npg"); ok {
			text, _ := prop.Value.AsIdentifier()
			if !db.IsNPG(text) {
				out = append(out, diag.Rule(diag.Error, prop.Span, "valid-npg-reference", "",
					"%q is not a declared NPG", text))
			}
		}
	}
	return out
}

func ruleValidJMessageReference(net *ast.Network, db *specdb.DB) []diag.Diagnostic {
	if net.Messages == nil {
		return nil
	}
	var out []diag.Diagnostic
	for _, e := range net.Messages.Entries {
		if !db.IsJMessage(e.MessageID) {
			out = append(out, diag.Rule(diag.Error, e.Span, "valid-j-message-reference", "",
				"%q is not a declared J-message", e.MessageID))
		}
	}
	return out
}

func ruleMessageNPGMatch(net *ast.Network, db *specdb.DB) []diag.Diagnostic {
	if net.Messages == nil {
		return nil
	}
	var out []diag.Diagnostic
	for _, e := range net.Messages.Entries {
		prop, ok := getIdentifier(e.Properties, "npg")
		if !ok {
			continue
		}
		npgID, _ := prop.Value.AsIdentifier()
		msg, ok := db.JMessage(e.MessageID)
		if !ok {
			continue // valid-j-message-reference already reported this
		}
		if !lo.Contains(msg.ValidNPGs, npgID) {
			out = append(out, diag.Rule(diag.Error, e.Span, "message-npg-match", msg.SpecRef,
				"%s is not valid on %s (valid NPGs: %v)", e.MessageID, npgID, msg.ValidNPGs))
		}
	}
	return out
}

func ruleParticipantReference(net *ast.Network, _ *specdb.DB) []diag.Diagnostic {
	names := map[string]bool{}
	for _, t := range net.Terminals {
		names[t.Name] = true
	}
	var out []diag.Diagnostic
	for _, n := range net.Nets {
		prop, ok := getArray(n.Properties, "participants")
		if !ok {
			continue
		}
		for _, name := range prop.Value.Items {
			if !names[name] {
				out = append(out, diag.Rule(diag.Error, prop.Span, "participant-reference", "",
					"%q does not match a declared terminal in this network", name))
			}
		}
	}
	return out
}

func ruleRequiredPropertyLink16(net *ast.Network, _ *specdb.DB) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, t := range net.Terminals {
		if _, ok := getProperty(t.Properties, "role"); !ok {
			out = append(out, diag.Rule(diag.Warning, t.Span, "required-property", "",
				"terminal %q has no role", t.Name))
		}
	}
	for _, n := range net.Nets {
		if _, ok := getProperty(n.Properties, "net_number"); !ok {
			out = append(out, diag.Rule(diag.Warning, n.Span, "required-property", "",
				"net %q has no net_number", n.Name))
		}
	}
	return out
}
