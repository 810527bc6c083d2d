package validator

import (
	"github.com/cosine-software/tdl/internal/ast"
	"github.com/cosine-software/tdl/internal/diag"
	"github.com/cosine-software/tdl/internal/specdb"
)

// ruleValidLinkType classifies the network's declared link type and
// reports an error when `link` is present but not Link16/Link22. Absence
// of `link` silently skips every link-specific rule.
func ruleValidLinkType(net *ast.Network, _ *specdb.DB) (LinkKind, []diag.Diagnostic) {
	prop, ok := getIdentifier(net.Properties, "link")
	if !ok {
		return LinkUnknown, nil
	}
	text, _ := prop.Value.AsIdentifier()
	switch text {
	case "Link16":
		return Link16, nil
	case "Link22":
		return Link22, nil
	default:
		return LinkUnknown, []diag.Diagnostic{
			diag.Rule(diag.Error, prop.Span, "valid-link-type", "",
				"link must be Link16 or Link22, got %q", text),
		}
	}
}

func ruleValidClassification(net *ast.Network, db *specdb.DB) []diag.Diagnostic {
	prop, ok := getIdentifier(net.Properties, "classification")
	if !ok {
		return nil
	}
	text, _ := prop.Value.AsIdentifier()
	if db.IsClassification(text) {
		return nil
	}
	return []diag.Diagnostic{
		diag.Rule(diag.Error, prop.Span, "valid-classification", "",
			"%q is not a declared classification level", text),
	}
}

func ruleTrackNumberUniqueness(net *ast.Network, _ *specdb.DB) []diag.Diagnostic {
	var out []diag.Diagnostic
	seen := map[string]bool{}
	for _, t := range net.Terminals {
		prop, ok := getNumeric(t.Properties, "track_number")
		if !ok {
			continue
		}
		key := numKey(prop.Value)
		if seen[key] {
			out = append(out, diag.Rule(diag.Error, prop.Span, "track-number-uniqueness", "",
				"track_number %s is already used by another terminal in this network", key))
			continue
		}
		seen[key] = true
	}
	return out
}

func ruleNetNumberUniqueness(net *ast.Network, _ *specdb.DB) []diag.Diagnostic {
	var out []diag.Diagnostic
	seen := map[string]bool{}
	for _, n := range net.Nets {
		prop, ok := getNumeric(n.Properties, "net_number")
		if !ok {
			continue
		}
		key := numKey(prop.Value)
		if seen[key] {
			out = append(out, diag.Rule(diag.Error, prop.Span, "net-number-uniqueness", "",
				"net_number %s is already used by another net in this network", key))
			continue
		}
		seen[key] = true
	}
	return out
}
