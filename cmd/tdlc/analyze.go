package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/cosine-software/tdl"
	"github.com/cosine-software/tdl/internal/ast"
	"github.com/cosine-software/tdl/internal/diag"
)

var argsAnalyze struct {
	quiet bool
	ast   bool
}

var cmdAnalyze = &cobra.Command{
	Use:   "analyze [file]",
	Short: "analyze a TDL source file (or stdin) and print its diagnostics",
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := readSource(args)
		if err != nil {
			return err
		}

		result := tdl.Analyze(source)
		if argsAnalyze.ast {
			printAST(cmd.OutOrStdout(), result.AST)
		}
		printDiagnostics(cmd.OutOrStdout(), result.Diagnostics)

		if !argsAnalyze.quiet {
			errCount, warnCount := countBySeverity(result.Diagnostics)
			fmt.Fprintf(cmd.OutOrStdout(), "%s networks, %s errors, %s warnings\n",
				humanize.Comma(int64(len(result.AST.Networks))),
				humanize.Comma(int64(errCount)),
				humanize.Comma(int64(warnCount)))
		}
		if hasErrors(result.Diagnostics) {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	cmdAnalyze.Flags().BoolVar(&argsAnalyze.quiet, "quiet", false, "suppress the trailing summary line")
	cmdAnalyze.Flags().BoolVar(&argsAnalyze.ast, "ast", false, "print a structural dump of the parsed AST before diagnostics")
}

// printAST writes an indented structural dump of doc: one line per
// declaration and property, nested to match the source's block
// structure.
func printAST(w io.Writer, doc *ast.Document) {
	for _, net := range doc.Networks {
		fmt.Fprintf(w, "network %q\n", net.Name)
		printProperties(w, net.Properties, "  ")
		for _, term := range net.Terminals {
			fmt.Fprintf(w, "  terminal %q\n", term.Name)
			printProperties(w, term.Properties, "    ")
		}
		for _, n := range net.Nets {
			fmt.Fprintf(w, "  net %q\n", n.Name)
			printProperties(w, n.Properties, "    ")
		}
		for _, sub := range net.Subnetworks {
			fmt.Fprintf(w, "  subnetwork %q\n", sub.Name)
			printProperties(w, sub.Properties, "    ")
			for _, m := range sub.Members {
				fmt.Fprintf(w, "    member %q\n", m.Name)
				printProperties(w, m.Properties, "      ")
			}
		}
		if net.Messages != nil {
			fmt.Fprintln(w, "  messages")
			for _, e := range net.Messages.Entries {
				fmt.Fprintf(w, "    %s\n", e.MessageID)
				printProperties(w, e.Properties, "      ")
			}
		}
		if net.Filters != nil {
			fmt.Fprintln(w, "  filters")
			printFilterRules(w, "inbound", net.Filters.Inbound, "    ")
			printFilterRules(w, "outbound", net.Filters.Outbound, "    ")
		}
	}
}

func printProperties(w io.Writer, props []ast.Property, indent string) {
	for _, p := range props {
		fmt.Fprintf(w, "%s%s: %s (%s)\n", indent, p.Key, renderASTValue(p.Value), p.Value.Kind)
	}
}

func printFilterRules(w io.Writer, direction string, rules []*ast.FilterRule, indent string) {
	for _, r := range rules {
		where := ""
		if r.Where != nil {
			cond := r.Where.Condition
			where = fmt.Sprintf(" where %s %s %s", cond.Field, cond.Operator, cond.ValueLexeme)
		}
		fmt.Fprintf(w, "%s%s %s %s%s\n", indent, direction, r.Action, r.MessageID, where)
	}
}

func renderASTValue(v ast.Value) string {
	switch v.Kind {
	case ast.ArrayValue:
		return "[" + strings.Join(v.Items, ", ") + "]"
	case ast.BooleanValue:
		return fmt.Sprintf("%t", v.Bool)
	case ast.NumberValue:
		return fmt.Sprintf("%g", v.Number)
	case ast.PercentValue:
		return fmt.Sprintf("%g%%", v.Number)
	default:
		return v.Text
	}
}

func readSource(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(args[0])
	return string(data), err
}

func printDiagnostics(w io.Writer, diags []diag.Diagnostic) {
	for _, d := range diags {
		severityColor(d.Severity).Fprintf(w, "%s", d.Severity)
		fmt.Fprintf(w, " %s", d.Span)
		if d.Rule != "" {
			fmt.Fprintf(w, " [%s]", d.Rule)
		}
		fmt.Fprintf(w, ": %s\n", d.Message)
	}
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.Error:
		return color.New(color.FgRed, color.Bold)
	case diag.Warning:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgCyan)
	}
}

func countBySeverity(diags []diag.Diagnostic) (errs, warns int) {
	for _, d := range diags {
		switch d.Severity {
		case diag.Error:
			errs++
		case diag.Warning:
			warns++
		}
	}
	return errs, warns
}

func hasErrors(diags []diag.Diagnostic) bool {
	errs, _ := countBySeverity(diags)
	return errs > 0
}
