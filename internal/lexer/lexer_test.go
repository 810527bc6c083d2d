package lexer_test

import (
	"testing"

	"github.com/go-test/deep"

	"github.com/cosine-software/tdl/internal/lexer"
	"github.com/cosine-software/tdl/internal/token"
)

// kindsAndLexemes strips spans (which carry exact offsets that would make
// every test case brittle to reformat) down to the (kind, lexeme) pairs
// that matter for these cases.
func kindsAndLexemes(toks []token.Token) []struct {
	Kind   token.Kind
	Lexeme string
} {
	out := make([]struct {
		Kind   token.Kind
		Lexeme string
	}, len(toks))
	for i, t := range toks {
		out[i].Kind = t.Kind
		out[i].Lexeme = t.Lexeme
	}
	return out
}

func TestLexPunctuationAndOperators(t *testing.T) {
	toks := lexer.Lex(`{}[]:,>=<=><=!====`)
	var got []token.Kind
	for _, tk := range toks {
		got = append(got, tk.Kind)
	}
	want := []token.Kind{
		token.LBrace, token.RBrace, token.LBracket, token.RBracket,
		token.Colon, token.Comma, token.GE, token.LE, token.GT, token.LE,
		token.NE, token.EQ, token.Unknown, token.EOF,
	}
	if diff := deep.Equal(got, want); diff != nil {
		for _, d := range diff {
			t.Error(d)
		}
	}
}

func TestLexLiterals(t *testing.T) {
	for _, tc := range []struct {
		name   string
		src    string
		kind   token.Kind
		lexeme string
	}{
		{"string", `"NCS-1"`, token.String, `"NCS-1"`},
		{"number", "42", token.Number, "42"},
		{"float", "3.14", token.Number, "3.14"},
		{"hex", "0xA4F0", token.HexNumber, "0xA4F0"},
		{"percent", "90%", token.Percent, "90%"},
		{"duration-ms", "250ms", token.Duration, "250ms"},
		{"duration-s", "30s", token.Duration, "30s"},
		{"duration-min", "5min", token.Duration, "5min"},
		{"duration-h", "2h", token.Duration, "2h"},
		{"bool-true", "true", token.Boolean, "true"},
		{"bool-false", "false", token.Boolean, "false"},
		{"jmessage", "J3/2", token.JMessage, "J3/2"},
		{"identifier", "NCS_1", token.Identifier, "NCS_1"},
		{"keyword", "network", token.Keyword, "network"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			toks := lexer.Lex(tc.src)
			if len(toks) < 1 {
				t.Fatalf("Lex(%q): no tokens", tc.src)
			}
			got := toks[0]
			if got.Kind != tc.kind {
				t.Errorf("Lex(%q): kind: want %s, got %s", tc.src, tc.kind, got.Kind)
			}
			if got.Lexeme != tc.lexeme {
				t.Errorf("Lex(%q): lexeme: want %q, got %q", tc.src, tc.lexeme, got.Lexeme)
			}
		})
	}
}

func TestLexWhitespaceDropped(t *testing.T) {
	toks := lexer.Lex("  \t  network")
	if len(toks) != 2 {
		t.Fatalf("want 2 tokens (keyword, EOF), got %d: %+v", len(toks), toks)
	}
	if toks[0].Kind != token.Keyword || toks[0].Lexeme != "network" {
		t.Errorf("want keyword 'network' first, got %+v", toks[0])
	}
}

func TestLexNewlineAndCommentRetained(t *testing.T) {
	toks := lexer.Lex("-- a comment\nnetwork")
	want := []struct {
		Kind   token.Kind
		Lexeme string
	}{
		{token.Comment, "-- a comment"},
		{token.Newline, "\n"},
		{token.Keyword, "network"},
		{token.EOF, ""},
	}
	got := kindsAndLexemes(toks)
	if diff := deep.Equal(got, want); diff != nil {
		for _, d := range diff {
			t.Error(d)
		}
	}
}

func TestLexUnterminatedString(t *testing.T) {
	toks := lexer.Lex(`"unterminated`)
	if len(toks) < 1 || toks[0].Kind != token.String {
		t.Fatalf("want a String token for unterminated input, got %+v", toks)
	}
	if toks[0].Lexeme != `"unterminated` {
		t.Errorf("want verbatim lexeme up to EOF, got %q", toks[0].Lexeme)
	}
}

func TestLexUnknownCharacter(t *testing.T) {
	toks := lexer.Lex("@")
	if len(toks) < 1 || toks[0].Kind != token.Unknown {
		t.Fatalf("want an Unknown token, got %+v", toks)
	}
}

func TestLexSpansTrackLineAndColumn(t *testing.T) {
	toks := lexer.Lex("network \"a\"\n  terminal")
	// "terminal" starts on line 2, column 3.
	var term token.Token
	for _, tk := range toks {
		if tk.Kind == token.Keyword && tk.Lexeme == "terminal" {
			term = tk
		}
	}
	if term.Span.Line != 2 || term.Span.Column != 3 {
		t.Errorf("terminal span: want line 2 col 3, got line %d col %d", term.Span.Line, term.Span.Column)
	}
}

func TestLexEOFTerminatesEveryStream(t *testing.T) {
	for _, src := range []string{"", "network", "   \t\n  "} {
		toks := lexer.Lex(src)
		if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
			t.Errorf("Lex(%q): want trailing EOF token, got %+v", src, toks)
		}
	}
}
