package expand

import (
	"testing"

	"github.com/lp177/searchquery/internal/ast"
	"github.com/lp177/searchquery/internal/runeseq"
)

func TestExpand_DefaultExpanderNoOp(t *testing.T) {
	root := ast.NewToken(runeseq.NewToken("running", 0))
	ctx := &Context{Errors: &ast.ErrorSink{}}

	Expand(root, DefaultExpander{}, ctx)

	if root.Kind != ast.KindToken || root.Tok.Str != "running" {
		t.Fatalf("expected unchanged token node, got kind=%v str=%q", root.Kind, root.Tok.Str)
	}
	if !ctx.Errors.Empty() {
		t.Fatalf("unexpected errors: %v", ctx.Errors.Errors())
	}
}

func TestExpand_VerbatimSkipped(t *testing.T) {
	root := ast.NewToken(runeseq.NewToken("running", 0))
	root.Options.Verbatim = true
	ctx := &Context{Errors: &ast.ErrorSink{}}

	Expand(root, StemmingExpander{}, ctx)

	if root.Kind != ast.KindToken || root.Tok.Str != "running" {
		t.Fatalf("verbatim node should not be rewritten, got kind=%v str=%q", root.Kind, root.Tok.Str)
	}
}

func TestExpand_StemmingCollapsesToUnion(t *testing.T) {
	root := ast.NewToken(runeseq.NewToken("running", 0))
	ctx := &Context{Errors: &ast.ErrorSink{}}

	Expand(root, StemmingExpander{}, ctx)

	if root.Kind != ast.KindUnion {
		t.Fatalf("expected Union after multi-alternative expansion, got %v", root.Kind)
	}
	if len(root.Children) != 2 {
		t.Fatalf("expected 2 alternatives, got %d", len(root.Children))
	}
	if root.Children[0].Tok.Str != "running" {
		t.Errorf("expected first alternative to be the original term, got %q", root.Children[0].Tok.Str)
	}
}

func TestExpand_RecursesIntoPhrase(t *testing.T) {
	a := ast.NewToken(runeseq.NewToken("quick", 0))
	b := ast.NewToken(runeseq.NewToken("brown", 0))
	root := ast.NewPhrase(a, b)
	ctx := &Context{Errors: &ast.ErrorSink{}}

	Expand(root, StemmingExpander{}, ctx)

	if root.Kind != ast.KindPhrase {
		t.Fatalf("phrase root should not itself be rewritten, got %v", root.Kind)
	}
	for _, c := range root.Children {
		if c.Kind != ast.KindToken && c.Kind != ast.KindUnion {
			t.Errorf("expected child to be expanded in place, got %v", c.Kind)
		}
	}
}

func TestStemWord(t *testing.T) {
	cases := map[string]string{
		"running": "runn",
		"cats":    "cat",
		"boxes":   "box",
		"as":      "as",
	}
	for in, want := range cases {
		if got := stemWord(in); got != want {
			t.Errorf("stemWord(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSoundex(t *testing.T) {
	cases := map[string]string{
		"Robert":  "R163",
		"Rupert":  "R163",
		"Ashcraft": "A261",
		"":        "",
	}
	for in, want := range cases {
		if got := soundex(in); got != want {
			t.Errorf("soundex(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSynonymExpander(t *testing.T) {
	e, err := NewSynonymExpander([][]string{
		{"couch", "sofa", "divan"},
	})
	if err != nil {
		t.Fatalf("NewSynonymExpander: %v", err)
	}
	ctx := &Context{Errors: &ast.ErrorSink{}}

	alts, err := e.Expand(runeseq.NewToken("sofa", 0), ctx)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if len(alts) != 3 {
		t.Fatalf("expected 3 alternatives, got %d: %v", len(alts), alts)
	}

	alts, err = e.Expand(runeseq.NewToken("table", 0), ctx)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if len(alts) != 1 || alts[0].Str != "table" {
		t.Fatalf("expected unchanged token for unknown term, got %v", alts)
	}
}

func TestRegistryDefault(t *testing.T) {
	e, ok := Lookup("default")
	if !ok {
		t.Fatal("expected default expander to be registered")
	}
	if e.Name() != "default" {
		t.Errorf("expected name default, got %s", e.Name())
	}
}
