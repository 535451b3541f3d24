package querylang

import (
	"testing"

	"github.com/lp177/searchquery/internal/ast"
)

func TestParser_SimpleTerm(t *testing.T) {
	p := NewParser()
	root, err := p.Parse("hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root.Kind != ast.KindToken {
		t.Fatalf("got kind %v, want Token", root.Kind)
	}
	if root.Tok.Str != "hello" {
		t.Fatalf("got token %q, want hello", root.Tok.Str)
	}
}

func TestParser_ImplicitPhrase(t *testing.T) {
	p := NewParser()
	root, err := p.Parse("quick brown")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root.Kind != ast.KindPhrase {
		t.Fatalf("got kind %v, want Phrase", root.Kind)
	}
	if len(root.Children) != 2 {
		t.Fatalf("got %d children, want 2", len(root.Children))
	}
	if root.Options.Exact {
		t.Fatalf("bareword sequence must not be exact")
	}
}

func TestParser_QuotedPhraseIsExact(t *testing.T) {
	p := NewParser()
	root, err := p.Parse(`"quick brown"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root.Kind != ast.KindPhrase || !root.Options.Exact {
		t.Fatalf("got %+v, want an exact Phrase", root)
	}
}

func TestParser_PrefixTerm(t *testing.T) {
	p := NewParser()
	root, err := p.Parse("hel*")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root.Kind != ast.KindPrefix || root.Pattern != "hel" {
		t.Fatalf("got %+v, want Prefix(hel)", root)
	}
}

func TestParser_FuzzyTerms(t *testing.T) {
	p := NewParser()

	one, err := p.Parse("%colur%")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if one.Kind != ast.KindFuzzy || one.Pattern != "colur" || one.MaxEdits != 1 {
		t.Fatalf("got %+v, want Fuzzy(colur, 1)", one)
	}

	two, err := p.Parse("%%colur%%")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if two.Kind != ast.KindFuzzy || two.Pattern != "colur" || two.MaxEdits != 2 {
		t.Fatalf("got %+v, want Fuzzy(colur, 2)", two)
	}
}

func TestParser_TagUnion(t *testing.T) {
	p := NewParser()
	root, err := p.Parse("@t:{red|green}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root.Kind != ast.KindTag || root.Field != "t" {
		t.Fatalf("got %+v, want Tag(t)", root)
	}
	if len(root.Children) != 2 {
		t.Fatalf("got %d children, want 2", len(root.Children))
	}
}

func TestParser_NegatedNumericRange(t *testing.T) {
	p := NewParser()
	root, err := p.Parse("-@n:[50 60]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root.Kind != ast.KindNot {
		t.Fatalf("got kind %v, want Not", root.Kind)
	}
	inner := root.Children[0]
	if inner.Kind != ast.KindNumeric || inner.Numeric.Min != 50 || inner.Numeric.Max != 60 {
		t.Fatalf("got %+v, want Numeric(n, 50, 60)", inner)
	}
}

func TestParser_SlopAttributes(t *testing.T) {
	p := NewParser()
	root, err := p.Parse(`"quick brown"=>{ $slop: 2; $inorder: false; }`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root.Options.MaxSlop != 2 || root.Options.InOrder {
		t.Fatalf("got options %+v, want slop=2 inorder=false", root.Options)
	}
}

func TestParser_LexRange(t *testing.T) {
	p := NewParser()
	root, err := p.Parse("[alpha TO omega]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root.Kind != ast.KindLexRange {
		t.Fatalf("got kind %v, want LexRange", root.Kind)
	}
	if root.Begin == nil || *root.Begin != "alpha" || root.End == nil || *root.End != "omega" {
		t.Fatalf("got %+v, want [alpha, omega]", root)
	}
	if !root.InclBegin || !root.InclEnd {
		t.Fatalf("got incl=(%v,%v), want (true,true)", root.InclBegin, root.InclEnd)
	}
}

func TestParser_SyntaxErrorReportsParseSyntaxKind(t *testing.T) {
	p := NewParser()
	_, err := p.Parse("@t:{")
	if err == nil {
		t.Fatalf("expected a syntax error")
	}
	astErr, ok := err.(ast.Error)
	if !ok {
		t.Fatalf("got error of type %T, want ast.Error", err)
	}
	if astErr.Kind != "ParseSyntax" {
		t.Fatalf("got kind %q, want ParseSyntax", astErr.Kind)
	}
}
