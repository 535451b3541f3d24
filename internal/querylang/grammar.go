package querylang

import (
	"github.com/alecthomas/participle/v2"
)

// Grammar is the top-level parse tree: one query, as a sequence of
// space-separated clauses.
type Grammar struct {
	Query *Query `parser:"@@"`
}

// Query is an implicit-AND sequence of clauses. A single clause is
// returned as-is by convertQuery; more than one becomes a Phrase, the
// reverse of the rule that a Phrase node with one child collapses to that
// child.
type Query struct {
	Clauses []*Clause `parser:"@@*"`
}

// Clause is one optionally negated/optional predicate plus its attribute
// block.
type Clause struct {
	Not      bool       `parser:"( @\"-\""`
	Optional bool       `parser:"| @\"~\" )?"`
	Expr     *Expr      `parser:"@@"`
	Attrs    *AttrBlock `parser:"@@?"`
}

// Expr dispatches on which predicate surface syntax matched. Order matters:
// participle tries each alternative in turn and backtracks on failure, so
// Group (which can itself contain a LexRange's leading "(") is tried right
// after the bare wildcard, then the field-qualified forms, then the
// term-level forms.
type Expr struct {
	Wildcard bool          `parser:"  @\"*\""`
	Group    *GroupExpr    `parser:"| \"(\" @@ \")\""`
	Tag      *TagExpr      `parser:"| @@"`
	Numeric  *NumericExpr  `parser:"| @@"`
	Geo      *GeoExpr      `parser:"| @@"`
	LexRange *LexRangeExpr `parser:"| @@"`
	Phrase   *string       `parser:"| @String"`
	Fuzzy2   *string       `parser:"| @FuzzyDouble"`
	Fuzzy1   *string       `parser:"| @FuzzySingle"`
	Term     *string       `parser:"| @Ident"`
}

// GroupExpr is a parenthesized sub-query, optionally a `|`-separated union
// of alternatives: `(quick|fast)`.
type GroupExpr struct {
	Alternatives []*Query `parser:"@@ ( \"|\" @@ )*"`
}

// TagExpr is `@field:{val1|val2|...}`.
type TagExpr struct {
	Field  string   `parser:"\"@\" @Ident \":\" \"{\""`
	Values []string `parser:"@Ident ( \"|\" @Ident )* \"}\""`
}

// NumericExpr is `@field:[min max]`, with an optional leading "(" on
// either bound marking it exclusive.
type NumericExpr struct {
	Field   string `parser:"\"@\" @Ident \":\" \"[\""`
	MinExcl bool   `parser:"@\"(\"?"`
	Min     string `parser:"@(Number|Ident)"`
	MaxExcl bool   `parser:"@\"(\"?"`
	Max     string `parser:"@(Number|Ident) \"]\""`
}

// GeoExpr is `@field:[lon lat radius unit]`.
type GeoExpr struct {
	Field  string `parser:"\"@\" @Ident \":\" \"[\""`
	Lon    string `parser:"@(Number|Ident)"`
	Lat    string `parser:"@(Number|Ident)"`
	Radius string `parser:"@(Number|Ident)"`
	Unit   string `parser:"@Ident \"]\""`
}

// LexRangeExpr is `[a TO b]`, `(a TO b]`, `[a TO b)`, or `(a TO b)`,
// either bound optionally empty for an unbounded side.
type LexRangeExpr struct {
	Open  string  `parser:"@( \"[\" | \"(\" )"`
	Begin *string `parser:"( @Ident | @String )? \"TO\""`
	End   *string `parser:"( @Ident | @String )?"`
	Close string  `parser:"@( \"]\" | \")\" )"`
}

// AttrBlock is `=>{ $name: value; ... }`.
type AttrBlock struct {
	Items []*AttrItem `parser:"\"=>\" \"{\" @@* \"}\""`
}

// AttrItem is one `$name: value;` pair.
type AttrItem struct {
	Name  string `parser:"@Dollar \":\""`
	Value string `parser:"@(Number|Ident) \";\""`
}

var grammarParser = participle.MustBuild[Grammar](
	participle.Lexer(queryLexer),
	participle.CaseInsensitive("Keyword"),
	participle.Elide("Whitespace"),
	participle.UseLookahead(1024),
)
