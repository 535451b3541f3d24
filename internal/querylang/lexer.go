// Package querylang is a reference implementation of the query-string
// parser the evaluation core treats as an external collaborator: it
// supplies a tree of ast.Node values but is not part of the evaluation core
// itself; this module ships it so the core is exercisable end to end.
// Built with a lexer.SimpleRule token set, a tagged-union grammar of pointer
// fields dispatched by participle's trial-and-backtrack alternation, and a
// convert.go pass from parse tree to the core's own ast.Node tree, the same
// shape a hand-rolled recursive-descent grammar package would take for a
// RediSearch-style surface syntax.
package querylang

import (
	"github.com/alecthomas/participle/v2/lexer"
)

var queryLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "FuzzyDouble", Pattern: `%%[^%\s]+%%`},
	{Name: "FuzzySingle", Pattern: `%[^%\s]+%`},
	{Name: "Keyword", Pattern: `(?i)\bTO\b`},
	{Name: "Arrow", Pattern: `=>`},
	{Name: "Dollar", Pattern: `\$[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "String", Pattern: `"([^"\\]|\\.)*"`},
	{Name: "Number", Pattern: `[-+]?(\d+(\.\d+)?|inf)`},
	{Name: "Ident", Pattern: `[\p{L}\p{N}_]+\*?`},
	{Name: "Punct", Pattern: `[@:;,\[\]{}()|~*-]`},
	{Name: "Whitespace", Pattern: `\s+`},
})
