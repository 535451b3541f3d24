package querylang

import "github.com/lp177/searchquery/internal/ast"

// Parser parses RediSearch-style query strings into ast.Node trees. It
// carries no state of its own: the query evaluation core treats the parser
// as a pure function from string to tree.
type Parser struct{}

// NewParser returns a Parser.
func NewParser() Parser { return Parser{} }

// Parse parses input into an ast.Node tree. A grammar failure is reported
// as an ast.Error of kind ParseSyntax.
func (Parser) Parse(input string) (*ast.Node, error) {
	g, err := grammarParser.ParseString("", input)
	if err != nil {
		return nil, ast.ParseSyntax("%v", err)
	}
	return convertQuery(g.Query)
}
