package querylang

import (
	"math"
	"strconv"
	"strings"

	"github.com/lp177/searchquery/internal/ast"
	"github.com/lp177/searchquery/internal/index"
	"github.com/lp177/searchquery/internal/runeseq"
)

// convertQuery converts a parsed Query into an ast.Node, collapsing a
// single clause to its own node and wrapping more than one in a (non-exact)
// Phrase — the implicit intersection a bare space-separated term sequence
// means in RediSearch-style syntax, as opposed to the exact phrase a quoted
// string produces.
func convertQuery(q *Query) (*ast.Node, error) {
	if q == nil || len(q.Clauses) == 0 {
		return ast.NewWildcard(), nil
	}
	if len(q.Clauses) == 1 {
		return convertClause(q.Clauses[0])
	}
	children := make([]*ast.Node, 0, len(q.Clauses))
	for _, c := range q.Clauses {
		n, err := convertClause(c)
		if err != nil {
			return nil, err
		}
		children = append(children, n)
	}
	return ast.NewPhrase(children...), nil
}

func convertClause(c *Clause) (*ast.Node, error) {
	node, err := convertExpr(c.Expr)
	if err != nil {
		return nil, err
	}
	if c.Attrs != nil {
		attrs := make([]ast.Attribute, len(c.Attrs.Items))
		for i, item := range c.Attrs.Items {
			attrs[i] = ast.Attribute{Name: strings.TrimPrefix(item.Name, "$"), Value: item.Value}
		}
		if err := node.ApplyAttributes(attrs); err != nil {
			return nil, err
		}
	}
	switch {
	case c.Not:
		return ast.NewNot(node), nil
	case c.Optional:
		return ast.NewOptional(node), nil
	default:
		return node, nil
	}
}

func convertExpr(e *Expr) (*ast.Node, error) {
	switch {
	case e.Wildcard:
		return ast.NewWildcard(), nil

	case e.Group != nil:
		return convertGroup(e.Group)

	case e.Tag != nil:
		return convertTag(e.Tag)

	case e.Numeric != nil:
		return convertNumeric(e.Numeric)

	case e.Geo != nil:
		return convertGeo(e.Geo)

	case e.LexRange != nil:
		return convertLexRange(e.LexRange), nil

	case e.Phrase != nil:
		return convertPhrase(*e.Phrase), nil

	case e.Fuzzy2 != nil:
		pattern := strings.Trim(*e.Fuzzy2, "%")
		return ast.NewFuzzy(pattern, 2), nil

	case e.Fuzzy1 != nil:
		pattern := strings.Trim(*e.Fuzzy1, "%")
		return ast.NewFuzzy(pattern, 1), nil

	case e.Term != nil:
		return convertTerm(*e.Term), nil

	default:
		return nil, ast.ParseSyntax("empty expression")
	}
}

func convertTerm(raw string) *ast.Node {
	if strings.HasSuffix(raw, "*") && len(raw) > 1 {
		return ast.NewPrefix(strings.TrimSuffix(raw, "*"))
	}
	return ast.NewToken(runeseq.NewToken(raw, 0))
}

func convertGroup(g *GroupExpr) (*ast.Node, error) {
	if len(g.Alternatives) == 1 {
		return convertQuery(g.Alternatives[0])
	}
	children := make([]*ast.Node, 0, len(g.Alternatives))
	for _, alt := range g.Alternatives {
		n, err := convertQuery(alt)
		if err != nil {
			return nil, err
		}
		children = append(children, n)
	}
	return ast.NewUnion(children...), nil
}

func convertTag(t *TagExpr) (*ast.Node, error) {
	children := make([]*ast.Node, len(t.Values))
	for i, v := range t.Values {
		children[i] = ast.NewToken(runeseq.NewToken(v, 0))
	}
	return ast.NewTag(t.Field, children...), nil
}

func convertNumeric(n *NumericExpr) (*ast.Node, error) {
	min, err := parseBound(n.Min)
	if err != nil {
		return nil, err
	}
	max, err := parseBound(n.Max)
	if err != nil {
		return nil, err
	}
	return ast.NewNumeric(index.NumericFilter{
		Field:   n.Field,
		Min:     min,
		Max:     max,
		InclMin: !n.MinExcl,
		InclMax: !n.MaxExcl,
	}), nil
}

func convertGeo(g *GeoExpr) (*ast.Node, error) {
	lon, err := parseBound(g.Lon)
	if err != nil {
		return nil, err
	}
	lat, err := parseBound(g.Lat)
	if err != nil {
		return nil, err
	}
	radius, err := parseBound(g.Radius)
	if err != nil {
		return nil, err
	}
	return ast.NewGeo(index.GeoFilter{
		Field:  g.Field,
		Lat:    lat,
		Lon:    lon,
		Radius: radius,
		Unit:   g.Unit,
	}), nil
}

func convertLexRange(l *LexRangeExpr) *ast.Node {
	return ast.NewLexRange(unquoteBound(l.Begin), unquoteBound(l.End), l.Open == "[", l.Close == "]")
}

func unquoteBound(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.Trim(*s, `"`)
	return &v
}

func convertPhrase(raw string) *ast.Node {
	text := strings.Trim(raw, `"`)
	words := strings.Fields(text)
	if len(words) == 0 {
		return ast.NewWildcard()
	}
	children := make([]*ast.Node, len(words))
	for i, w := range words {
		children[i] = ast.NewToken(runeseq.NewToken(w, 0))
	}
	phrase := ast.NewPhrase(children...)
	phrase.Options.Exact = true
	return phrase
}

// parseBound parses a numeric-range or geo bound, honoring the "inf"/"-inf"/
// "+inf" spelling RediSearch-style ranges use for an unbounded side.
func parseBound(s string) (float64, error) {
	switch strings.ToLower(s) {
	case "inf", "+inf":
		return math.Inf(1), nil
	case "-inf":
		return math.Inf(-1), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errInvalidBound(s)
	}
	return v, nil
}
