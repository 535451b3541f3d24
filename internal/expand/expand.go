// Package expand implements the query term expansion pipeline: a
// tree-walk that visits every Token node reachable from the query root
// (stopping at nodes whose Kind.ExpandChildren() is false, and at nodes
// marked Verbatim) and replaces each Token with the alternatives an
// Expander produces, collapsing multiple alternatives into a Union the
// same way ast.Node's other multi-valued constructs do.
package expand

import (
	"github.com/lp177/searchquery/internal/ast"
	"github.com/lp177/searchquery/internal/runeseq"
)

// Context carries the error sink and request-scoped parameters an Expander
// may need, mirroring ast.EvalContext's role for Eval.
type Context struct {
	Errors   *ast.ErrorSink
	Language string
}

// Expander rewrites a single token into zero or more alternative tokens.
// Returning the input token unchanged (a one-element slice containing it)
// is always a valid no-op result.
type Expander interface {
	Name() string
	Expand(tok runeseq.Token, ctx *Context) ([]runeseq.Token, error)
}

// Expand walks root, replacing every eligible Token node's content with the
// alternatives expander produces. It mutates the tree in place and also
// returns root, so callers can chain it the way ast.InjectGlobalFilter is
// chained.
func Expand(root *ast.Node, expander Expander, ctx *Context) *ast.Node {
	walkExpand(root, expander, ctx)
	return root
}

func walkExpand(node *ast.Node, expander Expander, ctx *Context) {
	if node == nil {
		return
	}
	if node.Options.Verbatim || node.Tok.Flags.Has(runeseq.FlagVerbatim) {
		return
	}

	if node.Kind == ast.KindToken {
		alts, err := expander.Expand(node.Tok, ctx)
		if err != nil {
			ctx.Errors.Add(ast.ExpansionFailure(err.Error()))
			return
		}
		applyAlternatives(node, alts)
		return
	}

	if !node.Kind.ExpandChildren() {
		return
	}
	for _, c := range node.Children {
		walkExpand(c, expander, ctx)
	}
}

// applyAlternatives rewrites node to carry the given alternative tokens,
// preserving node's identity so any parent reference to it stays valid. A
// single alternative rewrites Tok in place; more than one turns node into a
// Union of new Token children, one per alternative, each inheriting node's
// Options (field mask, weight, attributes already applied to the original
// token apply equally to every alternative it expands into).
func applyAlternatives(node *ast.Node, alts []runeseq.Token) {
	if len(alts) == 0 {
		return
	}
	if len(alts) == 1 {
		node.Tok = alts[0]
		return
	}

	opts := node.Options
	children := make([]*ast.Node, len(alts))
	for i, t := range alts {
		child := ast.NewToken(t)
		child.Options = opts
		children[i] = child
	}

	node.Kind = ast.KindUnion
	node.Tok = runeseq.Token{}
	node.Children = children
}
