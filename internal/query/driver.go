package query

import (
	"context"
	"fmt"

	"github.com/lp177/searchquery/internal/ast"
	"github.com/lp177/searchquery/internal/concurrent"
	"github.com/lp177/searchquery/internal/cursor"
	"github.com/lp177/searchquery/internal/expand"
	"github.com/lp177/searchquery/internal/index"
	"github.com/lp177/searchquery/internal/record"
)

// Driver owns one index snapshot and the config every query it runs
// against that snapshot shares. It is the query.c-level orchestrator:
// parsed AST in, root cursor (or Empty) and any collected errors out,
// driving the three-stage expand-evaluate-explain pipeline.
type Driver struct {
	Index  index.Index
	Config Config
}

// NewDriver returns a Driver bound to idx using cfg.
func NewDriver(idx index.Index, cfg Config) *Driver {
	return &Driver{Index: idx, Config: cfg}
}

// Run expands root, then evaluates it, returning the root cursor. Fatal
// errors recorded during expansion abort evaluation before it starts —
// expansion failures are the one expansion-time error kind, so Run treats
// any non-empty sink the same way. A tree that evaluates to nothing (every
// leaf missing) yields an Empty cursor rather than nil, so callers never
// need a nil check.
func (d *Driver) Run(ctx context.Context, root *ast.Node) (cursor.Cursor, *ast.ErrorSink) {
	errs := &ast.ErrorSink{}
	if root == nil {
		return cursor.NewEmpty(), errs
	}

	expander := d.Config.Expander
	if expander == nil {
		expander = expand.DefaultExpander{}
	}
	expand.Expand(root, expander, &expand.Context{Errors: errs})
	if !errs.Empty() {
		return cursor.NewEmpty(), errs
	}

	cc := concurrent.New(ctx)
	ectx := &ast.EvalContext{
		Index:               d.Index,
		Concurrent:          cc,
		Errors:              errs,
		GlobalMask:          record.AllFields,
		MaxDocID:            d.Index.MaxDocID(),
		MaxPrefixExpansions: d.Config.MaxPrefixExpansions,
		MinTermPrefix:       d.Config.MinTermPrefix,
		DefaultSlop:         d.Config.DefaultSlop,
		DefaultInOrder:      d.Config.DefaultInOrder,
	}

	cur, ok := ast.Eval(root, ectx)
	if d.Config.Debug != nil {
		fmt.Fprintf(d.Config.Debug, "eval root kind=%s ok=%v errors=%d\n", root.Kind, ok, len(errs.Errors()))
	}
	if !ok {
		return cursor.NewEmpty(), errs
	}
	return cur, errs
}

// Explain renders root in a textual dump, ahead of expansion, so EXPLAIN
// reflects the query as parsed rather than as expanded — the same point in
// the pipeline query.c's QAST_Print reports from.
func (d *Driver) Explain(root *ast.Node, fieldName func(bit uint64) string) string {
	return ast.Explain(root, fieldName)
}
