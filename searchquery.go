// Package searchquery is the façade the query driver exposes to callers:
// build or load an index snapshot, run a query string against it, and get
// back a lazy cursor plus an explain dump. A thin New/Query/Explain surface
// over the internal packages doing the real work.
package searchquery

import (
	"context"

	"github.com/lp177/searchquery/internal/ast"
	"github.com/lp177/searchquery/internal/cursor"
	"github.com/lp177/searchquery/internal/index"
	"github.com/lp177/searchquery/internal/query"
	"github.com/lp177/searchquery/internal/querylang"
	"github.com/lp177/searchquery/internal/record"
)

type (
	// Cursor is the consumer-facing iterator contract.
	Cursor = cursor.Cursor
	// Result is one document match.
	Result = record.Result
	// Config carries the query driver's tunables.
	Config = query.Config
)

// DefaultConfig returns the reference storage backend's default tunables.
func DefaultConfig() Config { return query.DefaultConfig() }

// Engine owns one index snapshot and the config every query against it
// shares, plus the query-string parser used to reach the core's own
// ast.Node tree from a RediSearch-style string.
type Engine struct {
	Index  index.Index
	driver *query.Driver
	parser querylang.Parser
}

// New returns an Engine over idx using cfg.
func New(idx index.Index, cfg Config) *Engine {
	return &Engine{
		Index:  idx,
		driver: query.NewDriver(idx, cfg),
		parser: querylang.NewParser(),
	}
}

// Query parses q and evaluates it against the engine's index snapshot,
// returning the root cursor. The returned error sink, if non-empty, holds
// every ast.Error collected during expansion or evaluation; the cursor is
// always non-nil and safe to read even when errors occurred, substituting
// an Empty cursor so callers never need a nil check.
func (e *Engine) Query(ctx context.Context, q string) (Cursor, []ast.Error, error) {
	root, err := e.parser.Parse(q)
	if err != nil {
		return cursor.NewEmpty(), nil, err
	}
	cur, errs := e.driver.Run(ctx, root)
	return cur, errs.Errors(), nil
}

// Explain parses q and renders it in a textual dump format, ahead of
// expansion, as the driver's own Explain does.
func (e *Engine) Explain(q string, fieldName func(bit uint64) string) (string, error) {
	root, err := e.parser.Parse(q)
	if err != nil {
		return "", err
	}
	return e.driver.Explain(root, fieldName), nil
}

// EvalNode evaluates an already-built ast.Node tree directly, bypassing the
// query-string parser — the path a caller that builds its own AST (rather
// than parsing RediSearch-style syntax) uses.
func (e *Engine) EvalNode(ctx context.Context, root *ast.Node) (Cursor, []ast.Error) {
	cur, errs := e.driver.Run(ctx, root)
	return cur, errs.Errors()
}
