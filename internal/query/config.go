// Package query implements the query driver: it orchestrates expansion and
// evaluation over an AST produced by an external parser (internal/querylang
// in this module), exposes the root cursor plus an explain dump, and owns
// the error sink the rest of the pipeline reports through. Mirrors
// query.c's top-level QAST_Parse/QAST_Expand/QAST_Iterate sequence as a
// single Driver.Run call.
package query

import (
	"io"

	"github.com/lp177/searchquery/internal/expand"
)

// Config carries the query-wide tunables treated as collaborator
// configuration rather than core state: the prefix/fuzzy expansion cap, the
// minimum pattern length a Prefix node must meet, and the query-wide
// slop/in-order defaults a Phrase node falls back to when it carries none
// of its own. Mirrors the role query.c's query-option structs and
// RSGlobalConfig play: a plain struct with documented zero-value defaults,
// passed in by the caller, never read from a file or environment by the
// core.
type Config struct {
	// MinTermPrefix is the minimum pattern length a Prefix node's pattern
	// must have before it is expanded at all; shorter patterns are
	// rejected.
	MinTermPrefix int
	// MaxPrefixExpansions caps the number of reader opens a Prefix or
	// Fuzzy node may perform; -1 means uncapped.
	MaxPrefixExpansions int
	// DefaultSlop is the query-wide slop a Phrase node inherits when its
	// own MaxSlop is -1 ("inherit"). -1 here means unbounded.
	DefaultSlop int
	// DefaultInOrder is the query-wide in-order default a Phrase node
	// inherits.
	DefaultInOrder bool
	// Expander is invoked once per Token node during the expansion pass. A
	// nil Expander leaves every token unmodified (expand.DefaultExpander's
	// behavior).
	Expander expand.Expander
	// Debug, if non-nil, receives one trace line per node evaluated at the
	// query root, mirroring the "Found fuzzy expansion" debug log
	// query.c's QueryNode_Eval writes — written to with fmt.Fprintf rather
	// than a structured logger, since that's the level query.c's own debug
	// tracing operates at.
	Debug io.Writer
}

// DefaultConfig returns the zero-value-equivalent Config the reference
// storage backend uses when the caller supplies none: prefixes shorter than
// two runes rejected, five hundred expansions per Prefix/Fuzzy node, and unbounded
// inherited slop with order unenforced — the same defaults RediSearch's
// query.c ships before a user overrides them with FT.CONFIG.
func DefaultConfig() Config {
	return Config{
		MinTermPrefix:       2,
		MaxPrefixExpansions: 500,
		DefaultSlop:         -1,
		DefaultInOrder:      false,
		Expander:            expand.DefaultExpander{},
	}
}
