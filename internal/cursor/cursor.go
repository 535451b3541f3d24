// Package cursor implements the iterator algebra that backs query
// evaluation: Union, Intersect, Not, Optional, Wildcard, IdList, Empty, and
// Term, all sharing one streaming cursor contract, mirroring the
// IndexIterator hierarchy in query.c. Composite cursors (Union, Intersect)
// fan out to their children with plain function calls rather than
// goroutines-per-child — query evaluation here runs cooperatively on a
// single goroutine per query, so a k-way merge replaces concurrent
// iterator fan-out.
package cursor

import "github.com/lp177/searchquery/internal/record"

// Cursor is the contract every iterator in the algebra satisfies.
type Cursor interface {
	// Read advances to and returns the next result, or reports EOF.
	Read() (record.Result, bool)
	// SkipTo returns the first result with DocID >= id, or EOF. id must be
	// >= the last DocID returned by this cursor.
	SkipTo(id record.DocID) (record.Result, bool)
	// HasNext reports whether a subsequent Read could still succeed.
	HasNext() bool
	// Current returns the last result produced by Read or SkipTo.
	Current() record.Result
	// Len returns a size estimate — a hint for the optimizer, not a bound.
	Len() int
	// Close releases the cursor and its children.
	Close()
}

// Reader is a posting-list reader for one term, the shape an index's
// OpenTermReader returns. Intersect and Union treat a Reader identically to
// any other Cursor by wrapping it in Term.
type Reader interface {
	Next() (record.Result, bool)
	SkipTo(id record.DocID) (record.Result, bool)
	Len() int
	Close()
}
