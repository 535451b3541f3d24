// Package index specifies the storage collaborator contract the query
// evaluation core treats as external — term readers, numeric and geo
// iterators, tag indices, and trie traversal over one read-only index
// snapshot — and provides a concrete in-memory reference implementation of
// it. The interface-plus-concrete-implementation split keeps the core
// storage-agnostic, the same way an interface backed by one in-process
// implementation lets a caller swap in a different backend later without
// touching the core.
package index

import (
	"github.com/lp177/searchquery/internal/concurrent"
	"github.com/lp177/searchquery/internal/cursor"
	"github.com/lp177/searchquery/internal/record"
	"github.com/lp177/searchquery/internal/trie"
)

// FieldType distinguishes the backend a field's data lives in.
type FieldType int

const (
	FieldText FieldType = iota
	FieldNumeric
	FieldGeo
	FieldTag
)

// FieldSpec describes one indexed field: its name, its bit position within
// the query's field mask, and its backend type.
type FieldSpec struct {
	Name string
	Mask uint64
	Type FieldType
}

// NumericFilter is the [min,max] predicate a Numeric AST node borrows from
// its query options.
type NumericFilter struct {
	Field            string
	Min, Max         float64
	InclMin, InclMax bool
}

// GeoFilter is the circular predicate a Geo AST node borrows.
type GeoFilter struct {
	Field         string
	Lat, Lon      float64
	Radius        float64
	Unit          string // "m", "km", "mi", "ft"
}

// Index is the storage collaborator contract.
type Index interface {
	FieldSpec(name string) (FieldSpec, bool)
	MaxDocID() record.DocID
	OpenTermReader(term string, fieldMask uint64, weight float64) (cursor.Reader, bool)
	OpenNumericIterator(filter NumericFilter, cc *concurrent.Context) (cursor.Cursor, bool)
	OpenGeoIterator(filter GeoFilter, weight float64) (cursor.Cursor, bool)
	OpenTagIndex(field string) (TagIndex, bool)
	Trie() *trie.RuneTrie
}

// TagIndex is a single tag field's value trie-map plus the ability to open
// a cursor over the documents carrying one value — a Tag AST node reuses
// this trie-map rather than the term dictionary's RuneTrie.
type TagIndex interface {
	Trie() *trie.ByteTrie
	Open(value string, weight float64) (cursor.Cursor, bool)
}
