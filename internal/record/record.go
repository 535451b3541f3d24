// Package record defines the per-document result the iterator algebra
// produces: doc id, effective field mask, and the score inputs ranking
// needs (term frequency, per-term offsets, aggregated child scores).
package record

// DocID identifies a document within a query's index snapshot.
type DocID uint64

// AllFields is the field mask meaning "every field", used as the default
// mask for nodes that never narrow it and for synthetic records (Wildcard,
// Not) that carry no field-specific information.
const AllFields uint64 = ^uint64(0)

// Offsets is the ascending list of token positions a term occupies within
// one document, consumed by Intersect's slop/in-order alignment.
type Offsets []uint32

// Result is one document match surfaced by a cursor.
type Result struct {
	DocID     DocID
	FieldMask uint64
	Freq      uint32
	Offsets   Offsets
	Weight    float64
	// Children holds the per-child contributions Union and Intersect
	// aggregate into this result; nil for every other cursor's result.
	Children []Result
}
