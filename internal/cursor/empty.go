package cursor

import "github.com/lp177/searchquery/internal/record"

// Empty is immediate EOF. The query driver substitutes it when the whole
// tree contributes no iterator, and Not/Optional evaluation uses it for a
// child that contributes none, so those paths return a usable cursor rather
// than a nil one.
type Empty struct{}

// NewEmpty returns an Empty cursor.
func NewEmpty() Empty { return Empty{} }

func (Empty) Read() (record.Result, bool)       { return record.Result{}, false }
func (Empty) SkipTo(record.DocID) (record.Result, bool) { return record.Result{}, false }
func (Empty) HasNext() bool                     { return false }
func (Empty) Current() record.Result            { return record.Result{} }
func (Empty) Len() int                          { return 0 }
func (Empty) Close()                            {}
