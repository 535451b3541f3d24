package cursor

import "github.com/lp177/searchquery/internal/record"

// Wildcard emits every doc id from 1 to maxDocID in sequence.
type Wildcard struct {
	next record.DocID
	max  record.DocID
	cur  record.Result
	eof  bool
}

// NewWildcard returns a Wildcard bounded by maxDocID.
func NewWildcard(maxDocID record.DocID) *Wildcard {
	return &Wildcard{next: 1, max: maxDocID}
}

func (w *Wildcard) Read() (record.Result, bool) {
	if w.eof || w.next > w.max {
		w.eof = true
		return record.Result{}, false
	}
	w.cur = record.Result{DocID: w.next, FieldMask: record.AllFields, Weight: 1}
	w.next++
	return w.cur, true
}

func (w *Wildcard) SkipTo(id record.DocID) (record.Result, bool) {
	if !w.eof && w.cur.DocID != 0 && w.cur.DocID >= id {
		return w.cur, true
	}
	if id > w.next {
		w.next = id
	}
	return w.Read()
}

func (w *Wildcard) HasNext() bool          { return !w.eof && w.next <= w.max }
func (w *Wildcard) Current() record.Result { return w.cur }
func (w *Wildcard) Len() int               { return int(w.max) }
func (w *Wildcard) Close()                 {}
