package cursor

import "github.com/lp177/searchquery/internal/record"

// Optional emits every doc id in [1, maxDocID], attaching the child's record
// when it matches and a null (score-0) record otherwise.
type Optional struct {
	child    Cursor
	maxDocID record.DocID
	next     record.DocID
	cur      record.Result
	eof      bool
}

// NewOptional wraps child, bounded by maxDocID.
func NewOptional(child Cursor, maxDocID record.DocID) *Optional {
	return &Optional{child: child, maxDocID: maxDocID, next: 1}
}

func (o *Optional) Read() (record.Result, bool) {
	if o.eof || o.next > o.maxDocID {
		o.eof = true
		return record.Result{}, false
	}
	id := o.next
	o.next++
	res, ok := o.child.SkipTo(id)
	if ok && res.DocID == id {
		o.cur = res
	} else {
		o.cur = record.Result{DocID: id, FieldMask: record.AllFields, Weight: 0}
	}
	return o.cur, true
}

func (o *Optional) SkipTo(id record.DocID) (record.Result, bool) {
	if !o.eof && o.cur.DocID != 0 && o.cur.DocID >= id {
		return o.cur, true
	}
	if id > o.next {
		o.next = id
	}
	return o.Read()
}

func (o *Optional) HasNext() bool          { return !o.eof && o.next <= o.maxDocID }
func (o *Optional) Current() record.Result { return o.cur }
func (o *Optional) Len() int               { return int(o.maxDocID) }
func (o *Optional) Close()                 { o.child.Close() }
