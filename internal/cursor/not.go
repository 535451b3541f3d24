package cursor

import "github.com/lp177/searchquery/internal/record"

// Not emits every doc id in [1, maxDocID] the child does not emit, testing
// the child via SkipTo.
type Not struct {
	child    Cursor
	maxDocID record.DocID
	next     record.DocID
	cur      record.Result
	eof      bool
}

// NewNot wraps child, bounded by maxDocID.
func NewNot(child Cursor, maxDocID record.DocID) *Not {
	return &Not{child: child, maxDocID: maxDocID, next: 1}
}

func (n *Not) Read() (record.Result, bool) {
	for {
		if n.eof || n.next > n.maxDocID {
			n.eof = true
			return record.Result{}, false
		}
		id := n.next
		res, ok := n.child.SkipTo(id)
		if !ok || res.DocID != id {
			n.next++
			n.cur = record.Result{DocID: id, FieldMask: record.AllFields, Weight: 1}
			return n.cur, true
		}
		n.next++
	}
}

func (n *Not) SkipTo(id record.DocID) (record.Result, bool) {
	if !n.eof && n.cur.DocID != 0 && n.cur.DocID >= id {
		return n.cur, true
	}
	if id > n.next {
		n.next = id
	}
	return n.Read()
}

func (n *Not) HasNext() bool          { return !n.eof && n.next <= n.maxDocID }
func (n *Not) Current() record.Result { return n.cur }
func (n *Not) Len() int               { return int(n.maxDocID) }
func (n *Not) Close()                 { n.child.Close() }
