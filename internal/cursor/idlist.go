package cursor

import "github.com/lp177/searchquery/internal/record"

// IdList emits a supplied ascending array of doc ids, e.g. for tag values
// or an explicit id-set filter.
type IdList struct {
	ids    []record.DocID
	mask   uint64
	weight float64
	pos    int
	cur    record.Result
}

// NewIdList returns an IdList cursor over the ascending ids slice. ids must
// already be sorted; IdList does not sort it.
func NewIdList(ids []record.DocID, mask uint64, weight float64) *IdList {
	return &IdList{ids: ids, mask: mask, weight: weight}
}

func (l *IdList) Read() (record.Result, bool) {
	if l.pos >= len(l.ids) {
		return record.Result{}, false
	}
	id := l.ids[l.pos]
	l.pos++
	l.cur = record.Result{DocID: id, FieldMask: l.mask, Weight: l.weight}
	return l.cur, true
}

func (l *IdList) SkipTo(id record.DocID) (record.Result, bool) {
	if l.pos > 0 && l.cur.DocID >= id {
		return l.cur, true
	}
	for l.pos < len(l.ids) && l.ids[l.pos] < id {
		l.pos++
	}
	return l.Read()
}

func (l *IdList) HasNext() bool          { return l.pos < len(l.ids) }
func (l *IdList) Current() record.Result { return l.cur }
func (l *IdList) Len() int               { return len(l.ids) }
func (l *IdList) Close()                 {}
