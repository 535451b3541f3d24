package cursor

import "github.com/lp177/searchquery/internal/record"

// Term wraps a posting-list Reader as a Cursor — the leaf of every iterator
// tree, produced whenever a Token node evaluates against an open reader.
type Term struct {
	r   Reader
	cur record.Result
	eof bool
}

// NewTerm wraps r as a Cursor.
func NewTerm(r Reader) *Term {
	return &Term{r: r}
}

func (t *Term) Read() (record.Result, bool) {
	if t.eof {
		return record.Result{}, false
	}
	res, ok := t.r.Next()
	if !ok {
		t.eof = true
		return record.Result{}, false
	}
	t.cur = res
	return res, true
}

func (t *Term) SkipTo(id record.DocID) (record.Result, bool) {
	if t.eof {
		return record.Result{}, false
	}
	if t.cur.DocID != 0 && t.cur.DocID >= id {
		return t.cur, true
	}
	res, ok := t.r.SkipTo(id)
	if !ok {
		t.eof = true
		return record.Result{}, false
	}
	t.cur = res
	return res, true
}

func (t *Term) HasNext() bool           { return !t.eof }
func (t *Term) Current() record.Result  { return t.cur }
func (t *Term) Len() int                { return t.r.Len() }
func (t *Term) Close()                  { t.r.Close() }
