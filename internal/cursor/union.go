package cursor

import (
	"container/heap"

	"github.com/lp177/searchquery/internal/record"
)

// Union is a k-way priority-queue merge of its children, emitting each
// distinct doc id once and aggregating the matching children's results. The
// priority queue is a plain container/heap.Interface keyed by doc id,
// pushed/popped one child result at a time.
type Union struct {
	children []Cursor
	weight   float64
	pq       unionHeap
	started  bool
	eof      bool
	cur      record.Result
}

// NewUnion builds a Union over children, recording weight on every
// aggregated result; no score is computed here.
func NewUnion(children []Cursor, weight float64) *Union {
	return &Union{children: children, weight: weight}
}

type unionItem struct {
	child Cursor
	res   record.Result
}

type unionHeap []*unionItem

func (h unionHeap) Len() int            { return len(h) }
func (h unionHeap) Less(i, j int) bool  { return h[i].res.DocID < h[j].res.DocID }
func (h unionHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *unionHeap) Push(x interface{}) { *h = append(*h, x.(*unionItem)) }
func (h *unionHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

func (u *Union) init() {
	u.started = true
	u.pq = make(unionHeap, 0, len(u.children))
	heap.Init(&u.pq)
	for _, c := range u.children {
		if res, ok := c.Read(); ok {
			heap.Push(&u.pq, &unionItem{child: c, res: res})
		}
	}
}

func (u *Union) Read() (record.Result, bool) {
	if !u.started {
		u.init()
	}
	if u.eof || u.pq.Len() == 0 {
		u.eof = true
		return record.Result{}, false
	}

	minID := u.pq[0].res.DocID
	var mask uint64
	var freq uint32
	children := make([]record.Result, 0, u.pq.Len())
	for u.pq.Len() > 0 && u.pq[0].res.DocID == minID {
		item := heap.Pop(&u.pq).(*unionItem)
		mask |= item.res.FieldMask
		freq += item.res.Freq
		children = append(children, item.res)
		if next, ok := item.child.Read(); ok {
			heap.Push(&u.pq, &unionItem{child: item.child, res: next})
		}
	}

	u.cur = record.Result{
		DocID:     minID,
		FieldMask: mask,
		Freq:      freq,
		Weight:    u.weight,
		Children:  children,
	}
	return u.cur, true
}

func (u *Union) SkipTo(id record.DocID) (record.Result, bool) {
	if !u.started {
		u.init()
	}
	if u.eof {
		return record.Result{}, false
	}
	if u.cur.DocID != 0 && u.cur.DocID >= id {
		return u.cur, true
	}
	for u.pq.Len() > 0 && u.pq[0].res.DocID < id {
		item := heap.Pop(&u.pq).(*unionItem)
		if next, ok := item.child.SkipTo(id); ok {
			item.res = next
			heap.Push(&u.pq, item)
		}
	}
	return u.Read()
}

func (u *Union) HasNext() bool {
	if !u.started {
		return len(u.children) > 0
	}
	return !u.eof && u.pq.Len() > 0
}

func (u *Union) Current() record.Result { return u.cur }

func (u *Union) Len() int {
	total := 0
	for _, c := range u.children {
		total += c.Len()
	}
	return total
}

func (u *Union) Close() {
	for _, c := range u.children {
		c.Close()
	}
}
