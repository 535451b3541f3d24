package cursor

import (
	"container/heap"
	"math"
	"sort"

	"github.com/lp177/searchquery/internal/record"
)

// Intersect aligns its children on a common doc id and, once aligned, checks
// the slop/in-order alignment of their term offsets within that document.
// slop == -1 means unbounded distance (in-order still enforced if inOrder is
// set); exact requires the offsets to be strictly consecutive integers in
// child order, overriding slop.
//
// Resolving the caller's raw $slop/$inorder attribute values into this
// (slop, inOrder, exact) triple — including the "inOrder without an explicit
// slop forces slop to the maximum" rule — is the AST Phrase evaluator's job
// (internal/ast), mirroring query.c's QueryPhraseNode resolution logic;
// Intersect itself only consumes the resolved values.
type Intersect struct {
	children []Cursor
	slop     int
	inOrder  bool
	exact    bool
	weight   float64
	started  bool
	eof      bool
	cur      record.Result
}

// NewIntersect builds an Intersect over children with the resolved slop,
// in-order, and exact policy.
func NewIntersect(children []Cursor, slop int, inOrder, exact bool, weight float64) *Intersect {
	return &Intersect{children: children, slop: slop, inOrder: inOrder, exact: exact, weight: weight}
}

func (x *Intersect) Read() (record.Result, bool) {
	if x.eof {
		return record.Result{}, false
	}
	start := record.DocID(1)
	if x.started {
		start = x.cur.DocID + 1
	}
	x.started = true
	res, ok := x.advance(start)
	if ok {
		x.cur = res
	} else {
		x.eof = true
	}
	return res, ok
}

func (x *Intersect) SkipTo(id record.DocID) (record.Result, bool) {
	if x.eof {
		return record.Result{}, false
	}
	if x.started && x.cur.DocID >= id {
		return x.cur, true
	}
	x.started = true
	res, ok := x.advance(id)
	if ok {
		x.cur = res
	} else {
		x.eof = true
	}
	return res, ok
}

// advance finds the next doc id >= start at which every child aligns and
// the positional policy is satisfied.
func (x *Intersect) advance(start record.DocID) (record.Result, bool) {
	if len(x.children) == 0 {
		return record.Result{}, false
	}
	target := start
	for {
		results := make([]record.Result, len(x.children))
		aligned := true
		for i, c := range x.children {
			r, ok := c.SkipTo(target)
			if !ok {
				return record.Result{}, false
			}
			results[i] = r
			if r.DocID > target {
				target = r.DocID
				aligned = false
			}
		}
		if !aligned {
			continue
		}

		lists := make([][]uint32, len(results))
		for i, r := range results {
			lists[i] = r.Offsets
		}
		if positions := alignPositions(lists, x.slop, x.inOrder, x.exact); positions != nil {
			return x.buildResult(target, results, positions), true
		}
		target++
	}
}

func (x *Intersect) buildResult(id record.DocID, children []record.Result, positions []uint32) record.Result {
	mask := ^uint64(0)
	var freq uint32
	for _, c := range children {
		mask &= c.FieldMask
		freq += c.Freq
	}
	return record.Result{
		DocID:     id,
		FieldMask: mask,
		Freq:      freq,
		Offsets:   positions,
		Weight:    x.weight,
		Children:  children,
	}
}

func (x *Intersect) HasNext() bool          { return !x.eof }
func (x *Intersect) Current() record.Result { return x.cur }

func (x *Intersect) Len() int {
	min := -1
	for _, c := range x.children {
		if l := c.Len(); min == -1 || l < min {
			min = l
		}
	}
	if min == -1 {
		return 0
	}
	return min
}

func (x *Intersect) Close() {
	for _, c := range x.children {
		c.Close()
	}
}

// alignPositions finds a per-child offset combination satisfying the given
// slop/in-order/exact policy within one document, or reports that none
// exists. Each policy takes a structurally different search:
//
//   - exact pins every later child's offset to exactly one more than the
//     previous child's, checked by a direct lookup at each step.
//   - in-order (without exact) needs a strictly increasing sequence within
//     the slop budget. Each child is advanced to the smallest offset
//     exceeding the previous child's chosen offset: that's the only
//     candidate that can't be beaten by a later one for minimizing span, so
//     trying every starting offset in the first child and greedily chaining
//     forward from there covers the whole search space. Unlike the
//     unordered case, the child that must advance on a failed check is
//     whichever child actually violates the order constraint, which is not
//     necessarily the child holding the smallest raw offset.
//   - unordered (slop only, no order constraint) has no "previous child" to
//     chain from — it's the classic smallest-range-covering-k-lists problem,
//     solved by always advancing whichever child currently holds the
//     smallest chosen value.
func alignPositions(lists [][]uint32, slop int, inOrder, exact bool) []uint32 {
	for _, l := range lists {
		if len(l) == 0 {
			return nil
		}
	}
	if exact {
		return alignExact(lists)
	}
	if inOrder {
		return alignInOrder(lists, slop)
	}
	return alignUnordered(lists, slop)
}

// alignExact requires vals[i] == vals[i-1]+1 for every child past the first,
// i.e. the children's offsets form one run of consecutive integers.
func alignExact(lists [][]uint32) []uint32 {
	k := len(lists)
	for _, start := range lists[0] {
		vals := make([]uint32, k)
		vals[0] = start
		ok := true
		for i := 1; i < k; i++ {
			want := vals[i-1] + 1
			l := lists[i]
			j := sort.Search(len(l), func(n int) bool { return l[n] >= want })
			if j >= len(l) || l[j] != want {
				ok = false
				break
			}
			vals[i] = want
		}
		if ok {
			return vals
		}
	}
	return nil
}

// alignInOrder searches for a strictly increasing offset sequence (one
// value per child, in child order) whose span fits within slop. For a fixed
// starting offset in the first child, the smallest valid continuation in
// each later child is also the one least likely to blow the span budget, so
// the search only needs to try every starting offset in the first child and
// chain forward greedily from there. The per-child cursors only move
// forward across starting offsets too, since a larger starting offset can
// only raise the threshold each later child's candidate must clear —
// giving an O(total offsets) sweep overall.
func alignInOrder(lists [][]uint32, slop int) []uint32 {
	limit := slop
	if limit < 0 {
		limit = math.MaxInt32
	}
	k := len(lists)
	ptrs := make([]int, k)
	for _, start := range lists[0] {
		prev := start
		vals := make([]uint32, k)
		vals[0] = prev
		for i := 1; i < k; i++ {
			l := lists[i]
			for ptrs[i] < len(l) && l[ptrs[i]] <= prev {
				ptrs[i]++
			}
			if ptrs[i] >= len(l) {
				// No element in this child exceeds prev, and prev only
				// grows as later starting offsets are tried, so no later
				// starting offset can succeed either.
				return nil
			}
			vals[i] = l[ptrs[i]]
			prev = vals[i]
		}
		span := int(vals[k-1]) - int(vals[0]) - (k - 1)
		if span < 0 {
			span = 0
		}
		if span <= limit {
			return vals
		}
	}
	return nil
}

// alignUnordered finds a combination of one offset per child whose span
// fits within slop, with no ordering requirement between children, via the
// classic smallest-range-covering-k-lists sliding window (the same
// container/heap shape Union's k-way merge uses): repeatedly advance
// whichever child holds the current minimum chosen value, since that child
// is always the one capping how far the window can shrink. It returns the
// first window that fits, which is not necessarily the minimum-span one.
func alignUnordered(lists [][]uint32, slop int) []uint32 {
	limit := slop
	if limit < 0 {
		limit = math.MaxInt32
	}
	k := len(lists)
	idx := make([]int, k)
	values := make([]uint32, k)
	h := make(posHeap, 0, k)
	var curMax uint32
	for i := range lists {
		values[i] = lists[i][0]
		if values[i] > curMax {
			curMax = values[i]
		}
		h = append(h, posItem{list: i, val: values[i]})
	}
	heap.Init(&h)

	for {
		minVal := h[0].val
		span := int(curMax) - int(minVal) - (k - 1)
		if span < 0 {
			span = 0
		}
		if span <= limit {
			out := make([]uint32, k)
			copy(out, values)
			return out
		}

		top := heap.Pop(&h).(posItem)
		li := top.list
		idx[li]++
		if idx[li] >= len(lists[li]) {
			return nil
		}
		values[li] = lists[li][idx[li]]
		if values[li] > curMax {
			curMax = values[li]
		}
		heap.Push(&h, posItem{list: li, val: values[li]})
	}
}

type posItem struct {
	list int
	val  uint32
}

type posHeap []posItem

func (h posHeap) Len() int            { return len(h) }
func (h posHeap) Less(i, j int) bool  { return h[i].val < h[j].val }
func (h posHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *posHeap) Push(x interface{}) { *h = append(*h, x.(posItem)) }
func (h *posHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
