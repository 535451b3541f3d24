package cursor

import (
	"testing"

	"github.com/lp177/searchquery/internal/record"
)

func drainIDs(t *testing.T, c Cursor) []record.DocID {
	t.Helper()
	var ids []record.DocID
	for {
		res, ok := c.Read()
		if !ok {
			break
		}
		ids = append(ids, res.DocID)
	}
	return ids
}

func idsEqual(t *testing.T, got, want []record.DocID) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestIdList_ReadsInOrder(t *testing.T) {
	c := NewIdList([]record.DocID{1, 3, 5}, record.AllFields, 1)
	idsEqual(t, drainIDs(t, c), []record.DocID{1, 3, 5})
}

func TestIdList_SkipTo(t *testing.T) {
	c := NewIdList([]record.DocID{1, 3, 5, 7}, record.AllFields, 1)
	res, ok := c.SkipTo(4)
	if !ok || res.DocID != 5 {
		t.Fatalf("got (%v, %v), want (5, true)", res.DocID, ok)
	}
	idsEqual(t, drainIDs(t, c), []record.DocID{7})
}

func TestUnion_MergesAndDedupsByDocID(t *testing.T) {
	a := NewIdList([]record.DocID{1, 2, 4}, 0b01, 1)
	b := NewIdList([]record.DocID{2, 3, 4}, 0b10, 1)
	u := NewUnion([]Cursor{a, b}, 1)
	idsEqual(t, drainIDs(t, u), []record.DocID{1, 2, 3, 4})
}

func TestUnion_AggregatesFieldMaskOnDuplicate(t *testing.T) {
	a := NewIdList([]record.DocID{1}, 0b01, 1)
	b := NewIdList([]record.DocID{1}, 0b10, 1)
	u := NewUnion([]Cursor{a, b}, 1)
	res, ok := u.Read()
	if !ok {
		t.Fatalf("expected a result")
	}
	if res.FieldMask != 0b11 {
		t.Fatalf("got mask %b, want %b", res.FieldMask, 0b11)
	}
	if len(res.Children) != 2 {
		t.Fatalf("got %d children, want 2", len(res.Children))
	}
}

func TestNot_EmitsComplementWithinBound(t *testing.T) {
	child := NewIdList([]record.DocID{2, 4}, record.AllFields, 1)
	n := NewNot(child, 5)
	idsEqual(t, drainIDs(t, n), []record.DocID{1, 3, 5})
}

func TestNot_EmptyChildEmitsEverything(t *testing.T) {
	n := NewNot(NewEmpty(), 3)
	idsEqual(t, drainIDs(t, n), []record.DocID{1, 2, 3})
}

func TestWildcard_EmitsEveryDocInRange(t *testing.T) {
	w := NewWildcard(4)
	idsEqual(t, drainIDs(t, w), []record.DocID{1, 2, 3, 4})
}

func TestEmpty_NeverYields(t *testing.T) {
	e := NewEmpty()
	if e.HasNext() {
		t.Fatalf("expected an Empty cursor to never report HasNext")
	}
	if _, ok := e.Read(); ok {
		t.Fatalf("expected an Empty cursor to never yield a result")
	}
}

func TestIntersect_ExactPhraseRequiresConsecutiveOffsets(t *testing.T) {
	quick := &fakeReader{entries: map[record.DocID]record.Offsets{1: {0, 5}}}
	brown := &fakeReader{entries: map[record.DocID]record.Offsets{1: {1, 9}}}
	x := NewIntersect([]Cursor{NewTerm(quick), NewTerm(brown)}, 0, true, true, 1)
	res, ok := x.Read()
	if !ok {
		t.Fatalf("expected an exact phrase match at consecutive offsets 0,1")
	}
	if res.DocID != 1 {
		t.Fatalf("got docID %d, want 1", res.DocID)
	}
}

func TestIntersect_SlopAllowsBoundedGap(t *testing.T) {
	quick := &fakeReader{entries: map[record.DocID]record.Offsets{1: {0}}}
	fox := &fakeReader{entries: map[record.DocID]record.Offsets{1: {3}}}
	within := NewIntersect([]Cursor{NewTerm(quick), NewTerm(fox)}, 2, false, false, 1)
	if _, ok := within.Read(); !ok {
		t.Fatalf("expected a span of 2 to satisfy slop 2")
	}
}

func TestIntersect_SlopRejectsGapBeyondBudget(t *testing.T) {
	quick := &fakeReader{entries: map[record.DocID]record.Offsets{1: {0}}}
	fox := &fakeReader{entries: map[record.DocID]record.Offsets{1: {3}}}
	tooFar := NewIntersect([]Cursor{NewTerm(quick), NewTerm(fox)}, 1, false, false, 1)
	if _, ok := tooFar.Read(); ok {
		t.Fatalf("did not expect a span of 2 to satisfy slop 1")
	}
}

func TestIntersect_ThreeChildInOrderPicksNonMinimalOffset(t *testing.T) {
	a := &fakeReader{entries: map[record.DocID]record.Offsets{1: {5}}}
	b := &fakeReader{entries: map[record.DocID]record.Offsets{1: {50}}}
	c := &fakeReader{entries: map[record.DocID]record.Offsets{1: {10, 200}}}
	x := NewIntersect([]Cursor{NewTerm(a), NewTerm(b), NewTerm(c)}, -1, true, false, 1)
	res, ok := x.Read()
	if !ok {
		t.Fatalf("expected (5,50,200) to be a valid in-order alignment")
	}
	if res.DocID != 1 {
		t.Fatalf("got docID %d, want 1", res.DocID)
	}
	want := []uint32{5, 50, 200}
	if len(res.Offsets) != len(want) {
		t.Fatalf("got offsets %v, want %v", res.Offsets, want)
	}
	for i := range want {
		if res.Offsets[i] != want[i] {
			t.Fatalf("got offsets %v, want %v", res.Offsets, want)
		}
	}
}

func TestIntersect_NoAlignmentYieldsNoResult(t *testing.T) {
	quick := &fakeReader{entries: map[record.DocID]record.Offsets{1: {0}}}
	fox := &fakeReader{entries: map[record.DocID]record.Offsets{2: {0}}}
	x := NewIntersect([]Cursor{NewTerm(quick), NewTerm(fox)}, 0, false, false, 1)
	if _, ok := x.Read(); ok {
		t.Fatalf("expected no overlapping doc ids to produce no result")
	}
}

// fakeReader is a minimal Reader over a fixed doc->offsets map, used to
// exercise Intersect's alignment logic without needing a real index.
type fakeReader struct {
	entries map[record.DocID]record.Offsets
	ids     []record.DocID
	pos     int
	inited  bool
}

func (r *fakeReader) ensureInit() {
	if r.inited {
		return
	}
	r.inited = true
	for id := range r.entries {
		r.ids = append(r.ids, id)
	}
	for i := 0; i < len(r.ids); i++ {
		for j := i + 1; j < len(r.ids); j++ {
			if r.ids[j] < r.ids[i] {
				r.ids[i], r.ids[j] = r.ids[j], r.ids[i]
			}
		}
	}
}

func (r *fakeReader) Next() (record.Result, bool) {
	r.ensureInit()
	if r.pos >= len(r.ids) {
		return record.Result{}, false
	}
	id := r.ids[r.pos]
	r.pos++
	offs := r.entries[id]
	return record.Result{DocID: id, FieldMask: record.AllFields, Freq: uint32(len(offs)), Offsets: offs, Weight: 1}, true
}

func (r *fakeReader) SkipTo(id record.DocID) (record.Result, bool) {
	r.ensureInit()
	for r.pos < len(r.ids) && r.ids[r.pos] < id {
		r.pos++
	}
	return r.Next()
}

func (r *fakeReader) Len() int { return len(r.entries) }
func (r *fakeReader) Close()   {}
