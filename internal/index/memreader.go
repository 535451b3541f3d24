package index

import "github.com/lp177/searchquery/internal/record"

// memReader is the cursor.Reader MemIndex.OpenTermReader hands back: a
// sorted doc id list filtered down to docs that occurred within the
// requested field mask. Reference-scale simplification: occurrences are
// tracked at doc granularity (one aggregate field mask per doc), not per
// occurrence, so a field-mask-narrowed reader can only reject whole
// documents, not individual occurrences within them.
type memReader struct {
	ids       []record.DocID
	pos       int
	entries   map[record.DocID]postingEntry
	docMask   map[record.DocID]uint64
	fieldMask uint64
	weight    float64
}

func (r *memReader) Next() (record.Result, bool) {
	for r.pos < len(r.ids) {
		id := r.ids[r.pos]
		r.pos++
		mask := r.docMask[id] & r.fieldMask
		if mask == 0 {
			continue
		}
		e := r.entries[id]
		return record.Result{DocID: id, FieldMask: mask, Freq: e.freq, Offsets: e.offsets, Weight: r.weight}, true
	}
	return record.Result{}, false
}

func (r *memReader) SkipTo(id record.DocID) (record.Result, bool) {
	for r.pos < len(r.ids) && r.ids[r.pos] < id {
		r.pos++
	}
	return r.Next()
}

func (r *memReader) Len() int { return len(r.ids) - r.pos }
func (r *memReader) Close()   {}
