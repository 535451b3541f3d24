package index

import (
	"sort"

	"github.com/lp177/searchquery/internal/concurrent"
	"github.com/lp177/searchquery/internal/cursor"
	"github.com/lp177/searchquery/internal/record"
	"github.com/lp177/searchquery/internal/trie"
)

type postingEntry struct {
	freq    uint32
	offsets record.Offsets
}

// MemIndex is the reference in-memory Index implementation: a single
// read-only snapshot of postings, numeric/geo values, and tag values, built
// up front via its Index* ingestion methods and then queried through the
// Index interface for the life of a query. Readers share the snapshot
// rather than copying it; nothing mutates it once a query starts reading.
type MemIndex struct {
	fields   map[string]FieldSpec
	maxDocID record.DocID

	postings map[string]map[record.DocID]postingEntry
	docMask  map[record.DocID]uint64

	numeric map[string]map[record.DocID]float64
	geo     map[string]map[record.DocID][2]float64
	tags    map[string]*memTagIndex

	termTrie *trie.RuneTrie
}

// NewMemIndex returns an empty index snapshot.
func NewMemIndex() *MemIndex {
	return &MemIndex{
		fields:   make(map[string]FieldSpec),
		postings: make(map[string]map[record.DocID]postingEntry),
		docMask:  make(map[record.DocID]uint64),
		numeric:  make(map[string]map[record.DocID]float64),
		geo:      make(map[string]map[record.DocID][2]float64),
		tags:     make(map[string]*memTagIndex),
		termTrie: trie.NewRuneTrie(),
	}
}

// AddField registers a field spec. For tag fields it also allocates the
// field's value trie-map.
func (m *MemIndex) AddField(spec FieldSpec) {
	m.fields[spec.Name] = spec
	if spec.Type == FieldTag {
		m.tags[spec.Name] = newMemTagIndex(spec.Mask)
	}
}

func (m *MemIndex) bumpMaxDocID(id record.DocID) {
	if id > m.maxDocID {
		m.maxDocID = id
	}
}

// IndexTerm records term's occurrence in doc id within fieldMask at the
// given offsets.
func (m *MemIndex) IndexTerm(term string, id record.DocID, fieldMask uint64, offsets record.Offsets) {
	m.bumpMaxDocID(id)
	bucket, ok := m.postings[term]
	if !ok {
		bucket = make(map[record.DocID]postingEntry)
		m.postings[term] = bucket
		m.termTrie.Insert(term)
	}
	entry := bucket[id]
	entry.freq += uint32(len(offsets))
	entry.offsets = append(entry.offsets, offsets...)
	sort.Slice(entry.offsets, func(i, j int) bool { return entry.offsets[i] < entry.offsets[j] })
	bucket[id] = entry
	m.docMask[id] |= fieldMask
}

// IndexNumeric records field's value for doc id.
func (m *MemIndex) IndexNumeric(field string, id record.DocID, value float64) {
	m.bumpMaxDocID(id)
	bucket, ok := m.numeric[field]
	if !ok {
		bucket = make(map[record.DocID]float64)
		m.numeric[field] = bucket
	}
	bucket[id] = value
}

// IndexGeo records field's (lat,lon) for doc id.
func (m *MemIndex) IndexGeo(field string, id record.DocID, lat, lon float64) {
	m.bumpMaxDocID(id)
	bucket, ok := m.geo[field]
	if !ok {
		bucket = make(map[record.DocID][2]float64)
		m.geo[field] = bucket
	}
	bucket[id] = [2]float64{lat, lon}
}

// IndexTag records doc id as carrying value for the given tag field.
func (m *MemIndex) IndexTag(field, value string, id record.DocID) {
	m.bumpMaxDocID(id)
	if t, ok := m.tags[field]; ok {
		t.addValue(value, id)
	}
}

func (m *MemIndex) FieldSpec(name string) (FieldSpec, bool) {
	s, ok := m.fields[name]
	return s, ok
}

func (m *MemIndex) MaxDocID() record.DocID { return m.maxDocID }

func (m *MemIndex) Trie() *trie.RuneTrie { return m.termTrie }

func (m *MemIndex) OpenTermReader(term string, fieldMask uint64, weight float64) (cursor.Reader, bool) {
	bucket, ok := m.postings[term]
	if !ok || len(bucket) == 0 {
		return nil, false
	}
	ids := make([]record.DocID, 0, len(bucket))
	for id := range bucket {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return &memReader{ids: ids, entries: bucket, docMask: m.docMask, fieldMask: fieldMask, weight: weight}, true
}

func (m *MemIndex) OpenNumericIterator(filter NumericFilter, cc *concurrent.Context) (cursor.Cursor, bool) {
	vals, ok := m.numeric[filter.Field]
	if !ok {
		return nil, false
	}
	if cc != nil {
		cc.Register(concurrent.NoopRegistration{})
	}
	ids := make([]record.DocID, 0)
	for id, v := range vals {
		if inNumericRange(v, filter) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return cursor.NewIdList(ids, m.fields[filter.Field].Mask, 1), true
}

func (m *MemIndex) OpenGeoIterator(filter GeoFilter, weight float64) (cursor.Cursor, bool) {
	points, ok := m.geo[filter.Field]
	if !ok {
		return nil, false
	}
	radiusM := unitToMeters(filter.Radius, filter.Unit)
	ids := make([]record.DocID, 0)
	for id, p := range points {
		if haversineMeters(filter.Lat, filter.Lon, p[0], p[1]) <= radiusM {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return cursor.NewIdList(ids, m.fields[filter.Field].Mask, weight), true
}

func (m *MemIndex) OpenTagIndex(field string) (TagIndex, bool) {
	t, ok := m.tags[field]
	return t, ok
}

func inNumericRange(v float64, f NumericFilter) bool {
	if f.InclMin {
		if v < f.Min {
			return false
		}
	} else if v <= f.Min {
		return false
	}
	if f.InclMax {
		if v > f.Max {
			return false
		}
	} else if v >= f.Max {
		return false
	}
	return true
}
