package index

import (
	"sort"

	"github.com/lp177/searchquery/internal/cursor"
	"github.com/lp177/searchquery/internal/record"
	"github.com/lp177/searchquery/internal/trie"
)

// memTagIndex is the reference TagIndex: a byte trie over tag values plus
// a posting list per value.
type memTagIndex struct {
	values    map[string][]record.DocID
	valueTrie *trie.ByteTrie
	fieldMask uint64
}

func newMemTagIndex(mask uint64) *memTagIndex {
	return &memTagIndex{
		values:    make(map[string][]record.DocID),
		valueTrie: trie.NewByteTrie(),
		fieldMask: mask,
	}
}

func (t *memTagIndex) addValue(value string, id record.DocID) {
	if _, ok := t.values[value]; !ok {
		t.valueTrie.Insert(value)
	}
	t.values[value] = append(t.values[value], id)
}

func (t *memTagIndex) Trie() *trie.ByteTrie { return t.valueTrie }

func (t *memTagIndex) Open(value string, weight float64) (cursor.Cursor, bool) {
	ids, ok := t.values[value]
	if !ok {
		return nil, false
	}
	sorted := append([]record.DocID(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return cursor.NewIdList(sorted, t.fieldMask, weight), true
}
