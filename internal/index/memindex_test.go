package index

import (
	"testing"

	"github.com/lp177/searchquery/internal/record"
)

func TestMemIndex_OpenTermReaderReturnsSortedDocs(t *testing.T) {
	idx := NewMemIndex()
	idx.AddField(FieldSpec{Name: "body", Mask: 1, Type: FieldText})
	idx.IndexTerm("quick", 3, 1, record.Offsets{0})
	idx.IndexTerm("quick", 1, 1, record.Offsets{0})
	idx.IndexTerm("quick", 2, 1, record.Offsets{0})

	r, ok := idx.OpenTermReader("quick", 1, 1)
	if !ok {
		t.Fatalf("expected a reader for an indexed term")
	}
	defer r.Close()

	var got []record.DocID
	for {
		res, ok := r.Next()
		if !ok {
			break
		}
		got = append(got, res.DocID)
	}
	want := []record.DocID{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestMemIndex_OpenTermReaderMissingTerm(t *testing.T) {
	idx := NewMemIndex()
	idx.AddField(FieldSpec{Name: "body", Mask: 1, Type: FieldText})
	if _, ok := idx.OpenTermReader("absent", 1, 1); ok {
		t.Fatalf("expected no reader for an unindexed term")
	}
}

func TestMemIndex_IndexTermAccumulatesOffsetsAcrossCalls(t *testing.T) {
	idx := NewMemIndex()
	idx.AddField(FieldSpec{Name: "body", Mask: 1, Type: FieldText})
	idx.IndexTerm("quick", 1, 1, record.Offsets{5})
	idx.IndexTerm("quick", 1, 1, record.Offsets{0})

	r, _ := idx.OpenTermReader("quick", 1, 1)
	defer r.Close()
	res, ok := r.Next()
	if !ok {
		t.Fatalf("expected a result")
	}
	if len(res.Offsets) != 2 || res.Offsets[0] != 0 || res.Offsets[1] != 5 {
		t.Fatalf("got offsets %v, want sorted [0 5]", res.Offsets)
	}
	if res.Freq != 2 {
		t.Fatalf("got freq %d, want 2", res.Freq)
	}
}

func TestMemIndex_OpenNumericIteratorAppliesInclusivity(t *testing.T) {
	idx := NewMemIndex()
	idx.AddField(FieldSpec{Name: "price", Mask: 1, Type: FieldNumeric})
	idx.IndexNumeric("price", 1, 10)
	idx.IndexNumeric("price", 2, 20)
	idx.IndexNumeric("price", 3, 30)

	cur, ok := idx.OpenNumericIterator(NumericFilter{Field: "price", Min: 10, Max: 20, InclMin: false, InclMax: true}, nil)
	if !ok {
		t.Fatalf("expected an iterator for an indexed numeric field")
	}
	defer cur.Close()
	res, ok := cur.Read()
	if !ok || res.DocID != 2 {
		t.Fatalf("got (%v, %v), want (2, true) — exclusive min 10 drops doc 1", res.DocID, ok)
	}
	if _, ok := cur.Read(); ok {
		t.Fatalf("expected only one doc within (10, 20]")
	}
}

func TestMemIndex_OpenGeoIteratorFiltersByRadius(t *testing.T) {
	idx := NewMemIndex()
	idx.AddField(FieldSpec{Name: "loc", Mask: 1, Type: FieldGeo})
	idx.IndexGeo("loc", 1, 40.7128, -74.0060) // New York
	idx.IndexGeo("loc", 2, 34.0522, -118.2437) // Los Angeles

	cur, ok := idx.OpenGeoIterator(GeoFilter{Field: "loc", Lat: 40.7128, Lon: -74.0060, Radius: 100, Unit: "km"}, 1)
	if !ok {
		t.Fatalf("expected an iterator for an indexed geo field")
	}
	defer cur.Close()
	res, ok := cur.Read()
	if !ok || res.DocID != 1 {
		t.Fatalf("got (%v, %v), want (1, true) — only New York within 100km of itself", res.DocID, ok)
	}
	if _, ok := cur.Read(); ok {
		t.Fatalf("did not expect Los Angeles within 100km of New York")
	}
}

func TestMemIndex_TagIndexOpenByValue(t *testing.T) {
	idx := NewMemIndex()
	idx.AddField(FieldSpec{Name: "color", Mask: 1, Type: FieldTag})
	idx.IndexTag("color", "red", 1)
	idx.IndexTag("color", "red", 2)
	idx.IndexTag("color", "blue", 3)

	ti, ok := idx.OpenTagIndex("color")
	if !ok {
		t.Fatalf("expected a tag index for a registered tag field")
	}
	cur, ok := ti.Open("red", 1)
	if !ok {
		t.Fatalf("expected a cursor for an indexed tag value")
	}
	defer cur.Close()
	res, ok := cur.Read()
	if !ok || res.DocID != 1 {
		t.Fatalf("got (%v, %v), want (1, true)", res.DocID, ok)
	}
}

func TestMemIndex_MaxDocIDTracksHighestIngestedID(t *testing.T) {
	idx := NewMemIndex()
	idx.AddField(FieldSpec{Name: "body", Mask: 1, Type: FieldText})
	idx.IndexTerm("a", 5, 1, record.Offsets{0})
	idx.IndexTerm("b", 2, 1, record.Offsets{0})
	if idx.MaxDocID() != 5 {
		t.Fatalf("got MaxDocID %d, want 5", idx.MaxDocID())
	}
}
