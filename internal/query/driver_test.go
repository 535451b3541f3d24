package query

import (
	"context"
	"testing"

	"github.com/lp177/searchquery/internal/ast"
	"github.com/lp177/searchquery/internal/cursor"
	"github.com/lp177/searchquery/internal/expand"
	"github.com/lp177/searchquery/internal/index"
	"github.com/lp177/searchquery/internal/record"
	"github.com/lp177/searchquery/internal/runeseq"
)

// buildCorpus indexes a small two-document corpus: doc 1 "the quick brown
// fox", doc 2 "the brown quick fox" — the same pair of word orderings used
// to exercise phrase order/slop below.
func buildCorpus(t *testing.T) *index.MemIndex {
	t.Helper()
	idx := index.NewMemIndex()
	idx.AddField(index.FieldSpec{Name: "body", Mask: 1, Type: index.FieldText})

	docs := map[record.DocID][]string{
		1: {"the", "quick", "brown", "fox"},
		2: {"the", "brown", "quick", "fox"},
	}
	for id, words := range docs {
		for pos, w := range words {
			idx.IndexTerm(w, id, 1, record.Offsets{uint32(pos)})
		}
	}
	return idx
}

func phraseNode(words ...string) *ast.Node {
	children := make([]*ast.Node, len(words))
	for i, w := range words {
		children[i] = ast.NewToken(runeseq.NewToken(w, 0))
	}
	n := ast.NewPhrase(children...)
	n.Options.Exact = true
	return n
}

func drainIDs(t *testing.T, c cursor.Cursor) []record.DocID {
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

func TestDriver_ExactPhrase(t *testing.T) {
	idx := buildCorpus(t)
	d := NewDriver(idx, DefaultConfig())

	root := phraseNode("quick", "brown")
	cur, errs := d.Run(context.Background(), root)
	if !errs.Empty() {
		t.Fatalf("unexpected errors: %v", errs.Errors())
	}
	defer cur.Close()

	got := drainIDs(t, cur)
	want := []record.DocID{1}
	if len(got) != len(want) || got[0] != want[0] {
		t.Fatalf("exact phrase: got %v, want %v", got, want)
	}
}

func TestDriver_SlopInOrderFalse(t *testing.T) {
	idx := buildCorpus(t)
	d := NewDriver(idx, DefaultConfig())

	root := phraseNode("quick", "brown")
	root.Options.Exact = false
	root.Options.MaxSlop = 2
	root.Options.InOrder = false

	cur, errs := d.Run(context.Background(), root)
	if !errs.Empty() {
		t.Fatalf("unexpected errors: %v", errs.Errors())
	}
	defer cur.Close()

	got := drainIDs(t, cur)
	want := []record.DocID{1, 2}
	if len(got) != len(want) {
		t.Fatalf("slop query: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("slop query: got %v, want %v", got, want)
		}
	}
}

func TestDriver_EmptyTreeYieldsEmptyCursor(t *testing.T) {
	idx := buildCorpus(t)
	d := NewDriver(idx, DefaultConfig())

	root := ast.NewToken(runeseq.NewToken("nonexistent", 0))
	cur, errs := d.Run(context.Background(), root)
	if !errs.Empty() {
		t.Fatalf("unexpected errors: %v", errs.Errors())
	}
	defer cur.Close()

	if _, ok := cur.Read(); ok {
		t.Fatalf("expected Empty cursor for an unresolved token")
	}
}

func TestDriver_ExpansionFailureAbortsBeforeEvaluation(t *testing.T) {
	idx := buildCorpus(t)
	cfg := DefaultConfig()
	cfg.Expander = failingExpander{}
	d := NewDriver(idx, cfg)

	root := ast.NewToken(runeseq.NewToken("quick", 0))
	cur, errs := d.Run(context.Background(), root)
	defer cur.Close()

	if errs.Empty() {
		t.Fatalf("expected an ExpansionFailure error")
	}
	if _, ok := cur.Read(); ok {
		t.Fatalf("expected Empty cursor after an aborted expansion")
	}
}

type failingExpander struct{}

func (failingExpander) Name() string { return "failing" }
func (failingExpander) Expand(tok runeseq.Token, _ *expand.Context) ([]runeseq.Token, error) {
	return nil, errBoom
}

var errBoom = boomError{}

type boomError struct{}

func (boomError) Error() string { return "boom" }
