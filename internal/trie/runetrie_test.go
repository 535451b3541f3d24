package trie

import (
	"sort"
	"testing"

	"github.com/lp177/searchquery/internal/levenshtein"
)

func terms(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Term
	}
	sort.Strings(out)
	return out
}

func buildTrie(words ...string) *RuneTrie {
	tr := NewRuneTrie()
	for _, w := range words {
		tr.Insert(w)
	}
	return tr
}

func TestRuneTrie_IteratePrefix(t *testing.T) {
	tr := buildTrie("hello", "help", "helmet", "world")
	got := terms(tr.IteratePrefix("hel", -1))
	want := []string{"hello", "helmet", "help"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestRuneTrie_IteratePrefixNoMatch(t *testing.T) {
	tr := buildTrie("hello")
	got := tr.IteratePrefix("xyz", -1)
	if got != nil {
		t.Fatalf("expected no entries for an absent prefix, got %v", got)
	}
}

func TestRuneTrie_IteratePrefixRespectsCap(t *testing.T) {
	tr := buildTrie("aa", "ab", "ac", "ad")
	got := tr.IteratePrefix("a", 2)
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2 under the cap", len(got))
	}
}

func TestRuneTrie_IterateRangeInclusive(t *testing.T) {
	tr := buildTrie("alpha", "beta", "gamma", "delta")
	begin, end := "alpha", "delta"
	var got []string
	tr.IterateRange(&begin, &end, true, true, func(term string) {
		got = append(got, term)
	})
	sort.Strings(got)
	want := []string{"alpha", "beta", "delta"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestRuneTrie_IterateRangeExclusiveBoundsDropEndpoints(t *testing.T) {
	tr := buildTrie("alpha", "beta", "gamma")
	begin, end := "alpha", "gamma"
	var got []string
	tr.IterateRange(&begin, &end, false, false, func(term string) {
		got = append(got, term)
	})
	if len(got) != 1 || got[0] != "beta" {
		t.Fatalf("got %v, want [beta]", got)
	}
}

func TestRuneTrie_IterateRangeUnboundedSide(t *testing.T) {
	tr := buildTrie("alpha", "beta", "gamma")
	end := "beta"
	var got []string
	tr.IterateRange(nil, &end, true, true, func(term string) {
		got = append(got, term)
	})
	sort.Strings(got)
	want := []string{"alpha", "beta"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestRuneTrie_IterateDFAFindsFuzzyMatches(t *testing.T) {
	tr := buildTrie("hello", "hallo", "jello", "world")
	a := levenshtein.New([]rune("hello"), 1)
	cache := levenshtein.NewCache(a)
	got := terms(tr.IterateDFA(cache, -1))
	want := []string{"hallo", "hello", "jello"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestRuneTrie_IterateDFARespectsCap(t *testing.T) {
	tr := buildTrie("aaa", "aab", "aac", "aad")
	a := levenshtein.New([]rune("aaa"), 2)
	cache := levenshtein.NewCache(a)
	got := tr.IterateDFA(cache, 1)
	if len(got) != 1 {
		t.Fatalf("got %d entries, want 1 under the cap", len(got))
	}
}
