package expand

import (
	"fmt"

	"github.com/coregx/ahocorasick"
	"github.com/lp177/searchquery/internal/runeseq"
)

// SynonymExpander expands a token into every other term sharing its
// synonym group, grounded on original_source/src/synonym_map.h's model: a
// term maps to the ids of the synonym groups it belongs to, and a group id
// maps back to its member terms. The expander keeps that same shape —
// termToGroups / groupToTerms — and layers a coregx/ahocorasick automaton
// over every known term as a fast membership test, the same role it plays
// in coregx-coregex's own literal-alternation bypass (meta/compile.go),
// before falling back to the exact map lookup that resolves the actual
// group membership.
type SynonymExpander struct {
	termToGroups map[string][]int
	groupToTerms map[int][]string
	automaton    *ahocorasick.Automaton
}

// NewSynonymExpander builds an expander over groups, where each inner slice
// is one synonym group's member terms (case-sensitive, as indexed).
func NewSynonymExpander(groups [][]string) (*SynonymExpander, error) {
	e := &SynonymExpander{
		termToGroups: map[string][]int{},
		groupToTerms: map[int][]string{},
	}
	builder := ahocorasick.NewBuilder()
	seen := map[string]bool{}
	for gid, members := range groups {
		e.groupToTerms[gid] = members
		for _, term := range members {
			e.termToGroups[term] = append(e.termToGroups[term], gid)
			if !seen[term] {
				seen[term] = true
				builder.AddPattern([]byte(term))
			}
		}
	}
	automaton, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("expand: building synonym automaton: %w", err)
	}
	e.automaton = automaton
	return e, nil
}

func (e *SynonymExpander) Name() string { return "synonym" }

func (e *SynonymExpander) Expand(tok runeseq.Token, ctx *Context) ([]runeseq.Token, error) {
	haystack := []byte(tok.Str)
	if !e.automaton.IsMatch(haystack) {
		return []runeseq.Token{tok}, nil
	}

	groups, ok := e.termToGroups[tok.Str]
	if !ok {
		// The automaton matched a substring of tok.Str, not the whole
		// term (e.g. "cats" containing the pattern "cat") — no exact
		// synonym group applies.
		return []runeseq.Token{tok}, nil
	}

	out := []runeseq.Token{tok}
	emitted := map[string]bool{tok.Str: true}
	for _, gid := range groups {
		for _, member := range e.groupToTerms[gid] {
			if emitted[member] {
				continue
			}
			emitted[member] = true
			out = append(out, runeseq.NewToken(member, runeseq.FlagExpanded))
		}
	}
	return out, nil
}
