package expand

import (
	"strings"

	"github.com/lp177/searchquery/internal/runeseq"
)

// StemmingExpander strips a small set of common English inflectional
// suffixes and adds the stem as an extra alternative alongside the original
// token. None of the example repos in the retrieval pack import a stemming
// library, so this is a deliberately small rule-based
// stand-in for Snowball/Porter rather than a port of one.
type StemmingExpander struct{}

func (StemmingExpander) Name() string { return "stem" }

var stemSuffixes = []string{"edly", "ingly", "ing", "edness", "ed", "es", "s"}

func (StemmingExpander) Expand(tok runeseq.Token, ctx *Context) ([]runeseq.Token, error) {
	stem := stemWord(tok.Str)
	if stem == tok.Str {
		return []runeseq.Token{tok}, nil
	}
	return []runeseq.Token{tok, runeseq.NewToken(stem, runeseq.FlagStemmed)}, nil
}

// stemWord strips the longest matching suffix, provided the remaining stem
// is at least 3 runes — short enough to avoid degenerate stems like
// "a" from "as".
func stemWord(s string) string {
	lower := strings.ToLower(s)
	best := s
	bestLen := len(s)
	for _, suf := range stemSuffixes {
		if !strings.HasSuffix(lower, suf) {
			continue
		}
		stem := s[:len(s)-len(suf)]
		if len([]rune(stem)) < 3 {
			continue
		}
		if len(stem) < bestLen {
			best = stem
			bestLen = len(stem)
		}
	}
	return best
}
