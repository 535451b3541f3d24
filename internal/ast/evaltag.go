package ast

import (
	"strings"

	"github.com/lp177/searchquery/internal/cursor"
	"github.com/lp177/searchquery/internal/index"
)

// EvalTag is the tag sub-evaluator: it reuses the tag index's own value
// trie-map rather than the term dictionary. Only Token,
// Phrase, Prefix, and LexRange children reach here — Node.AddChildren
// already filtered out anything else when the Tag node was built.
func EvalTag(node *Node, ti index.TagIndex, weight float64, ectx *EvalContext) (cursor.Cursor, bool) {
	switch node.Kind {
	case KindToken:
		return ti.Open(node.Tok.Str, weight)

	case KindPhrase:
		// Space-joins child token strings into one composite tag value;
		// each non-Token child contributes an empty string, so its
		// separator space stays in the joined value. Preserved verbatim
		// from query.c's QueryPhraseNode::EvalSingle, including its quirk of
		// silently emptying non-Token children rather than rejecting them.
		parts := make([]string, len(node.Children))
		for i, c := range node.Children {
			if c.Kind == KindToken {
				parts[i] = c.Tok.Str
			}
		}
		return ti.Open(strings.Join(parts, " "), weight)

	case KindPrefix:
		values := ti.Trie().IteratePrefix(node.Pattern, ectx.MaxPrefixExpansions)
		return unionFromTagValues(values, ti, weight)

	case KindLexRange:
		var values []string
		ti.Trie().IterateRange(node.Begin, node.End, node.InclBegin, node.InclEnd, func(v string) {
			values = append(values, v)
		})
		return unionFromTagValues(values, ti, weight)

	default:
		return nil, false
	}
}

func unionFromTagValues(values []string, ti index.TagIndex, weight float64) (cursor.Cursor, bool) {
	children := make([]cursor.Cursor, 0, len(values))
	for _, v := range values {
		if cur, ok := ti.Open(v, weight); ok {
			children = append(children, cur)
		}
	}
	return collapseUnion(children, weight)
}
