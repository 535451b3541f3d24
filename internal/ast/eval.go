package ast

import (
	"math"

	"github.com/lp177/searchquery/internal/concurrent"
	"github.com/lp177/searchquery/internal/cursor"
	"github.com/lp177/searchquery/internal/index"
	"github.com/lp177/searchquery/internal/levenshtein"
	"github.com/lp177/searchquery/internal/record"
	"github.com/lp177/searchquery/internal/trie"
)

// EvalContext carries everything Eval needs beyond the node tree itself:
// the storage collaborator, the query's concurrency handle, resolved query
// defaults, and the error sink expansion/evaluation errors surface through.
type EvalContext struct {
	Index      index.Index
	Concurrent *concurrent.Context
	Errors     *ErrorSink

	GlobalMask           uint64
	MaxDocID             record.DocID
	MaxPrefixExpansions  int // -1 = uncapped
	MinTermPrefix        int
	DefaultSlop          int  // query-wide slop used when a node's MaxSlop is -1; -1 = unbounded
	DefaultInOrder       bool // query-wide in-order override

	tokenSeq uint32
}

// nextTokenID draws the next value from the query-scoped counter query.c
// increments at reader-open time (q->tokenId++), not at parse time — every
// evaluator that opens a term reader (Token, Prefix, Fuzzy, LexRange) shares
// the same counter, so token ids stay monotonically assigned within one
// query regardless of which node kind opened the reader. Tag sub-evaluation
// opens tag-index cursors and does not draw from this counter.
func (e *EvalContext) nextTokenID() uint32 {
	id := e.tokenSeq
	e.tokenSeq++
	return id
}

// Eval evaluates node into a cursor, dispatching on its kind. It returns
// (nil, false) when the node contributes nothing — the query driver is
// responsible for substituting an Empty cursor at the root when the whole
// tree produces no iterator.
func Eval(node *Node, ectx *EvalContext) (cursor.Cursor, bool) {
	if node == nil {
		return nil, false
	}

	switch node.Kind {
	case KindToken:
		return evalToken(node, ectx)
	case KindPhrase:
		return evalPhrase(node, ectx)
	case KindUnion:
		return evalUnion(node, ectx)
	case KindNot:
		return evalNot(node, ectx)
	case KindOptional:
		return evalOptional(node, ectx)
	case KindWildcard:
		return cursor.NewWildcard(ectx.MaxDocID), true
	case KindNumeric:
		return evalNumeric(node, ectx)
	case KindGeo:
		return evalGeo(node, ectx)
	case KindIdList:
		mask := node.Options.FieldMask & ectx.GlobalMask
		return cursor.NewIdList(node.IDs, mask, node.Options.Weight), true
	case KindPrefix:
		return evalPrefix(node, ectx)
	case KindFuzzy:
		return evalFuzzy(node, ectx)
	case KindLexRange:
		return evalLexRange(node, ectx)
	case KindTag:
		return evalTagNode(node, ectx)
	default:
		return nil, false
	}
}

func evalToken(node *Node, ectx *EvalContext) (cursor.Cursor, bool) {
	mask := node.Options.FieldMask & ectx.GlobalMask
	r, ok := ectx.Index.OpenTermReader(node.Tok.Str, mask, node.Options.Weight)
	if !ok {
		return nil, false
	}
	node.Tok = node.Tok.WithTokenID(ectx.nextTokenID())
	return cursor.NewTerm(r), true
}

func evalPhrase(node *Node, ectx *EvalContext) (cursor.Cursor, bool) {
	if len(node.Children) == 0 {
		return nil, false
	}
	if len(node.Children) == 1 {
		return Eval(node.Children[0], ectx)
	}

	children := make([]cursor.Cursor, 0, len(node.Children))
	for _, c := range node.Children {
		cur, ok := Eval(c, ectx)
		if !ok {
			// Any unresolved phrase child forces the whole intersection empty.
			for _, opened := range children {
				opened.Close()
			}
			return nil, false
		}
		children = append(children, cur)
	}

	slop, inOrder, exact := resolveSlop(node.Options, ectx.DefaultSlop, ectx.DefaultInOrder)
	return cursor.NewIntersect(children, slop, inOrder, exact, node.Options.Weight), true
}

func resolveSlop(o Options, defaultSlop int, defaultInOrder bool) (slop int, inOrder bool, exact bool) {
	if o.Exact {
		return 0, true, true
	}
	slop = o.MaxSlop
	if slop == -1 {
		slop = defaultSlop
	}
	inOrder = defaultInOrder || o.InOrder
	if inOrder && slop == -1 {
		slop = math.MaxInt32
	}
	return slop, inOrder, false
}

func evalUnion(node *Node, ectx *EvalContext) (cursor.Cursor, bool) {
	if len(node.Children) == 1 {
		return Eval(node.Children[0], ectx)
	}
	children := make([]cursor.Cursor, 0, len(node.Children))
	for _, c := range node.Children {
		if cur, ok := Eval(c, ectx); ok {
			children = append(children, cur)
		}
	}
	return collapseUnion(children, node.Options.Weight)
}

func collapseUnion(children []cursor.Cursor, weight float64) (cursor.Cursor, bool) {
	switch len(children) {
	case 0:
		return nil, false
	case 1:
		return children[0], true
	default:
		return cursor.NewUnion(children, weight), true
	}
}

func evalNot(node *Node, ectx *EvalContext) (cursor.Cursor, bool) {
	child, _ := evalFirstChild(node, ectx)
	return cursor.NewNot(child, ectx.MaxDocID), true
}

func evalOptional(node *Node, ectx *EvalContext) (cursor.Cursor, bool) {
	child, _ := evalFirstChild(node, ectx)
	return cursor.NewOptional(child, ectx.MaxDocID), true
}

func evalFirstChild(node *Node, ectx *EvalContext) (cursor.Cursor, bool) {
	if len(node.Children) == 0 {
		return cursor.NewEmpty(), false
	}
	if cur, ok := Eval(node.Children[0], ectx); ok {
		return cur, true
	}
	return cursor.NewEmpty(), false
}

func evalNumeric(node *Node, ectx *EvalContext) (cursor.Cursor, bool) {
	spec, ok := ectx.Index.FieldSpec(node.Field)
	if !ok || spec.Type != index.FieldNumeric {
		ectx.Errors.Add(NoSuchField(node.Field))
		return nil, false
	}
	return ectx.Index.OpenNumericIterator(*node.Numeric, ectx.Concurrent)
}

func evalGeo(node *Node, ectx *EvalContext) (cursor.Cursor, bool) {
	spec, ok := ectx.Index.FieldSpec(node.Field)
	if !ok || spec.Type != index.FieldGeo {
		ectx.Errors.Add(NoSuchField(node.Field))
		return nil, false
	}
	return ectx.Index.OpenGeoIterator(*node.Geo, node.Options.Weight)
}

func evalPrefix(node *Node, ectx *EvalContext) (cursor.Cursor, bool) {
	if len([]rune(node.Pattern)) < ectx.MinTermPrefix {
		return nil, false
	}
	entries := ectx.Index.Trie().IteratePrefix(node.Pattern, ectx.MaxPrefixExpansions)
	return unionFromEntries(entries, node, ectx)
}

func evalFuzzy(node *Node, ectx *EvalContext) (cursor.Cursor, bool) {
	pattern := []rune(node.Pattern)
	automaton := levenshtein.New(pattern, node.MaxEdits)
	cache := levenshtein.NewCache(automaton)
	entries := ectx.Index.Trie().IterateDFA(cache, ectx.MaxPrefixExpansions)
	return unionFromEntries(entries, node, ectx)
}

func unionFromEntries(entries []trie.Entry, node *Node, ectx *EvalContext) (cursor.Cursor, bool) {
	mask := node.Options.FieldMask & ectx.GlobalMask
	children := make([]cursor.Cursor, 0, len(entries))
	for _, e := range entries {
		if r, ok := ectx.Index.OpenTermReader(e.Term, mask, node.Options.Weight); ok {
			ectx.nextTokenID()
			children = append(children, cursor.NewTerm(r))
		}
	}
	return collapseUnion(children, node.Options.Weight)
}

func evalLexRange(node *Node, ectx *EvalContext) (cursor.Cursor, bool) {
	mask := node.Options.FieldMask & ectx.GlobalMask
	var children []cursor.Cursor
	ectx.Index.Trie().IterateRange(node.Begin, node.End, node.InclBegin, node.InclEnd, func(term string) {
		if r, ok := ectx.Index.OpenTermReader(term, mask, node.Options.Weight); ok {
			ectx.nextTokenID()
			children = append(children, cursor.NewTerm(r))
		}
	})
	return collapseUnion(children, node.Options.Weight)
}

func evalTagNode(node *Node, ectx *EvalContext) (cursor.Cursor, bool) {
	ti, ok := ectx.Index.OpenTagIndex(node.Field)
	if !ok {
		ectx.Errors.Add(NoSuchField(node.Field))
		return nil, false
	}
	if len(node.Children) == 1 {
		return EvalTag(node.Children[0], ti, node.Options.Weight, ectx)
	}
	children := make([]cursor.Cursor, 0, len(node.Children))
	for _, c := range node.Children {
		if cur, ok := EvalTag(c, ti, node.Options.Weight, ectx); ok {
			children = append(children, cur)
		}
	}
	return collapseUnion(children, node.Options.Weight)
}
