// Package ast implements the AST node types and evaluators for query
// evaluation: a tagged-variant query tree, field-mask propagation, attribute
// application, global-filter injection, expansion-pipeline hooks, explain
// dump, and the two evaluation dispatch modes (top-level and tag-sub-tree).
// Node replaces query.c's virtual QueryNode hierarchy with one struct per
// node kind, selected by a Kind discriminant and dispatched by a
// conversion/evaluation function rather than a method table.
package ast

import (
	"github.com/lp177/searchquery/internal/index"
	"github.com/lp177/searchquery/internal/record"
	"github.com/lp177/searchquery/internal/runeseq"
)

// Kind discriminates an AST node's payload.
type Kind int

const (
	KindToken Kind = iota
	KindPrefix
	KindFuzzy
	KindLexRange
	KindPhrase
	KindUnion
	KindNot
	KindOptional
	KindWildcard
	KindNumeric
	KindGeo
	KindIdList
	KindTag
)

func (k Kind) String() string {
	switch k {
	case KindToken:
		return "TOKEN"
	case KindPrefix:
		return "PREFIX"
	case KindFuzzy:
		return "FUZZY"
	case KindLexRange:
		return "LEXRANGE"
	case KindPhrase:
		return "PHRASE"
	case KindUnion:
		return "UNION"
	case KindNot:
		return "NOT"
	case KindOptional:
		return "OPTIONAL"
	case KindWildcard:
		return "WILDCARD"
	case KindNumeric:
		return "NUMERIC"
	case KindGeo:
		return "GEO"
	case KindIdList:
		return "IDS"
	case KindTag:
		return "TAG"
	default:
		return "UNKNOWN"
	}
}

// ExpandChildren reports whether the expansion pipeline should recurse into
// a node of kind k. Leaf filter kinds (Numeric, Geo, IdList, Wildcard) carry
// no Token children to rewrite, and term-expansion kinds (Prefix, Fuzzy,
// LexRange) are themselves already a form of expansion.
func (k Kind) ExpandChildren() bool {
	switch k {
	case KindNumeric, KindGeo, KindIdList, KindWildcard, KindPrefix, KindFuzzy, KindLexRange:
		return false
	default:
		return true
	}
}

// Phonetic is the tri-state phonetic-matching preference a node carries.
type Phonetic int

const (
	PhoneticDefault Phonetic = iota
	PhoneticEnabled
	PhoneticDisabled
)

// AllFields is the field mask selecting every indexed field.
const AllFields = ^uint64(0)

// Options is the per-node attribute and field-mask state.
type Options struct {
	FieldMask uint64
	Weight    float64
	MaxSlop   int // -1 = inherit the query default
	InOrder   bool
	Phonetic  Phonetic
	Verbatim  bool
	// Exact marks a Phrase built from a literal quoted sequence: positions
	// must be strictly consecutive and increasing in child order,
	// overriding MaxSlop/InOrder.
	Exact bool
}

// DefaultOptions returns the zero-value option set: full field mask, unit
// weight, inherited slop, order not enforced.
func DefaultOptions() Options {
	return Options{FieldMask: AllFields, Weight: 1, MaxSlop: -1}
}

// Node is a tagged-variant AST node. Kind selects which of the
// kind-specific fields below are meaningful; the rest are zero.
type Node struct {
	Kind     Kind
	Options  Options
	Children []*Node

	// Token
	Tok runeseq.Token

	// Prefix, Fuzzy
	Pattern  string
	MaxEdits int // Fuzzy only

	// LexRange
	Begin, End           *string
	InclBegin, InclEnd bool

	// Numeric, Geo, Tag
	Field   string
	Numeric *index.NumericFilter
	Geo     *index.GeoFilter

	// IdList
	IDs []record.DocID
}

func newNode(kind Kind) *Node {
	return &Node{Kind: kind, Options: DefaultOptions()}
}

// NewToken builds a Token node from already-decoded token text.
func NewToken(tok runeseq.Token) *Node {
	n := newNode(KindToken)
	n.Tok = tok
	return n
}

// NewPrefix builds a Prefix node for pattern.
func NewPrefix(pattern string) *Node {
	n := newNode(KindPrefix)
	n.Pattern = pattern
	return n
}

// NewFuzzy builds a Fuzzy node for pattern within maxEdits.
func NewFuzzy(pattern string, maxEdits int) *Node {
	n := newNode(KindFuzzy)
	n.Pattern = pattern
	n.MaxEdits = maxEdits
	return n
}

// NewLexRange builds a LexRange node between begin and end (either may be
// nil for an unbounded side).
func NewLexRange(begin, end *string, inclBegin, inclEnd bool) *Node {
	n := newNode(KindLexRange)
	n.Begin, n.End = begin, end
	n.InclBegin, n.InclEnd = inclBegin, inclEnd
	return n
}

// NewPhrase builds a Phrase node over children, in order.
func NewPhrase(children ...*Node) *Node {
	n := newNode(KindPhrase)
	n.AddChildren(children...)
	return n
}

// NewUnion builds a Union node over children.
func NewUnion(children ...*Node) *Node {
	n := newNode(KindUnion)
	n.AddChildren(children...)
	return n
}

// NewNot wraps child in a Not node.
func NewNot(child *Node) *Node {
	n := newNode(KindNot)
	n.AddChildren(child)
	return n
}

// NewOptional wraps child in an Optional node.
func NewOptional(child *Node) *Node {
	n := newNode(KindOptional)
	n.AddChildren(child)
	return n
}

// NewWildcard builds a Wildcard node.
func NewWildcard() *Node {
	return newNode(KindWildcard)
}

// NewNumeric builds a Numeric node over filter.
func NewNumeric(filter index.NumericFilter) *Node {
	n := newNode(KindNumeric)
	n.Field = filter.Field
	n.Numeric = &filter
	return n
}

// NewGeo builds a Geo node over filter.
func NewGeo(filter index.GeoFilter) *Node {
	n := newNode(KindGeo)
	n.Field = filter.Field
	n.Geo = &filter
	return n
}

// NewIDList builds an IdList node over the given ascending ids.
func NewIDList(ids []record.DocID) *Node {
	n := newNode(KindIdList)
	n.IDs = ids
	return n
}

// NewTag builds a Tag node over field, admitting children per AddChildren's
// kind filter.
func NewTag(field string, children ...*Node) *Node {
	n := newNode(KindTag)
	n.Field = field
	n.AddChildren(children...)
	return n
}

// AddChildren appends children to n. For a Tag node, only Token, Phrase,
// Prefix, and LexRange children are admitted; others are silently dropped,
// mirroring query.c's QueryNode::AddChildren filtering for QN_TAG.
func (n *Node) AddChildren(children ...*Node) {
	if n.Kind != KindTag {
		n.Children = append(n.Children, children...)
		return
	}
	for _, c := range children {
		switch c.Kind {
		case KindToken, KindPhrase, KindPrefix, KindLexRange:
			n.Children = append(n.Children, c)
		}
	}
}
