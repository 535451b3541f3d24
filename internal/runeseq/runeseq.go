// Package runeseq provides the rune-sequence and token primitives the rest
// of the query evaluation core is built on: code-point arrays decoded from
// UTF-8, and the Token type that carries query terms with their flags.
package runeseq

import "unicode/utf8"

// Runes is an immutable view over a string's code points.
type Runes []rune

// Decode splits s into its code points.
func Decode(s string) Runes {
	rs := make(Runes, 0, len(s))
	for i, w := 0, 0; i < len(s); i += w {
		r, width := utf8.DecodeRuneInString(s[i:])
		rs = append(rs, r)
		w = width
	}
	return rs
}

// String reassembles the rune sequence into a string.
func (rs Runes) String() string {
	return string(rs)
}

// Flags records how a Token reached the AST: verbatim text, or the product
// of one of the expansion pipeline's expanders.
type Flags uint8

const (
	// FlagVerbatim marks a token that must not be rewritten by Expand.
	FlagVerbatim Flags = 1 << iota
	// FlagStemmed marks a token produced by a stemming expander.
	FlagStemmed
	// FlagPhonetic marks a token produced by a phonetic expander.
	FlagPhonetic
	// FlagExpanded marks a token produced by any expander (synonym, etc.)
	// that isn't a stem or phonetic variant.
	FlagExpanded
)

// Has reports whether all bits in want are set.
func (f Flags) Has(want Flags) bool { return f&want == want }

// Token is an immutable query term: either the original rune view supplied
// by the parser, or a byte string materialized by an expander. TokenID is
// assigned lazily by the query driver, the first time a reader is opened
// for this token — never at parse or expansion time.
type Token struct {
	Runes   Runes
	Str     string
	Flags   Flags
	TokenID uint32
}

// NewToken builds a verbatim-capable token from parsed text.
func NewToken(s string, flags Flags) Token {
	return Token{Runes: Decode(s), Str: s, Flags: flags}
}

// Len returns the number of code points in the token.
func (t Token) Len() int { return len(t.Runes) }

// WithTokenID returns a copy of t with TokenID set, as performed by the
// query driver the moment a reader is opened for the term.
func (t Token) WithTokenID(id uint32) Token {
	t.TokenID = id
	return t
}
