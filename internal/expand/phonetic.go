package expand

import (
	"strings"
	"unicode"

	"github.com/lp177/searchquery/internal/runeseq"
)

// PhoneticExpander adds a Soundex code alongside the original token as an
// extra alternative. It runs on every Token node Expand visits: neither this
// expander nor the driver consults the node's Phonetic tri-state. No
// phonetic-matching library covers this, hence the stdlib implementation of
// the standard four-character Soundex algorithm.
type PhoneticExpander struct{}

func (PhoneticExpander) Name() string { return "phonetic" }

func (PhoneticExpander) Expand(tok runeseq.Token, ctx *Context) ([]runeseq.Token, error) {
	code := soundex(tok.Str)
	if code == "" {
		return []runeseq.Token{tok}, nil
	}
	return []runeseq.Token{tok, runeseq.NewToken(code, runeseq.FlagPhonetic)}, nil
}

var soundexCode = map[rune]byte{
	'b': '1', 'f': '1', 'p': '1', 'v': '1',
	'c': '2', 'g': '2', 'j': '2', 'k': '2', 'q': '2', 's': '2', 'x': '2', 'z': '2',
	'd': '3', 't': '3',
	'l': '4',
	'm': '5', 'n': '5',
	'r': '6',
}

// soundex implements the classic Soundex algorithm: first letter kept
// as-is, subsequent letters mapped to a digit class, consecutive duplicate
// classes and h/w-separated duplicates collapsed, vowels and the letters
// h/w/y dropped, result padded/truncated to four characters.
func soundex(s string) string {
	letters := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsLetter(r) {
			letters = append(letters, unicode.ToLower(r))
		}
	}
	if len(letters) == 0 {
		return ""
	}

	var out strings.Builder
	out.WriteRune(unicode.ToUpper(letters[0]))

	lastCode := soundexCode[letters[0]]
	for _, r := range letters[1:] {
		code, mapped := soundexCode[r]
		if !mapped {
			if r != 'h' && r != 'w' {
				lastCode = 0
			}
			continue
		}
		if code != lastCode {
			out.WriteByte(code)
		}
		lastCode = code
		if out.Len() >= 4 {
			break
		}
	}

	result := out.String()
	for len(result) < 4 {
		result += "0"
	}
	return result[:4]
}
