// Package phonetic derives Mandarin transcriptions and collation keys for
// dictionary entries. Transcriptions use numeric-tone notation ("ri4"), keys
// use full-width ASCII so they sort apart from plain Latin ranges.
package phonetic

import (
	"strings"

	"github.com/mozillazg/go-pinyin"
	"golang.org/x/text/width"
)

var args = newArgs()

func newArgs() pinyin.Args {
	a := pinyin.NewArgs()
	a.Style = pinyin.Tone3
	// Keep one (possibly empty) syllable per rune so positions line up with
	// the characters of the word.
	a.Fallback = func(r rune, a pinyin.Args) []string {
		return []string{""}
	}
	return a
}

// Syllables returns one numeric-tone syllable per rune of word, with the
// conventional ü→v substitution. Runes without a known reading yield "".
func Syllables(word string) []string {
	out := make([]string, 0, len(word)/3+1)
	for _, item := range pinyin.Pinyin(word, args) {
		syl := ""
		if len(item) > 0 {
			syl = item[0]
		}
		out = append(out, strings.ReplaceAll(syl, "ü", "v"))
	}
	return out
}

// ToFullwidth maps each printable ASCII rune (U+0021..U+007E) to its
// full-width counterpart, a fixed +0xFEE0 offset. Other runes pass through.
func ToFullwidth(s string) string {
	return width.Widen.String(s)
}

// SortKey builds the store collation key: the full-width transcription of
// each syllable followed by its character. A word with no transcription at
// all degrades to the bare word, which still keys single characters uniquely.
func SortKey(syllables []string, word string) string {
	runes := []rune(word)
	if len(runes) == 1 {
		syl := ""
		if len(syllables) > 0 {
			syl = syllables[0]
		}
		return ToFullwidth(syl) + word
	}
	var b strings.Builder
	for i, r := range runes {
		if i < len(syllables) {
			b.WriteString(ToFullwidth(syllables[i]))
		}
		b.WriteRune(r)
	}
	return b.String()
}
