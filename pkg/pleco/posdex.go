package pleco

import "regexp"

// IndexRow is one positional index record: the character or syllable found
// at a given position of an entry, the entry's uid, and its full length.
// It lets the reader answer "entries whose Nth unit is X, of length L"
// without scanning the entries table.
type IndexRow struct {
	Unit   string
	UID    int64
	Length int
}

var pronSeparators = regexp.MustCompile(`[\s@]+`)

// splitPron splits a pronunciation string into syllable tokens on runs of
// whitespace or '@', dropping empties.
func splitPron(pron string) []string {
	var out []string
	for _, tok := range pronSeparators.Split(pron, -1) {
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// PositionRows derives an entry's positional index rows: one hz row per rune
// of word and one py row per syllable of pron, both capped at the first
// four positions. The returned slices are parallel to positions 1..4.
func PositionRows(uid int64, word, pron string) (hz, py []IndexRow) {
	runes := []rune(word)
	length := len(runes)
	for i, r := range runes {
		if i >= maxPosdexDepth {
			break
		}
		hz = append(hz, IndexRow{Unit: string(r), UID: uid, Length: length})
	}
	for i, syl := range splitPron(pron) {
		if i >= maxPosdexDepth {
			break
		}
		py = append(py, IndexRow{Unit: syl, UID: uid, Length: length})
	}
	return hz, py
}
