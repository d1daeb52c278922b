package cangjie

import (
	"bufio"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// Table maps a single Han character to the Cangjie codes that produce it.
// Codes are kept in first-encounter order with duplicates collapsed, so the
// composed output is stable across runs regardless of discovery order.
type Table map[string][]string

// hanRanges are the Unicode blocks a candidate character must fall in.
// CJK Unified Ideographs plus extensions A-J and the compatibility block.
var hanRanges = [][2]rune{
	{0x4E00, 0x9FFF},
	{0x3400, 0x4DBF},
	{0x20000, 0x2A6DF},
	{0x2A700, 0x2B73F},
	{0x2B740, 0x2B81D},
	{0x2B820, 0x2CEAD},
	{0x2CEB0, 0x2EBE0},
	{0x31350, 0x323AF},
	{0x2EBF0, 0x2EE5D},
	{0x323B0, 0x33479},
	{0x2F800, 0x2FA1F},
}

// ideographicIterationMark 〇 is outside the Han blocks but accepted anyway.
const ideographicIterationMark = '〇'

// IsHan reports whether r is within the accepted ideographic ranges.
func IsHan(r rune) bool {
	if r == ideographicIterationMark {
		return true
	}
	for _, rg := range hanRanges {
		if r >= rg[0] && r <= rg[1] {
			return true
		}
	}
	return false
}

// Load reads a Cangjie table file and returns the parsed mapping.
// The format is one entry per line: <code><ws><character>[<ws>ignored...].
// Blank lines and lines starting with '#' are skipped, as is any row whose
// candidate is not exactly one accepted Han codepoint. These tables are known
// to contain noise, so malformed rows are dropped silently; an empty or fully
// malformed file yields an empty Table without error.
func Load(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads table rows from r. See Load for the line format.
func Parse(r io.Reader) (Table, error) {
	table := make(Table)
	sc := bufio.NewScanner(r)
	first := true
	for sc.Scan() {
		line := sc.Text()
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 2 {
			continue
		}
		code, char := parts[0], parts[1]
		if code == "" || utf8.RuneCountInString(char) != 1 {
			continue
		}
		r, _ := utf8.DecodeRuneInString(char)
		if !IsHan(r) {
			continue
		}
		table.add(char, code)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return table, nil
}

// add appends code to the character's list unless already present.
func (t Table) add(char, code string) {
	codes := t[char]
	for _, c := range codes {
		if c == code {
			return
		}
	}
	t[char] = append(codes, code)
}

// Codes returns a copy of the code list for char, or nil if absent.
func (t Table) Codes(char string) []string {
	codes, ok := t[char]
	if !ok {
		return nil
	}
	out := make([]string, len(codes))
	copy(out, codes)
	return out
}
