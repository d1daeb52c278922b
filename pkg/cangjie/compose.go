package cangjie

import "strings"

// LineBreak is the private-use codepoint Pleco renders as a line break inside
// definition text. Ordinary newlines are treated differently by the reader.
const LineBreak = "\ueab1"

// Section labels for the composed definition.
const (
	labelUnified   = "Cangjie"
	labelPrimary   = "Cangjie3"
	labelSecondary = "Cangjie5"
)

// ComposeDefinition merges the primary (Cangjie3) and secondary (Cangjie5)
// code lists for one character into its definition text. Identical non-empty
// lists collapse into a single unified section; otherwise each non-empty
// system gets its own section, primary first. Both lists empty yields "" and
// the caller drops the character.
func ComposeDefinition(primary, secondary []string) string {
	primary = dedupe(primary)
	secondary = dedupe(secondary)

	if len(primary) > 0 && equal(primary, secondary) {
		return formatSection(labelUnified, primary)
	}

	var sections []string
	if len(primary) > 0 {
		sections = append(sections, formatSection(labelPrimary, primary))
	}
	if len(secondary) > 0 {
		sections = append(sections, formatSection(labelSecondary, secondary))
	}
	return strings.Join(sections, LineBreak+LineBreak)
}

// formatSection renders one labeled block: the label line, the codes in
// radical form, then the raw codes.
func formatSection(label string, codes []string) string {
	shapes := make([]string, len(codes))
	for i, c := range codes {
		shapes[i] = ShapeCode(c)
	}
	return label + ":" + LineBreak +
		strings.Join(shapes, " / ") + LineBreak +
		strings.Join(codes, " / ")
}

// dedupe removes duplicates keeping first-encounter order.
func dedupe(codes []string) []string {
	if len(codes) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(codes))
	out := codes[:0:0]
	for _, c := range codes {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
