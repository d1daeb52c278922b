package cangjie

import "strings"

// shapeTable maps each Latin key letter to the radical shown on a Cangjie
// keyboard. Used only for human-readable annotation, never for sort keys.
var shapeTable = map[rune]rune{
	'a': '日', 'b': '月', 'c': '金', 'd': '木', 'e': '水', 'f': '火', 'g': '土',
	'h': '竹', 'i': '戈', 'j': '十', 'k': '大', 'l': '中', 'm': '一', 'n': '弓',
	'o': '人', 'p': '心', 'q': '手', 'r': '口', 's': '尸', 't': '廿', 'u': '山',
	'v': '女', 'w': '田', 'x': '難', 'y': '卜', 'z': '重',
}

// ShapeCode transliterates a Latin code like "abc" into its radical form
// "日月金". Letters without a mapping pass through unchanged; rare in clean
// tables, but safer than dropping them.
func ShapeCode(code string) string {
	var b strings.Builder
	for _, r := range code {
		if shape, ok := shapeTable[r]; ok {
			b.WriteRune(shape)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
