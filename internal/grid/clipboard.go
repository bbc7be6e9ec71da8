package grid

import "strings"

// ParseClipboard splits spreadsheet clipboard text into rows (newline) and
// columns (tab). A single trailing line terminator is dropped and a
// trailing carriage return is stripped from each line. Rows may be ragged.
func ParseClipboard(text string) [][]string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	out := make([][]string, len(lines))
	for i, line := range lines {
		out[i] = strings.Split(strings.TrimSuffix(line, "\r"), "\t")
	}
	return out
}

// FormatClipboard is the inverse of ParseClipboard: columns joined by tab,
// rows terminated by newline.
func FormatClipboard(block [][]string) string {
	var b strings.Builder
	for _, row := range block {
		b.WriteString(strings.Join(row, "\t"))
		b.WriteByte('\n')
	}
	return b.String()
}
