package export

import (
	"fmt"
	"os"
	"strings"
)

// WriteTXT writes formatted summaries to a text file, separated by blank
// lines.
func WriteTXT(path string, summaries ...string) error {
	var b strings.Builder
	for i, s := range summaries {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(s)
	}
	b.WriteString("\n")

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write txt file: %w", err)
	}
	return nil
}
