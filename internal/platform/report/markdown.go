package report

import (
	"fmt"
	"strings"

	"github.com/nutritionsays/nutrition/internal/domain/assessment"
)

// Markdown renders the structured note as a Markdown summary.
func Markdown(a *assessment.Assessment) string {
	doc := BuildDocument(a)

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", doc.Title)
	fmt.Fprintf(&b, "**Date:** %s", doc.Date)
	if doc.PatientName != "" {
		fmt.Fprintf(&b, "  **Patient:** %s", doc.PatientName)
	}
	if doc.Practitioner != "" {
		fmt.Fprintf(&b, "  **Practitioner:** %s", doc.Practitioner)
	}
	b.WriteString("\n")

	for _, sec := range doc.Sections {
		fmt.Fprintf(&b, "\n## %s\n\n", sec.Title)
		for _, p := range sec.Paragraphs {
			fmt.Fprintf(&b, "%s\n\n", p)
		}
		if sec.Table != nil {
			writeTable(&b, sec.Table)
		}
	}
	return b.String()
}

func writeTable(b *strings.Builder, t *Table) {
	b.WriteString("| " + strings.Join(t.Headers, " | ") + " |\n")
	sep := make([]string, len(t.Headers))
	for i := range sep {
		sep[i] = "---"
	}
	b.WriteString("| " + strings.Join(sep, " | ") + " |\n")
	for _, row := range t.Rows {
		b.WriteString("| " + strings.Join(row, " | ") + " |\n")
	}
	b.WriteString("\n")
}
