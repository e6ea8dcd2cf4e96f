package compare

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"nathanbeddoewebdev/sigdata/internal/styles"
)

// WriteJSON writes the report as indented JSON.
func WriteJSON(w io.Writer, r *Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

// WriteText writes the human-readable report.
func WriteText(w io.Writer, r *Report, rs styles.Renderer) error {
	var b strings.Builder

	b.WriteString(rs.Render(styles.Title, "SIG Database Comparison") + "\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	for _, s := range r.Sections {
		b.WriteString(rs.Render(styles.Heading, strings.ToUpper(s.Category)) + "\n")
		if s.Error != "" {
			fmt.Fprintf(&b, "   %s\n\n", rs.Render(styles.ErrorText, "Error: "+s.Error))
			continue
		}

		fmt.Fprintf(&b, "   %s %d\n", rs.Render(styles.Label, "Well-known:"), s.Baseline)
		fmt.Fprintf(&b, "   %s   %d\n", rs.Render(styles.Label, "Extended:"), s.Converted)
		if s.NewCapability() {
			fmt.Fprintf(&b, "   %s +%d %s (new capability)\n",
				rs.Render(styles.Label, "Improvement:"), s.Converted, s.Category)
		} else {
			fmt.Fprintf(&b, "   %s %+d %s (%.1f%% increase)\n",
				rs.Render(styles.Label, "Improvement:"), s.Increase, s.Category, *s.PercentIncrease)
		}
		b.WriteString("\n")
	}

	for _, s := range r.Sections {
		if s.Error != "" {
			continue
		}
		title := "Examples of new " + s.Category
		if s.NewCapability() {
			title = "Examples of " + s.Category
		}
		b.WriteString(rs.Render(styles.Heading, title+":") + "\n")
		for _, e := range s.Examples {
			fmt.Fprintf(&b, "   %s: %s\n", rs.Render(styles.AccentText, "0x"+strings.ToUpper(e.Key)), e.Name)
		}
		fmt.Fprintf(&b, "   %s\n\n", rs.Render(styles.MutedText, fmt.Sprintf("... and %d more", s.Remaining)))
	}

	_, err := io.WriteString(w, b.String())
	return err
}
