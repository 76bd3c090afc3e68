// Package compare cross-references detection results from several projects
// into a single matrix, for side-by-side study of how different codebases
// lean on the same styles and patterns.
package compare

import (
	"fmt"
	"sort"
	"strings"

	"rasr/internal/patterns"
)

// ProjectReport is one project's detection summary, typically produced by a
// full analysis run.
type ProjectReport struct {
	Name          string                 `json:"name"`
	Styles        []patterns.Detection   `json:"styles"`
	Patterns      []patterns.Detection   `json:"patterns"`
	Communication []patterns.CommPattern `json:"communication"`
	CrateCount    int                    `json:"crateCount"`
}

// Comparison is the cross-project matrix. Projects keep their input order;
// the All* axes are sorted unions.
type Comparison struct {
	Projects         []ProjectReport `json:"projects"`
	AllStyles        []string        `json:"allStyles"`
	AllPatterns      []string        `json:"allPatterns"`
	AllCommunication []string        `json:"allCommunication"`
}

// Compare builds the matrix from per-project reports
func Compare(reports []ProjectReport) *Comparison {
	c := &Comparison{Projects: reports}

	styles := map[string]bool{}
	pats := map[string]bool{}
	comm := map[string]bool{}

	for _, r := range reports {
		for _, d := range r.Styles {
			styles[d.Name] = true
		}
		for _, d := range r.Patterns {
			pats[d.Name] = true
		}
		for _, p := range r.Communication {
			comm[p.Name] = true
		}
	}

	c.AllStyles = sortedKeys(styles)
	c.AllPatterns = sortedKeys(pats)
	c.AllCommunication = sortedKeys(comm)

	return c
}

// Markdown renders the comparison as a set of tables: styles with
// confidence, patterns and communication as presence marks, then a one-line
// summary per project.
func (c *Comparison) Markdown() string {
	var b strings.Builder

	b.WriteString("# Pattern Cross-Reference Matrix\n\n")
	b.WriteString("Comparison of architectural patterns across projects.\n\n")

	b.WriteString("## Architecture Styles\n\n")
	c.writeTable(&b, "Style", c.AllStyles, func(r ProjectReport, name string) string {
		for _, d := range r.Styles {
			if d.Name == name {
				return fmt.Sprintf("✅ %.0f%%", d.Confidence*100)
			}
		}
		return "❌"
	})

	b.WriteString("\n## Design Patterns\n\n")
	c.writeTable(&b, "Pattern", c.AllPatterns, func(r ProjectReport, name string) string {
		for _, d := range r.Patterns {
			if d.Name == name {
				return "✅"
			}
		}
		return "❌"
	})

	b.WriteString("\n## Communication Patterns\n\n")
	c.writeTable(&b, "Pattern", c.AllCommunication, func(r ProjectReport, name string) string {
		for _, p := range r.Communication {
			if p.Name == name {
				return "✅"
			}
		}
		return "❌"
	})

	b.WriteString("\n## Project Summary\n\n")
	b.WriteString("| Project | Crates | Primary Style | Key Patterns |\n")
	b.WriteString("|---------|--------|---------------|--------------|\n")
	for _, r := range c.Projects {
		primary := "N/A"
		if len(r.Styles) > 0 {
			primary = r.Styles[0].Name
		}
		key := "N/A"
		if len(r.Patterns) > 0 {
			names := make([]string, 0, 3)
			for _, d := range r.Patterns {
				names = append(names, d.Name)
				if len(names) == 3 {
					break
				}
			}
			key = strings.Join(names, ", ")
		}
		fmt.Fprintf(&b, "| %s | %d | %s | %s |\n", r.Name, r.CrateCount, primary, key)
	}

	return b.String()
}

// writeTable emits one markdown table with a row per axis value and a column
// per project.
func (c *Comparison) writeTable(b *strings.Builder, rowLabel string, rows []string, cell func(ProjectReport, string) string) {
	b.WriteString("| " + rowLabel)
	for _, r := range c.Projects {
		b.WriteString(" | " + r.Name)
	}
	b.WriteString(" |\n|")
	for i := 0; i < len(c.Projects)+1; i++ {
		b.WriteString("---|")
	}
	b.WriteString("\n")

	for _, row := range rows {
		b.WriteString("| " + row)
		for _, r := range c.Projects {
			b.WriteString(" | " + cell(r, row))
		}
		b.WriteString(" |\n")
	}
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
