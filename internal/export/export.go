// Package export renders analysis results as JSON files and human-readable
// markdown reports.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"rasr/internal/engine"
	"rasr/internal/graph"
	"rasr/internal/patterns"
	"rasr/internal/relations"
	"rasr/internal/semindex"
)

// WriteJSON writes v as indented JSON, creating parent directories as needed
func WriteJSON(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// WriteMarkdown writes rendered markdown, creating parent directories as needed
func WriteMarkdown(path string, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}

// GraphSummaryMarkdown renders graph statistics, entity type counts, the
// clusters with up to ten members each, trait implementation and derive
// usage summaries, and relationship counts.
func GraphSummaryMarkdown(g *graph.Graph) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Knowledge Graph: %s\n\n", g.Project)
	b.WriteString("## Statistics\n")
	fmt.Fprintf(&b, "- **Nodes:** %d\n", g.Stats.TotalNodes)
	fmt.Fprintf(&b, "- **Edges:** %d\n", g.Stats.TotalEdges)
	fmt.Fprintf(&b, "- **Clusters:** %d\n", g.Stats.TotalClusters)

	b.WriteString("\n## Entity Types\n")
	counts := map[string]int{}
	for _, n := range g.Nodes {
		counts[string(n.Kind)]++
	}
	for _, kc := range sortByCountDesc(counts) {
		fmt.Fprintf(&b, "- %s: %d\n", kc.name, kc.count)
	}

	b.WriteString("\n## Clusters (Layers)\n")
	for _, cluster := range g.Clusters {
		fmt.Fprintf(&b, "### %s\n", cluster.Name)
		for i, node := range cluster.Nodes {
			if i == 10 {
				fmt.Fprintf(&b, "- ... and %d more\n", len(cluster.Nodes)-10)
				break
			}
			fmt.Fprintf(&b, "- %s\n", node)
		}
		b.WriteString("\n")
	}

	if impls := traitImplementations(g.Edges); len(impls) > 0 {
		b.WriteString("\n## Trait Implementations\n")
		for _, ti := range impls {
			fmt.Fprintf(&b, "- `%s`: %s\n", ti.trait, strings.Join(ti.types, ", "))
		}
	}

	derives := map[string]int{}
	for _, e := range g.Edges {
		if e.Relationship == relations.RelDerives {
			derives[e.To]++
		}
	}
	if len(derives) > 0 {
		b.WriteString("\n## Derive Usage\n")
		for _, dc := range sortByCountDesc(derives) {
			fmt.Fprintf(&b, "- `%s`: %d types\n", dc.name, dc.count)
		}
	}

	b.WriteString("\n## Key Relationships\n")
	rels := map[string]int{}
	for _, e := range g.Edges {
		rels[string(e.Relationship)]++
	}
	for _, rc := range sortByCountDesc(rels) {
		fmt.Fprintf(&b, "- %s: %d connections\n", rc.name, rc.count)
	}

	return b.String()
}

type traitImpls struct {
	trait string
	types []string
}

// traitImplementations groups implementing types under each trait, most
// implemented first with name ascending on ties. Implementing types keep
// their edge order with duplicates removed.
func traitImplementations(edges []relations.Edge) []traitImpls {
	byTrait := map[string][]string{}
	seen := map[string]map[string]bool{}
	for _, e := range edges {
		if e.Relationship != relations.RelImplements {
			continue
		}
		if seen[e.To] == nil {
			seen[e.To] = map[string]bool{}
		}
		if seen[e.To][e.From] {
			continue
		}
		seen[e.To][e.From] = true
		byTrait[e.To] = append(byTrait[e.To], e.From)
	}

	out := make([]traitImpls, 0, len(byTrait))
	for trait, types := range byTrait {
		out = append(out, traitImpls{trait, types})
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i].types) != len(out[j].types) {
			return len(out[i].types) > len(out[j].types)
		}
		return out[i].trait < out[j].trait
	})
	return out
}

// IndexMarkdown renders the semantic index as a navigation guide. The public
// API list is capped at displayLimit entries; a non-positive limit shows
// everything.
func IndexMarkdown(idx *semindex.Index, displayLimit int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Semantic Index: %s\n\n", idx.Project)
	b.WriteString("## Quick Navigation Guide\n\n")

	b.WriteString("### Entry Points\n")
	b.WriteString("Start here to understand the codebase:\n")
	for _, ep := range idx.EntryPoints {
		fmt.Fprintf(&b, "- **%s** - %s\n", ep.File, ep.Description)
	}

	b.WriteString("\n### Hot Spots (Most Connected)\n")
	b.WriteString("Key components with many relationships:\n")
	for i, hs := range idx.HotSpots {
		if i == 10 {
			break
		}
		fmt.Fprintf(&b, "- `%s` (%d connections)\n", hs.Name, hs.Degree)
	}

	b.WriteString("\n### Public APIs\n")
	b.WriteString("Exported interfaces:\n")
	shown := len(idx.PublicAPIs)
	if displayLimit > 0 && shown > displayLimit {
		shown = displayLimit
	}
	for _, api := range idx.PublicAPIs[:shown] {
		fmt.Fprintf(&b, "- `%s` (%s) in `%s`\n", api.Name, api.Kind, api.Module)
	}
	if len(idx.PublicAPIs) > shown {
		fmt.Fprintf(&b, "- ... and %d more\n", len(idx.PublicAPIs)-shown)
	}

	b.WriteString("\n### File Overview\n")
	fmt.Fprintf(&b, "- Total files with entities: %d\n", idx.Stats.TotalFiles)
	fmt.Fprintf(&b, "- Total named concepts: %d\n", idx.Stats.TotalConcepts)
	fmt.Fprintf(&b, "- Total public APIs: %d\n", idx.Stats.TotalPublicAPIs)

	return b.String()
}

// PatternsMarkdown renders detected design patterns with confidence and
// evidence.
func PatternsMarkdown(project string, detections []patterns.Detection) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Design Patterns: %s\n\n", project)

	if len(detections) == 0 {
		b.WriteString("No patterns detected above the confidence threshold.\n")
		return b.String()
	}

	for _, d := range detections {
		fmt.Fprintf(&b, "## %s (%.0f%%)\n", d.Name, d.Confidence*100)
		if d.Description != "" {
			b.WriteString(d.Description + "\n")
		}
		if len(d.Evidence) > 0 {
			b.WriteString("\nEvidence:\n")
			for _, ev := range d.Evidence {
				fmt.Fprintf(&b, "- %s\n", ev)
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

// ArchitectureMarkdown renders the architecture view of a full result:
// styles, communication patterns, and the workspace layout.
func ArchitectureMarkdown(result *engine.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Architecture: %s\n\n", result.Project)

	b.WriteString("## Architecture Styles\n")
	if len(result.Styles) == 0 {
		b.WriteString("No dominant style detected.\n")
	}
	for _, s := range result.Styles {
		fmt.Fprintf(&b, "- **%s** (%.0f%%)", s.Name, s.Confidence*100)
		if s.Description != "" {
			b.WriteString(": " + s.Description)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n## Communication Patterns\n")
	if len(result.Communication) == 0 {
		b.WriteString("No communication patterns observed.\n")
	}
	for _, c := range result.Communication {
		fmt.Fprintf(&b, "- **%s** (%d usages)\n", c.Name, c.UsageCount)
	}

	b.WriteString("\n## Workspace\n")
	if result.Manifest.IsWorkspace {
		fmt.Fprintf(&b, "Workspace with %d packages:\n", result.Manifest.PackageCount)
		for _, pkg := range result.Manifest.Packages {
			fmt.Fprintf(&b, "- `%s`", pkg.Name)
			if pkg.Description != "" {
				b.WriteString(" - " + pkg.Description)
			}
			b.WriteString("\n")
		}
	} else if result.Manifest.PackageCount == 1 {
		fmt.Fprintf(&b, "Single crate: `%s`\n", result.Manifest.Packages[0].Name)
	} else {
		b.WriteString("No manifest metadata available.\n")
	}

	return b.String()
}

type nameCount struct {
	name  string
	count int
}

// sortByCountDesc orders map entries by count descending, name ascending on
// ties so output is stable.
func sortByCountDesc(m map[string]int) []nameCount {
	out := make([]nameCount, 0, len(m))
	for name, count := range m {
		out = append(out, nameCount{name, count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].name < out[j].name
	})
	return out
}
