// Package semindex builds navigation aids over the knowledge graph: which
// concepts live in which files, which names carry the most edges, and where
// reading should start.
package semindex

import (
	"os"
	"path/filepath"
	"sort"

	"rasr/internal/entities"
	"rasr/internal/graph"
)

// HotSpotLimit is how many high-degree names the index retains by default
const HotSpotLimit = 20

// HotSpot is a name ranked by total (undirected) edge degree
type HotSpot struct {
	Name   string `json:"name"`
	Degree int    `json:"degree"`
}

// EntryPoint is a heuristically identified starting place for readers
type EntryPoint struct {
	File        string `json:"file"`
	Type        string `json:"type"` // "main", "lib" or "main_function"
	Description string `json:"description"`
}

// PublicAPI is one exported surface item
type PublicAPI struct {
	Name   string        `json:"name"`
	Kind   entities.Kind `json:"kind"`
	Module string        `json:"module"`
}

// Stats summarizes index size. TotalPublicAPIs counts the full public
// surface even when a renderer caps the displayed list.
type Stats struct {
	TotalFiles      int `json:"totalFiles"`
	TotalConcepts   int `json:"totalConcepts"`
	TotalPublicAPIs int `json:"totalPublicApis"`
}

// Index maps between files and the concepts they define, plus ranked
// navigation hints.
type Index struct {
	Project        string              `json:"project"`
	FileToConcepts map[string][]string `json:"fileToConcepts"`
	ConceptToFiles map[string][]string `json:"conceptToFiles"`
	HotSpots       []HotSpot           `json:"hotSpots"`
	EntryPoints    []EntryPoint        `json:"entryPoints"`
	PublicAPIs     []PublicAPI         `json:"publicApis"`
	Stats          Stats               `json:"stats"`
}

// canonical entry files, probed in this order against the project root
var entryFiles = []struct {
	file        string
	kind        string
	description string
}{
	{"src/main.rs", "main", "Binary entry point"},
	{"src/lib.rs", "lib", "Library entry point"},
	{"lib.rs", "lib", "Library entry point"},
	{"main.rs", "main", "Binary entry point"},
}

// Build computes the index for a graph with the default hot-spot limit.
// projectRoot may be empty, in which case the canonical entry-file probes
// are skipped and only the main() function check runs.
func Build(projectRoot string, g *graph.Graph) *Index {
	return BuildWithLimit(projectRoot, g, HotSpotLimit)
}

// BuildWithLimit is Build with a configurable hot-spot limit. A
// non-positive limit falls back to the default.
func BuildWithLimit(projectRoot string, g *graph.Graph, hotSpotLimit int) *Index {
	if hotSpotLimit <= 0 {
		hotSpotLimit = HotSpotLimit
	}
	idx := &Index{
		Project:        g.Project,
		FileToConcepts: map[string][]string{},
		ConceptToFiles: map[string][]string{},
	}

	for _, node := range g.Nodes {
		idx.FileToConcepts[node.Module] = append(idx.FileToConcepts[node.Module], node.Name)
		if !contains(idx.ConceptToFiles[node.Name], node.Module) {
			idx.ConceptToFiles[node.Name] = append(idx.ConceptToFiles[node.Name], node.Module)
		}
	}

	idx.HotSpots = hotSpots(g, hotSpotLimit)
	idx.EntryPoints = entryPoints(projectRoot, g)
	idx.PublicAPIs = publicAPIs(g)

	idx.Stats = Stats{
		TotalFiles:      len(idx.FileToConcepts),
		TotalConcepts:   len(idx.ConceptToFiles),
		TotalPublicAPIs: len(idx.PublicAPIs),
	}

	return idx
}

// hotSpots ranks every edge endpoint by summed in+out degree, keeping the
// top limit entries. Ties break by name so repeated runs agree.
func hotSpots(g *graph.Graph, limit int) []HotSpot {
	degree := map[string]int{}
	for _, e := range g.Edges {
		degree[e.From]++
		degree[e.To]++
	}

	spots := make([]HotSpot, 0, len(degree))
	for name, d := range degree {
		spots = append(spots, HotSpot{Name: name, Degree: d})
	}
	sort.Slice(spots, func(i, j int) bool {
		if spots[i].Degree != spots[j].Degree {
			return spots[i].Degree > spots[j].Degree
		}
		return spots[i].Name < spots[j].Name
	})

	if len(spots) > limit {
		spots = spots[:limit]
	}
	return spots
}

// entryPoints runs two independent checks: canonical entry files on disk,
// then the first fn entity literally named main.
func entryPoints(projectRoot string, g *graph.Graph) []EntryPoint {
	var eps []EntryPoint

	if projectRoot != "" {
		for _, ef := range entryFiles {
			if _, err := os.Stat(filepath.Join(projectRoot, filepath.FromSlash(ef.file))); err == nil {
				eps = append(eps, EntryPoint{File: ef.file, Type: ef.kind, Description: ef.description})
			}
		}
	}

	for _, node := range g.Nodes {
		if node.Name == "main" && node.Kind == entities.KindFn {
			eps = append(eps, EntryPoint{
				File:        node.Module,
				Type:        "main_function",
				Description: "main() function",
			})
			break
		}
	}

	return eps
}

func publicAPIs(g *graph.Graph) []PublicAPI {
	var apis []PublicAPI
	for _, node := range g.Nodes {
		if node.Visibility != entities.VisPub {
			continue
		}
		switch node.Kind {
		case entities.KindFn, entities.KindStruct, entities.KindTrait:
			apis = append(apis, PublicAPI{Name: node.Name, Kind: node.Kind, Module: node.Module})
		}
	}
	return apis
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
