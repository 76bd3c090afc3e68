// Package graph assembles extracted entities and edges into a project-wide
// knowledge graph with layer clusters.
//
// Node identity is the bare entity name: same-named declarations from
// different modules collapse into one node, first occurrence wins. This is a
// deliberate approximation that keeps the graph navigable without
// path-qualified identities, at the cost of merging unrelated same-named
// types. Consumers should treat node modules as "first seen in", not "only
// defined in".
package graph

import (
	"sort"
	"strings"

	"rasr/internal/entities"
	"rasr/internal/relations"
)

// Cluster is a heuristic layer grouping of node names
type Cluster struct {
	Name  string   `json:"name"`
	Nodes []string `json:"nodes"`
}

// Stats summarizes graph size
type Stats struct {
	TotalNodes    int `json:"totalNodes"`
	TotalEdges    int `json:"totalEdges"`
	TotalClusters int `json:"totalClusters"`
}

// Graph is the assembled knowledge graph for one project
type Graph struct {
	Project  string            `json:"project"`
	Nodes    []entities.Entity `json:"nodes"`
	Edges    []relations.Edge  `json:"edges"`
	Clusters []Cluster         `json:"clusters"`
	Stats    Stats             `json:"stats"`
}

// Builder accumulates per-file extraction results. Files must be fed in the
// scanner's sorted order so dedup and edge resolution stay deterministic.
type Builder struct {
	seen  map[string]bool
	nodes []entities.Entity
	edges []relations.Edge
}

func NewBuilder() *Builder {
	return &Builder{seen: map[string]bool{}}
}

// AddEntities records candidate entities, keeping only the first occurrence
// of each name.
func (b *Builder) AddEntities(ents []entities.Entity) {
	for _, e := range ents {
		if b.seen[e.Name] {
			continue
		}
		b.seen[e.Name] = true
		b.nodes = append(b.nodes, e)
	}
}

// Known returns the name set accumulated so far. Relationship extraction for
// a file resolves against entities from that file and every file before it,
// so forward references across files are missed; this mirrors the
// single-pass construction order.
func (b *Builder) Known() map[string]bool {
	return b.seen
}

// AddEdges appends edges without dedup, multiplicity is meaningful for
// degree ranking.
func (b *Builder) AddEdges(edges []relations.Edge) {
	b.edges = append(b.edges, edges...)
}

// Build finalizes the graph, assigning every node to exactly one cluster
func (b *Builder) Build(project string) *Graph {
	clusters := AssignClusters(b.nodes)
	return &Graph{
		Project:  project,
		Nodes:    b.nodes,
		Edges:    b.edges,
		Clusters: clusters,
		Stats: Stats{
			TotalNodes:    len(b.nodes),
			TotalEdges:    len(b.edges),
			TotalClusters: len(clusters),
		},
	}
}

// AssignClusters partitions entities into named layers from their module
// paths. Clusters come back sorted by name, each holding a sorted, unique
// node list.
func AssignClusters(nodes []entities.Entity) []Cluster {
	byLayer := map[string]map[string]bool{}

	for _, node := range nodes {
		layer := layerFor(node.Module)
		if byLayer[layer] == nil {
			byLayer[layer] = map[string]bool{}
		}
		byLayer[layer][node.Name] = true
	}

	names := make([]string, 0, len(byLayer))
	for name := range byLayer {
		names = append(names, name)
	}
	sort.Strings(names)

	clusters := make([]Cluster, 0, len(names))
	for _, name := range names {
		members := make([]string, 0, len(byLayer[name]))
		for member := range byLayer[name] {
			members = append(members, member)
		}
		sort.Strings(members)
		clusters = append(clusters, Cluster{Name: name, Nodes: members})
	}

	return clusters
}

// layerFor classifies one module path. The substring checks run in fixed
// priority order, so a path matching several categories lands in the
// earliest one.
func layerFor(module string) string {
	switch {
	case containsAny(module, "domain", "entity", "model"):
		return "Domain Layer"
	case containsAny(module, "service", "application", "handler"):
		return "Application Layer"
	case containsAny(module, "repo", "db", "storage"):
		return "Infrastructure Layer"
	case containsAny(module, "api", "http", "web"):
		return "Interface Layer"
	case containsAny(module, "util", "common", "helper"):
		return "Utilities"
	}

	parts := strings.Split(module, "/")
	if len(parts) > 1 {
		dir := parts[len(parts)-1]
		if strings.HasSuffix(dir, ".rs") {
			dir = parts[len(parts)-2]
		}
		return "Module: " + dir
	}
	return "Core"
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
