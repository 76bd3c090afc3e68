// Package relations infers typed, directed edges between entity names by
// scanning raw source text for cross-reference patterns. Like the entity
// extractor, it is purely lexical: matches inside comments or string
// literals can occur and are an accepted trade-off.
package relations

import (
	"regexp"
	"strings"

	"rasr/internal/paths"
)

// Relationship is the type of a directed edge
type Relationship string

const (
	RelImplements Relationship = "implements"
	RelDerives    Relationship = "derives"
	RelContains   Relationship = "contains"
	RelUses       Relationship = "uses"
	RelReferences Relationship = "references"
)

// Edge is a directed, typed link between two entity names. Multiplicity is
// allowed; edges are never deduplicated.
type Edge struct {
	From         string       `json:"from"`
	To           string       `json:"to"`
	Relationship Relationship `json:"relationship"`
	Source       string       `json:"source"` // file path the edge was observed in
}

// FieldUsageNode is the synthetic source node for field-type references.
// Field scans cannot name the true owning symbol without scope tracking, so
// all of them attach to this placeholder.
const FieldUsageNode = "field_usage"

var (
	implRe   = regexp.MustCompile(`impl(?:<[^>]+>)?\s+(\w+)(?:<[^>]+>)?\s+for\s+(\w+)`)
	deriveRe = regexp.MustCompile(`#\[derive\(([^)]+)\)\]\s*(?:pub(?:\([^)]*\))?\s+)?(?:struct|enum)\s+(\w+)`)
	modRe    = regexp.MustCompile(`(?:pub(?:\([^)]*\))?\s+)?mod\s+(\w+)`)
	useRe    = regexp.MustCompile(`use\s+(?:crate::)?([a-zA-Z_][a-zA-Z0-9_:]*)`)
	fieldRe  = regexp.MustCompile(`(\w+)\s*:\s*(?:&)?(?:mut\s+)?(?:Option<|Vec<|Box<|Arc<|Rc<)?(\w+)`)
)

// primitives are builtin types that never produce reference edges
var primitives = map[string]bool{
	"str": true, "String": true, "usize": true, "isize": true,
	"i8": true, "i16": true, "i32": true, "i64": true,
	"u8": true, "u16": true, "u32": true, "u64": true,
	"f32": true, "f64": true, "bool": true, "char": true, "Self": true,
}

// Extractor scans file text for cross-reference patterns against a known
// entity set
type Extractor struct{}

// NewExtractor creates a new relationship extractor
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns every edge observed in fileText. knownEntities restricts
// uses/references edges to names that exist in the entity set; implements,
// derives and contains edges are emitted unconditionally.
func (x *Extractor) Extract(fileText string, filePath string, knownEntities map[string]bool) []Edge {
	var edges []Edge

	edges = append(edges, x.extractImplements(fileText, filePath)...)
	edges = append(edges, x.extractDerives(fileText, filePath)...)
	edges = append(edges, x.extractContains(fileText, filePath)...)
	edges = append(edges, x.extractUses(fileText, filePath, knownEntities)...)
	edges = append(edges, x.extractReferences(fileText, filePath, knownEntities)...)

	return edges
}

// extractImplements matches `impl Trait for Type` as edge(Type -> Trait)
func (x *Extractor) extractImplements(fileText string, filePath string) []Edge {
	var edges []Edge
	for _, m := range implRe.FindAllStringSubmatch(fileText, -1) {
		edges = append(edges, Edge{
			From:         m[2],
			To:           m[1],
			Relationship: RelImplements,
			Source:       filePath,
		})
	}
	return edges
}

// extractDerives emits one edge per derived trait in a #[derive(...)] list
func (x *Extractor) extractDerives(fileText string, filePath string) []Edge {
	var edges []Edge
	for _, m := range deriveRe.FindAllStringSubmatch(fileText, -1) {
		typeName := m[2]
		for _, trait := range strings.Split(m[1], ",") {
			trait = strings.TrimSpace(trait)
			if trait == "" {
				continue
			}
			edges = append(edges, Edge{
				From:         typeName,
				To:           trait,
				Relationship: RelDerives,
				Source:       filePath,
			})
		}
	}
	return edges
}

// extractContains matches module declarations. The parent is the current
// file's stem, a one-level approximation of module scope; nested block
// scoping is not tracked.
func (x *Extractor) extractContains(fileText string, filePath string) []Edge {
	parent := paths.Stem(filePath)
	if parent == "" {
		parent = "root"
	}

	var edges []Edge
	for _, m := range modRe.FindAllStringSubmatch(fileText, -1) {
		edges = append(edges, Edge{
			From:         parent,
			To:           m[1],
			Relationship: RelContains,
			Source:       filePath,
		})
	}
	return edges
}

// extractUses matches import paths; when the trailing segment is a known
// entity name, the importing file's stem becomes the edge source node.
func (x *Extractor) extractUses(fileText string, filePath string, knownEntities map[string]bool) []Edge {
	stem := paths.Stem(filePath)

	var edges []Edge
	for _, m := range useRe.FindAllStringSubmatch(fileText, -1) {
		segments := strings.Split(m[1], "::")
		imported := segments[len(segments)-1]
		if !knownEntities[imported] {
			continue
		}
		edges = append(edges, Edge{
			From:         stem,
			To:           imported,
			Relationship: RelUses,
			Source:       filePath,
		})
	}
	return edges
}

// extractReferences matches field-style type annotations, stripping one
// layer of a generic wrapper (Option/Vec/Box/Arc/Rc). The edge source is the
// synthetic FieldUsageNode, not the true owning symbol.
func (x *Extractor) extractReferences(fileText string, filePath string, knownEntities map[string]bool) []Edge {
	var edges []Edge
	for _, m := range fieldRe.FindAllStringSubmatch(fileText, -1) {
		fieldType := m[2]
		if primitives[fieldType] || !knownEntities[fieldType] {
			continue
		}
		edges = append(edges, Edge{
			From:         FieldUsageNode,
			To:           fieldType,
			Relationship: RelReferences,
			Source:       filePath,
		})
	}
	return edges
}
