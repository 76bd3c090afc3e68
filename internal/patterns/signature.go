// Package patterns scores named signatures (architecture styles and design
// patterns) against aggregated source text and manifest text using weighted
// evidence matching. Scoring is independent of the entity graph.
package patterns

import (
	"fmt"
	"regexp"
	"strings"
)

// EvidenceKind tags one category of signature evidence. Each kind carries
// its own weight; scores are summed generically over tagged items rather
// than through per-category constants.
type EvidenceKind string

const (
	EvidenceKeyword EvidenceKind = "keyword"
	EvidenceImport  EvidenceKind = "import"
	EvidencePattern EvidenceKind = "pattern"
	EvidenceTrait   EvidenceKind = "trait"
)

// Weight returns the score contribution of one matched item of this kind.
// Imports are a stronger signal than textual hits.
func (k EvidenceKind) Weight() int {
	if k == EvidenceImport {
		return 2
	}
	return 1
}

// Signature is a named bundle of weighted evidence categories. Any category
// may be empty; an empty category contributes zero to both score and
// max score, so an all-empty signature can never produce a detection.
type Signature struct {
	Name        string   `json:"name" toml:"name" yaml:"name"`
	Description string   `json:"description,omitempty" toml:"description,omitempty" yaml:"description,omitempty"`
	Keywords    []string `json:"keywords,omitempty" toml:"keywords,omitempty" yaml:"keywords,omitempty"`
	Imports     []string `json:"imports,omitempty" toml:"imports,omitempty" yaml:"imports,omitempty"`
	Patterns    []string `json:"patterns,omitempty" toml:"patterns,omitempty" yaml:"patterns,omitempty"`
	Traits      []string `json:"traits,omitempty" toml:"traits,omitempty" yaml:"traits,omitempty"`
}

// Detection is the scored result of matching a signature against a corpus
type Detection struct {
	Name        string   `json:"name"`
	Confidence  float64  `json:"confidence"`
	Evidence    []string `json:"evidence"`
	Description string   `json:"description,omitempty"`
}

// evidenceItem is one tagged check derived from a signature category
type evidenceItem struct {
	kind  EvidenceKind
	value string
}

// items flattens the signature's categories into tagged evidence checks, in
// fixed category order for deterministic evidence lists.
func (s Signature) items() []evidenceItem {
	var out []evidenceItem
	for _, v := range s.Keywords {
		out = append(out, evidenceItem{EvidenceKeyword, v})
	}
	for _, v := range s.Imports {
		out = append(out, evidenceItem{EvidenceImport, v})
	}
	for _, v := range s.Patterns {
		out = append(out, evidenceItem{EvidencePattern, v})
	}
	for _, v := range s.Traits {
		out = append(out, evidenceItem{EvidenceTrait, v})
	}
	return out
}

// matches reports whether one evidence item hits the corpus/manifest pair.
// The second return is false when the item cannot be evaluated at all (an
// unparsable structural regex); such items contribute zero to both sides of
// the score.
func (it evidenceItem) matches(corpus string, manifest string) (bool, bool) {
	switch it.kind {
	case EvidenceKeyword, EvidenceTrait:
		return strings.Contains(corpus, it.value), true
	case EvidenceImport:
		return strings.Contains(manifest, it.value) ||
			strings.Contains(corpus, "use "+it.value), true
	case EvidencePattern:
		re, err := regexp.Compile(it.value)
		if err != nil {
			return false, false
		}
		return re.MatchString(corpus), true
	default:
		return false, false
	}
}

// label renders the evidence string for a matched item
func (it evidenceItem) label() string {
	value := it.value
	if it.kind == EvidencePattern {
		if len(value) > 30 {
			value = value[:30]
		}
		return fmt.Sprintf("pattern: %s...", value)
	}
	return fmt.Sprintf("%s: %s", it.kind, value)
}
