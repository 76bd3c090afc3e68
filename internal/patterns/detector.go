package patterns

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultPatternThreshold is the minimum confidence for a design-pattern
// detection to be emitted.
const DefaultPatternThreshold = 0.2

// DefaultStyleThreshold is the minimum confidence for an architecture-style
// detection to be emitted through the generic scorer.
const DefaultStyleThreshold = 0.3

// Workspace-shape heuristics bypass the generic scorer with fixed
// confidences.
const (
	StyleMultiCrateWorkspace = "Multi-Crate Workspace"
	StyleModularMonolith     = "Modular Monolith"

	multiCrateConfidence      = 0.9
	modularMonolithConfidence = 0.7

	// workspacePackageThreshold: a workspace with more packages than this
	// is emitted as Multi-Crate Workspace
	workspacePackageThreshold = 3

	// monolithModuleThreshold: a single-package project with more module
	// declarations than this is emitted as Modular Monolith
	monolithModuleThreshold = 10
)

// WorkspaceShape carries the manifest-derived facts the fixed style
// heuristics need.
type WorkspaceShape struct {
	IsWorkspace  bool
	PackageCount int
}

// Detector scores signatures against corpus and manifest text
type Detector struct{}

// NewDetector creates a new pattern detector
func NewDetector() *Detector {
	return &Detector{}
}

// Score evaluates one signature. The second return is false when the
// signature produced no detection: zero total weight, zero matched
// evidence, or confidence under the threshold.
func (d *Detector) Score(corpus string, manifest string, sig Signature, threshold float64) (Detection, bool) {
	score := 0
	maxScore := 0
	var evidence []string

	for _, it := range sig.items() {
		hit, ok := it.matches(corpus, manifest)
		if !ok {
			// Unevaluable item (malformed regex): zero weight on both sides
			continue
		}
		maxScore += it.kind.Weight()
		if hit {
			score += it.kind.Weight()
			evidence = append(evidence, it.label())
		}
	}

	if maxScore == 0 || score == 0 {
		return Detection{}, false
	}

	confidence := float64(score) / float64(maxScore)
	if confidence > 1.0 {
		confidence = 1.0
	}
	if confidence < threshold {
		return Detection{}, false
	}

	return Detection{
		Name:        sig.Name,
		Confidence:  confidence,
		Evidence:    evidence,
		Description: sig.Description,
	}, true
}

// DetectSignatures scores every signature and returns the detections sorted
// by confidence descending. The sort is stable: ties keep
// signature-declaration order.
func (d *Detector) DetectSignatures(corpus string, manifest string, sigs []Signature, threshold float64) []Detection {
	var detected []Detection
	for _, sig := range sigs {
		if det, ok := d.Score(corpus, manifest, sig, threshold); ok {
			detected = append(detected, det)
		}
	}

	sort.SliceStable(detected, func(i, j int) bool {
		return detected[i].Confidence > detected[j].Confidence
	})

	return detected
}

// DetectStyles detects architecture styles. The two workspace-shape styles
// bypass the generic scorer with fixed confidences; all remaining styles go
// through the scorer against corpus plus manifest text.
func (d *Detector) DetectStyles(corpus string, manifest string, shape WorkspaceShape, styles []Signature, threshold float64) []Detection {
	var detected []Detection

	if shape.IsWorkspace && shape.PackageCount > workspacePackageThreshold {
		detected = append(detected, Detection{
			Name:        StyleMultiCrateWorkspace,
			Confidence:  multiCrateConfidence,
			Evidence:    []string{fmt.Sprintf("Workspace with %d packages", shape.PackageCount)},
			Description: styleDescription(styles, StyleMultiCrateWorkspace),
		})
	} else if !shape.IsWorkspace {
		moduleCount := CountModuleDecls(corpus)
		if moduleCount > monolithModuleThreshold {
			detected = append(detected, Detection{
				Name:        StyleModularMonolith,
				Confidence:  modularMonolithConfidence,
				Evidence:    []string{fmt.Sprintf("Single crate with %d+ module declarations", moduleCount)},
				Description: styleDescription(styles, StyleModularMonolith),
			})
		}
	}

	// Style indicators match against source and manifest alike
	combined := corpus + manifest

	for _, sig := range styles {
		if sig.Name == StyleMultiCrateWorkspace || sig.Name == StyleModularMonolith {
			continue
		}
		if det, ok := d.Score(combined, manifest, sig, threshold); ok {
			detected = append(detected, det)
		}
	}

	sort.SliceStable(detected, func(i, j int) bool {
		return detected[i].Confidence > detected[j].Confidence
	})

	return detected
}

// CountModuleDecls counts module declarations the way the style heuristic
// defines them: occurrences of "mod " plus occurrences of "pub mod ".
func CountModuleDecls(corpus string) int {
	return strings.Count(corpus, "mod ") + strings.Count(corpus, "pub mod ")
}

func styleDescription(styles []Signature, name string) string {
	for _, s := range styles {
		if s.Name == name {
			return s.Description
		}
	}
	return ""
}
