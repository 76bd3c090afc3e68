// Package engine runs a full analysis over one project: scan the sources,
// extract entities and relationships into the knowledge graph, score styles
// and patterns, and build the semantic index.
package engine

import (
	"path/filepath"
	"strings"
	"time"

	"rasr/internal/config"
	"rasr/internal/entities"
	"rasr/internal/graph"
	"rasr/internal/logging"
	"rasr/internal/manifest"
	"rasr/internal/patterns"
	"rasr/internal/relations"
	"rasr/internal/scanner"
	"rasr/internal/semindex"
)

// Result is one complete analysis of one project
type Result struct {
	Project       string                 `json:"project"`
	AnalyzedAt    time.Time              `json:"analyzedAt"`
	Manifest      *manifest.Manifest     `json:"manifest"`
	Graph         *graph.Graph           `json:"graph"`
	Index         *semindex.Index        `json:"index"`
	Styles        []patterns.Detection   `json:"styles"`
	Patterns      []patterns.Detection   `json:"patterns"`
	Communication []patterns.CommPattern `json:"communication"`
}

// Engine wires the analysis stages together
type Engine struct {
	cfg      *config.Config
	logger   *logging.Logger
	detector *patterns.Detector

	patternCatalog []patterns.Signature
	styleCatalog   []patterns.Signature
}

// New creates an engine. Extra catalog files from the configuration are
// merged over the built-in catalogs; an unloadable catalog file is an error
// because a silently missing signature would skew every later run.
func New(cfg *config.Config, logger *logging.Logger) (*Engine, error) {
	e := &Engine{
		cfg:            cfg,
		logger:         logger,
		detector:       patterns.NewDetector(),
		patternCatalog: patterns.DefaultPatternCatalog(),
		styleCatalog:   patterns.DefaultStyleCatalog(),
	}

	for _, path := range cfg.Detector.CatalogPaths {
		sigs, err := patterns.LoadCatalogFile(path)
		if err != nil {
			return nil, err
		}
		e.patternCatalog = patterns.MergeCatalogs(e.patternCatalog, sigs)
	}

	return e, nil
}

// Analyze runs every stage over projectRoot. Files are processed in the
// scanner's sorted order; relationship extraction for each file resolves
// against the entities accumulated so far.
func (e *Engine) Analyze(projectRoot string) (*Result, error) {
	started := time.Now()

	files, err := scanner.NewScanner(&e.cfg.Scan, e.logger).Scan(projectRoot)
	if err != nil {
		return nil, err
	}

	mf := manifest.Load(projectRoot, e.logger)

	builder := graph.NewBuilder()
	entityExtractor := entities.NewExtractor()
	relationExtractor := relations.NewExtractor()

	var corpus strings.Builder
	for _, f := range files {
		builder.AddEntities(entityExtractor.Extract(f.Text, f.Path))
		builder.AddEdges(relationExtractor.Extract(f.Text, f.Path, builder.Known()))
		corpus.WriteString(f.Text)
		corpus.WriteString("\n")
	}

	corpusText := corpus.String()
	projectName := filepath.Base(projectRoot)

	g := builder.Build(projectName)

	result := &Result{
		Project:    projectName,
		AnalyzedAt: started,
		Manifest:   mf,
		Graph:      g,
		Index:      semindex.BuildWithLimit(projectRoot, g, e.cfg.Index.HotSpotLimit),
		Styles: e.detector.DetectStyles(
			corpusText, mf.Raw, mf.Shape(), e.styleCatalog, e.cfg.Detector.StyleThreshold),
		Patterns: e.detector.DetectSignatures(
			corpusText, mf.Raw, e.patternCatalog, e.cfg.Detector.PatternThreshold),
		Communication: patterns.DetectCommunication(corpusText, mf.Raw),
	}

	e.logger.Info("Analysis complete", map[string]interface{}{
		"project":  projectName,
		"files":    len(files),
		"nodes":    g.Stats.TotalNodes,
		"edges":    g.Stats.TotalEdges,
		"styles":   len(result.Styles),
		"patterns": len(result.Patterns),
		"duration": time.Since(started).String(),
	})

	return result, nil
}
