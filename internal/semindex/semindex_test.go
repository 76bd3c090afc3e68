package semindex

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"rasr/internal/entities"
	"rasr/internal/graph"
	"rasr/internal/relations"
)

func buildGraph(nodes []entities.Entity, edges []relations.Edge) *graph.Graph {
	b := graph.NewBuilder()
	b.AddEntities(nodes)
	b.AddEdges(edges)
	return b.Build("demo")
}

func TestBuildFileConceptMaps(t *testing.T) {
	g := buildGraph([]entities.Entity{
		{Name: "User", Kind: entities.KindStruct, Module: "src/domain/user.rs"},
		{Name: "Session", Kind: entities.KindStruct, Module: "src/domain/user.rs"},
		{Name: "Server", Kind: entities.KindStruct, Module: "src/server.rs"},
	}, nil)

	idx := Build("", g)

	if !reflect.DeepEqual(idx.FileToConcepts["src/domain/user.rs"], []string{"User", "Session"}) {
		t.Errorf("FileToConcepts = %v", idx.FileToConcepts["src/domain/user.rs"])
	}
	if !reflect.DeepEqual(idx.ConceptToFiles["Server"], []string{"src/server.rs"}) {
		t.Errorf("ConceptToFiles = %v", idx.ConceptToFiles["Server"])
	}
	if idx.Stats.TotalFiles != 2 || idx.Stats.TotalConcepts != 3 {
		t.Errorf("stats = %+v", idx.Stats)
	}
}

func TestHotSpotsRankedByDegree(t *testing.T) {
	edges := []relations.Edge{
		{From: "A", To: "B", Relationship: relations.RelUses},
		{From: "A", To: "C", Relationship: relations.RelUses},
		{From: "C", To: "A", Relationship: relations.RelReferences},
	}

	idx := Build("", buildGraph(nil, edges))

	// degrees: A=3, C=2, B=1
	want := []HotSpot{{"A", 3}, {"C", 2}, {"B", 1}}
	if !reflect.DeepEqual(idx.HotSpots, want) {
		t.Errorf("HotSpots = %+v, want %+v", idx.HotSpots, want)
	}
}

func TestHotSpotsTieBreakByName(t *testing.T) {
	edges := []relations.Edge{
		{From: "Zed", To: "Amp", Relationship: relations.RelUses},
	}

	idx := Build("", buildGraph(nil, edges))

	if idx.HotSpots[0].Name != "Amp" || idx.HotSpots[1].Name != "Zed" {
		t.Errorf("equal degrees must order by name, got %+v", idx.HotSpots)
	}
}

func TestHotSpotsCapped(t *testing.T) {
	var edges []relations.Edge
	for i := 0; i < 30; i++ {
		edges = append(edges, relations.Edge{
			From:         "hub",
			To:           string(rune('A'+i%26)) + string(rune('a'+i/26)),
			Relationship: relations.RelUses,
		})
	}

	idx := Build("", buildGraph(nil, edges))

	if len(idx.HotSpots) != HotSpotLimit {
		t.Errorf("len(HotSpots) = %d, want %d", len(idx.HotSpots), HotSpotLimit)
	}
	if idx.HotSpots[0].Name != "hub" || idx.HotSpots[0].Degree != 30 {
		t.Errorf("HotSpots[0] = %+v", idx.HotSpots[0])
	}
}

func TestEntryPointsCanonicalFiles(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "src"), 0755); err != nil {
		t.Fatal(err)
	}
	for _, f := range []string{"src/main.rs", "src/lib.rs"} {
		if err := os.WriteFile(filepath.Join(root, filepath.FromSlash(f)), []byte("fn main() {}"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	idx := Build(root, buildGraph(nil, nil))

	if len(idx.EntryPoints) != 2 {
		t.Fatalf("EntryPoints = %+v", idx.EntryPoints)
	}
	if idx.EntryPoints[0].File != "src/main.rs" || idx.EntryPoints[0].Type != "main" {
		t.Errorf("EntryPoints[0] = %+v", idx.EntryPoints[0])
	}
	if idx.EntryPoints[1].Description != "Library entry point" {
		t.Errorf("EntryPoints[1] = %+v", idx.EntryPoints[1])
	}
}

func TestEntryPointsMainFunctionStopsAtFirst(t *testing.T) {
	g := buildGraph([]entities.Entity{
		{Name: "main", Kind: entities.KindFn, Module: "src/bin/a.rs"},
		{Name: "helper", Kind: entities.KindFn, Module: "src/bin/b.rs"},
	}, nil)

	idx := Build("", g)

	if len(idx.EntryPoints) != 1 {
		t.Fatalf("EntryPoints = %+v", idx.EntryPoints)
	}
	ep := idx.EntryPoints[0]
	if ep.Type != "main_function" || ep.File != "src/bin/a.rs" || ep.Description != "main() function" {
		t.Errorf("EntryPoint = %+v", ep)
	}
}

func TestPublicAPIFilter(t *testing.T) {
	g := buildGraph([]entities.Entity{
		{Name: "Serve", Kind: entities.KindFn, Visibility: entities.VisPub, Module: "src/lib.rs"},
		{Name: "Config", Kind: entities.KindStruct, Visibility: entities.VisPub, Module: "src/lib.rs"},
		{Name: "Codec", Kind: entities.KindTrait, Visibility: entities.VisPub, Module: "src/lib.rs"},
		{Name: "Mode", Kind: entities.KindEnum, Visibility: entities.VisPub, Module: "src/lib.rs"},
		{Name: "internal", Kind: entities.KindFn, Visibility: entities.VisPrivate, Module: "src/lib.rs"},
		{Name: "Crated", Kind: entities.KindStruct, Visibility: entities.VisPubCrate, Module: "src/lib.rs"},
	}, nil)

	idx := Build("", g)

	if len(idx.PublicAPIs) != 3 {
		t.Fatalf("PublicAPIs = %+v", idx.PublicAPIs)
	}
	if idx.Stats.TotalPublicAPIs != 3 {
		t.Errorf("TotalPublicAPIs = %d", idx.Stats.TotalPublicAPIs)
	}
}

func TestBuildEmptyGraph(t *testing.T) {
	idx := Build("", buildGraph(nil, nil))

	if idx.Stats.TotalFiles != 0 || idx.Stats.TotalConcepts != 0 || idx.Stats.TotalPublicAPIs != 0 {
		t.Errorf("stats = %+v", idx.Stats)
	}
	if len(idx.HotSpots) != 0 || len(idx.EntryPoints) != 0 {
		t.Errorf("index = %+v", idx)
	}
}
