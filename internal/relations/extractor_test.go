package relations

import (
	"reflect"
	"testing"
)

func known(names ...string) map[string]bool {
	set := map[string]bool{}
	for _, n := range names {
		set[n] = true
	}
	return set
}

func filterRel(edges []Edge, rel Relationship) []Edge {
	var out []Edge
	for _, e := range edges {
		if e.Relationship == rel {
			out = append(out, e)
		}
	}
	return out
}

func TestImplementsEdge(t *testing.T) {
	src := `impl Display for Token {}
impl<T> Iterator for Stream<T> {}
`

	edges := filterRel(NewExtractor().Extract(src, "src/token.rs", nil), RelImplements)

	want := []Edge{
		{From: "Token", To: "Display", Relationship: RelImplements, Source: "src/token.rs"},
		{From: "Stream", To: "Iterator", Relationship: RelImplements, Source: "src/token.rs"},
	}
	if !reflect.DeepEqual(edges, want) {
		t.Errorf("implements edges = %+v, want %+v", edges, want)
	}
}

func TestDerivesEdges(t *testing.T) {
	src := `#[derive(Debug, Clone, Serialize)]
pub struct Message {
    id: u64,
}
`

	edges := filterRel(NewExtractor().Extract(src, "src/msg.rs", nil), RelDerives)

	if len(edges) != 3 {
		t.Fatalf("expected 3 derive edges, got %d: %+v", len(edges), edges)
	}
	for i, trait := range []string{"Debug", "Clone", "Serialize"} {
		if edges[i].From != "Message" || edges[i].To != trait {
			t.Errorf("edge %d = %+v, want Message -> %s", i, edges[i], trait)
		}
	}
}

func TestContainsEdgeUsesFileStem(t *testing.T) {
	src := `pub mod parser;
mod lexer;
`

	edges := filterRel(NewExtractor().Extract(src, "src/compiler.rs", nil), RelContains)

	if len(edges) != 2 {
		t.Fatalf("expected 2 contains edges, got %d", len(edges))
	}
	for _, e := range edges {
		if e.From != "compiler" {
			t.Errorf("contains parent = %s, want compiler (file stem)", e.From)
		}
	}
	if edges[0].To != "parser" || edges[1].To != "lexer" {
		t.Errorf("contains targets = %s, %s", edges[0].To, edges[1].To)
	}
}

func TestUsesEdgeOnlyForKnownEntities(t *testing.T) {
	src := `use crate::domain::User;
use std::collections::HashMap;
use crate::storage::Repo;
`

	edges := filterRel(
		NewExtractor().Extract(src, "src/handler.rs", known("User", "Repo")),
		RelUses,
	)

	if len(edges) != 2 {
		t.Fatalf("expected 2 uses edges, got %d: %+v", len(edges), edges)
	}
	if edges[0].From != "handler" || edges[0].To != "User" {
		t.Errorf("edge 0 = %+v", edges[0])
	}
	if edges[1].To != "Repo" {
		t.Errorf("edge 1 = %+v", edges[1])
	}
}

func TestReferencesEdgeFromFieldTypes(t *testing.T) {
	src := `pub struct Foo {
    bar: Bar,
    count: usize,
    wrapped: Option<Baz>,
    boxed: Box<Bar>,
    unknown: Mystery,
}
`

	edges := filterRel(
		NewExtractor().Extract(src, "src/foo.rs", known("Foo", "Bar", "Baz")),
		RelReferences,
	)

	if len(edges) != 3 {
		t.Fatalf("expected 3 reference edges, got %d: %+v", len(edges), edges)
	}
	for _, e := range edges {
		if e.From != FieldUsageNode {
			t.Errorf("reference source = %s, want %s", e.From, FieldUsageNode)
		}
	}
	targets := []string{edges[0].To, edges[1].To, edges[2].To}
	want := []string{"Bar", "Baz", "Bar"}
	if !reflect.DeepEqual(targets, want) {
		t.Errorf("reference targets = %v, want %v", targets, want)
	}
}

func TestReferencesSkipPrimitives(t *testing.T) {
	src := `struct S { a: String, b: bool, c: f64, d: Self }`

	edges := filterRel(
		NewExtractor().Extract(src, "src/s.rs", known("String", "bool", "f64", "Self", "S")),
		RelReferences,
	)
	if len(edges) != 0 {
		t.Errorf("primitive field types must not emit edges, got %+v", edges)
	}
}

func TestKnownEntityFieldReference(t *testing.T) {
	// pub struct Foo { bar: Bar } followed by pub struct Bar; yields a
	// references edge field_usage -> Bar once Bar is known.
	src := `pub struct Foo { bar: Bar }
pub struct Bar;
`

	edges := filterRel(
		NewExtractor().Extract(src, "src/lib.rs", known("Foo", "Bar")),
		RelReferences,
	)

	if len(edges) != 1 || edges[0].To != "Bar" || edges[0].From != FieldUsageNode {
		t.Errorf("edges = %+v, want single field_usage -> Bar", edges)
	}
}

func TestExtractDeterministic(t *testing.T) {
	src := `impl A for B {}
use crate::x::C;
mod y;
struct S { f: C }
`

	x := NewExtractor()
	set := known("A", "B", "C", "S")
	first := x.Extract(src, "src/lib.rs", set)
	second := x.Extract(src, "src/lib.rs", set)

	if !reflect.DeepEqual(first, second) {
		t.Error("extraction must be deterministic for identical input")
	}
}
