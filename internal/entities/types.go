package entities

// Kind classifies a declaration found in Rust source text
type Kind string

const (
	KindStruct Kind = "struct"
	KindEnum   Kind = "enum"
	KindTrait  Kind = "trait"
	KindFn     Kind = "fn"
	KindMod    Kind = "mod"
	KindImpl   Kind = "impl"
	KindType   Kind = "type"
	KindConst  Kind = "const"
	KindStatic Kind = "static"
)

// Kinds lists every declaration kind in extraction order. The order is part
// of the output contract: repeated runs over the same input emit entities in
// the same sequence.
var Kinds = []Kind{
	KindStruct, KindEnum, KindTrait, KindFn, KindMod,
	KindImpl, KindType, KindConst, KindStatic,
}

// Visibility is the canonical visibility category of a declaration
type Visibility string

const (
	VisPub      Visibility = "pub"
	VisPubCrate Visibility = "pub(crate)"
	VisPubSuper Visibility = "pub(super)"
	VisPubSelf  Visibility = "pub(self)"
	VisPubIn    Visibility = "pub(in ...)"
	VisPrivate  Visibility = "private"
)

// Entity is a named declaration extracted from source text.
//
// Graph node identity is by bare Name only: entities sharing a name across
// different modules collapse to one logical node. This is a known
// approximation, not an oversight.
type Entity struct {
	Name       string     `json:"name"`
	Kind       Kind       `json:"kind"`
	Visibility Visibility `json:"visibility"`
	Module     string     `json:"module"` // file path relative to the project root
	Line       int        `json:"line"`   // 1-based
	Doc        string     `json:"doc,omitempty"`
}

// NameSet returns the set of entity names, used as the known-entity set for
// relationship extraction.
func NameSet(ents []Entity) map[string]bool {
	set := make(map[string]bool, len(ents))
	for _, e := range ents {
		set[e.Name] = true
	}
	return set
}
