// Package entities extracts declaration-level entities from Rust source text
// using lexical patterns. No parsing or type resolution happens here:
// matches inside comments or string literals can occur and are an accepted
// precision/recall trade-off of the lexical approach.
package entities

import (
	"regexp"
	"strings"
)

// visPrefix is the optional visibility qualifier preceding a declaration
const visPrefix = `(pub(?:\s*\([^)]*\))?\s+)?`

// kindPatterns are the visibility-aware matchers, one per declaration kind.
// impl carries no visibility in Rust, so its matcher has an empty qualifier
// group to keep the capture layout uniform.
var kindPatterns = map[Kind]*regexp.Regexp{
	KindStruct: regexp.MustCompile(visPrefix + `struct\s+(\w+)`),
	KindEnum:   regexp.MustCompile(visPrefix + `enum\s+(\w+)`),
	KindTrait:  regexp.MustCompile(visPrefix + `trait\s+(\w+)`),
	KindFn:     regexp.MustCompile(visPrefix + `(?:async\s+)?fn\s+(\w+)`),
	KindMod:    regexp.MustCompile(visPrefix + `mod\s+(\w+)`),
	KindImpl:   regexp.MustCompile(`()impl(?:<[^>]+>)?\s+(\w+)`),
	KindType:   regexp.MustCompile(visPrefix + `type\s+(\w+)`),
	KindConst:  regexp.MustCompile(visPrefix + `const\s+(\w+)`),
	KindStatic: regexp.MustCompile(visPrefix + `static\s+(\w+)`),
}

var (
	visCrateRe = regexp.MustCompile(`^pub\s*\(\s*crate\s*\)`)
	visSuperRe = regexp.MustCompile(`^pub\s*\(\s*super\s*\)`)
	visSelfRe  = regexp.MustCompile(`^pub\s*\(\s*self\s*\)`)
	visInRe    = regexp.MustCompile(`^pub\s*\(\s*in\s+`)
)

// docRe matches a contiguous /// run or a /** */ block followed by a
// declaration keyword and identifier.
var docRe = regexp.MustCompile(`((?:///[^\n]*\n)+|/\*\*[\s\S]*?\*/)\s*(?:pub(?:\s*\([^)]*\))?\s+)?(?:async\s+)?(?:struct|enum|trait|fn|mod|type|const|static)\s+(\w+)`)

// excludedNames are structurally noisy or near-universal identifiers that
// would otherwise flood the entity set with trivial false positives.
var excludedNames = map[string]bool{
	"self":    true,
	"Self":    true,
	"crate":   true,
	"super":   true,
	"new":     true,
	"default": true,
	"from":    true,
	"into":    true,
	"as_ref":  true,
	"as_mut":  true,
}

// maxDocLen caps attached documentation text
const maxDocLen = 200

// docProximityLines is how close (in source lines) a doc block must sit to
// the declaration it documents
const docProximityLines = 5

// Extractor scans file text for declaration-like lexical patterns
type Extractor struct{}

// NewExtractor creates a new entity extractor
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns every candidate entity in fileText. Repeated (kind,name)
// occurrences each produce a record; dedup by name happens later at graph
// construction.
func (x *Extractor) Extract(fileText string, filePath string) []Entity {
	var ents []Entity

	for _, kind := range Kinds {
		re := kindPatterns[kind]
		for _, m := range re.FindAllStringSubmatchIndex(fileText, -1) {
			visRaw := submatch(fileText, m, 1)
			name := submatch(fileText, m, 2)

			if excludedNames[name] {
				continue
			}

			ents = append(ents, Entity{
				Name:       name,
				Kind:       kind,
				Visibility: ParseVisibility(visRaw),
				Module:     filePath,
				Line:       lineAt(fileText, m[0]),
			})
		}
	}

	attachDocs(fileText, ents)

	return ents
}

// ParseVisibility maps a raw qualifier to its canonical category. The most
// specific qualifier wins; anything unmatched is private.
func ParseVisibility(raw string) Visibility {
	raw = strings.TrimSpace(raw)
	switch {
	case visInRe.MatchString(raw):
		return VisPubIn
	case visSelfRe.MatchString(raw):
		return VisPubSelf
	case visSuperRe.MatchString(raw):
		return VisPubSuper
	case visCrateRe.MatchString(raw):
		return VisPubCrate
	case strings.HasPrefix(raw, "pub"):
		return VisPub
	default:
		return VisPrivate
	}
}

// attachDocs associates comment blocks with nearby same-named entities.
// The first qualifying block wins; later blocks never overwrite. Proximity
// is measured from the documented declaration itself, so a long doc block
// cannot push its own declaration out of range.
func attachDocs(fileText string, ents []Entity) {
	for _, m := range docRe.FindAllStringSubmatchIndex(fileText, -1) {
		raw := submatch(fileText, m, 1)
		name := submatch(fileText, m, 2)
		line := lineAt(fileText, m[4])

		doc := cleanDoc(raw)
		if doc == "" {
			continue
		}

		for i := range ents {
			if ents[i].Name != name || ents[i].Doc != "" {
				continue
			}
			if abs(ents[i].Line-line) < docProximityLines {
				ents[i].Doc = doc
				break
			}
		}
	}
}

// cleanDoc strips comment markers and truncates the text
func cleanDoc(raw string) string {
	var doc string
	if strings.HasPrefix(raw, "///") {
		var parts []string
		for _, line := range strings.Split(raw, "\n") {
			trimmed := strings.TrimSpace(line)
			if strings.HasPrefix(trimmed, "///") {
				parts = append(parts, strings.TrimSpace(strings.TrimLeft(trimmed, "/")))
			}
		}
		doc = strings.Join(parts, "\n")
	} else {
		doc = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(raw, "/**"), "*/"))
	}

	if len(doc) > maxDocLen {
		doc = doc[:maxDocLen]
	}
	return doc
}

func submatch(text string, m []int, group int) string {
	start, end := m[2*group], m[2*group+1]
	if start < 0 {
		return ""
	}
	return text[start:end]
}

// lineAt returns the 1-based line number of a byte offset
func lineAt(text string, offset int) int {
	return strings.Count(text[:offset], "\n") + 1
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
