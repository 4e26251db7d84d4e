// Package concepts extracts named concepts from source files and infers
// relationships between them.
//
// Extraction is heuristic: an ordered list of independent matchers scans each
// file's path and text for naming conventions and exported declarations. No
// source is parsed.
package concepts

// ConceptType is the kind of abstraction a concept represents.
type ConceptType string

const (
	TypeComponent ConceptType = "component"
	TypeHook      ConceptType = "hook"
	TypeFunction  ConceptType = "function"
	TypeClass     ConceptType = "class"
	TypeType      ConceptType = "type"
	TypeAPI       ConceptType = "api"
	TypeContext   ConceptType = "context"
	TypeConcept   ConceptType = "concept"
)

// Id prefixes for concepts whose label may collide with a declaration name.
const (
	DomainPrefix = "Domain:"
	APIPrefix    = "API:"
)

// SourceFile is a file path with its textual content.
type SourceFile struct {
	Path    string
	Content string
}

// Match is a single concept candidate found in one file.
type Match struct {
	ID    string
	Label string
	Type  ConceptType
}

// Concept is a candidate accumulated across the whole tree.
type Concept struct {
	ID    string      `json:"id"`
	Label string      `json:"label"`
	Type  ConceptType `json:"type"`
	Files []string    `json:"files"` // sorted, unique
}

// RelationType labels an inferred relationship.
type RelationType string

const (
	RelImplements RelationType = "implements"
	RelUses       RelationType = "uses"
	RelExtends    RelationType = "extends"
	RelDefines    RelationType = "defines"
	RelRelated    RelationType = "related"
	RelDepends    RelationType = "depends"
)

// Relationship is a typed, weighted, directed edge between concept ids.
type Relationship struct {
	Source string       `json:"source"`
	Target string       `json:"target"`
	Type   RelationType `json:"type"`
	Weight float64      `json:"weight"`
}
