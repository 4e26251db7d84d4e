package scip

// Metadata represents SCIP index metadata
type Metadata struct {
	// Version is the SCIP protocol version
	Version string

	// ToolInfo contains information about the indexing tool
	ToolInfo *ToolInfo

	// ProjectRoot is the root directory of the project
	ProjectRoot string
}

// ToolInfo contains information about the indexing tool
type ToolInfo struct {
	Name      string
	Version   string
	Arguments []string
}

// Document is one indexed source file
type Document struct {
	// RelativePath is the path relative to the project root
	RelativePath string

	// Language is the programming language
	Language string

	// Occurrences are all symbol occurrences in this document
	Occurrences []Occurrence
}

// Occurrence is a single appearance of a symbol in a document
type Occurrence struct {
	// Symbol is the SCIP symbol identifier
	Symbol string

	// SymbolRoles is a bitset of SymbolRole* values
	SymbolRoles int32

	// Line is the 0-indexed start line
	Line int32
}

// IsDefinition reports whether the occurrence defines its symbol
func (o Occurrence) IsDefinition() bool {
	return o.SymbolRoles&SymbolRoleDefinition != 0
}

// IsImport reports whether the occurrence is an import of its symbol
func (o Occurrence) IsImport() bool {
	return o.SymbolRoles&SymbolRoleImport != 0
}

// SymbolRole constants (from SCIP protocol)
const (
	SymbolRoleDefinition  int32 = 1
	SymbolRoleImport      int32 = 2
	SymbolRoleWriteAccess int32 = 4
	SymbolRoleReadAccess  int32 = 8
	SymbolRoleGenerated   int32 = 16
	SymbolRoleTest        int32 = 32
)
