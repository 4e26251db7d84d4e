// Package scip derives file dependency edges from a SCIP index.
//
// A SCIP index records, per document, every occurrence of every symbol and
// whether the occurrence defines it. A file referencing a symbol defined in
// another file depends on that file, which yields one edge
// defining file -> referencing file.
package scip

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"repolens/internal/errors"

	scippb "github.com/sourcegraph/scip/bindings/go/scip"
	"google.golang.org/protobuf/proto"
)

// SCIPIndex represents a loaded SCIP index
type SCIPIndex struct {
	// Metadata contains index metadata
	Metadata *Metadata

	// Documents are all indexed documents
	Documents []*Document

	// LoadedAt is when the index was loaded
	LoadedAt time.Time

	// IndexedCommit is the git commit the index was built from
	IndexedCommit string
}

// LoadSCIPIndex loads a SCIP index from the specified path
func LoadSCIPIndex(path string) (*SCIPIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.IndexMissing, fmt.Sprintf("SCIP index not found at %s", path), err)
		}
		return nil, errors.New(errors.InternalError, fmt.Sprintf("Failed to read SCIP index from %s", path), err)
	}

	return ParseSCIPIndex(data)
}

// ParseSCIPIndex decodes a protobuf-encoded SCIP index
func ParseSCIPIndex(data []byte) (*SCIPIndex, error) {
	var index scippb.Index
	if err := proto.Unmarshal(data, &index); err != nil {
		return nil, errors.New(errors.IndexInvalid, "Failed to parse SCIP index", err)
	}

	scipIndex := &SCIPIndex{
		Metadata:  convertMetadata(index.Metadata),
		Documents: convertDocuments(index.Documents),
		LoadedAt:  time.Now(),
	}

	if scipIndex.Metadata != nil && scipIndex.Metadata.ToolInfo != nil {
		scipIndex.IndexedCommit = extractCommitFromToolInfo(scipIndex.Metadata.ToolInfo)
	}

	return scipIndex, nil
}

// GetDocument retrieves a document by its relative path
func (i *SCIPIndex) GetDocument(relativePath string) *Document {
	for _, doc := range i.Documents {
		if doc.RelativePath == relativePath {
			return doc
		}
	}
	return nil
}

func convertMetadata(meta *scippb.Metadata) *Metadata {
	if meta == nil {
		return nil
	}

	var toolInfo *ToolInfo
	if meta.ToolInfo != nil {
		toolInfo = &ToolInfo{
			Name:      meta.ToolInfo.Name,
			Version:   meta.ToolInfo.Version,
			Arguments: meta.ToolInfo.Arguments,
		}
	}

	return &Metadata{
		Version:     fmt.Sprintf("%d", meta.Version),
		ToolInfo:    toolInfo,
		ProjectRoot: meta.ProjectRoot,
	}
}

func convertDocuments(docs []*scippb.Document) []*Document {
	result := make([]*Document, 0, len(docs))
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		occurrences := make([]Occurrence, 0, len(doc.Occurrences))
		for _, occ := range doc.Occurrences {
			var line int32
			if len(occ.Range) > 0 {
				line = occ.Range[0]
			}
			occurrences = append(occurrences, Occurrence{
				Symbol:      occ.Symbol,
				SymbolRoles: occ.SymbolRoles,
				Line:        line,
			})
		}
		result = append(result, &Document{
			RelativePath: filepath.ToSlash(doc.RelativePath),
			Language:     doc.Language,
			Occurrences:  occurrences,
		})
	}
	return result
}

// extractCommitFromToolInfo looks for a commit hash in the indexer arguments
// (--commit=, --git-commit=, --module-version=, -c <hash>) and falls back to
// the tool version when it looks like one.
func extractCommitFromToolInfo(toolInfo *ToolInfo) string {
	for i, arg := range toolInfo.Arguments {
		for _, prefix := range []string{"--commit=", "--git-commit=", "--module-version="} {
			if strings.HasPrefix(arg, prefix) && len(arg) > len(prefix) {
				return arg[len(prefix):]
			}
		}
		if arg == "-c" && i+1 < len(toolInfo.Arguments) {
			return toolInfo.Arguments[i+1]
		}
	}

	if looksLikeCommitHash(toolInfo.Version) {
		return toolInfo.Version
	}
	return ""
}

func looksLikeCommitHash(s string) bool {
	if len(s) < 7 || len(s) > 40 {
		return false
	}
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}

// GetIndexPath resolves a configured index path against the repository root
func GetIndexPath(repoRoot string, configPath string) string {
	if filepath.IsAbs(configPath) {
		return configPath
	}
	return filepath.Join(repoRoot, configPath)
}
