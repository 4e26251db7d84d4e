package knowledge

import (
	"log/slog"
	"sort"
	"time"

	"repolens/internal/concepts"
	"repolens/internal/repotree"
	"repolens/internal/slogutil"
)

// Builder runs the extraction pipeline: concepts, then relationships, then
// the graph.
type Builder struct {
	Extractor *concepts.Extractor
	Logger    *slog.Logger
}

// NewBuilder creates a builder using the given vocabulary.
func NewBuilder(vocab concepts.Vocabulary, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slogutil.NewDiscardLogger()
	}
	return &Builder{
		Extractor: concepts.NewExtractor(vocab, logger),
		Logger:    logger,
	}
}

// Build analyzes every file of the tree. Files missing from contents are
// analyzed with empty content, so only their paths contribute. With a nil
// tree the keys of contents are used as the file list.
func (b *Builder) Build(tree *repotree.Node, contents map[string]string) *Graph {
	start := time.Now()

	extractor := b.Extractor
	if extractor == nil {
		extractor = concepts.NewExtractor(concepts.DefaultVocabulary(), b.Logger)
	}

	paths := sourcePaths(tree, contents)
	files := make([]concepts.SourceFile, 0, len(paths))
	for _, p := range paths {
		files = append(files, concepts.SourceFile{Path: p, Content: contents[p]})
	}

	found := extractor.ExtractAll(files)
	rels := concepts.InferRelationships(found, contents)
	g := Build(found, rels)

	if b.Logger != nil {
		b.Logger.Debug("Knowledge graph built",
			"files", len(files),
			"concepts", g.NumNodes(),
			"relationships", g.NumEdges(),
			"duration", time.Since(start).String(),
		)
	}
	return g
}

func sourcePaths(tree *repotree.Node, contents map[string]string) []string {
	if tree != nil {
		files := repotree.Files(tree)
		paths := make([]string, len(files))
		for i, f := range files {
			paths[i] = f.Path
		}
		return paths
	}

	paths := make([]string, 0, len(contents))
	for p := range contents {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
