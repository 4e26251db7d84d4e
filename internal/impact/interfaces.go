package impact

import "repolens/internal/repotree"

// Resolver maps a node id to the file metadata shown for it.
type Resolver interface {
	Resolve(id string) repotree.File
}

// TreeResolver resolves ids against a file tree. Ids missing from the tree
// fall back to metadata derived from the id itself.
type TreeResolver struct {
	files map[string]repotree.File
}

// NewTreeResolver indexes the blobs of root. A nil root is allowed.
func NewTreeResolver(root *repotree.Node) *TreeResolver {
	return &TreeResolver{files: repotree.Lookup(root)}
}

// Resolve implements Resolver.
func (r *TreeResolver) Resolve(id string) repotree.File {
	if r != nil {
		if f, ok := r.files[id]; ok {
			return f
		}
	}
	return repotree.FileFor(id)
}

type pathResolver struct{}

func (pathResolver) Resolve(id string) repotree.File {
	return repotree.FileFor(id)
}
