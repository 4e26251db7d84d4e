// Package repotree models the repository file tree handed to the analyzers.
// The tree is read only; nothing in this package mutates a Node.
package repotree

import (
	"path"
	"sort"
	"strings"
)

// NodeType distinguishes directories from files.
type NodeType string

const (
	TypeTree NodeType = "tree"
	TypeBlob NodeType = "blob"
)

// Node is a single entry of the file tree.
type Node struct {
	Name     string   `json:"name" yaml:"name" toml:"name"`
	Path     string   `json:"path" yaml:"path" toml:"path"`
	Type     NodeType `json:"type" yaml:"type" toml:"type"`
	Children []*Node  `json:"children,omitempty" yaml:"children,omitempty" toml:"children,omitempty"`
}

// IsDir reports whether the node is a directory.
func (n *Node) IsDir() bool {
	return n != nil && n.Type == TypeTree
}

// File is a blob of the tree annotated with its detected kind.
type File struct {
	Path string   `json:"path"`
	Name string   `json:"name"`
	Kind FileKind `json:"kind"`
}

// Walk visits every node depth-first, parents before children.
// Returning false from fn skips the node's children.
func Walk(root *Node, fn func(*Node) bool) {
	if root == nil {
		return
	}
	if !fn(root) {
		return
	}
	for _, child := range root.Children {
		Walk(child, fn)
	}
}

// Files enumerates every blob in the tree, sorted by path.
func Files(root *Node) []File {
	files := make([]File, 0)
	Walk(root, func(n *Node) bool {
		if n.Type == TypeBlob {
			files = append(files, fileOf(n))
		}
		return true
	})
	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files
}

// Lookup indexes every blob by path.
func Lookup(root *Node) map[string]File {
	lookup := make(map[string]File)
	Walk(root, func(n *Node) bool {
		if n.Type == TypeBlob {
			lookup[n.Path] = fileOf(n)
		}
		return true
	})
	return lookup
}

// Find returns the node at p, or nil.
func Find(root *Node, p string) *Node {
	var found *Node
	Walk(root, func(n *Node) bool {
		if found != nil {
			return false
		}
		if n.Path == p {
			found = n
			return false
		}
		// Only descend into directories that can contain p.
		return n.Path == "" || n.Path == "/" || strings.HasPrefix(p, n.Path+"/")
	})
	return found
}

// FileFor builds a File for an arbitrary path, used for ids that are not
// part of the tree.
func FileFor(p string) File {
	return File{Path: p, Name: path.Base(p), Kind: DetectKind(p)}
}

func fileOf(n *Node) File {
	name := n.Name
	if name == "" {
		name = path.Base(n.Path)
	}
	return File{Path: n.Path, Name: name, Kind: DetectKind(n.Path)}
}

// ExpandTo returns a new set holding every entry of expanded plus all
// ancestor directories of p. The input set is left untouched.
func ExpandTo(expanded map[string]bool, p string) map[string]bool {
	next := make(map[string]bool, len(expanded)+4)
	for k, v := range expanded {
		next[k] = v
	}
	for _, dir := range Ancestors(p) {
		next[dir] = true
	}
	return next
}

// Ancestors returns the ancestor directories of p, outermost first.
func Ancestors(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	parts := strings.Split(p, "/")
	dirs := make([]string, 0, len(parts)-1)
	for i := 1; i < len(parts); i++ {
		dirs = append(dirs, strings.Join(parts[:i], "/"))
	}
	return dirs
}

// FromPaths builds a tree from a flat list of file paths. Directories are
// created as needed and children are sorted by name.
func FromPaths(paths []string) *Node {
	root := &Node{Name: "", Path: "", Type: TypeTree}
	dirs := map[string]*Node{"": root}

	for _, p := range paths {
		p = strings.Trim(p, "/")
		if p == "" {
			continue
		}
		parent := root
		for _, dir := range Ancestors(p) {
			node, ok := dirs[dir]
			if !ok {
				node = &Node{Name: path.Base(dir), Path: dir, Type: TypeTree}
				dirs[dir] = node
				parent.Children = append(parent.Children, node)
			}
			parent = node
		}
		if Find(parent, p) == nil {
			parent.Children = append(parent.Children, &Node{Name: path.Base(p), Path: p, Type: TypeBlob})
		}
	}

	Walk(root, func(n *Node) bool {
		sort.Slice(n.Children, func(i, j int) bool {
			return n.Children[i].Name < n.Children[j].Name
		})
		return true
	})
	return root
}
