package impact

import "repolens/internal/graph"

// TraversalOptions configures a single directional walk.
type TraversalOptions struct {
	MaxDepth int      // Hop cap; <= 0 means MaxTraversalDepth
	Resolver Resolver // Node metadata source; nil derives it from the id
}

type queueEntry struct {
	id       string
	distance int
	path     []string
}

// Traverse walks idx breadth-first from origin in the given direction.
//
// Each node is recorded once, the first time the FIFO queue yields it, so its
// DependencyPath is a shortest path by hop count and never repeats a node.
// Cycles stop expanding as soon as a node reappears. An origin with no edges
// yields a single distance-0 entry.
func Traverse(idx *graph.Index, origin string, dir graph.Direction, opts TraversalOptions) []ImpactNode {
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = MaxTraversalDepth
	}
	var resolver Resolver = pathResolver{}
	if opts.Resolver != nil {
		resolver = opts.Resolver
	}

	results := make([]ImpactNode, 0)
	visited := make(map[string]bool)
	queue := []queueEntry{{id: origin, distance: 0, path: []string{origin}}}

	for len(queue) > 0 {
		entry := queue[0]
		queue = queue[1:]

		if visited[entry.id] || entry.distance > maxDepth {
			continue
		}
		visited[entry.id] = true

		file := resolver.Resolve(entry.id)
		results = append(results, ImpactNode{
			ID:             entry.id,
			Path:           file.Path,
			Name:           file.Name,
			Type:           file.Kind,
			ImpactLevel:    ClassifyDistance(entry.distance),
			Distance:       entry.distance,
			Weight:         DecayWeight(entry.distance),
			DependencyPath: entry.path,
			Direction:      dir,
		})

		if idx == nil {
			continue
		}
		for _, next := range idx.Neighbors(entry.id, dir) {
			if visited[next] {
				continue
			}
			path := make([]string, len(entry.path), len(entry.path)+1)
			copy(path, entry.path)
			queue = append(queue, queueEntry{
				id:       next,
				distance: entry.distance + 1,
				path:     append(path, next),
			})
		}
	}

	return results
}

// Dependents returns the forward walk: what breaks if origin changes.
func Dependents(idx *graph.Index, origin string, opts TraversalOptions) []ImpactNode {
	return Traverse(idx, origin, graph.Forward, opts)
}

// Dependencies returns the backward walk: what origin relies on.
func Dependencies(idx *graph.Index, origin string, opts TraversalOptions) []ImpactNode {
	return Traverse(idx, origin, graph.Backward, opts)
}
