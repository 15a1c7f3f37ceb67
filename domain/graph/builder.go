package graph

import (
	"errors"
	"sort"
	"strings"

	gograph "github.com/dominikbraun/graph"
)

// Build accumulates a co-occurrence snapshot from per-entry entity sets.
// Every unordered pair of entities appearing together in one entry
// increments that pair's link weight by one. Nodes and links come back
// sorted so repeated builds over the same entries are byte-identical.
func Build(entitySets [][]string) *Snapshot {
	g := gograph.New(gograph.StringHash, gograph.Weighted())

	for _, entities := range entitySets {
		cleaned := make([]string, 0, len(entities))
		for _, e := range entities {
			if strings.TrimSpace(e) != "" {
				cleaned = append(cleaned, e)
			}
		}

		for _, e := range cleaned {
			_ = g.AddVertex(e)
		}

		for i := 0; i < len(cleaned); i++ {
			for j := i + 1; j < len(cleaned); j++ {
				a, b := cleaned[i], cleaned[j]
				if a == b {
					continue
				}

				err := g.AddEdge(a, b, gograph.EdgeWeight(1))
				if errors.Is(err, gograph.ErrEdgeAlreadyExists) {
					edge, edgeErr := g.Edge(a, b)
					if edgeErr != nil {
						continue
					}
					_ = g.UpdateEdge(a, b, gograph.EdgeWeight(edge.Properties.Weight+1))
				}
			}
		}
	}

	snapshot := Empty()

	adjacency, err := g.AdjacencyMap()
	if err != nil {
		return snapshot
	}

	ids := make([]string, 0, len(adjacency))
	for id := range adjacency {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		snapshot.Nodes = append(snapshot.Nodes, Node{ID: id})
	}

	edges, err := g.Edges()
	if err != nil {
		return snapshot
	}

	for _, e := range edges {
		source, target := e.Source, e.Target
		if source > target {
			source, target = target, source
		}
		snapshot.Links = append(snapshot.Links, Link{
			Source: source,
			Target: target,
			Weight: float64(e.Properties.Weight),
		})
	}
	sort.Slice(snapshot.Links, func(i, j int) bool {
		if snapshot.Links[i].Source != snapshot.Links[j].Source {
			return snapshot.Links[i].Source < snapshot.Links[j].Source
		}
		return snapshot.Links[i].Target < snapshot.Links[j].Target
	})

	return snapshot
}
