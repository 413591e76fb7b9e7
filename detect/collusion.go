package detect

import (
	"sort"

	"github.com/trustmesh/engine/ids"
	"github.com/trustmesh/engine/kernel"
	"github.com/trustmesh/engine/node"
	"github.com/trustmesh/engine/scalar"
)

// Cluster describes one suspicious tightly-knit connected component.
type Cluster struct {
	Members         []ids.NodeID
	InternalDensity float64
	ExternalRatio   float64
	MutualRating    float64
	Confidence      scalar.Score
}

// edgeSet is an undirected adjacency view built once per detection
// pass: a connection from a to b is treated as an edge regardless of
// which side initiated it.
type edgeSet map[ids.NodeID]map[ids.NodeID]struct{}

func buildEdges(nodes map[ids.NodeID]*node.Node) edgeSet {
	edges := make(edgeSet, len(nodes))
	add := func(a, b ids.NodeID) {
		if edges[a] == nil {
			edges[a] = make(map[ids.NodeID]struct{})
		}
		edges[a][b] = struct{}{}
	}
	for id, n := range nodes {
		for peer := range n.Connections {
			add(id, peer)
			add(peer, id)
		}
	}
	return edges
}

// connectedComponents runs DFS over the undirected edge set and
// returns each component as a sorted slice of NodeID, ascending byte
// order, so downstream iteration is deterministic.
func connectedComponents(nodes map[ids.NodeID]*node.Node, edges edgeSet) [][]ids.NodeID {
	visited := make(map[ids.NodeID]bool, len(nodes))
	var components [][]ids.NodeID

	ordered := sortedIDs(nodes)
	for _, start := range ordered {
		if visited[start] {
			continue
		}
		var stack []ids.NodeID
		var component []ids.NodeID
		stack = append(stack, start)
		visited[start] = true
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			component = append(component, cur)
			for neighbor := range edges[cur] {
				if !visited[neighbor] {
					visited[neighbor] = true
					stack = append(stack, neighbor)
				}
			}
		}
		component = sortIDs(component)
		components = append(components, component)
	}
	return components
}

func sortedIDs(nodes map[ids.NodeID]*node.Node) []ids.NodeID {
	out := make([]ids.NodeID, 0, len(nodes))
	for id := range nodes {
		out = append(out, id)
	}
	return sortIDs(out)
}

func sortIDs(in []ids.NodeID) []ids.NodeID {
	out := make([]ids.NodeID, len(in))
	copy(out, in)
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Collusion runs the network-wide collusion-cluster detector over
// every connected component of size >= 3.
func Collusion(nodes map[ids.NodeID]*node.Node) []Cluster {
	edges := buildEdges(nodes)
	components := connectedComponents(nodes, edges)

	var clusters []Cluster
	for _, members := range components {
		if len(members) < 3 {
			continue
		}
		c := analyzeComponent(nodes, edges, members)
		if c.InternalDensity > kernel.CollusionThreshold && c.ExternalRatio < 1.0 && c.MutualRating > 0.9 {
			confidence := 0.3
			if c.InternalDensity > kernel.CollusionDenseBand {
				confidence = 0.7
			}
			c.Confidence = scalar.NewScore(confidence)
			clusters = append(clusters, c)
		}
	}
	return clusters
}

func analyzeComponent(nodes map[ids.NodeID]*node.Node, edges edgeSet, members []ids.NodeID) Cluster {
	memberSet := make(map[ids.NodeID]struct{}, len(members))
	for _, m := range members {
		memberSet[m] = struct{}{}
	}

	n := len(members)
	internalEdges := 0
	externalEdges := 0
	qualitySum := 0.0
	qualityCount := 0

	countedInternal := make(map[[2]ids.NodeID]struct{})

	for _, m := range members {
		for peer := range edges[m] {
			if _, inside := memberSet[peer]; inside {
				key := edgeKey(m, peer)
				if _, counted := countedInternal[key]; !counted {
					countedInternal[key] = struct{}{}
					internalEdges++
					if conn, ok := nodes[m].Connections[peer]; ok {
						qualitySum += conn.Q.Value()
						qualityCount++
					}
				}
			} else {
				externalEdges++
			}
		}
	}

	maxInternal := n * (n - 1) / 2
	internalDensity := 0.0
	if maxInternal > 0 {
		internalDensity = float64(internalEdges) / float64(maxInternal)
	}
	externalRatio := float64(externalEdges) / (0.5 * float64(n))
	mutualRating := 0.0
	if qualityCount > 0 {
		mutualRating = qualitySum / float64(qualityCount)
	}

	return Cluster{
		Members:         members,
		InternalDensity: internalDensity,
		ExternalRatio:   externalRatio,
		MutualRating:    mutualRating,
	}
}

func edgeKey(a, b ids.NodeID) [2]ids.NodeID {
	if a.Less(b) {
		return [2]ids.NodeID{a, b}
	}
	return [2]ids.NodeID{b, a}
}
