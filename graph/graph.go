// Package graph provides a directed, weighted graph with arbitrary node
// data, plus the traversal and shortest-path algorithms used to turn a link
// state database into routing tables.
package graph

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateNode is returned when adding a node whose identifier is
	// already present.
	ErrDuplicateNode = errors.New("graph: duplicate node")

	// ErrUnknownNode is returned when an operation names a node that isn't
	// in the graph.
	ErrUnknownNode = errors.New("graph: unknown node")
)

// Graph is a directed graph with weighted edges. Node identifiers can be
// any comparable type, and each node can carry an associated data value.
// Nodes and out-neighbors are kept in insertion order, so traversals are
// deterministic for a fixed construction sequence.
//
// A Graph is not safe for concurrent use.
type Graph[K comparable] struct {
	nodes map[K]*node[K]
	order []K
	edges int
}

type node[K comparable] struct {
	data      any
	weights   map[K]float64
	neighbors []K
}

func New[K comparable]() *Graph[K] {
	return &Graph[K]{
		nodes: make(map[K]*node[K]),
	}
}

// AddNode adds a node with the given identifier and associated data.
func (g *Graph[K]) AddNode(id K, data any) error {
	if _, ok := g.nodes[id]; ok {
		return fmt.Errorf("%w: %v", ErrDuplicateNode, id)
	}

	g.nodes[id] = &node[K]{
		data:    data,
		weights: make(map[K]float64),
	}
	g.order = append(g.order, id)

	return nil
}

// AddEdge adds a directed edge from u to v, creating either endpoint if it
// doesn't exist yet. Adding an edge that already exists replaces its
// weight.
func (g *Graph[K]) AddEdge(u, v K, weight float64) {
	if _, ok := g.nodes[u]; !ok {
		g.AddNode(u, nil)
	}
	if _, ok := g.nodes[v]; !ok {
		g.AddNode(v, nil)
	}

	n := g.nodes[u]
	if _, ok := n.weights[v]; !ok {
		n.neighbors = append(n.neighbors, v)
		g.edges++
	}
	n.weights[v] = weight
}

// Has reports whether id is a node in the graph.
func (g *Graph[K]) Has(id K) bool {
	_, ok := g.nodes[id]
	return ok
}

// Neighbors returns the directed out-neighbors of id in insertion order.
func (g *Graph[K]) Neighbors(id K) ([]K, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownNode, id)
	}

	neighbors := make([]K, len(n.neighbors))
	copy(neighbors, n.neighbors)

	return neighbors, nil
}

// EdgeWeight returns the weight of the edge from u to v, if there is one.
func (g *Graph[K]) EdgeWeight(u, v K) (float64, bool) {
	n, ok := g.nodes[u]
	if !ok {
		return 0, false
	}

	w, ok := n.weights[v]
	return w, ok
}

// NodeData returns the data associated with id.
func (g *Graph[K]) NodeData(id K) (any, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownNode, id)
	}

	return n.data, nil
}

// SetNodeData replaces the data associated with id.
func (g *Graph[K]) SetNodeData(id K, data any) error {
	n, ok := g.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnknownNode, id)
	}

	n.data = data
	return nil
}

// AllNodes returns every node identifier in insertion order.
func (g *Graph[K]) AllNodes() []K {
	nodes := make([]K, len(g.order))
	copy(nodes, g.order)
	return nodes
}

func (g *Graph[K]) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of distinct ordered pairs with an edge.
// Replacing an existing edge's weight doesn't change the count.
func (g *Graph[K]) EdgeCount() int {
	return g.edges
}
