package graph

import (
	"errors"
	"reflect"
	"testing"
)

func TestAddNode(t *testing.T) {
	g := New[string]()

	if err := g.AddNode("a", nil); err != nil {
		t.Fatal(err)
	}

	if !g.Has("a") {
		t.Error("expected graph to contain a")
	}

	if g.NodeCount() != 1 {
		t.Errorf("expected 1 node, got %d", g.NodeCount())
	}
}

func TestAddNodeDuplicate(t *testing.T) {
	g := New[string]()

	if err := g.AddNode("a", nil); err != nil {
		t.Fatal(err)
	}

	err := g.AddNode("a", nil)
	if !errors.Is(err, ErrDuplicateNode) {
		t.Errorf("expected ErrDuplicateNode, got %v", err)
	}
}

func TestNodeData(t *testing.T) {
	g := New[string]()

	if err := g.AddNode("a", 42); err != nil {
		t.Fatal(err)
	}

	data, err := g.NodeData("a")
	if err != nil {
		t.Fatal(err)
	}

	if data != 42 {
		t.Errorf("expected 42, got %v", data)
	}

	if err := g.SetNodeData("a", "hello"); err != nil {
		t.Fatal(err)
	}

	data, err = g.NodeData("a")
	if err != nil {
		t.Fatal(err)
	}

	if data != "hello" {
		t.Errorf("expected hello, got %v", data)
	}

	_, err = g.NodeData("b")
	if !errors.Is(err, ErrUnknownNode) {
		t.Errorf("expected ErrUnknownNode, got %v", err)
	}
}

func TestAddEdgeCreatesNodes(t *testing.T) {
	g := New[string]()

	g.AddEdge("a", "b", 1)

	if !g.Has("a") || !g.Has("b") {
		t.Error("expected AddEdge to create both endpoints")
	}

	w, ok := g.EdgeWeight("a", "b")
	if !ok || w != 1 {
		t.Errorf("expected weight 1, got %v (ok=%v)", w, ok)
	}

	if _, ok := g.EdgeWeight("b", "a"); ok {
		t.Error("edges are directed; b->a should not exist")
	}
}

func TestAddEdgeUpsertsWeight(t *testing.T) {
	g := New[string]()

	g.AddEdge("a", "b", 1)
	g.AddEdge("a", "b", 5)

	w, ok := g.EdgeWeight("a", "b")
	if !ok || w != 5 {
		t.Errorf("expected weight 5, got %v (ok=%v)", w, ok)
	}

	if g.EdgeCount() != 1 {
		t.Errorf("expected 1 edge after weight update, got %d", g.EdgeCount())
	}
}

func TestNeighborsOrder(t *testing.T) {
	g := New[string]()

	g.AddEdge("a", "c", 1)
	g.AddEdge("a", "b", 1)
	g.AddEdge("a", "d", 1)

	neighbors, err := g.Neighbors("a")
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"c", "b", "d"}
	if !reflect.DeepEqual(neighbors, want) {
		t.Errorf("expected %v, got %v", want, neighbors)
	}

	_, err = g.Neighbors("z")
	if !errors.Is(err, ErrUnknownNode) {
		t.Errorf("expected ErrUnknownNode, got %v", err)
	}
}

func TestAllNodes(t *testing.T) {
	g := New[int]()

	if nodes := g.AllNodes(); len(nodes) != 0 {
		t.Errorf("expected no nodes, got %v", nodes)
	}

	g.AddNode(3, nil)
	g.AddNode(1, nil)
	g.AddEdge(1, 2, 1)

	want := []int{3, 1, 2}
	if nodes := g.AllNodes(); !reflect.DeepEqual(nodes, want) {
		t.Errorf("expected %v, got %v", want, nodes)
	}
}

func TestCounts(t *testing.T) {
	g := New[string]()

	g.AddEdge("a", "b", 1)
	g.AddEdge("b", "c", 2)
	g.AddEdge("a", "c", 3)
	g.AddEdge("c", "a", 4)

	if g.NodeCount() != 3 {
		t.Errorf("expected 3 nodes, got %d", g.NodeCount())
	}

	if g.EdgeCount() != 4 {
		t.Errorf("expected 4 edges, got %d", g.EdgeCount())
	}
}
