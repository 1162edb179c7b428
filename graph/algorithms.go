package graph

import (
	"container/heap"
	"fmt"
	"slices"
)

// Dijkstra computes single-source shortest paths from start over
// non-negative edge weights. It returns the distance to every reachable
// node (unreachable nodes are absent from the map) and the predecessor of
// every node on its shortest path. start has no predecessor.
func Dijkstra[K comparable](g *Graph[K], start K) (map[K]float64, map[K]K, error) {
	if !g.Has(start) {
		return nil, nil, fmt.Errorf("dijkstra: %w: start %v", ErrUnknownNode, start)
	}

	dist, prev := dijkstra(g, start, nil)
	return dist, prev, nil
}

// ShortestPath computes the shortest path from start to end. It returns the
// total distance and the path in order from start to end; found is false if
// end is unreachable. The search stops as soon as end's distance is final.
func ShortestPath[K comparable](g *Graph[K], start, end K) (distance float64, path []K, found bool, err error) {
	if !g.Has(start) {
		return 0, nil, false, fmt.Errorf("shortest path: %w: start %v", ErrUnknownNode, start)
	}
	if !g.Has(end) {
		return 0, nil, false, fmt.Errorf("shortest path: %w: end %v", ErrUnknownNode, end)
	}

	dist, prev := dijkstra(g, start, &end)

	d, ok := dist[end]
	if !ok {
		return 0, nil, false, nil
	}

	path = []K{end}
	for cur := end; cur != start; {
		cur = prev[cur]
		path = append(path, cur)
	}
	slices.Reverse(path)

	return d, path, true, nil
}

// pqItem is a tentative distance in the priority queue. Stale items are
// skipped when popped rather than removed when superseded.
type pqItem[K comparable] struct {
	node K
	dist float64
	seq  int
}

// pq orders by distance, then by insertion order, so that equal-cost
// candidates are explored first-in first-out.
type pq[K comparable] []*pqItem[K]

func (q pq[K]) Len() int { return len(q) }

func (q pq[K]) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}
	return q[i].seq < q[j].seq
}

func (q pq[K]) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *pq[K]) Push(x any) { *q = append(*q, x.(*pqItem[K])) }

func (q *pq[K]) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}

func dijkstra[K comparable](g *Graph[K], start K, end *K) (map[K]float64, map[K]K) {
	dist := map[K]float64{start: 0}
	prev := make(map[K]K)

	seq := 0
	q := &pq[K]{{node: start, dist: 0, seq: seq}}
	heap.Init(q)

	for q.Len() > 0 {
		item := heap.Pop(q).(*pqItem[K])

		if item.dist > dist[item.node] {
			continue // stale entry
		}

		if end != nil && item.node == *end {
			break
		}

		neighbors, err := g.Neighbors(item.node)
		if err != nil {
			continue
		}

		for _, v := range neighbors {
			w, ok := g.EdgeWeight(item.node, v)
			if !ok {
				continue
			}

			d := item.dist + w
			if cur, ok := dist[v]; !ok || d < cur {
				dist[v] = d
				prev[v] = item.node

				seq++
				heap.Push(q, &pqItem[K]{node: v, dist: d, seq: seq})
			}
		}
	}

	return dist, prev
}

// BFS visits every node reachable from start in level order, ignoring edge
// weights, and returns them in discovery order.
func BFS[K comparable](g *Graph[K], start K) ([]K, error) {
	if !g.Has(start) {
		return nil, fmt.Errorf("bfs: %w: start %v", ErrUnknownNode, start)
	}

	order, _, _ := bfs(g, start, nil)
	return order, nil
}

// BFSPath searches for target in level order. It returns the shortest path
// by edge count (nil if target is unreachable) and the predecessor map
// built up to the point the search stopped.
func BFSPath[K comparable](g *Graph[K], start, target K) ([]K, map[K]K, error) {
	if !g.Has(start) {
		return nil, nil, fmt.Errorf("bfs: %w: start %v", ErrUnknownNode, start)
	}
	if !g.Has(target) {
		return nil, nil, fmt.Errorf("bfs: %w: target %v", ErrUnknownNode, target)
	}

	_, prev, found := bfs(g, start, &target)
	if !found {
		return nil, prev, nil
	}

	return reconstructPath(start, target, prev), prev, nil
}

func bfs[K comparable](g *Graph[K], start K, target *K) ([]K, map[K]K, bool) {
	visited := map[K]bool{start: true}
	prev := make(map[K]K)

	queue := []K{start}
	var order []K

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		order = append(order, cur)

		if target != nil && cur == *target {
			return order, prev, true
		}

		neighbors, err := g.Neighbors(cur)
		if err != nil {
			continue
		}

		for _, v := range neighbors {
			if !visited[v] {
				visited[v] = true
				prev[v] = cur
				queue = append(queue, v)
			}
		}
	}

	return order, prev, false
}

// DFS visits every node reachable from start depth-first and returns them
// in visitation order. Neighbors are explored in the order Neighbors
// returns them, matching a recursive traversal.
func DFS[K comparable](g *Graph[K], start K) ([]K, error) {
	if !g.Has(start) {
		return nil, fmt.Errorf("dfs: %w: start %v", ErrUnknownNode, start)
	}

	order, _, _ := dfs(g, start, nil)
	return order, nil
}

// DFSPath searches for target depth-first. It returns the first path found
// (nil if target is unreachable) and the predecessor map built up to the
// point the search stopped.
func DFSPath[K comparable](g *Graph[K], start, target K) ([]K, map[K]K, error) {
	if !g.Has(start) {
		return nil, nil, fmt.Errorf("dfs: %w: start %v", ErrUnknownNode, start)
	}
	if !g.Has(target) {
		return nil, nil, fmt.Errorf("dfs: %w: target %v", ErrUnknownNode, target)
	}

	_, prev, found := dfs(g, start, &target)
	if !found {
		return nil, prev, nil
	}

	return reconstructPath(start, target, prev), prev, nil
}

func dfs[K comparable](g *Graph[K], start K, target *K) ([]K, map[K]K, bool) {
	visited := make(map[K]bool)
	prev := make(map[K]K)

	stack := []K{start}
	var order []K

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited[cur] {
			continue
		}
		visited[cur] = true

		order = append(order, cur)

		if target != nil && cur == *target {
			return order, prev, true
		}

		neighbors, err := g.Neighbors(cur)
		if err != nil {
			continue
		}

		// Push in reverse so the first listed neighbor is popped, and
		// therefore explored, first.
		for i := len(neighbors) - 1; i >= 0; i-- {
			v := neighbors[i]
			if !visited[v] {
				prev[v] = cur
				stack = append(stack, v)
			}
		}
	}

	return order, prev, false
}

func reconstructPath[K comparable](start, target K, prev map[K]K) []K {
	path := []K{target}
	for cur := target; cur != start; {
		cur = prev[cur]
		path = append(path, cur)
	}
	slices.Reverse(path)
	return path
}
