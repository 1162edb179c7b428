package ospf

import (
	"context"
	"sync"
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/davidbalbert/linkstate/graph"
	lssync "github.com/davidbalbert/linkstate/sync"
)

// NodeKind tags nodes in an area's topology graph.
type NodeKind int

const (
	// NodeRouter is a real router.
	NodeRouter NodeKind = iota

	// NodeTransitNetwork is the pseudo-node for a multi-access segment.
	// N routers on a segment connect through it with N edges instead of
	// N^2 pairwise edges.
	NodeTransitNetwork
)

// NodeInfo is the data attached to every topology graph node.
type NodeInfo struct {
	Kind NodeKind

	// RouterID is set for router nodes.
	RouterID RouterID

	// DR and DRAddress are set for transit network pseudo-nodes.
	DR        RouterID
	DRAddress string
}

// TransitNodeID returns the topology node identifier for the transit
// segment whose DR interface address is addr.
func TransitNodeID(addr string) string {
	return "transit:" + addr
}

// RouteEntry is one routing table entry. NextHop is the first node after
// the source on the shortest path: a direct out-neighbor of the source,
// either a router ID or a transit pseudo-node ID (the TransitNodeID of
// the shared segment the path crosses). Callers that need a router-only
// next hop resolve a pseudo-node hop by following the path one node
// further; the pseudo-node's NodeInfo carries the segment's DR. NextHop
// is empty for the route to self.
type RouteEntry struct {
	Cost    float64
	NextHop string
}

// RoutingTable maps source router -> destination topology node -> entry.
// Only reachable destinations appear. Published tables are never mutated.
type RoutingTable map[RouterID]map[string]RouteEntry

// Area owns one routing area: its member routers, its link state
// database, and the topology graph and routing table derived from the
// database. The database, graph, and table change together under one
// lock; AddLSA returns only after the graph and table are consistent with
// the database again, and readers always see a complete table.
type Area struct {
	ID AreaID

	mu       sync.Mutex
	routers  map[RouterID]*Router
	db       lsdb
	topology *graph.Graph[string]
	table    RoutingTable

	notifier *lssync.Notifier
	metrics  *Metrics
}

func NewArea(id AreaID) *Area {
	return &Area{
		ID:       id,
		routers:  make(map[RouterID]*Router),
		db:       make(lsdb),
		notifier: lssync.NewNotifier(),
	}
}

// SetMetrics attaches prometheus instrumentation. A nil *Metrics (the
// default) records nothing.
func (a *Area) SetMetrics(m *Metrics) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.metrics = m
}

// AddRouter records r as a member of the area.
func (a *Area) AddRouter(r *Router) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.routers[r.ID] = r
}

func (a *Area) Router(id RouterID) (*Router, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	r, ok := a.routers[id]
	return r, ok
}

// RouterIDs returns the member router IDs in sorted order.
func (a *Area) RouterIDs() []RouterID {
	a.mu.Lock()
	defer a.mu.Unlock()

	ids := maps.Keys(a.routers)
	slices.Sort(ids)

	return ids
}

// AddLSA offers an LSA to the area's database and reports whether the
// database changed. A new key is always installed. For an existing key
// the freshness rules in fresher decide; losing them is a normal, silent
// outcome, not an error. An accepted change rebuilds the topology graph
// and recomputes every routing table before AddLSA returns.
func (a *Area) AddLSA(l LSA) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	key := l.Key()
	if stored, ok := a.db[key]; ok && !fresher(l.Header(), stored.Header()) {
		a.metrics.observeUpdate(a.ID, false)
		return false
	}

	a.db[key] = l
	a.metrics.observeUpdate(a.ID, true)
	a.metrics.setDBSize(a.ID, len(a.db))

	a.rebuild()
	a.recompute()

	a.notifier.NotifyChange()

	return true
}

// LSA returns the installed LSA for key.
func (a *Area) LSA(key LSDBKey) (LSA, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	l, ok := a.db[key]
	return l, ok
}

func (a *Area) LSACount() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return len(a.db)
}

// Topology returns the current topology graph, or nil before the first
// accepted LSA. Rebuilds replace the graph rather than mutating it, so
// the returned graph is stable; callers must treat it as read-only.
func (a *Area) Topology() *graph.Graph[string] {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.topology
}

// RoutingTable returns the most recently computed table, or nil before
// the first accepted LSA. The table is replaced wholesale on every
// accepted change; callers must treat it as read-only.
func (a *Area) RoutingTable() RoutingTable {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.table
}

// Route returns src's routing table entry for the destination node.
func (a *Area) Route(src RouterID, dest string) (RouteEntry, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	entry, ok := a.table[src][dest]
	return entry, ok
}

// LastSeq and AwaitChange expose the area's change notifier: every
// accepted database update bumps the sequence once the new routing table
// is in place.
func (a *Area) LastSeq() int64 {
	return a.notifier.LastSeq()
}

func (a *Area) AwaitChange(ctx context.Context, seq int64) int64 {
	return a.notifier.AwaitChange(ctx, seq)
}

// rebuild replaces the topology graph from database contents. Two passes:
// an LSA can reference routers whose own LSAs haven't been visited yet,
// so all nodes are created before any edge.
func (a *Area) rebuild() {
	g := graph.New[string]()

	keys := a.sortedKeys()

	for _, key := range keys {
		h := a.db[key].Header()
		ensureRouterNode(g, h.AdvertisingRouter)

		switch l := a.db[key].(type) {
		case *RouterLSA:
			for _, link := range l.Links {
				if link.Type == LinkPointToPoint {
					ensureRouterNode(g, RouterID(link.ID))
				}
			}
		case *NetworkLSA:
			id := TransitNodeID(l.LinkStateID)
			if !g.Has(id) {
				g.AddNode(id, &NodeInfo{
					Kind:      NodeTransitNetwork,
					DR:        l.AdvertisingRouter,
					DRAddress: l.LinkStateID,
				})
			}

			for _, rid := range l.AttachedRouters {
				ensureRouterNode(g, rid)
			}
		}
	}

	for _, key := range keys {
		switch l := a.db[key].(type) {
		case *RouterLSA:
			src := string(l.AdvertisingRouter)

			for _, link := range l.Links {
				switch link.Type {
				case LinkPointToPoint:
					// Only connect to known router nodes; a link without
					// any advertisement behind it stays dangling.
					if info, ok := nodeInfo(g, link.ID); ok && info.Kind == NodeRouter {
						g.AddEdge(src, link.ID, float64(link.Metric))
					}
				case LinkTransit:
					g.AddEdge(src, TransitNodeID(link.ID), float64(link.Metric))
				}
			}
		case *NetworkLSA:
			id := TransitNodeID(l.LinkStateID)

			// Zero cost out of the pseudo-node: crossing a segment costs
			// only the sender's interface metric, paid on the way in.
			for _, rid := range l.AttachedRouters {
				if _, ok := g.EdgeWeight(id, string(rid)); !ok {
					g.AddEdge(id, string(rid), 0)
				}
			}
		}
	}

	a.topology = g
}

// recompute replaces the routing table by running a full SPF from every
// router node in the topology graph. The new table is swapped in whole;
// a partially computed table is never observable.
func (a *Area) recompute() {
	start := time.Now()
	table := make(RoutingTable)

	for _, id := range a.topology.AllNodes() {
		info, ok := nodeInfo(a.topology, id)
		if !ok || info.Kind != NodeRouter {
			continue
		}

		dist, prev, err := graph.Dijkstra(a.topology, id)
		if err != nil {
			continue
		}

		routes := make(map[string]RouteEntry, len(dist))
		for dest, cost := range dist {
			routes[dest] = RouteEntry{
				Cost:    cost,
				NextHop: nextHop(id, dest, prev),
			}
		}

		table[info.RouterID] = routes
	}

	a.table = table
	a.metrics.observeSPF(a.ID, time.Since(start))
}

// nextHop walks the predecessor chain backward from dest until it reaches
// the node whose predecessor is src: that node is the first hop on the
// path. The chain is a shortest-path tree branch, so the walk is bounded
// by the graph size. Routes to self have no next hop.
func nextHop(src, dest string, prev map[string]string) string {
	if dest == src {
		return ""
	}

	cur := dest
	for prev[cur] != src {
		cur = prev[cur]
	}

	return cur
}

// sortedKeys returns the database keys in a stable order so that rebuilds
// of the same database always produce the same graph, and therefore the
// same choice among equal-cost paths.
func (a *Area) sortedKeys() []LSDBKey {
	keys := maps.Keys(a.db)

	slices.SortFunc(keys, func(x, y LSDBKey) bool {
		if x.Type != y.Type {
			return x.Type < y.Type
		}
		if x.AdvertisingRouter != y.AdvertisingRouter {
			return x.AdvertisingRouter < y.AdvertisingRouter
		}
		return x.LinkStateID < y.LinkStateID
	})

	return keys
}

func ensureRouterNode(g *graph.Graph[string], id RouterID) {
	if !g.Has(string(id)) {
		g.AddNode(string(id), &NodeInfo{Kind: NodeRouter, RouterID: id})
	}
}

func nodeInfo(g *graph.Graph[string], id string) (*NodeInfo, bool) {
	data, err := g.NodeData(id)
	if err != nil {
		return nil, false
	}

	info, ok := data.(*NodeInfo)
	return info, ok
}
