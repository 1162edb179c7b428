package ospf

// Router is one router's configuration: its identity, its interfaces, its
// role flags, and the history of every LSA it has originated.
type Router struct {
	ID         RouterID
	Interfaces []*Interface
	AreaBorder bool
	ASBoundary bool

	// Originated is append-only. Re-origination appends a fresher copy
	// rather than replacing the old one.
	Originated []LSA
}

func NewRouter(id RouterID) *Router {
	return &Router{ID: id}
}

func (r *Router) AddInterface(iface *Interface) {
	r.Interfaces = append(r.Interfaces, iface)
}

// OriginateRouterLSA builds the router's router LSA for one area from its
// current interface state, appends it to the origination history, and
// returns it. Interfaces outside the area or in state Down contribute
// nothing. One link is emitted per remaining interface:
//
//   - point-to-point with a known neighbor: a point-to-point link to the
//     neighbor's router ID;
//   - broadcast/NBMA with a known DR: a transit link to the DR's segment
//     address;
//   - broadcast/NBMA without a DR: a stub link for the segment's network
//     address (stands in for real stub network detection);
//   - loopback: a stub link advertising a host route.
func (r *Router) OriginateRouterLSA(areaID AreaID) *RouterLSA {
	lsa, _ := NewRouterLSA(LSAHeader{
		AdvertisingRouter: r.ID,
		SequenceNumber:    r.nextSequenceNumber(routerLSAKey(r.ID)),
	})

	lsa.AreaBorder = r.AreaBorder
	lsa.ASBoundary = r.ASBoundary

	for _, iface := range r.Interfaces {
		if iface.AreaID != areaID || iface.State == StateDown || iface.Type == NetworkDown {
			continue
		}

		switch {
		case iface.PointToPoint() && iface.NeighborID != "":
			lsa.AddLink(Link{
				ID:     string(iface.NeighborID),
				Data:   iface.Address,
				Type:   LinkPointToPoint,
				Metric: iface.Cost,
			})
		case iface.MultiAccess() && iface.DRAddress != "":
			lsa.AddLink(Link{
				ID:     iface.DRAddress,
				Data:   iface.Address,
				Type:   LinkTransit,
				Metric: iface.Cost,
			})
		case iface.MultiAccess():
			lsa.AddLink(Link{
				ID:     NetworkAddress(iface.Address, iface.Mask),
				Data:   iface.Mask,
				Type:   LinkStub,
				Metric: iface.Cost,
			})
		case iface.Type == NetworkLoopback:
			lsa.AddLink(Link{
				ID:     iface.Address,
				Data:   "255.255.255.255",
				Type:   LinkStub,
				Metric: 0,
			})
		}
	}

	r.Originated = append(r.Originated, lsa)

	return lsa
}

// OriginateNetworkLSA builds the network LSA for a multi-access segment on
// which this router is the designated router. It returns nil if iface
// isn't a DR interface on a broadcast or NBMA network. The originating
// router is always listed as attached, whether or not the caller included
// it.
func (r *Router) OriginateNetworkLSA(iface *Interface, attached []RouterID) *NetworkLSA {
	if !iface.MultiAccess() || iface.State != StateDR {
		return nil
	}

	lsa, _ := NewNetworkLSA(LSAHeader{
		LinkStateID:       iface.Address,
		AdvertisingRouter: r.ID,
		SequenceNumber:    r.nextSequenceNumber(networkLSAKey(r.ID, iface.Address)),
	}, iface.Mask, attached...)

	lsa.AddAttachedRouter(r.ID)

	r.Originated = append(r.Originated, lsa)

	return lsa
}

// nextSequenceNumber returns a sequence number fresher than any this
// router has used for key, so re-originated LSAs always replace their
// predecessors.
func (r *Router) nextSequenceNumber(key LSDBKey) int32 {
	seq := int32(InitialSequenceNumber)
	for _, lsa := range r.Originated {
		if lsa.Key() == key && lsa.Header().SequenceNumber >= seq {
			seq = lsa.Header().SequenceNumber + 1
		}
	}

	return seq
}

func routerLSAKey(id RouterID) LSDBKey {
	return LSDBKey{
		Type:              LSATypeRouter,
		LinkStateID:       string(id),
		AdvertisingRouter: id,
	}
}

func networkLSAKey(id RouterID, drAddress string) LSDBKey {
	return LSDBKey{
		Type:              LSATypeNetwork,
		LinkStateID:       drAddress,
		AdvertisingRouter: id,
	}
}
