// Package ospf implements the control-plane core of a link-state routing
// protocol: LSA origination from interface state, per-area link state
// databases, topology graph construction, and SPF routing table
// computation. Adjacency formation, DR election, and the wire protocol are
// out of scope; their results arrive as already-resolved facts on
// Interface records.
package ospf

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/slices"
)

// RouterID and AreaID are dotted-quad strings ("1.1.1.1", "0.0.0.0"). The
// core treats them as opaque identifiers.
type (
	RouterID string
	AreaID   string
)

const (
	// LSAHeaderLen is the encoded length of an LSA header.
	LSAHeaderLen = 20

	// MaxAge is the age, in seconds, at which an LSA becomes a candidate
	// for removal.
	MaxAge = 3600

	InitialSequenceNumber = math.MinInt32 + 1
	MaxSequenceNumber     = math.MaxInt32
)

// ErrInvalidLSAType is returned when a header carries a type tag that
// doesn't match the LSA variant being constructed.
var ErrInvalidLSAType = errors.New("ospf: invalid LSA type")

type LSAType uint8

const (
	LSATypeRouter  LSAType = 1
	LSATypeNetwork LSAType = 2
)

func (t LSAType) String() string {
	switch t {
	case LSATypeRouter:
		return "router"
	case LSATypeNetwork:
		return "network"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// LSAHeader is the part common to every LSA. LinkStateID's meaning depends
// on the type: a router LSA's is the originating router's ID, a network
// LSA's is the DR's interface address on the segment.
//
// Length is derived: always header length plus the body length computed
// from current contents. The concrete types keep it up to date across
// mutations; it is never stored stale.
type LSAHeader struct {
	Age               uint16
	Options           uint8
	Type              LSAType
	LinkStateID       string
	AdvertisingRouter RouterID
	SequenceNumber    int32
	Checksum          uint16
	Length            uint16
}

func (h *LSAHeader) Header() *LSAHeader {
	return h
}

func (h *LSAHeader) Key() LSDBKey {
	return LSDBKey{
		Type:              h.Type,
		LinkStateID:       h.LinkStateID,
		AdvertisingRouter: h.AdvertisingRouter,
	}
}

// LSA is implemented by RouterLSA and NetworkLSA. Database identity is the
// key triple; replacing a database entry means installing a new LSA value,
// never mutating the stored one.
type LSA interface {
	Header() *LSAHeader
	Key() LSDBKey
}

type LinkType uint8

const (
	LinkPointToPoint LinkType = 1
	LinkTransit      LinkType = 2
	LinkStub         LinkType = 3
	LinkVirtual      LinkType = 4
)

func (t LinkType) String() string {
	switch t {
	case LinkPointToPoint:
		return "point-to-point"
	case LinkTransit:
		return "transit network"
	case LinkStub:
		return "stub network"
	case LinkVirtual:
		return "virtual link"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// Link is one link description in a router LSA. ID and Data follow the
// usual conventions: for point-to-point links ID is the neighbor's router
// ID and Data the advertising interface's address; for transit links ID is
// the DR's segment address; for stub links ID is the network address and
// Data the mask.
type Link struct {
	ID     string
	Data   string
	Type   LinkType
	Metric uint16
}

// RouterLSA describes the originating router's active links in one area.
type RouterLSA struct {
	LSAHeader

	VirtualLinkEndpoint bool
	ASBoundary          bool
	AreaBorder          bool

	Links []Link
}

// NewRouterLSA builds a router LSA. header.Type must be LSATypeRouter or
// left zero; LinkStateID defaults to the advertising router's ID.
func NewRouterLSA(header LSAHeader, links ...Link) (*RouterLSA, error) {
	if header.Type != 0 && header.Type != LSATypeRouter {
		return nil, fmt.Errorf("%w: %v for router LSA", ErrInvalidLSAType, header.Type)
	}
	header.Type = LSATypeRouter

	if header.LinkStateID == "" {
		header.LinkStateID = string(header.AdvertisingRouter)
	}

	lsa := &RouterLSA{
		LSAHeader: header,
		Links:     slices.Clone(links),
	}
	lsa.recalculateLength()

	return lsa, nil
}

func (lsa *RouterLSA) AddLink(link Link) {
	lsa.Links = append(lsa.Links, link)
	lsa.recalculateLength()
}

// Body: flags and link count (4 bytes), then 12 bytes per link.
func (lsa *RouterLSA) recalculateLength() {
	lsa.Length = LSAHeaderLen + 4 + 12*uint16(len(lsa.Links))
}

// NetworkLSA describes a multi-access segment: its mask and the routers
// attached to it. Originated by the segment's DR.
type NetworkLSA struct {
	LSAHeader

	NetworkMask     string
	AttachedRouters []RouterID
}

// NewNetworkLSA builds a network LSA. header.Type must be LSATypeNetwork
// or left zero; header.LinkStateID is the DR's interface address on the
// segment.
func NewNetworkLSA(header LSAHeader, mask string, attached ...RouterID) (*NetworkLSA, error) {
	if header.Type != 0 && header.Type != LSATypeNetwork {
		return nil, fmt.Errorf("%w: %v for network LSA", ErrInvalidLSAType, header.Type)
	}
	header.Type = LSATypeNetwork

	lsa := &NetworkLSA{
		LSAHeader:   header,
		NetworkMask: mask,
	}
	lsa.recalculateLength()

	for _, id := range attached {
		lsa.AddAttachedRouter(id)
	}

	return lsa, nil
}

// AddAttachedRouter records a router as attached to the segment. Re-adding
// a router that's already attached is a no-op.
func (lsa *NetworkLSA) AddAttachedRouter(id RouterID) {
	if slices.Contains(lsa.AttachedRouters, id) {
		return
	}

	lsa.AttachedRouters = append(lsa.AttachedRouters, id)
	lsa.recalculateLength()
}

// Body: network mask (4 bytes), then 4 bytes per attached router.
func (lsa *NetworkLSA) recalculateLength() {
	lsa.Length = LSAHeaderLen + 4 + 4*uint16(len(lsa.AttachedRouters))
}
