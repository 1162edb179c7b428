package ospf

// Interface is one attachment point of a router. Every field is a fact
// resolved by the adjacency process before the record reaches this
// package: the core never discovers neighbors or elects DRs itself.
// Interfaces are immutable here except for State, which the adjacency
// process updates in place.
type Interface struct {
	Address string
	Mask    string
	AreaID  AreaID
	Type    NetworkType
	Cost    uint16
	State   InterfaceState

	// DR facts for multi-access segments, when known. DRAddress is the
	// DR's interface address on this segment, which also names the
	// segment's network LSA.
	DRID       RouterID
	DRAddress  string
	BDRID      RouterID
	BDRAddress string

	// The far end of a point-to-point link, when known.
	NeighborID      RouterID
	NeighborAddress string
}

// MultiAccess reports whether the interface is on a shared segment with a
// designated router.
func (iface *Interface) MultiAccess() bool {
	return iface.Type == NetworkBroadcast || iface.Type == NetworkNBMA
}

// PointToPoint reports whether the interface forms point-to-point
// adjacencies.
func (iface *Interface) PointToPoint() bool {
	return iface.Type == NetworkPointToPoint || iface.Type == NetworkPointToMultipoint
}

type NetworkType int

const (
	NetworkPointToPoint NetworkType = iota
	NetworkBroadcast
	NetworkNBMA
	NetworkPointToMultipoint
	NetworkLoopback
	NetworkDown
)

func (t NetworkType) String() string {
	switch t {
	case NetworkPointToPoint:
		return "point-to-point"
	case NetworkBroadcast:
		return "broadcast"
	case NetworkNBMA:
		return "NBMA"
	case NetworkPointToMultipoint:
		return "point-to-multipoint"
	case NetworkLoopback:
		return "loopback"
	case NetworkDown:
		return "down"
	default:
		return "unknown"
	}
}

// InterfaceState is the interface's role on its segment, the output of the
// (external) interface state machine and DR election.
type InterfaceState int

const (
	StateDown InterfaceState = iota
	StateLoopback
	StateWaiting
	StatePointToPoint
	StateDROther
	StateBackup
	StateDR
)

func (s InterfaceState) String() string {
	switch s {
	case StateDown:
		return "Down"
	case StateLoopback:
		return "Loopback"
	case StateWaiting:
		return "Waiting"
	case StatePointToPoint:
		return "Point-to-point"
	case StateDROther:
		return "DROther"
	case StateBackup:
		return "Backup"
	case StateDR:
		return "DR"
	default:
		return "Unknown"
	}
}
