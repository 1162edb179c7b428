package ospf

import (
	"net"
	"net/netip"

	"go4.org/netipx"
)

// NetworkAddress computes the network address for an interface address and
// mask ("10.0.1.7", "255.255.255.0" -> "10.0.1.0"). Identifiers in this
// package are plain dotted quads, so this is best effort: if the address
// or mask doesn't parse as IPv4, or the mask is non-contiguous, the
// address is returned unchanged.
func NetworkAddress(address, mask string) string {
	addr, err := netip.ParseAddr(address)
	if err != nil || !addr.Is4() {
		return address
	}

	maskAddr, err := netip.ParseAddr(mask)
	if err != nil || !maskAddr.Is4() {
		return address
	}

	prefix, ok := netipx.FromStdIPNet(&net.IPNet{
		IP:   addr.AsSlice(),
		Mask: net.IPMask(maskAddr.AsSlice()),
	})
	if !ok {
		return address
	}

	return prefix.Masked().Addr().String()
}
