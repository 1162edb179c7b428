package ospf

import "testing"

func TestNetworkAddress(t *testing.T) {
	tests := []struct {
		address string
		mask    string
		want    string
	}{
		{"10.0.1.7", "255.255.255.0", "10.0.1.0"},
		{"192.168.37.200", "255.255.0.0", "192.168.0.0"},
		{"172.16.5.9", "255.255.255.252", "172.16.5.8"},
		{"10.1.2.3", "255.255.255.255", "10.1.2.3"},
		{"10.1.2.3", "0.0.0.0", "0.0.0.0"},

		// Best effort: malformed inputs return the address unchanged.
		{"not-an-address", "255.255.255.0", "not-an-address"},
		{"10.0.1.7", "garbage", "10.0.1.7"},
		{"10.0.1.7", "", "10.0.1.7"},
		{"10.0.1.7", "255.0.255.0", "10.0.1.7"}, // non-contiguous mask
		{"fe80::1", "255.255.255.0", "fe80::1"},
	}

	for _, tt := range tests {
		if got := NetworkAddress(tt.address, tt.mask); got != tt.want {
			t.Errorf("NetworkAddress(%q, %q) = %q, want %q", tt.address, tt.mask, got, tt.want)
		}
	}
}
