package ospf

import (
	"errors"
	"testing"
)

func TestRouterLSADefaults(t *testing.T) {
	lsa, err := NewRouterLSA(LSAHeader{AdvertisingRouter: "1.1.1.1"})
	if err != nil {
		t.Fatal(err)
	}

	if lsa.Type != LSATypeRouter {
		t.Errorf("expected type %v, got %v", LSATypeRouter, lsa.Type)
	}

	if lsa.LinkStateID != "1.1.1.1" {
		t.Errorf("expected link state ID to default to the router ID, got %q", lsa.LinkStateID)
	}

	if lsa.Length != LSAHeaderLen+4 {
		t.Errorf("expected length %d, got %d", LSAHeaderLen+4, lsa.Length)
	}
}

func TestRouterLSALengthInvariant(t *testing.T) {
	lsa, err := NewRouterLSA(LSAHeader{AdvertisingRouter: "1.1.1.1"})
	if err != nil {
		t.Fatal(err)
	}

	links := []Link{
		{ID: "2.2.2.2", Data: "192.168.1.1", Type: LinkPointToPoint, Metric: 10},
		{ID: "10.0.0.0", Data: "255.255.255.0", Type: LinkStub, Metric: 1},
		{ID: "10.0.1.3", Data: "10.0.1.1", Type: LinkTransit, Metric: 5},
	}

	for i, link := range links {
		lsa.AddLink(link)

		want := uint16(LSAHeaderLen + 4 + 12*(i+1))
		if lsa.Length != want {
			t.Errorf("after %d links: expected length %d, got %d", i+1, want, lsa.Length)
		}
	}

	if len(lsa.Links) != 3 {
		t.Errorf("expected 3 links, got %d", len(lsa.Links))
	}
}

func TestRouterLSAExplicitLinkStateID(t *testing.T) {
	lsa, err := NewRouterLSA(LSAHeader{AdvertisingRouter: "1.1.1.1", LinkStateID: "9.9.9.9"})
	if err != nil {
		t.Fatal(err)
	}

	if lsa.LinkStateID != "9.9.9.9" {
		t.Errorf("expected explicit link state ID to win, got %q", lsa.LinkStateID)
	}
}

func TestRouterLSARejectsWrongType(t *testing.T) {
	_, err := NewRouterLSA(LSAHeader{Type: LSATypeNetwork, AdvertisingRouter: "1.1.1.1"})
	if !errors.Is(err, ErrInvalidLSAType) {
		t.Errorf("expected ErrInvalidLSAType, got %v", err)
	}
}

func TestNetworkLSALengthInvariant(t *testing.T) {
	lsa, err := NewNetworkLSA(LSAHeader{
		LinkStateID:       "192.168.1.1",
		AdvertisingRouter: "1.1.1.1",
	}, "255.255.255.0")
	if err != nil {
		t.Fatal(err)
	}

	if lsa.Type != LSATypeNetwork {
		t.Errorf("expected type %v, got %v", LSATypeNetwork, lsa.Type)
	}

	if lsa.Length != LSAHeaderLen+4 {
		t.Errorf("expected length %d, got %d", LSAHeaderLen+4, lsa.Length)
	}

	lsa.AddAttachedRouter("2.2.2.2")
	lsa.AddAttachedRouter("3.3.3.3")

	if want := uint16(LSAHeaderLen + 4 + 8); lsa.Length != want {
		t.Errorf("expected length %d, got %d", want, lsa.Length)
	}

	// Re-adding an attached router is a no-op.
	lsa.AddAttachedRouter("3.3.3.3")

	if len(lsa.AttachedRouters) != 2 {
		t.Errorf("expected 2 attached routers, got %d", len(lsa.AttachedRouters))
	}

	if want := uint16(LSAHeaderLen + 4 + 8); lsa.Length != want {
		t.Errorf("expected length %d after duplicate add, got %d", want, lsa.Length)
	}
}

func TestNetworkLSARejectsWrongType(t *testing.T) {
	_, err := NewNetworkLSA(LSAHeader{Type: LSATypeRouter, AdvertisingRouter: "1.1.1.1"}, "255.255.255.0")
	if !errors.Is(err, ErrInvalidLSAType) {
		t.Errorf("expected ErrInvalidLSAType, got %v", err)
	}
}

func TestNewNetworkLSADeduplicatesAttached(t *testing.T) {
	lsa, err := NewNetworkLSA(LSAHeader{
		LinkStateID:       "192.168.1.1",
		AdvertisingRouter: "1.1.1.1",
	}, "255.255.255.0", "1.1.1.1", "2.2.2.2", "1.1.1.1")
	if err != nil {
		t.Fatal(err)
	}

	if len(lsa.AttachedRouters) != 2 {
		t.Errorf("expected 2 attached routers, got %v", lsa.AttachedRouters)
	}

	if want := uint16(LSAHeaderLen + 4 + 8); lsa.Length != want {
		t.Errorf("expected length %d, got %d", want, lsa.Length)
	}
}

func TestLSAKey(t *testing.T) {
	lsa, err := NewRouterLSA(LSAHeader{AdvertisingRouter: "1.1.1.1"})
	if err != nil {
		t.Fatal(err)
	}

	want := LSDBKey{Type: LSATypeRouter, LinkStateID: "1.1.1.1", AdvertisingRouter: "1.1.1.1"}
	if lsa.Key() != want {
		t.Errorf("expected key %v, got %v", want, lsa.Key())
	}
}
