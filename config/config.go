// Package config loads topology descriptions: the routers, their
// interfaces, and their per-interface state, from which router and
// network LSAs are originated.
package config

import (
	"bytes"
	"fmt"
	"net/netip"
	"os"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"

	"github.com/davidbalbert/linkstate/ospf"
)

const defaultCost = 10

type Config struct {
	Routers []RouterConfig `yaml:"routers"`
}

type RouterConfig struct {
	ID         string            `yaml:"id"`
	AreaBorder bool              `yaml:"area-border"`
	ASBoundary bool              `yaml:"as-boundary"`
	Interfaces []InterfaceConfig `yaml:"interfaces"`
}

type InterfaceConfig struct {
	Address     string `yaml:"address"`
	Mask        string `yaml:"mask"`
	Area        string `yaml:"area"`
	NetworkType string `yaml:"network-type"`
	State       string `yaml:"state"`

	// Cost is a pointer so that an explicit `cost: 0` is distinguishable
	// from an absent key.
	Cost *uint16 `yaml:"cost"`

	DRID            string `yaml:"dr-id"`
	DRAddress       string `yaml:"dr-address"`
	BDRID           string `yaml:"bdr-id"`
	BDRAddress      string `yaml:"bdr-address"`
	NeighborID      string `yaml:"neighbor-id"`
	NeighborAddress string `yaml:"neighbor-address"`
}

func LoadConfig(path string) (*Config, error) {
	s, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return ParseConfig(s)
}

func ParseConfig(s []byte) (*Config, error) {
	var c Config

	dec := yaml.NewDecoder(bytes.NewReader(s))
	dec.KnownFields(true)

	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	c.applyDefaults()

	if err := c.validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

func (c *Config) applyDefaults() {
	for i := range c.Routers {
		r := &c.Routers[i]

		for j := range r.Interfaces {
			iface := &r.Interfaces[j]

			if iface.Area == "" {
				iface.Area = "0.0.0.0"
			}

			if iface.NetworkType == "" {
				iface.NetworkType = "broadcast"
			}

			if iface.Cost == nil {
				cost := uint16(defaultCost)
				iface.Cost = &cost
			}

			if iface.State == "" {
				iface.State = defaultState(iface, r.ID)
			}
		}
	}
}

func defaultState(iface *InterfaceConfig, routerID string) string {
	switch iface.NetworkType {
	case "point-to-point", "point-to-multipoint":
		return "point-to-point"
	case "loopback":
		return "loopback"
	case "broadcast", "non-broadcast":
		switch {
		case iface.DRID == "":
			return "waiting"
		case iface.DRID == routerID:
			return "dr"
		case iface.BDRID == routerID:
			return "backup"
		default:
			return "dr-other"
		}
	default:
		return "down"
	}
}

func (c *Config) validate() error {
	seen := make(map[string]bool)

	for _, r := range c.Routers {
		if r.ID == "" {
			return fmt.Errorf("config: router is missing an id")
		}

		if !validAddr(r.ID) {
			return fmt.Errorf("config: router %s: id must be an IPv4 address", r.ID)
		}

		if seen[r.ID] {
			return fmt.Errorf("config: duplicate router %s", r.ID)
		}
		seen[r.ID] = true

		for _, iface := range r.Interfaces {
			if err := validateInterface(&iface); err != nil {
				return fmt.Errorf("config: router %s: %w", r.ID, err)
			}
		}
	}

	return nil
}

func validateInterface(iface *InterfaceConfig) error {
	if iface.Address == "" {
		return fmt.Errorf("interface is missing an address")
	}

	if !validAddr(iface.Address) {
		return fmt.Errorf("interface %s: address must be an IPv4 address", iface.Address)
	}

	if iface.Mask != "" && !validAddr(iface.Mask) {
		return fmt.Errorf("interface %s: invalid mask %s", iface.Address, iface.Mask)
	}

	if _, err := parseNetworkType(iface.NetworkType); err != nil {
		return fmt.Errorf("interface %s: %w", iface.Address, err)
	}

	if _, err := parseState(iface.State); err != nil {
		return fmt.Errorf("interface %s: %w", iface.Address, err)
	}

	return nil
}

func validAddr(s string) bool {
	addr, err := netip.ParseAddr(s)
	return err == nil && addr.Is4()
}

func parseNetworkType(s string) (ospf.NetworkType, error) {
	switch s {
	case "point-to-point":
		return ospf.NetworkPointToPoint, nil
	case "broadcast":
		return ospf.NetworkBroadcast, nil
	case "non-broadcast":
		return ospf.NetworkNBMA, nil
	case "point-to-multipoint":
		return ospf.NetworkPointToMultipoint, nil
	case "loopback":
		return ospf.NetworkLoopback, nil
	default:
		return ospf.NetworkDown, fmt.Errorf("unknown network type %q", s)
	}
}

func parseState(s string) (ospf.InterfaceState, error) {
	switch s {
	case "down":
		return ospf.StateDown, nil
	case "loopback":
		return ospf.StateLoopback, nil
	case "waiting":
		return ospf.StateWaiting, nil
	case "point-to-point":
		return ospf.StatePointToPoint, nil
	case "dr-other":
		return ospf.StateDROther, nil
	case "backup":
		return ospf.StateBackup, nil
	case "dr":
		return ospf.StateDR, nil
	default:
		return ospf.StateDown, fmt.Errorf("unknown interface state %q", s)
	}
}

// Build turns the parsed configuration into routers ready for LSA
// origination. ParseConfig has already validated every field, so the
// per-field parses here can't fail.
func (c *Config) Build() []*ospf.Router {
	routers := make([]*ospf.Router, 0, len(c.Routers))

	for _, rc := range c.Routers {
		r := ospf.NewRouter(ospf.RouterID(rc.ID))
		r.AreaBorder = rc.AreaBorder
		r.ASBoundary = rc.ASBoundary

		for _, ic := range rc.Interfaces {
			networkType, _ := parseNetworkType(ic.NetworkType)
			state, _ := parseState(ic.State)

			r.AddInterface(&ospf.Interface{
				Address:         ic.Address,
				Mask:            ic.Mask,
				AreaID:          ospf.AreaID(ic.Area),
				Type:            networkType,
				Cost:            *ic.Cost,
				State:           state,
				DRID:            ospf.RouterID(ic.DRID),
				DRAddress:       ic.DRAddress,
				BDRID:           ospf.RouterID(ic.BDRID),
				BDRAddress:      ic.BDRAddress,
				NeighborID:      ospf.RouterID(ic.NeighborID),
				NeighborAddress: ic.NeighborAddress,
			})
		}

		routers = append(routers, r)
	}

	return routers
}

// AreaIDs returns every area referenced by an interface, sorted.
func (c *Config) AreaIDs() []ospf.AreaID {
	ids := make(map[ospf.AreaID]bool)

	for _, r := range c.Routers {
		for _, iface := range r.Interfaces {
			ids[ospf.AreaID(iface.Area)] = true
		}
	}

	keys := maps.Keys(ids)
	slices.Sort(keys)

	return keys
}
