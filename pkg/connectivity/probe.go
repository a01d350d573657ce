package connectivity

import (
	"context"
	"fmt"
	"net/netip"
	"slices"
	"strings"
	"time"

	psnet "github.com/shirou/gopsutil/v4/net"
	"tailscale.com/client/local"
	"tailscale.com/ipn/ipnstate"

	"gitlab.com/tinyland/lab/daybook/pkg/collectors"
)

// ProbeName is the collector name every reachability probe registers under.
const ProbeName = "network"

// DefaultProbeInterval is how often reachability is sampled.
const DefaultProbeInterval = 5 * time.Second

// Probe kinds accepted by NewProbe.
const (
	ProbeInterfaces = "interfaces"
	ProbeTailscale  = "tailscale"
)

var (
	_ collectors.Collector = (*InterfaceProbe)(nil)
	_ collectors.Collector = (*TailscaleProbe)(nil)
)

// ProbeConfig selects and tunes a reachability probe.
type ProbeConfig struct {
	Kind     string
	Interval time.Duration

	// TailscaleSocket overrides the tailscaled LocalAPI socket path.
	TailscaleSocket string
}

// NewProbe builds the probe named by cfg.Kind. An empty kind means
// interfaces.
func NewProbe(cfg ProbeConfig) (collectors.Collector, error) {
	switch cfg.Kind {
	case "", ProbeInterfaces:
		return NewInterfaceProbe(cfg.Interval, nil), nil
	case ProbeTailscale:
		lc := &local.Client{}
		if cfg.TailscaleSocket != "" {
			lc.Socket = cfg.TailscaleSocket
		}
		return NewTailscaleProbe(cfg.Interval, lc), nil
	default:
		return nil, fmt.Errorf("unknown connectivity probe %q", cfg.Kind)
	}
}

// --- interfaces ---

// InterfaceLister returns the host's network interfaces.
type InterfaceLister func(ctx context.Context) (psnet.InterfaceStatList, error)

// InterfaceProbe reports online when some non-loopback interface is up and
// holds a routable address.
type InterfaceProbe struct {
	interval time.Duration
	list     InterfaceLister
}

// NewInterfaceProbe creates an interface probe. A nil lister uses gopsutil.
func NewInterfaceProbe(interval time.Duration, list InterfaceLister) *InterfaceProbe {
	if interval <= 0 {
		interval = DefaultProbeInterval
	}
	if list == nil {
		list = psnet.InterfacesWithContext
	}
	return &InterfaceProbe{interval: interval, list: list}
}

func (p *InterfaceProbe) Name() string            { return ProbeName }
func (p *InterfaceProbe) Interval() time.Duration { return p.interval }

// Collect returns a Sample.
func (p *InterfaceProbe) Collect(ctx context.Context) (interface{}, error) {
	ifaces, err := p.list(ctx)
	if err != nil {
		return nil, fmt.Errorf("list interfaces: %w", err)
	}
	for _, iface := range ifaces {
		if addr, ok := routableAddr(iface); ok {
			return Sample{
				Online: true,
				Source: ProbeInterfaces,
				Detail: iface.Name + " " + addr,
			}, nil
		}
	}
	return Sample{Online: false, Source: ProbeInterfaces, Detail: "no routable interface"}, nil
}

// routableAddr returns the first address on iface that can reach beyond the
// host, if iface is up and not a loopback.
func routableAddr(iface psnet.InterfaceStat) (string, bool) {
	if !slices.Contains(iface.Flags, "up") || slices.Contains(iface.Flags, "loopback") {
		return "", false
	}
	for _, a := range iface.Addrs {
		s := a.Addr
		if i := strings.IndexByte(s, '/'); i >= 0 {
			s = s[:i]
		}
		ip, err := netip.ParseAddr(s)
		if err != nil {
			continue
		}
		if ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsUnspecified() {
			continue
		}
		return ip.String(), true
	}
	return "", false
}

// --- tailscale ---

// StatusClient abstracts the tailscaled LocalAPI. *local.Client satisfies it.
type StatusClient interface {
	Status(ctx context.Context) (*ipnstate.Status, error)
}

// TailscaleProbe reports online when the tailscaled backend is running.
// Hosts without tailscaled produce error samples.
type TailscaleProbe struct {
	interval time.Duration
	client   StatusClient
}

// NewTailscaleProbe creates a tailnet probe.
func NewTailscaleProbe(interval time.Duration, client StatusClient) *TailscaleProbe {
	if interval <= 0 {
		interval = DefaultProbeInterval
	}
	return &TailscaleProbe{interval: interval, client: client}
}

func (p *TailscaleProbe) Name() string            { return ProbeName }
func (p *TailscaleProbe) Interval() time.Duration { return p.interval }

// Collect returns a Sample.
func (p *TailscaleProbe) Collect(ctx context.Context) (interface{}, error) {
	st, err := p.client.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("tailscale status: %w", err)
	}
	if st == nil {
		return nil, fmt.Errorf("tailscale status: nil response")
	}
	return Sample{
		Online: st.BackendState == "Running",
		Source: ProbeTailscale,
		Detail: st.BackendState,
	}, nil
}
