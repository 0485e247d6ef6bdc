package dispatch

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"net/url"
	"strings"
)

/* Allowlist restricts which destination networks may receive deliveries
 * Denial is a policy decision, not a transient fault: the job is blocked,
 * never retried
 */
type Allowlist struct {
	networks []netip.Prefix

	// lookup resolves a hostname to its addresses; swapped out in tests
	lookup func(ctx context.Context, host string) ([]netip.Addr, error)
}

// NewAllowlist parses a comma-separated list of CIDR blocks.
// An empty list means every destination is permitted.
func NewAllowlist(cidrs string) (*Allowlist, error) {
	a := &Allowlist{
		lookup: func(ctx context.Context, host string) ([]netip.Addr, error) {
			return net.DefaultResolver.LookupNetIP(ctx, "ip", host)
		},
	}

	for _, raw := range strings.Split(cidrs, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		prefix, err := netip.ParsePrefix(raw)
		if err != nil {
			return nil, fmt.Errorf("parsing CIDR %q: %w", raw, err)
		}
		a.networks = append(a.networks, prefix)
	}

	return a, nil
}

// Permits reports whether the destination of rawURL resolves entirely inside
// the allowlist. Resolution errors are returned so the caller can treat them
// as transient rather than as policy denials.
func (a *Allowlist) Permits(ctx context.Context, rawURL string) (bool, error) {
	if len(a.networks) == 0 {
		return true, nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return false, fmt.Errorf("parsing destination URL: %w", err)
	}

	host := u.Hostname()
	if host == "" {
		return false, fmt.Errorf("destination URL has no host: %s", rawURL)
	}

	var addrs []netip.Addr
	if addr, err := netip.ParseAddr(host); err == nil {
		addrs = []netip.Addr{addr}
	} else {
		addrs, err = a.lookup(ctx, host)
		if err != nil {
			return false, fmt.Errorf("resolving %s: %w", host, err)
		}
		if len(addrs) == 0 {
			return false, fmt.Errorf("no addresses for %s", host)
		}
	}

	// Every resolved address must be allowed; one bad record denies the host
	for _, addr := range addrs {
		if !a.contains(addr) {
			return false, nil
		}
	}
	return true, nil
}

func (a *Allowlist) contains(addr netip.Addr) bool {
	for _, prefix := range a.networks {
		if prefix.Contains(addr.Unmap()) {
			return true
		}
	}
	return false
}
