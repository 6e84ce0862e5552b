package netaddr

import "net"

// NewResolverWithAddrs creates a resolver with a fake interface listing for
// testing purposes.
func NewResolverWithAddrs(addrs func() ([]net.Addr, error)) *Resolver {
	return &Resolver{addrs: addrs}
}
