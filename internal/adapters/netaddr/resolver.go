// Package netaddr resolves the LAN address game clients use to reach the
// UI dev server.
package netaddr

import (
	"net"
	"os"

	"go.trai.ch/fxdev/internal/core/ports"
)

// Fallback is the address returned when nothing better can be determined.
const Fallback = "127.0.0.1"

// Environment variables consulted when no explicit override is set.
const (
	// EnvAddress is the tool-specific override.
	EnvAddress = "FXDEV_ADDRESS"

	// EnvLANAddress is a generic override shared with other tooling.
	EnvLANAddress = "LAN_ADDRESS"
)

var _ ports.AddressResolver = (*Resolver)(nil)

// Resolver picks the host address advertised in dev-server ui_page entries.
type Resolver struct {
	addrs func() ([]net.Addr, error)
}

// NewResolver creates a resolver backed by the host's network interfaces.
func NewResolver() *Resolver {
	return &Resolver{addrs: net.InterfaceAddrs}
}

// Resolve returns the first available of: the explicit override, the
// FXDEV_ADDRESS and LAN_ADDRESS environment variables, the first
// non-loopback IPv4 interface address, the loopback fallback. A host
// without usable interfaces still resolves to the fallback.
func (r *Resolver) Resolve(override string) string {
	if override != "" {
		return override
	}
	for _, key := range []string{EnvAddress, EnvLANAddress} {
		if addr := os.Getenv(key); addr != "" {
			return addr
		}
	}
	return r.interfaceAddress()
}

func (r *Resolver) interfaceAddress() string {
	addrs, err := r.addrs()
	if err != nil {
		return Fallback
	}
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok || ipNet.IP.IsLoopback() {
			continue
		}
		if ip4 := ipNet.IP.To4(); ip4 != nil {
			return ip4.String()
		}
	}
	return Fallback
}
