package netaddr_test

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fxdev/internal/adapters/netaddr"
)

func TestResolver_Resolve(t *testing.T) {
	tests := []struct {
		name     string
		override string
		env      map[string]string
		addrs    []net.Addr
		addrsErr error
		want     string
	}{
		{
			name:     "override wins over everything",
			override: "10.1.2.3",
			env: map[string]string{
				netaddr.EnvAddress:    "10.9.9.9",
				netaddr.EnvLANAddress: "10.8.8.8",
			},
			addrs: []net.Addr{ipNet("192.168.1.42", 24)},
			want:  "10.1.2.3",
		},
		{
			name: "FXDEV_ADDRESS wins over LAN_ADDRESS",
			env: map[string]string{
				netaddr.EnvAddress:    "10.9.9.9",
				netaddr.EnvLANAddress: "10.8.8.8",
			},
			want: "10.9.9.9",
		},
		{
			name: "LAN_ADDRESS used when FXDEV_ADDRESS is unset",
			env: map[string]string{
				netaddr.EnvLANAddress: "10.8.8.8",
			},
			want: "10.8.8.8",
		},
		{
			name: "first non-loopback IPv4 interface address",
			addrs: []net.Addr{
				ipNet("127.0.0.1", 8),
				ipNet("fe80::1", 64),
				ipNet("192.168.1.42", 24),
				ipNet("10.0.0.7", 8),
			},
			want: "192.168.1.42",
		},
		{
			name: "IPv6-only host falls back to loopback",
			addrs: []net.Addr{
				ipNet("::1", 128),
				ipNet("fe80::1", 64),
			},
			want: netaddr.Fallback,
		},
		{
			name:  "non-IPNet addresses are skipped",
			addrs: []net.Addr{&net.IPAddr{IP: net.ParseIP("192.168.1.1")}},
			want:  netaddr.Fallback,
		},
		{
			name:     "interface listing failure falls back to loopback",
			addrsErr: assert.AnError,
			want:     netaddr.Fallback,
		},
		{
			name: "no interfaces falls back to loopback",
			want: netaddr.Fallback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(netaddr.EnvAddress, "")
			t.Setenv(netaddr.EnvLANAddress, "")
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			resolver := netaddr.NewResolverWithAddrs(func() ([]net.Addr, error) {
				return tt.addrs, tt.addrsErr
			})

			assert.Equal(t, tt.want, resolver.Resolve(tt.override))
		})
	}
}

func TestNewResolver_RealInterfaces(t *testing.T) {
	t.Setenv(netaddr.EnvAddress, "")
	t.Setenv(netaddr.EnvLANAddress, "")

	resolver := netaddr.NewResolver()
	resolved := resolver.Resolve("")

	// Whatever the host looks like, the result must be a usable IP.
	require.NotEmpty(t, resolved)
	assert.NotNil(t, net.ParseIP(resolved))
}

func ipNet(ip string, bits int) *net.IPNet {
	parsed := net.ParseIP(ip)
	size := 32
	if parsed.To4() == nil {
		size = 128
	}
	return &net.IPNet{IP: parsed, Mask: net.CIDRMask(bits, size)}
}
