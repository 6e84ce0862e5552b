package ports

// AddressResolver determines the network address the dev machine is reachable
// under from the perspective of a game client.
//
//go:generate mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type AddressResolver interface {
	// Resolve returns the first of: the override, an environment override, the
	// first non-loopback IPv4 address, or the loopback address. It never fails.
	Resolve(override string) string
}
