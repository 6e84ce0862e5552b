package ports

// Restarter asks the game server to restart the resource after rebuilds.
//
//go:generate mockgen -source=restarter.go -destination=mocks/mock_restarter.go -package=mocks
type Restarter interface {
	// BuildCompleted reports a finished rebuild. Successful rebuilds are
	// debounced into restart requests fired in the background; failed ones
	// are dropped without affecting the debounce window. It never blocks.
	BuildCompleted(failed bool)
}
