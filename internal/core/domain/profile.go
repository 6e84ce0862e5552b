package domain

import (
	"fmt"
	"path"
)

// Game identifies the target platform of a resource.
type Game string

const (
	// GameGTA5 targets FiveM.
	GameGTA5 Game = "gta5"

	// GameRDR3 targets RedM.
	GameRDR3 Game = "rdr3"
)

// ParseGame validates a game identifier.
func ParseGame(s string) (Game, error) {
	switch g := Game(s); g {
	case GameGTA5, GameRDR3:
		return g, nil
	default:
		return "", ErrInvalidGame
	}
}

// IsRDR3 reports whether the game is RedM.
func (g Game) IsRDR3() bool {
	return g == GameRDR3
}

// TargetProfile describes the state a resource manifest should be patched towards.
type TargetProfile struct {
	// Game the resource targets.
	Game Game

	// Watch is true during a watch session. The UI page then points at the
	// dev server instead of the built bundle.
	Watch bool

	// HasUI is true when the resource carries a UI sub-project.
	HasUI bool

	// UIDir is the manifest-relative directory of the UI sub-project.
	UIDir string

	// Address is the resolved network address of the dev machine.
	Address string

	// UIPort is the port the UI dev server listens on.
	UIPort int
}

// UIPage returns the manifest ui_page value for the profile, or an empty
// string when the resource has no UI.
func (p TargetProfile) UIPage() string {
	if !p.HasUI {
		return ""
	}
	if p.Watch {
		return fmt.Sprintf("http://%s:%d", p.Address, p.UIPort)
	}
	return path.Join(p.UIDir, UIDistDirName, UIPageFileName)
}
