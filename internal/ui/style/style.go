// Package style provides shared UI styling primitives including brand colors
// and icons for consistent visual presentation across the CLI.
package style

import "github.com/charmbracelet/lipgloss"

// Brand Colors.
var (
	Flame  = lipgloss.Color("#F97316")
	Slate  = lipgloss.Color("#64748B")
	White  = lipgloss.Color("#FFFFFF")
	Ink    = lipgloss.Color("#0F172A")
	Green  = lipgloss.Color("#16A34A")
	Red    = lipgloss.Color("#DC2626")
	Yellow = lipgloss.Color("#EAB308")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
)
