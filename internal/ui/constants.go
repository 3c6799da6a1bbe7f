package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconImage    = "🖼"
	IconFile     = "📄"
	IconFolder   = "📁"
	IconCopy     = "📋"
	IconOpen     = "↗"
	IconClose    = "×"
	IconCheck    = "✓"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
	DashPlaceholder    = "—"
)

// Layout sizing
const (
	WindowWidth  float32 = 900
	WindowHeight float32 = 680

	LogoSize        float32 = 32
	LogPanelHeight  float32 = 160
	StagedListH     float32 = 110
	SettingsDialogW float32 = 460
	SettingsDialogH float32 = 320
)

// Timings
const (
	AttachTimeout   = 2 * time.Minute
	StatusAutoClear = 4 * time.Second
)

// Link URLs without a scheme open as https
const DefaultLinkScheme = "https"
