package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconMusic    = "🎵"
	IconError    = "❌"
	IconDone     = "✔"
	IconWorking  = "⏳"
)

// Layout sizing
const (
	WindowWidth  float32 = 820
	WindowHeight float32 = 600

	StatusLabelWidth float32 = 96
	RowMinWidth      float32 = 400
	RowMinHeight     float32 = 44

	SettingsDialogWidth  float32 = 520
	SettingsDialogHeight float32 = 360
)

// Debounce durations
const (
	UIUpdateDebounce = 100 * time.Millisecond
	FolderCheckDelay = 300 * time.Millisecond
)
