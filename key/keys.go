// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Media Surface - these keys select and tune the playback backend.
const (
	Player       = "player.default"
	PlayerBinary = "player.binary"
	SkipSeconds  = "player.skip_seconds"
	VolumeStep   = "player.volume_step"
)

// Selection - these keys govern the catalog list and item activation.
const (
	ActivationDelayMs = "selection.activation_delay_ms"
	SuggestionLimit   = "selection.suggestion_limit"
)

// Catalog - these keys locate the catalog supplied at session start.
const (
	CatalogPath               = "catalog.path"
	CatalogCacheLifetimeHours = "catalog.cache_lifetime_hours"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI) - these keys define the interactive environment's layout.
const (
	TUIItemSpacing        = "tui.item_spacing"
	TUIShowDescriptions   = "tui.show_descriptions"
	TUISearchPromptString = "tui.search_prompt"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these settings govern the non-TUI application behavior.
const (
	CliColored = "cli.colored"
)
