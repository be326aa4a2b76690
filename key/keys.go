// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Playback Engine - these keys tune the presentation clock and the frame release scheduler.
const (
	PlayerIntermission = "player.intermission_ms"
	PlayerRate         = "player.rate"
	PlayerSeekStep     = "player.seek_step_ms"
	PlayerSeekMode     = "player.seek_mode"
)

// Media Library - these keys locate sources and shape the simulated tracks built for them.
const (
	LibraryPath          = "library.path"
	LibraryFrameInterval = "library.frame_interval_ms"
	LibraryGOPSize       = "library.gop_size"
	LibraryDuration      = "library.duration_ms"
)

// Resume Tracking - these keys configure the persistence of playback positions.
const (
	ResumeSave = "resume.save_on_close"
)

// Terminal User Interface (TUI) - these keys define the transport-controls view behavior.
const (
	TUITickInterval = "tui.tick_interval_ms"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these settings govern general CLI behavior.
const (
	CliColored = "cli.colored"
)
