package icon

// Icon identifies a renderable UI symbol.
type Icon int

const (
	Play Icon = iota
	Pause
	Progress
	Success
	Fail
)

// icons is the global registry mapping identifiers to their variant renderings.
var icons = map[Icon]*iconDef{
	Play: {
		emoji: "▶️",
		nerd:  "",
		plain: ">",
	},
	Pause: {
		emoji: "⏸️",
		nerd:  "",
		plain: "||",
	},
	Progress: {
		emoji: "⏳",
		nerd:  "",
		plain: "...",
	},
	Success: {
		emoji: "✅",
		nerd:  "",
		plain: "+",
	},
	Fail: {
		emoji: "❌",
		nerd:  "",
		plain: "x",
	},
}
