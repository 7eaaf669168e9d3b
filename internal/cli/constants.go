package cli

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// TabWidth is the width of tabs in formatted output.
const TabWidth = 2

// Hook templates written by config init.
const (
	hookDirName  = "hooks"
	hookDirMode  = 0o755
	hookFileMode = 0o644
)
