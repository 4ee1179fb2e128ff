package diagfmt

// PathMode controls how a diagnostic's file path is displayed.
type PathMode uint8

const (
	// PathModeAuto behaves like PathModeRelative when BaseDir is set and
	// PathModeAbsolute otherwise.
	PathModeAuto PathMode = iota
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// PrettyOpts configures Pretty's terminal rendering.
type PrettyOpts struct {
	Color     bool
	Context   int // lines of source shown above/below the primary span
	PathMode  PathMode
	BaseDir   string // consulted by PathModeRelative/PathModeAuto
	ShowNotes bool
	ShowFixes bool
}

// JSONOpts configures JSON's machine-readable rendering.
type JSONOpts struct {
	PathMode PathMode
	BaseDir  string
}
