package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto shows paths relative to BaseDir when they lie below it.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// PrettyOpts configures human-readable output.
type PrettyOpts struct {
	Color    bool
	Context  int // source lines shown above the finding line
	PathMode PathMode
	BaseDir  string
	// Max limits the findings printed across all reports; 0 prints all.
	Max       int
	ShowFixes bool
	// ShowMessage prints the rule message under each finding.
	ShowMessage bool
}

// JSONOpts configures JSON output.
type JSONOpts struct {
	PathMode PathMode
	BaseDir  string
	Max      int // truncates findings across reports, 0 keeps all
	Indent   bool
}

// SarifRunMeta provides metadata for SARIF output.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InformationURI string
	InvocationArgs []string
	PathMode       PathMode
	BaseDir        string
}
