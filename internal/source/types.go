package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was supplied in memory (request body, test, stdin).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // byte offsets of every '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
// Col counts UTF-16 code units, the unit editors and language servers use.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}

// Range is a 1-based start/end position pair.
type Range struct {
	StartLine uint32 `json:"startLine"`
	StartCol  uint32 `json:"startCol"`
	EndLine   uint32 `json:"endLine"`
	EndCol    uint32 `json:"endCol"`
}
