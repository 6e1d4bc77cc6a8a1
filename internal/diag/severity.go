package diag

// Severity ranks a diagnostic. Any SevError in a Bag fails the file; warnings
// are surfaced but do not block analysis. The zero value is unset.
type Severity uint8

const (
	SevWarning Severity = iota + 1
	SevError
)

var severityNames = [...]string{
	SevWarning: "warning",
	SevError:   "error",
}

// String returns the lowercase label used in rendered output.
func (s Severity) String() string {
	if int(s) < len(severityNames) && severityNames[s] != "" {
		return severityNames[s]
	}
	return "unset"
}
