package diag

import (
	"fmt"

	"effectlint/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

// Errorf returns an error diagnostic at sp.
func Errorf(code Code, sp source.Span, format string, args ...any) Diagnostic {
	return Diagnostic{Severity: SevError, Code: code, Primary: sp, Message: fmt.Sprintf(format, args...)}
}

// Warnf returns a warning diagnostic at sp.
func Warnf(code Code, sp source.Span, format string, args ...any) Diagnostic {
	return Diagnostic{Severity: SevWarning, Code: code, Primary: sp, Message: fmt.Sprintf(format, args...)}
}

// WithNote returns a copy of d with an extra note; d's notes are not shared.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	notes := make([]Note, len(d.Notes), len(d.Notes)+1)
	copy(notes, d.Notes)
	d.Notes = append(notes, Note{Span: sp, Msg: msg})
	return d
}

// Error formats the diagnostic as "ID severity: message" so a Diagnostic can
// travel as an error value.
func (d Diagnostic) Error() string {
	return d.Code.ID() + " " + d.Severity.String() + ": " + d.Message
}
