// Package diag defines the diagnostic model for source-level problems:
// lexical and syntax failures while reading TypeScript input and
// configuration problems surfaced to the CLI.
//
// Diagnostic is the central record: Severity, a numeric Code with a stable
// string form (LEX/SYN/IO/CFG prefixes), a short Message, the Primary span
// and optional Notes.
//
// Producers emit through a Reporter so that storage stays decoupled. The
// lexer keeps scanning after an error, so one file may yield several lexical
// diagnostics; the parser stops at its first syntax error. Both report into
// a BagReporter. Bag supports sorting and deduplication so the output order
// is deterministic.
//
// Rule findings are not diagnostics: they live in internal/finding and carry
// catalog metadata. Rendering lives in internal/diagfmt.
package diag
