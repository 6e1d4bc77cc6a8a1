// Package refactor rewrites source text for a list of fix ids without
// touching the filesystem.
//
// Each Transform finds the events of its rules in a freshly parsed Unit and
// returns guarded text edits. Shape-changing rewrites build nodes with
// ast.Synth and print them with the printer, which copies original subtrees
// verbatim. A round whose output does not parse, or parses to a tree equal to
// its input, is discarded; rounds repeat until nothing changes, which keeps
// every transform idempotent.
package refactor
