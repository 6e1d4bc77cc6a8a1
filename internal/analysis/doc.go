// Package analysis is the entry point of the core: it parses one source text,
// runs the rule walk, turns events into findings under a configuration and
// produces codemod previews. It performs no I/O and keeps no state between
// calls, so one Analyzer can serve concurrent callers.
package analysis
