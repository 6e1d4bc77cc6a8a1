// Package config parses, validates and resolves analyzer configuration.
//
// A configuration selects files (ignore/include globs) and overrides rule
// levels and severities. Resolution merges overrides over the catalog
// defaults; rules resolved to off are removed before evaluation.
package config
