// Package catalog holds the built-in rule and fix tables.
//
// The tables are embedded TOML decoded once per process. A Catalog is never
// mutated after construction and every accessor returns copies.
package catalog
