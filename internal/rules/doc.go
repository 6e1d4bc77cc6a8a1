// Package rules holds the detectors that turn syntax into rule events.
//
// Each Evaluator subscribes to a set of node kinds. Run walks the tree once
// in pre-order and, at every node, fires the evaluators registered for its
// kind in registration order, so the event list is deterministic.
package rules
