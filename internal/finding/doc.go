// Package finding turns rule events into reportable findings and ranks the
// fixes attached to them.
package finding
