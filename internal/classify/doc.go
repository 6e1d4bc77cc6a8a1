// Package classify answers position questions about a parsed file: whether
// it uses the effect runtime at all, whether it is a transport boundary, and
// which kind of code encloses a node.
//
// Every predicate that depends on position takes the node together with the
// ancestor stack maintained by ast.Walk and looks upward from the node until
// a stop condition holds, so each call costs O(depth).
package classify
