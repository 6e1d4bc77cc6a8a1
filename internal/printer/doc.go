// Package printer renders syntax subtrees back to source text.
//
// Nodes that came from the parser are copied verbatim from their span, so a
// rewrite only changes the text of the nodes it synthesized. Synthesized nodes
// are printed in a canonical layout with parentheses inserted where operator
// precedence requires them.
package printer
