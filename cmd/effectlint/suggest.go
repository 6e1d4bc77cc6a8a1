package main

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// suggestRule returns up to three catalog ids close to id, quoted and
// comma separated, or "".
func suggestRule(id string, ids []string) string {
	matches := fuzzy.Find(id, ids)
	var out []string
	for i, m := range matches {
		if i == 3 {
			break
		}
		out = append(out, `"`+m.Str+`"`)
	}
	return strings.Join(out, ", ")
}
