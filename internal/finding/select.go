package finding

import (
	"slices"
	"sort"

	"effectlint/internal/catalog"
)

// PickDefaultFix returns the safest applicable fix. Fixes of equal safety
// are ranked by catalog position, so the input order never matters.
func PickDefaultFix(f Finding) (ApplicableFix, bool) {
	if len(f.ApplicableFixes) == 0 {
		return ApplicableFix{}, false
	}
	fixes := slices.Clone(f.ApplicableFixes)
	sort.SliceStable(fixes, func(i, j int) bool {
		ri, rj := fixes[i].Safety.Rank(), fixes[j].Safety.Rank()
		if ri != rj {
			return ri < rj
		}
		return fixes[i].Order < fixes[j].Order
	})
	return fixes[0], true
}

// FilterFixesBySafety keeps the fixes whose safety is allowed, in order.
func FilterFixesBySafety(fixes []ApplicableFix, allowed ...catalog.Safety) []ApplicableFix {
	out := make([]ApplicableFix, 0, len(fixes))
	for _, fx := range fixes {
		if slices.Contains(allowed, fx.Safety) {
			out = append(out, fx)
		}
	}
	return out
}

// FindingsWithSafeFixes returns the findings offering at least one safe fix.
func FindingsWithSafeFixes(findings []Finding) []Finding {
	var out []Finding
	for _, f := range findings {
		if len(FilterFixesBySafety(f.ApplicableFixes, catalog.SafetySafe)) > 0 {
			out = append(out, f)
		}
	}
	return out
}
