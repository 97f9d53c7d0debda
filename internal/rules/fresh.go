package rules

import "regexp"

// freshPattern flags query classes whose answers go stale: prices, scores,
// news, elections, weather, deadlines and the like. Matching is substring
// based, case-insensitive, no stemming.
var freshPattern = regexp.MustCompile(`(?i)(current|today|now|latest|price|score|weather|news|president|prime minister|election|who won|results|finals|standings|deadline|holiday|traffic|open|close|rate|crypto|exchange|stock|breaking|live)`)

// NeedsFreshData reports whether a query requires live web augmentation
// regardless of the user's web toggle. Pure and total.
func NeedsFreshData(query string) bool {
	return freshPattern.MatchString(query)
}
