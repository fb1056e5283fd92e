package whitelist

import (
	"sort"
	"strings"
)

// NormalizeSymbols canonicalizes raw ticker strings into spot-style
// BASE/QUOTE form: trimmed, upper-cased, exchange suffix stripped, default
// quote appended when the symbol carries no separator. The result is
// deduplicated and sorted, so normalizing an already-normalized set is a
// fixed point.
func NormalizeSymbols(symbols []string, quote string) []string {
	seen := make(map[string]struct{}, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, sym := range symbols {
		s := strings.ToUpper(strings.TrimSpace(sym))
		if s == "" {
			continue
		}
		if idx := strings.Index(s, ":"); idx >= 0 {
			s = s[:idx]
		}
		if !strings.Contains(s, "/") {
			s = s + "/" + quote
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	sort.Strings(out)

	return out
}
