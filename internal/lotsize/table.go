package lotsize

import (
	"sort"
	"strings"
)

// Table maps a normalized underlying symbol to its market lot.
type Table map[string]int

// NormalizeSymbol applies the key convention shared by the parser and
// every lookup path: trimmed and uppercased.
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Match is one instrument search hit.
type Match struct {
	Symbol  string
	LotSize int
}

// search returns up to limit symbols containing the normalized query,
// sorted by symbol. Callers go through Cache.Search so results always
// come from a fresh table.
func (t Table) search(query string, limit int) []Match {
	q := NormalizeSymbol(query)
	if q == "" {
		return nil
	}
	var out []Match
	for sym, lot := range t {
		if strings.Contains(sym, q) {
			out = append(out, Match{Symbol: sym, LotSize: lot})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
