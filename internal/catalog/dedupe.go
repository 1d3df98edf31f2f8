package catalog

import (
	"sort"

	"cardfolio/internal"
)

// Deduplicate collapses the normalized rows to one CatalogItem per card id.
// Rows are stable-sorted by market value descending, then the first row per
// id wins, so the highest quote is authoritative and equal quotes keep the
// first-seen record's fields. Rows without an id can never join inventory
// and are dropped.
func Deduplicate(rows []internal.RawCatalogRow) []internal.CatalogItem {
	sorted := make([]internal.RawCatalogRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MarketValue.GreaterThan(sorted[j].MarketValue)
	})

	seen := map[string]struct{}{}
	out := make([]internal.CatalogItem, 0, len(sorted))
	for _, row := range sorted {
		if row.CardID == nil || *row.CardID == "" {
			continue
		}
		if _, ok := seen[*row.CardID]; ok {
			continue
		}
		seen[*row.CardID] = struct{}{}
		out = append(out, internal.CatalogItem{
			CardID:      *row.CardID,
			CardName:    deref(row.CardName),
			CardNumber:  deref(row.CardNumber),
			SetID:       deref(row.SetID),
			SetName:     deref(row.SetName),
			MarketValue: row.MarketValue,
		})
	}
	return out
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
