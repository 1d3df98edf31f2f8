package pipeline

import (
	"github.com/shopspring/decimal"

	"cardfolio/internal"
	"cardfolio/internal/util"
)

// MergeResult carries the joined entries plus match accounting for the run
// record.
type MergeResult struct {
	Entries    []internal.PortfolioEntry
	Matched    int
	Unmatched  int
	TotalValue decimal.Decimal
}

// Merge performs the inventory-preserving left join: every inventory record
// yields exactly one entry, matched or not. Display names resolve catalog
// value first, then the advisory inventory column, then the NOT_FOUND
// sentinel; market value defaults to zero. The catalog side is unique per
// id after dedup, so the join can never fan out.
func Merge(items []internal.CatalogItem, records []internal.InventoryRecord) MergeResult {
	lookup := make(map[string]internal.CatalogItem, len(items))
	for _, item := range items {
		lookup[item.CardID] = item
	}

	res := MergeResult{
		Entries:    make([]internal.PortfolioEntry, 0, len(records)),
		TotalValue: decimal.Zero,
	}

	for _, rec := range records {
		item, ok := lookup[rec.CardID()]
		if ok {
			res.Matched++
		} else {
			res.Unmatched++
		}

		value := item.MarketValue
		if value.IsNegative() {
			value = decimal.Zero
		}

		entry := internal.PortfolioEntry{
			Index:       internal.Location(rec.BinderName, rec.PageNumber, rec.SlotNumber),
			CardName:    util.FirstNonEmpty(item.CardName, derefString(rec.CardName), internal.NotFound),
			SetName:     util.FirstNonEmpty(item.SetName, derefString(rec.SetName), internal.NotFound),
			MarketValue: value,
			BinderName:  rec.BinderName,
			PageNumber:  rec.PageNumber,
			SlotNumber:  rec.SlotNumber,
		}
		res.TotalValue = res.TotalValue.Add(entry.MarketValue)
		res.Entries = append(res.Entries, entry)
	}

	return res
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
