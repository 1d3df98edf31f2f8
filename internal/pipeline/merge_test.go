package pipeline

import (
	"testing"

	"github.com/shopspring/decimal"

	"cardfolio/internal"
	"cardfolio/internal/util"
)

func item(id, name, setName string, value float64) internal.CatalogItem {
	return internal.CatalogItem{
		CardID:      id,
		CardName:    name,
		SetName:     setName,
		MarketValue: decimal.NewFromFloat(value),
	}
}

func record(binder, page, slot, setID, number string) internal.InventoryRecord {
	return internal.InventoryRecord{
		BinderName: binder,
		PageNumber: page,
		SlotNumber: slot,
		SetID:      setID,
		CardNumber: number,
	}
}

func TestMergePreservesRowCount(t *testing.T) {
	items := []internal.CatalogItem{item("SET1-001", "Pikachu", "Base Set", 12.5)}

	cases := []struct {
		name    string
		records []internal.InventoryRecord
	}{
		{
			name: "full match",
			records: []internal.InventoryRecord{
				record("B1", "1", "1", "SET1", "001"),
				record("B1", "1", "2", "SET1", "001"),
			},
		},
		{
			name: "no match",
			records: []internal.InventoryRecord{
				record("B1", "1", "1", "SETX", "999"),
				record("B1", "1", "2", "SETX", "998"),
				record("B2", "3", "4", "SETX", "997"),
			},
		},
		{
			name: "mixed",
			records: []internal.InventoryRecord{
				record("B1", "1", "1", "SET1", "001"),
				record("B1", "1", "2", "SETX", "999"),
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Merge(items, tc.records)
			if len(res.Entries) != len(tc.records) {
				t.Fatalf("got %d entries for %d records", len(res.Entries), len(tc.records))
			}
			if res.Matched+res.Unmatched != len(tc.records) {
				t.Fatalf("matched=%d unmatched=%d records=%d", res.Matched, res.Unmatched, len(tc.records))
			}
		})
	}
}

func TestMergeFallbackChain(t *testing.T) {
	items := []internal.CatalogItem{
		item("SET1-001", "Pikachu", "Base Set", 12.5),
		{CardID: "SET1-002", MarketValue: decimal.NewFromInt(3)}, // matched, names unresolved
	}

	advisory := record("B1", "1", "2", "SET1", "002")
	advisory.CardName = util.StringPtr("Bulbasaur (sleeve label)")

	bare := record("B1", "1", "3", "SETX", "404")

	res := Merge(items, []internal.InventoryRecord{
		record("B1", "1", "1", "SET1", "001"),
		advisory,
		bare,
	})

	if res.Entries[0].CardName != "Pikachu" || res.Entries[0].SetName != "Base Set" {
		t.Fatalf("catalog value must win: %+v", res.Entries[0])
	}
	if res.Entries[1].CardName != "Bulbasaur (sleeve label)" {
		t.Fatalf("advisory fallback not applied: %+v", res.Entries[1])
	}
	if res.Entries[1].SetName != internal.NotFound {
		t.Fatalf("unresolved set name must be sentinel: %+v", res.Entries[1])
	}
	if res.Entries[2].CardName != internal.NotFound || res.Entries[2].SetName != internal.NotFound {
		t.Fatalf("unmatched row must get sentinel names: %+v", res.Entries[2])
	}
	if !res.Entries[2].MarketValue.IsZero() {
		t.Fatalf("unmatched value must default to zero: %s", res.Entries[2].MarketValue)
	}
}

func TestMergeCompositeKey(t *testing.T) {
	res := Merge(nil, []internal.InventoryRecord{record("BinderA", "2", "15", "SET1", "001")})
	if res.Entries[0].Index != "BinderA-2-15" {
		t.Fatalf("index %q", res.Entries[0].Index)
	}
}

func TestMergeDefaultFillCompleteness(t *testing.T) {
	items := []internal.CatalogItem{
		{CardID: "NEG-1", CardName: "Bad Quote", MarketValue: decimal.NewFromFloat(-1)},
	}
	res := Merge(items, []internal.InventoryRecord{
		record("B1", "1", "1", "NEG", "1"),
		record("B1", "1", "2", "SETX", "999"),
	})

	for _, e := range res.Entries {
		if e.MarketValue.IsNegative() {
			t.Fatalf("negative market value in output: %+v", e)
		}
		if e.CardName == "" || e.SetName == "" {
			t.Fatalf("blank display field in output: %+v", e)
		}
	}
}

func TestMergeTotalValue(t *testing.T) {
	items := []internal.CatalogItem{item("SET1-001", "Pikachu", "Base Set", 12.5)}
	res := Merge(items, []internal.InventoryRecord{
		record("B1", "1", "1", "SET1", "001"),
		record("B1", "1", "2", "SET1", "001"),
	})
	if res.TotalValue.String() != "25" {
		t.Fatalf("total %s", res.TotalValue)
	}
}
