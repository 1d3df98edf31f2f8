package internal

import "github.com/shopspring/decimal"

// NotFound is the sentinel written for display fields that resolve neither
// from the catalog nor from an advisory inventory column.
const NotFound = "NOT_FOUND"

// CardIDSeparator joins a set id and a card number into a derived card id.
const CardIDSeparator = "-"

// RawCatalogRow is one flattened catalog record before deduplication.
// Fields missing from the source document stay nil; MarketValue is always
// present and defaults to zero.
type RawCatalogRow struct {
	CardID      *string
	CardName    *string
	CardNumber  *string
	SetID       *string
	SetName     *string
	MarketValue decimal.Decimal
}

// CatalogItem is the post-dedup lookup record: exactly one per card id, its
// market value the maximum quoted across all raw rows sharing that id.
type CatalogItem struct {
	CardID      string
	CardName    string
	CardNumber  string
	SetID       string
	SetName     string
	MarketValue decimal.Decimal
}

// InventoryRecord is one physically stored card. Page and slot keep whatever
// string the source cell held; card numbers are never numerically
// normalized, so "4" and "04" stay distinct ids.
type InventoryRecord struct {
	BinderName string
	PageNumber string
	SlotNumber string
	SetID      string
	CardNumber string

	// Advisory columns, possibly stale; used only as name fallbacks.
	CardName *string
	SetName  *string

	SourceFile string
	LineNo     int
}

// CardID derives the catalog join key for this record.
func (r InventoryRecord) CardID() string {
	return r.SetID + CardIDSeparator + r.CardNumber
}

// PortfolioEntry is one output row; cardinality is 1:1 with inventory.
type PortfolioEntry struct {
	Index       string
	CardName    string
	SetName     string
	MarketValue decimal.Decimal
	BinderName  string
	PageNumber  string
	SlotNumber  string
}

// Location derives the composite binder-page-slot key.
func Location(binder, page, slot string) string {
	return binder + CardIDSeparator + page + CardIDSeparator + slot
}

// RunStats is the audit record persisted after each portfolio update.
type RunStats struct {
	DocumentsParsed  int
	DocumentsSkipped int
	CatalogRows      int
	CatalogItems     int
	InventorySources int
	InventoryRows    int
	Matched          int
	Unmatched        int
	TotalValue       decimal.Decimal
}

// Counts flattens the stats into the shape the run store persists.
func (s RunStats) Counts() map[string]int {
	return map[string]int{
		"documentsParsed":  s.DocumentsParsed,
		"documentsSkipped": s.DocumentsSkipped,
		"catalogRows":      s.CatalogRows,
		"catalogItems":     s.CatalogItems,
		"inventorySources": s.InventorySources,
		"inventoryRows":    s.InventoryRows,
		"matched":          s.Matched,
		"unmatched":        s.Unmatched,
	}
}
