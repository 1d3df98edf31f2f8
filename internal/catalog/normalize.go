package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"cardfolio/internal"
	"cardfolio/internal/util"
)

// Dotted paths of interest after flattening. Everything else a document
// carries is ignored.
const (
	pathID       = "id"
	pathName     = "name"
	pathNumber   = "number"
	pathSetID    = "set.id"
	pathSetName  = "set.name"
	pathHolofoil = "tcgplayer.prices.holofoil.market"
	pathNormal   = "tcgplayer.prices.normal.market"
)

// flattenRecord collapses nested objects into dotted key paths. Arrays and
// scalars are kept as-is under their path; nesting depth is unbounded.
func flattenRecord(rec map[string]any, prefix string, out map[string]any) {
	for key, value := range rec {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		if nested, ok := value.(map[string]any); ok {
			flattenRecord(nested, path, out)
			continue
		}
		out[path] = value
	}
}

// NormalizeRecords flattens raw catalog item records and projects them to
// the canonical flat shape. The market value is the holofoil market price
// when quoted, else the normal market price, else zero. Fields a record
// does not carry stay nil; the result is always column-complete.
func NormalizeRecords(records []map[string]any) []internal.RawCatalogRow {
	out := make([]internal.RawCatalogRow, 0, len(records))
	for _, rec := range records {
		flat := make(map[string]any, len(rec))
		flattenRecord(rec, "", flat)

		row := internal.RawCatalogRow{
			CardID:      fieldPtr(flat, pathID),
			CardName:    fieldPtr(flat, pathName),
			CardNumber:  fieldPtr(flat, pathNumber),
			SetID:       fieldPtr(flat, pathSetID),
			SetName:     fieldPtr(flat, pathSetName),
			MarketValue: marketValue(flat),
		}
		out = append(out, row)
	}
	return out
}

func marketValue(flat map[string]any) decimal.Decimal {
	if v, ok := util.ParsePrice(flat[pathHolofoil]); ok {
		return v
	}
	if v, ok := util.ParsePrice(flat[pathNormal]); ok {
		return v
	}
	return decimal.Zero
}

func fieldPtr(flat map[string]any, path string) *string {
	s := util.CellString(flat[path])
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return util.StringPtr(s)
}
