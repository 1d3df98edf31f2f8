package catalog

import (
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	"cardfolio/internal"
	"cardfolio/internal/util"
)

// loadHTMLDocument parses a saved price-guide page. Tables whose header row
// carries a recognizable card-id column contribute rows; anything else on
// the page is ignored. Parse failures skip the file like malformed JSON.
func loadHTMLDocument(path string) ([]internal.RawCatalogRow, bool) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(blob)))
	if err != nil {
		return nil, false
	}

	out := []internal.RawCatalogRow{}
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		rows := table.Find("tr")
		if rows.Length() < 2 {
			return
		}

		headers := []string{}
		rows.First().Find("th,td").Each(func(_ int, cell *goquery.Selection) {
			headers = append(headers, util.NormalizeColumn(cell.Text()))
		})

		idIdx := findHeaderIndex(headers, []string{"id", "card_id"})
		nameIdx := findHeaderIndex(headers, []string{"name", "card_name", "card"})
		numberIdx := findHeaderIndex(headers, []string{"number", "card_number", "no"})
		setIDIdx := findHeaderIndex(headers, []string{"set_id", "set"})
		setNameIdx := findHeaderIndex(headers, []string{"set_name"})
		priceIdx := findHeaderIndex(headers, []string{"market_value", "market", "price", "market_price"})
		if idIdx < 0 {
			return
		}

		rows.Slice(1, rows.Length()).Each(func(_ int, row *goquery.Selection) {
			cells := []string{}
			row.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, strings.TrimSpace(cell.Text()))
			})
			if pickCell(cells, idIdx) == "" {
				return
			}

			value := decimal.Zero
			if v, ok := util.ParsePrice(pickCell(cells, priceIdx)); ok {
				value = v
			}
			out = append(out, internal.RawCatalogRow{
				CardID:      cellPtr(cells, idIdx),
				CardName:    cellPtr(cells, nameIdx),
				CardNumber:  cellPtr(cells, numberIdx),
				SetID:       cellPtr(cells, setIDIdx),
				SetName:     cellPtr(cells, setNameIdx),
				MarketValue: value,
			})
		})
	})

	if len(out) == 0 {
		return nil, false
	}
	return out, true
}

func findHeaderIndex(headers []string, candidates []string) int {
	for i, h := range headers {
		for _, c := range candidates {
			if h == c {
				return i
			}
		}
	}
	return -1
}

func pickCell(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return cells[idx]
}

func cellPtr(cells []string, idx int) *string {
	v := pickCell(cells, idx)
	if v == "" {
		return nil
	}
	return util.StringPtr(v)
}
