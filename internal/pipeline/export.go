package pipeline

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"cardfolio/internal"
)

// portfolioColumns is the artifact schema: location key first, then the
// catalog-derived display fields, then the physical-location fields.
var portfolioColumns = []string{
	"index",
	"card_name",
	"set_name",
	"card_market_value",
	"binder_name",
	"page_number",
	"slot_number",
}

// WritePortfolioCSV persists the entries as the terminal artifact, fully
// replacing any prior version. The file is written next to its destination
// and renamed into place, so a failed run never leaves a half-written
// artifact behind.
func WritePortfolioCSV(entries []internal.PortfolioEntry, outputPath string) error {
	dir := filepath.Dir(outputPath)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	tmp, err := os.CreateTemp(dir, ".portfolio-*.csv")
	if err != nil {
		return err
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	w := csv.NewWriter(tmp)
	if err := w.Write(portfolioColumns); err != nil {
		return err
	}
	for _, e := range entries {
		row := []string{
			e.Index,
			e.CardName,
			e.SetName,
			// Full precision; rounding is the reporting layer's concern.
			e.MarketValue.String(),
			e.BinderName,
			e.PageNumber,
			e.SlotNumber,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), outputPath)
}

// ReadPortfolioCSV loads a previously persisted artifact back into entries,
// for re-exports. Row order is preserved.
func ReadPortfolioCSV(path string) ([]internal.PortfolioEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrArtifactMissing, path)
		}
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("artifact %s has no header row", path)
	}

	header := map[string]int{}
	for i, cell := range rows[0] {
		header[cell] = i
	}
	for _, col := range portfolioColumns {
		if _, ok := header[col]; !ok {
			return nil, fmt.Errorf("artifact %s is missing the %s column", path, col)
		}
	}

	out := make([]internal.PortfolioEntry, 0, len(rows)-1)
	for _, row := range rows[1:] {
		value, err := decimal.NewFromString(row[header["card_market_value"]])
		if err != nil {
			value = decimal.Zero
		}
		out = append(out, internal.PortfolioEntry{
			Index:       row[header["index"]],
			CardName:    row[header["card_name"]],
			SetName:     row[header["set_name"]],
			MarketValue: value,
			BinderName:  row[header["binder_name"]],
			PageNumber:  row[header["page_number"]],
			SlotNumber:  row[header["slot_number"]],
		})
	}
	return out, nil
}

// ExportPortfolioXLSX writes the same rows as a spreadsheet for people who
// review the portfolio by hand.
func ExportPortfolioXLSX(entries []internal.PortfolioEntry, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, h := range portfolioColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, e := range entries {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}

		set(1, e.Index)
		set(2, e.CardName)
		set(3, e.SetName)
		set(4, e.MarketValue.String())
		set(5, e.BinderName)
		set(6, e.PageNumber)
		set(7, e.SlotNumber)
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return f.SaveAs(outputPath)
}
