package inventory

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"cardfolio/internal"
	"cardfolio/internal/util"
)

// ErrMissingColumns marks an inventory source that lacks one of the
// required columns. Inventory is the authoritative row source, so this
// aborts the run instead of being skipped like a bad catalog document.
var ErrMissingColumns = errors.New("missing required columns")

var requiredColumns = []string{"binder_name", "page_number", "slot_number", "set_id", "card_number"}

// LoadResult distinguishes "no sources found" (Sources == 0) from "sources
// present but zero rows".
type LoadResult struct {
	Records []internal.InventoryRecord
	Sources int
}

// LoadDir concatenates every .csv and .xlsx source in dir, preserving
// duplicates and row order. Files are visited in name order.
func LoadDir(dir string, logger zerolog.Logger) (LoadResult, error) {
	res := LoadResult{Records: []internal.InventoryRecord{}}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn().Str("dir", dir).Msg("inventory directory missing, treating as no sources")
			return res, nil
		}
		return res, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, name)
		var (
			records []internal.InventoryRecord
			err     error
		)
		switch {
		case strings.HasSuffix(strings.ToLower(name), ".csv"):
			records, err = loadCSV(path)
		case strings.HasSuffix(strings.ToLower(name), ".xlsx"):
			records, err = loadXLSX(path)
		default:
			continue
		}
		if err != nil {
			return LoadResult{}, fmt.Errorf("inventory source %s: %w", name, err)
		}

		res.Sources++
		res.Records = append(res.Records, records...)
		logger.Debug().Str("file", name).Int("rows", len(records)).Msg("inventory source loaded")
	}

	return res, nil
}

func loadCSV(path string) ([]internal.InventoryRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []internal.InventoryRecord{}, nil
	}

	return rowsToRecords(filepath.Base(path), rows)
}

func loadXLSX(path string) ([]internal.InventoryRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return []internal.InventoryRecord{}, nil
	}

	// Inventory workbooks keep their data on the first sheet.
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []internal.InventoryRecord{}, nil
	}

	return rowsToRecords(filepath.Base(path), rows)
}

// rowsToRecords maps a header row plus data rows onto InventoryRecords.
// Extra columns are ignored; rows with no content are dropped.
func rowsToRecords(source string, rows [][]string) ([]internal.InventoryRecord, error) {
	header := make(map[string]int, len(rows[0]))
	for i, cell := range rows[0] {
		header[util.NormalizeColumn(cell)] = i
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := header[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	out := make([]internal.InventoryRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		rec := internal.InventoryRecord{
			BinderName: cell(row, header["binder_name"]),
			PageNumber: cell(row, header["page_number"]),
			SlotNumber: cell(row, header["slot_number"]),
			SetID:      cell(row, header["set_id"]),
			CardNumber: cell(row, header["card_number"]),
			SourceFile: source,
			LineNo:     i + 2,
		}
		if idx, ok := header["card_name"]; ok {
			if v := cell(row, idx); v != "" {
				rec.CardName = util.StringPtr(v)
			}
		}
		if idx, ok := header["set_name"]; ok {
			if v := cell(row, idx); v != "" {
				rec.SetName = util.StringPtr(v)
			}
		}
		out = append(out, rec)
	}

	return out, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
