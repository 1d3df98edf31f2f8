package catalog

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"cardfolio/internal"
)

// LoadResult carries the concatenated flat rows plus per-file accounting.
type LoadResult struct {
	Rows    []internal.RawCatalogRow
	Parsed  int
	Skipped int
}

// LoadDir reads every catalog document in dir and returns the concatenated
// normalized rows. Documents that are empty, unreadable or unparseable are
// skipped and counted, never fatal; a missing or empty directory yields an
// empty result. Files are visited in name order so runs are deterministic.
func LoadDir(dir string, logger zerolog.Logger) (LoadResult, error) {
	res := LoadResult{Rows: []internal.RawCatalogRow{}}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn().Str("dir", dir).Msg("catalog directory missing, continuing with empty catalog")
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
			rows []internal.RawCatalogRow
			ok   bool
		)
		switch {
		case strings.HasSuffix(strings.ToLower(name), ".json"):
			rows, ok = loadJSONDocument(path)
		case strings.HasSuffix(strings.ToLower(name), ".html"), strings.HasSuffix(strings.ToLower(name), ".htm"):
			rows, ok = loadHTMLDocument(path)
		default:
			continue
		}

		if !ok {
			res.Skipped++
			logger.Debug().Str("file", name).Msg("skipping invalid catalog document")
			continue
		}
		res.Parsed++
		res.Rows = append(res.Rows, rows...)
	}

	return res, nil
}

// loadJSONDocument parses one document: either a top-level list of item
// records or an object whose "data" field holds that list.
func loadJSONDocument(path string) ([]internal.RawCatalogRow, bool) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	if len(bytes.TrimSpace(blob)) == 0 {
		return nil, false
	}

	dec := json.NewDecoder(bytes.NewReader(blob))
	dec.UseNumber()

	var parsed any
	if err := dec.Decode(&parsed); err != nil {
		return nil, false
	}

	list, ok := recordList(parsed)
	if !ok || len(list) == 0 {
		return nil, false
	}

	records := make([]map[string]any, 0, len(list))
	for _, item := range list {
		rec, ok := item.(map[string]any)
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, false
	}

	return NormalizeRecords(records), true
}

func recordList(parsed any) ([]any, bool) {
	switch t := parsed.(type) {
	case []any:
		return t, true
	case map[string]any:
		list, ok := t["data"].([]any)
		return list, ok
	default:
		return nil, false
	}
}
