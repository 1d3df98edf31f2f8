package catalog

import "testing"

func card(id string, nested map[string]any) map[string]any {
	rec := map[string]any{
		"id":     id,
		"name":   "Pikachu",
		"number": "001",
		"set":    map[string]any{"id": "SET1", "name": "Base Set"},
	}
	for k, v := range nested {
		rec[k] = v
	}
	return rec
}

func TestNormalizeRecordsPriceSelection(t *testing.T) {
	cases := []struct {
		name   string
		prices map[string]any
		want   string
	}{
		{
			name:   "holofoil wins",
			prices: map[string]any{"holofoil": map[string]any{"market": 12.5}, "normal": map[string]any{"market": 8.0}},
			want:   "12.5",
		},
		{
			name:   "normal fallback",
			prices: map[string]any{"normal": map[string]any{"market": 8.0}},
			want:   "8",
		},
		{
			name:   "null holofoil falls through",
			prices: map[string]any{"holofoil": map[string]any{"market": nil}, "normal": map[string]any{"market": 3.25}},
			want:   "3.25",
		},
		{
			name:   "no prices",
			prices: map[string]any{},
			want:   "0",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := card("SET1-001", map[string]any{"tcgplayer": map[string]any{"prices": tc.prices}})
			rows := NormalizeRecords([]map[string]any{rec})
			if len(rows) != 1 {
				t.Fatalf("got %d rows", len(rows))
			}
			if got := rows[0].MarketValue.String(); got != tc.want {
				t.Fatalf("market value %s want %s", got, tc.want)
			}
		})
	}
}

func TestNormalizeRecordsProjection(t *testing.T) {
	rec := card("SET1-001", nil)
	rows := NormalizeRecords([]map[string]any{rec})
	row := rows[0]

	if row.CardID == nil || *row.CardID != "SET1-001" {
		t.Fatalf("card id not projected: %+v", row)
	}
	if row.SetID == nil || *row.SetID != "SET1" {
		t.Fatalf("set.id not flattened: %+v", row)
	}
	if row.SetName == nil || *row.SetName != "Base Set" {
		t.Fatalf("set.name not flattened: %+v", row)
	}
}

func TestNormalizeRecordsMissingFieldsStayNil(t *testing.T) {
	rows := NormalizeRecords([]map[string]any{{"id": "X-1"}})
	row := rows[0]
	if row.CardName != nil || row.SetID != nil || row.SetName != nil || row.CardNumber != nil {
		t.Fatalf("expected nil optional fields: %+v", row)
	}
	if !row.MarketValue.IsZero() {
		t.Fatalf("expected zero value, got %s", row.MarketValue)
	}
}

func TestFlattenRecordDepth(t *testing.T) {
	flat := map[string]any{}
	flattenRecord(map[string]any{
		"a": map[string]any{"b": map[string]any{"c": map[string]any{"d": 1.0}}},
		"e": []any{"kept", "as", "list"},
	}, "", flat)

	if _, ok := flat["a.b.c.d"]; !ok {
		t.Fatalf("deep path missing: %v", flat)
	}
	if _, ok := flat["e"].([]any); !ok {
		t.Fatalf("list value not preserved: %v", flat)
	}
}
