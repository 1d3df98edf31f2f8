package pipeline

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"cardfolio/internal/util"
)

// ErrArtifactMissing is returned when the portfolio artifact does not
// exist. The CLI treats it as fatal: there is nothing to report on.
var ErrArtifactMissing = errors.New("portfolio artifact not found")

// Summary is the reporting collaborator's view of the persisted artifact.
type Summary struct {
	Rows       int
	TotalValue decimal.Decimal
	TopName    string
	TopIndex   string
	TopValue   decimal.Decimal
}

// Summarize reads the persisted artifact and computes the portfolio totals.
// A missing artifact is an error; an artifact with zero data rows is a
// valid, empty summary.
func Summarize(path string) (Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Summary{}, fmt.Errorf("%w: %s", ErrArtifactMissing, path)
		}
		return Summary{}, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return Summary{}, err
	}
	if len(rows) == 0 {
		return Summary{}, fmt.Errorf("artifact %s has no header row", path)
	}

	header := map[string]int{}
	for i, cell := range rows[0] {
		header[util.NormalizeColumn(cell)] = i
	}
	valueIdx, ok := header["card_market_value"]
	if !ok {
		return Summary{}, fmt.Errorf("artifact %s is missing the card_market_value column", path)
	}
	nameIdx, ok := header["card_name"]
	if !ok {
		return Summary{}, fmt.Errorf("artifact %s is missing the card_name column", path)
	}
	indexIdx := header["index"]

	sum := Summary{TotalValue: decimal.Zero, TopValue: decimal.Zero}
	for _, row := range rows[1:] {
		sum.Rows++
		value, err := decimal.NewFromString(strings.TrimSpace(row[valueIdx]))
		if err != nil {
			value = decimal.Zero
		}
		sum.TotalValue = sum.TotalValue.Add(value)
		if sum.Rows == 1 || value.GreaterThan(sum.TopValue) {
			sum.TopValue = value
			sum.TopName = row[nameIdx]
			sum.TopIndex = row[indexIdx]
		}
	}

	return sum, nil
}

// Render formats the summary the way the report command prints it. Values
// are rounded to cents here and nowhere earlier.
func (s Summary) Render() string {
	if s.Rows == 0 {
		return "The portfolio is empty. No data to summarize.\n"
	}

	var b strings.Builder
	b.WriteString("===== Portfolio Summary Report =====\n")
	fmt.Fprintf(&b, "Total Portfolio Value: $%s\n", s.TotalValue.StringFixed(2))
	b.WriteString("Most Valuable Card:\n")
	fmt.Fprintf(&b, "  Name: %s\n", s.TopName)
	fmt.Fprintf(&b, "  Location: %s\n", s.TopIndex)
	fmt.Fprintf(&b, "  Market Value: $%s\n", s.TopValue.StringFixed(2))
	b.WriteString("====================================\n")
	return b.String()
}
