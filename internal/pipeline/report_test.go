package pipeline

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"cardfolio/internal"
)

func TestSummarizeMissingArtifact(t *testing.T) {
	_, err := Summarize(filepath.Join(t.TempDir(), "nope.csv"))
	if !errors.Is(err, ErrArtifactMissing) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSummarizeEmptyArtifact(t *testing.T) {
	out := filepath.Join(t.TempDir(), "portfolio.csv")
	if err := WritePortfolioCSV(nil, out); err != nil {
		t.Fatal(err)
	}

	sum, err := Summarize(out)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Rows != 0 {
		t.Fatalf("rows=%d", sum.Rows)
	}
	if !strings.Contains(sum.Render(), "empty") {
		t.Fatalf("empty notice missing: %q", sum.Render())
	}
}

func TestSummarizeTotals(t *testing.T) {
	out := filepath.Join(t.TempDir(), "portfolio.csv")
	entries := []internal.PortfolioEntry{
		entry("B1-1-1", "Pikachu", "12.5"),
		entry("B1-1-2", "Charizard", "300.007"),
		entry("B1-1-3", "Rattata", "0.02"),
	}
	if err := WritePortfolioCSV(entries, out); err != nil {
		t.Fatal(err)
	}

	sum, err := Summarize(out)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Rows != 3 {
		t.Fatalf("rows=%d", sum.Rows)
	}
	if sum.TotalValue.String() != "312.527" {
		t.Fatalf("total %s", sum.TotalValue)
	}
	if sum.TopName != "Charizard" || sum.TopIndex != "B1-1-2" {
		t.Fatalf("top card: %+v", sum)
	}

	rendered := sum.Render()
	if !strings.Contains(rendered, "$312.53") {
		t.Fatalf("total not rounded to cents in report: %q", rendered)
	}
	if !strings.Contains(rendered, "Charizard") {
		t.Fatalf("top card missing from report: %q", rendered)
	}
}
