package pipeline

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"cardfolio/internal"
	"cardfolio/internal/catalog"
	"cardfolio/internal/config"
	"cardfolio/internal/inventory"
	"cardfolio/internal/storage"
)

// UpdateService runs the full merge in one synchronous pass:
// load -> normalize -> dedup -> join -> persist. Each run fully replaces
// the artifact and leaves a row in the audit store.
type UpdateService struct {
	cfg    config.Config
	db     *storage.DB
	logger zerolog.Logger
	mode   string
}

func NewUpdateService(db *storage.DB, cfg config.Config, mode string, logger zerolog.Logger) *UpdateService {
	return &UpdateService{cfg: cfg, db: db, logger: logger, mode: mode}
}

// Run executes the merge and returns the run's accounting. Inventory errors
// abort before the artifact is touched; catalog problems never do.
func (s *UpdateService) Run() (internal.RunStats, error) {
	start := time.Now()
	stats := internal.RunStats{}

	catalogRes, err := catalog.LoadDir(s.cfg.CatalogDir, s.logger)
	if err != nil {
		return stats, err
	}
	stats.DocumentsParsed = catalogRes.Parsed
	stats.DocumentsSkipped = catalogRes.Skipped
	stats.CatalogRows = len(catalogRes.Rows)

	items := catalog.Deduplicate(catalogRes.Rows)
	stats.CatalogItems = len(items)
	s.logger.Info().
		Int("documents", catalogRes.Parsed).
		Int("skipped", catalogRes.Skipped).
		Int("items", len(items)).
		Msg("catalog loaded")

	invRes, err := inventory.LoadDir(s.cfg.InventoryDir, s.logger)
	if err != nil {
		return stats, err
	}
	stats.InventorySources = invRes.Sources
	stats.InventoryRows = len(invRes.Records)

	if len(invRes.Records) == 0 {
		if invRes.Sources == 0 {
			s.logger.Warn().Str("dir", s.cfg.InventoryDir).Msg("no inventory sources found, writing empty portfolio")
		} else {
			s.logger.Warn().Int("sources", invRes.Sources).Msg("inventory sources hold no rows, writing empty portfolio")
		}
		if err := WritePortfolioCSV(nil, s.cfg.PortfolioPath); err != nil {
			return stats, err
		}
		s.recordRun(stats, start)
		return stats, nil
	}

	merged := Merge(items, invRes.Records)
	stats.Matched = merged.Matched
	stats.Unmatched = merged.Unmatched
	stats.TotalValue = merged.TotalValue

	if err := WritePortfolioCSV(merged.Entries, s.cfg.PortfolioPath); err != nil {
		return stats, err
	}

	s.logger.Info().
		Int("rows", len(merged.Entries)).
		Int("matched", merged.Matched).
		Int("unmatched", merged.Unmatched).
		Str("totalValue", merged.TotalValue.String()).
		Str("artifact", s.cfg.PortfolioPath).
		Msg("portfolio updated")

	s.recordRun(stats, start)
	return stats, nil
}

func (s *UpdateService) recordRun(stats internal.RunStats, start time.Time) {
	timings := map[string]float64{"totalMs": float64(time.Since(start).Milliseconds())}
	if err := s.db.InsertRun(uuid.NewString(), s.mode, stats.Counts(), timings); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record run")
	}
	if err := s.db.SetMetadata("portfolio.last_update", time.Now().UTC().Format(time.RFC3339)); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record last update")
	}
}
