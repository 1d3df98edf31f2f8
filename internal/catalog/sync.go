package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"cardfolio/internal/config"
	"cardfolio/internal/storage"
)

// SyncService downloads one JSON document per requested set into the
// catalog directory. The merge never talks to the network; it only ever
// reads what sync has written.
type SyncService struct {
	db     *storage.DB
	client *Client
	cfg    config.Config
	logger zerolog.Logger
}

func NewSyncService(db *storage.DB, cfg config.Config, logger zerolog.Logger) *SyncService {
	return &SyncService{db: db, client: NewClient(cfg), cfg: cfg, logger: logger}
}

// SyncSets fetches every listed set and writes {setID}.json documents of
// the form {"data": [...]}. Returns the total card count written.
func (s *SyncService) SyncSets(ctx context.Context, setIDs []string) (int, error) {
	if err := os.MkdirAll(s.cfg.CatalogDir, 0o755); err != nil {
		return 0, err
	}

	total := 0
	for _, setID := range setIDs {
		setID = strings.TrimSpace(setID)
		if setID == "" {
			continue
		}

		cards, err := s.client.GetSetCards(ctx, setID)
		if err != nil {
			return total, fmt.Errorf("sync set %s: %w", setID, err)
		}

		doc := map[string]any{"data": cards}
		blob, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return total, err
		}

		path := filepath.Join(s.cfg.CatalogDir, setID+".json")
		if err := os.WriteFile(path, blob, 0o644); err != nil {
			return total, err
		}

		s.logger.Info().Str("set", setID).Int("cards", len(cards)).Str("file", path).Msg("catalog document written")
		total += len(cards)
		_ = s.db.SetMetadata("catalog.last_sync."+setID, time.Now().UTC().Format(time.RFC3339))
	}

	_ = s.db.SetMetadata("catalog.last_sync", time.Now().UTC().Format(time.RFC3339))
	return total, nil
}
