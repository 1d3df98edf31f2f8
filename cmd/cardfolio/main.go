package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"cardfolio/internal/catalog"
	"cardfolio/internal/config"
	"cardfolio/internal/pipeline"
	"cardfolio/internal/storage"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "portfolio:update":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		mode := fs.String("mode", "production", "production|test")
		_ = fs.Parse(args)
		cfg, logger, db := setup(*mode)
		defer db.Close()

		svc := pipeline.NewUpdateService(db, cfg, *mode, logger)
		stats, err := svc.Run()
		must(err)
		fmt.Printf("portfolio updated: %s rows=%d matched=%d unmatched=%d\n",
			cfg.PortfolioPath, stats.InventoryRows, stats.Matched, stats.Unmatched)

	case "report:summary":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		mode := fs.String("mode", "production", "production|test")
		_ = fs.Parse(args)
		cfg, _, db := setup(*mode)
		defer db.Close()

		sum, err := pipeline.Summarize(cfg.PortfolioPath)
		must(err)
		fmt.Print(sum.Render())

	case "pipeline:run":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		mode := fs.String("mode", "production", "production|test")
		_ = fs.Parse(args)
		cfg, logger, db := setup(*mode)
		defer db.Close()

		logger.Info().Str("mode", *mode).Msg("starting pipeline")
		svc := pipeline.NewUpdateService(db, cfg, *mode, logger)
		_, err := svc.Run()
		must(err)

		sum, err := pipeline.Summarize(cfg.PortfolioPath)
		must(err)
		fmt.Print(sum.Render())
		logger.Info().Msg("pipeline completed")

	case "catalog:sync":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		mode := fs.String("mode", "production", "production|test")
		sets := fs.String("sets", "", "comma-separated set ids, e.g. base1,jungle")
		_ = fs.Parse(args)
		if strings.TrimSpace(*sets) == "" {
			must(fmt.Errorf("--sets is required"))
		}
		cfg, logger, db := setup(*mode)
		defer db.Close()

		svc := catalog.NewSyncService(db, cfg, logger)
		count, err := svc.SyncSets(context.Background(), strings.Split(*sets, ","))
		must(err)
		fmt.Printf("catalog sync complete: %d cards in %s\n", count, cfg.CatalogDir)

	case "export:xlsx":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		mode := fs.String("mode", "production", "production|test")
		out := fs.String("out", "", "output xlsx path")
		_ = fs.Parse(args)
		if strings.TrimSpace(*out) == "" {
			must(fmt.Errorf("--out is required"))
		}
		cfg, _, db := setup(*mode)
		defer db.Close()

		entries, err := pipeline.ReadPortfolioCSV(cfg.PortfolioPath)
		must(err)
		must(pipeline.ExportPortfolioXLSX(entries, *out))
		fmt.Printf("exported %d rows to %s\n", len(entries), *out)

	case "runs:list":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		mode := fs.String("mode", "production", "production|test")
		limit := fs.Int("limit", 10, "max runs to show")
		_ = fs.Parse(args)
		_, _, db := setup(*mode)
		defer db.Close()

		runs, err := db.ListRuns(*limit)
		must(err)
		for _, run := range runs {
			fmt.Printf("%s %s mode=%s rows=%d matched=%d unmatched=%d skippedDocs=%d\n",
				run.CreatedAt, run.TraceID, run.Mode,
				run.Counts["inventoryRows"], run.Counts["matched"], run.Counts["unmatched"],
				run.Counts["documentsSkipped"])
		}

	default:
		usage()
		os.Exit(1)
	}
}

func setup(mode string) (config.Config, zerolog.Logger, *storage.DB) {
	cfg, err := config.Load(mode)
	must(err)

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	db, err := storage.Open(cfg.DBPath)
	must(err)

	return cfg, logger, db
}

func must(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("usage: cardfolio <command>")
	fmt.Println("commands:")
	fmt.Println("  portfolio:update [--mode=production|test]")
	fmt.Println("  report:summary   [--mode=production|test]")
	fmt.Println("  pipeline:run     [--mode=production|test]")
	fmt.Println("  catalog:sync     --sets=base1,jungle [--mode=production|test]")
	fmt.Println("  export:xlsx      --out=./out/portfolio.xlsx [--mode=production|test]")
	fmt.Println("  runs:list        [--limit=10] [--mode=production|test]")
}
