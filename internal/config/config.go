package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	CatalogDir    string
	InventoryDir  string
	PortfolioPath string
	DBPath        string

	TCGAPIBaseURL   string
	TCGAPIToken     string
	TCGRateLimitRPS int
	TCGTimeoutMs    int
	TCGPageSize     int

	LogLevel string
}

// Production is the preset pointed at the fixed production directories.
func Production() Config {
	return Config{
		CatalogDir:    "./card_set_lookup",
		InventoryDir:  "./card_inventory",
		PortfolioPath: "card_portfolio.csv",
		DBPath:        "data/cardfolio.db",

		TCGAPIBaseURL:   "https://api.pokemontcg.io/v2",
		TCGRateLimitRPS: 4,
		TCGTimeoutMs:    30000,
		TCGPageSize:     250,

		LogLevel: "info",
	}
}

// Test is the preset pointed at the fixed test directories. Same shape as
// production, separate data so test runs never clobber the real artifact.
func Test() Config {
	cfg := Production()
	cfg.CatalogDir = "./card_set_lookup_test"
	cfg.InventoryDir = "./card_inventory_test"
	cfg.PortfolioPath = "test_card_portfolio.csv"
	cfg.DBPath = "data/cardfolio_test.db"
	return cfg
}

// Load resolves a preset by mode name and applies env overrides on top.
func Load(mode string) (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "production":
		cfg = Production()
	case "test":
		cfg = Test()
	default:
		return Config{}, fmt.Errorf("unknown mode: %s (want production or test)", mode)
	}

	cfg.CatalogDir = getEnv("CATALOG_DIR", cfg.CatalogDir)
	cfg.InventoryDir = getEnv("INVENTORY_DIR", cfg.InventoryDir)
	cfg.PortfolioPath = getEnv("PORTFOLIO_PATH", cfg.PortfolioPath)
	cfg.DBPath = getEnv("DB_PATH", cfg.DBPath)

	cfg.TCGAPIBaseURL = getEnv("TCG_API_BASE_URL", cfg.TCGAPIBaseURL)
	cfg.TCGAPIToken = getEnv("TCG_API_TOKEN", cfg.TCGAPIToken)
	cfg.TCGRateLimitRPS = getEnvInt("TCG_RATE_LIMIT_RPS", cfg.TCGRateLimitRPS)
	cfg.TCGTimeoutMs = getEnvInt("TCG_TIMEOUT_MS", cfg.TCGTimeoutMs)
	cfg.TCGPageSize = getEnvInt("TCG_PAGE_SIZE", cfg.TCGPageSize)

	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)

	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
