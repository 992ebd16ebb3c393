package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	BaseURL           string
	RegionPrefix      string
	SearchURLTemplate string

	PagesToScrape int
	MinSurfaceSqm int
	MaxSurfaceSqm int

	MaxRetries   int
	RetryDelayMs int
	PageDelayMs  int
	FetchTimeout int // seconds

	CSVOutputPath string
	DebugHTMLPath string
	SchemaPath    string

	UseBrowser bool
	ChromeBin  string

	PostgresEnabled  bool
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	HTTPAddr string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	baseURL := strings.TrimRight(getEnv("BASE_URL", "https://www.lamudi.co.id"), "/")
	region := strings.Trim(getEnv("REGION_PREFIX", "bali"), "/")

	return &Config{
		BaseURL:      baseURL,
		RegionPrefix: region,
		SearchURLTemplate: getEnv("SEARCH_URL_TEMPLATE",
			baseURL+"/"+region+"/properti/?page=%d"),

		PagesToScrape: getEnvInt("PAGES_TO_SCRAPE", 5),
		MinSurfaceSqm: getEnvInt("MIN_SURFACE_SQM", 1000),
		MaxSurfaceSqm: getEnvInt("MAX_SURFACE_SQM", 30000),

		MaxRetries:   getEnvInt("MAX_RETRIES", 3),
		RetryDelayMs: getEnvInt("RETRY_DELAY_MS", 2000),
		PageDelayMs:  getEnvInt("PAGE_DELAY_MS", 2000),
		FetchTimeout: getEnvInt("FETCH_TIMEOUT_S", 30),

		CSVOutputPath: getEnv("CSV_OUTPUT_PATH", "resultats.csv"),
		DebugHTMLPath: getEnv("DEBUG_HTML_PATH", "debug.html"),
		SchemaPath:    getEnv("SCHEMA_CONFIG", ""),

		UseBrowser: getEnvBool("USE_BROWSER", false),
		ChromeBin:  getEnv("CHROME_BIN", ""),

		PostgresEnabled:  getEnvBool("POSTGRES_ENABLED", false),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "scraper"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "scraper123"),
		PostgresDB:       getEnv("POSTGRES_DB", "properti_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
	}
}

// Validate checks the invariants the pipeline relies on. A failure here is
// fatal to the run; the caller still emits a header-only CSV first.
func (c *Config) Validate() error {
	if c.PagesToScrape < 1 {
		return fmt.Errorf("config: PAGES_TO_SCRAPE must be >= 1, got %d", c.PagesToScrape)
	}
	if c.MinSurfaceSqm < 0 {
		return fmt.Errorf("config: MIN_SURFACE_SQM must be >= 0, got %d", c.MinSurfaceSqm)
	}
	if c.MaxSurfaceSqm < c.MinSurfaceSqm {
		return fmt.Errorf("config: MAX_SURFACE_SQM (%d) < MIN_SURFACE_SQM (%d)",
			c.MaxSurfaceSqm, c.MinSurfaceSqm)
	}
	if !strings.Contains(c.SearchURLTemplate, "%d") {
		return fmt.Errorf("config: SEARCH_URL_TEMPLATE must contain a %%d page placeholder")
	}
	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
