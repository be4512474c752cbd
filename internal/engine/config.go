package engine

import (
	"net/http"
	"time"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	AdzunaAppID   string
	AdzunaAppKey  string
	AdzunaCountry string // lowercase ISO code for the API path, e.g. "gb"

	DefaultLocation string // default search location, e.g. "London"
	SearchSalaryMin int    // salary floor passed to the job boards

	MaxContentChars int
	FetchTimeout    time.Duration
	ScrapeRPS       float64 // per-host request rate for scrapers

	CacheMaxEntries      int
	CacheCleanupInterval time.Duration

	DataDir     string // SQLite databases, profile JSON, backups
	DatabaseURL string // optional Postgres tracker backend

	HTTPClient    *http.Client
	BrowserClient *BrowserClient // nil = scrapers disabled
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages (jobs, sources).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	cfg = c
	Cfg = &cfg
}
