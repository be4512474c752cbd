// go_jobagent — UK fintech job search assistant MCP server.
//
// Exposes nine MCP tools: fintech_job_search, profile_update, profile_get,
// job_search_analysis, application_track, application_status,
// application_templates, job_market_analysis, health_status.
// Runs as HTTP MCP server or stdio transport.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	stealth "github.com/anatolykoptev/go-stealth"
	"github.com/anatolykoptev/go-stealth/proxypool"
	"github.com/anatolykoptev/go_jobagent/internal/engine"
	"github.com/anatolykoptev/go_jobagent/internal/engine/jobs"
	"github.com/anatolykoptev/go_jobagent/internal/jobserver"
	"github.com/anatolykoptev/go_jobagent/internal/monitor"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var (
	version = "dev"
	mcpPort = env.Str("MCP_PORT", "8892")
)

func main() {
	initEngine()

	slog.Info("starting go_jobagent",
		slog.String("port", mcpPort),
	)

	tracker := openTracker()
	defer tracker.Close()

	profile := jobs.NewProfileStore(engine.Cfg.DataDir)

	checker, svc := initMonitoring(tracker)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if svc != nil {
		go svc.Run(ctx)
		go maintenanceLoop(ctx, svc)
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_jobagent",
		Version: version,
	}, nil)

	jobserver.RegisterTools(server, jobserver.Deps{
		Profile: profile,
		Tracker: tracker,
		Health:  checker,
	})
	slog.Info("tools registered", slog.Int("count", 9))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_jobagent",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 120 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func initEngine() {
	c := engine.Config{
		AdzunaAppID:          env.Str("ADZUNA_APP_ID", ""),
		AdzunaAppKey:         env.Str("ADZUNA_APP_KEY", ""),
		AdzunaCountry:        env.Str("ADZUNA_COUNTRY", "gb"),
		DefaultLocation:      env.Str("DEFAULT_LOCATION", "London"),
		SearchSalaryMin:      env.Int("SEARCH_SALARY_MIN", engine.DefaultMinSalary),
		MaxContentChars:      env.Int("MAX_CONTENT_CHARS", 1000),
		FetchTimeout:         env.Duration("FETCH_TIMEOUT", 10*time.Second),
		ScrapeRPS:            env.Float("SCRAPE_RPS", 1.0),
		CacheMaxEntries:      env.Int("CACHE_MAX_ENTRIES", 1000),
		CacheCleanupInterval: env.Duration("CACHE_CLEANUP_INTERVAL", 300*time.Second),
		DataDir:              env.Str("DATA_DIR", defaultDataDir()),
		DatabaseURL:          env.Str("DATABASE_URL", ""),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	}

	var opts []stealth.ClientOption
	opts = append(opts, stealth.WithTimeout(15))

	if apiKey := env.Str("WEBSHARE_API_KEY", ""); apiKey != "" {
		pool, err := proxypool.NewWebshare(apiKey)
		if err != nil {
			slog.Warn("proxy pool init failed, running without proxy", slog.Any("error", err))
		} else {
			opts = append(opts, stealth.WithProxyPool(pool))
			slog.Info("proxy pool initialized", slog.Int("proxies", pool.Len()))
		}
	}

	bc, err := stealth.NewClient(opts...)
	if err != nil {
		slog.Error("stealth client init failed, scrapers disabled", slog.Any("error", err))
	} else {
		c.BrowserClient = bc
		slog.Info("stealth browser client initialized")
	}

	engine.Init(c)
	engine.InitCache(
		env.Str("REDIS_URL", ""),
		env.Duration("CACHE_TTL", time.Hour),
		c.CacheMaxEntries,
		c.CacheCleanupInterval,
	)
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".go_jobagent"
	}
	return filepath.Join(home, ".go_jobagent")
}

// openTracker selects the application tracker backend: Postgres when
// DATABASE_URL is set, SQLite under DATA_DIR otherwise.
func openTracker() jobs.TrackerStore {
	if url := engine.Cfg.DatabaseURL; url != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		pg, err := jobs.ConnectPgTracker(ctx, url)
		if err == nil {
			return pg
		}
		slog.Warn("postgres tracker init failed, falling back to sqlite", slog.Any("error", err))
	}

	tracker, err := jobs.OpenSQLiteTracker(engine.Cfg.DataDir)
	if err != nil {
		slog.Error("tracker init failed", slog.Any("error", err))
		os.Exit(1)
	}
	return tracker
}

// initMonitoring wires the metrics store, health checker, and check service.
// A failed metrics store disables monitoring but not the server.
func initMonitoring(tracker jobs.TrackerStore) (*monitor.Checker, *monitor.Service) {
	store, err := monitor.OpenStore(engine.Cfg.DataDir)
	if err != nil {
		slog.Warn("metrics store init failed, monitoring disabled", slog.Any("error", err))
		return nil, nil
	}

	// The file probe needs a SQLite database; with the Postgres tracker it
	// watches the metrics database instead.
	dbPath := store.Path()
	if t, ok := tracker.(*jobs.SQLiteTracker); ok {
		dbPath = t.Path()
	}

	checker := monitor.NewChecker(store, dbPath)
	svc := monitor.NewService(checker, store, engine.Cfg.DataDir,
		env.Duration("HEALTH_CHECK_INTERVAL", monitor.DefaultCheckInterval))
	return checker, svc
}

// maintenanceLoop runs backups and metric cleanup once a day.
func maintenanceLoop(ctx context.Context, svc *monitor.Service) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			svc.Maintenance(ctx)
		}
	}
}
