package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gcbaptista/go-survey-catalog/api"
	"github.com/gcbaptista/go-survey-catalog/config"
	"github.com/gcbaptista/go-survey-catalog/internal/analytics"
	"github.com/gcbaptista/go-survey-catalog/internal/catalog"
	"github.com/gcbaptista/go-survey-catalog/internal/engine"
	"github.com/gcbaptista/go-survey-catalog/internal/metrics"
)

func main() {
	// Define command-line flags
	var (
		help         = flag.Bool("help", false, "Show help message")
		version      = flag.Bool("version", false, "Show version information")
		configPath   = flag.String("config", "", "Path to a YAML server config file")
		port         = flag.String("port", "", "Port to run the server on (default 8080)")
		dataDir      = flag.String("data-dir", "", "Directory to store catalog data (default ./catalog_data)")
		storeBackend = flag.String("store", "", "Catalog store backend: file or memory (default file)")
		workers      = flag.Int("workers", 0, "Maximum number of concurrent background jobs (default 4)")
		matchTimeout = flag.Duration("match-timeout", 0, "Time budget of a single match, e.g. 500ms (default 2s)")
	)

	flag.Parse()

	// Handle help flag
	if *help {
		fmt.Printf("Go Survey Catalog - best-fit lookup of partially specified survey records\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nExamples:\n")
		fmt.Printf("  %s                              # Start server on default port 8080\n", os.Args[0])
		fmt.Printf("  %s --port 9000                  # Start server on port 9000\n", os.Args[0])
		fmt.Printf("  %s --store memory               # Keep catalogs in memory only\n", os.Args[0])
		fmt.Printf("  %s --config catalog.yaml        # Read options from a file, flags still win\n", os.Args[0])
		return
	}

	// Handle version flag
	if *version {
		fmt.Printf("Go Survey Catalog v1.0.0\n")
		fmt.Printf("Constraint-relaxation matching with async imports and analytics\n")
		return
	}

	cfg := config.DefaultServerConfig()
	if *configPath != "" {
		loaded, err := config.LoadServerConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	applyFlags(&cfg, *port, *dataDir, *storeBackend, *workers, *matchTimeout)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	store, analyticsDir, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open catalog store: %v", err)
	}

	promMetrics := metrics.New(prometheus.DefaultRegisterer)
	tracker := analytics.NewService(store, analyticsDir)
	defer tracker.Close()

	catalogEngine := engine.NewEngine(store,
		engine.WithMetrics(promMetrics),
		engine.WithMatchTracker(tracker),
		engine.WithMatchTimeout(cfg.MatchTimeout),
		engine.WithMaxWorkers(cfg.MaxWorkers),
	)
	defer catalogEngine.Close()

	// Initialize Gin router
	router := gin.Default()
	router.Use(api.RequestIDMiddleware())
	router.Use(api.CORSMiddleware())
	router.Use(api.RequestSizeLimitMiddleware(cfg.MaxRequestBytes))

	// Setup API routes
	api.SetupRoutes(router, catalogEngine, tracker)

	// Start the server
	log.Printf("Starting server on port %s (store %s, %d workers, match timeout %v)...",
		cfg.Port, cfg.StoreBackend, cfg.MaxWorkers, cfg.MatchTimeout)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Printf("CRITICAL: Failed to start server: %v", err)
	}
}

// applyFlags overrides file or default values with the flags that were set.
func applyFlags(cfg *config.ServerConfig, port, dataDir, storeBackend string, workers int, matchTimeout time.Duration) {
	if port != "" {
		cfg.Port = port
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if storeBackend != "" {
		cfg.StoreBackend = storeBackend
	}
	if workers > 0 {
		cfg.MaxWorkers = workers
	}
	if matchTimeout > 0 {
		cfg.MatchTimeout = matchTimeout
	}
}

// openStore returns the configured catalog store and the directory analytics are persisted to.
func openStore(cfg config.ServerConfig) (catalog.Store, string, error) {
	if cfg.StoreBackend == config.StoreBackendMemory {
		log.Printf("Info: Using in-memory catalog store, nothing is persisted")
		return catalog.NewMemoryStore(), "", nil
	}

	log.Printf("Using data directory: %s", cfg.DataDir)
	store, err := catalog.NewFileStore(cfg.DataDir)
	if err != nil {
		return nil, "", err
	}
	return store, cfg.DataDir, nil
}
