// File path: cmd/faqforge/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"faqforge/internal/api"
	"faqforge/internal/assets"
	"faqforge/internal/common"
	"faqforge/internal/enhance"
	"faqforge/internal/reconcile"
	"faqforge/internal/render"
	"faqforge/internal/store"
)

func main() {
	logger := common.Logger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := godotenv.Load(); err != nil {
		logger.Warn("faqforge: .env file not loaded", "error", err)
	} else {
		logger.Info("faqforge: environment loaded from .env")
	}

	addr := flag.String("addr", ":8082", "listen address")
	dbPath := flag.String("db", defaultDBPath(), "path to the SQLite version store")
	assetRoot := flag.String("assets", defaultAssetRoot(), "directory for uploaded screenshots")
	concurrency := flag.Int("enhance-concurrency", defaultConcurrency(), "maximum in-flight enhancement calls per reconciliation")
	flag.Parse()

	logger.Info("faqforge: startup initiated", "addr", *addr, "db", *dbPath, "assets", *assetRoot)

	versions, err := store.Open(*dbPath)
	if err != nil {
		logger.Error("faqforge: version store open failed", "error", err)
		fmt.Println("store error:", err)
		os.Exit(1)
	}
	defer versions.Close()

	assetStore, err := assets.NewStore(*assetRoot)
	if err != nil {
		logger.Error("faqforge: asset store init failed", "error", err)
		fmt.Println("asset store error:", err)
		os.Exit(1)
	}

	provider := enhance.NewProvider(ctx)
	logger.Info("faqforge: enhancement provider ready", "provider", provider.Name())
	adapter := enhance.NewAdapter(provider)

	engine := reconcile.NewEngine(adapter, versions, reconcile.WithEnhanceConcurrency(*concurrency))
	renderer := render.New(assetStore)

	server, err := api.NewServer(engine, versions, assetStore, renderer, provider.Name())
	if err != nil {
		logger.Error("faqforge: server construction failed", "error", err)
		fmt.Println("server error:", err)
		os.Exit(1)
	}

	logger.Info("faqforge: server listening", "addr", *addr, "health", "/healthz")
	fmt.Printf("Serving on %s\n", *addr)
	if err := http.ListenAndServe(*addr, server); err != nil {
		logger.Error("faqforge: server stopped", "error", err)
		fmt.Println("server stopped:", err)
	}
}

func defaultDBPath() string {
	if env := strings.TrimSpace(os.Getenv("FAQFORGE_DB_PATH")); env != "" {
		return env
	}
	return filepath.Join("data", "faqforge.db")
}

func defaultAssetRoot() string {
	if env := strings.TrimSpace(os.Getenv("FAQFORGE_ASSET_ROOT")); env != "" {
		return env
	}
	return filepath.Join("data", "assets")
}

func defaultConcurrency() int {
	if env := strings.TrimSpace(os.Getenv("FAQFORGE_ENHANCE_CONCURRENCY")); env != "" {
		if parsed, err := strconv.Atoi(env); err == nil && parsed > 0 {
			return parsed
		}
	}
	return 4
}
