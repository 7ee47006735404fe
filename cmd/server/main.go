package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/solviatours/backoffice/internal/auth"
	"github.com/solviatours/backoffice/internal/config"
	"github.com/solviatours/backoffice/internal/db"
	"github.com/solviatours/backoffice/internal/gateway/gormstore"
	"github.com/solviatours/backoffice/internal/handlers"
	"github.com/solviatours/backoffice/internal/logger"
	"github.com/solviatours/backoffice/internal/media"
	"github.com/solviatours/backoffice/internal/metrics"
	"github.com/solviatours/backoffice/internal/notify"
	"github.com/solviatours/backoffice/internal/session"
	"github.com/solviatours/backoffice/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.New()

	dbConn, err := db.Connect(cfg.DatabaseDSN, log)
	if err != nil {
		log.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := db.SeedAdmin(dbConn, getenv("ADMIN_EMAIL", "admin@solviatours.com"), getenv("ADMIN_PASSWORD", "changeme"), log); err != nil {
		log.Error("admin seed failed", "error", err)
		os.Exit(1)
	}

	gw := gormstore.New(dbConn)

	var mediaStore media.Store
	if cfg.MediaDriver == "s3" {
		s3Store, err := media.NewS3(context.Background(), media.S3Config{
			Region:    cfg.MediaRegion,
			Bucket:    cfg.MediaBucket,
			Endpoint:  cfg.MediaEndpoint,
			PathStyle: cfg.MediaPathStyle,
			BaseURL:   cfg.MediaBaseURL,
		})
		if err != nil {
			log.Error("s3 media store init failed", "error", err)
			os.Exit(1)
		}
		mediaStore = s3Store
	} else {
		mediaStore = media.NewMemory(cfg.MediaBaseURL)
	}

	reg := prometheus.NewRegistry()
	m := metrics.New("backoffice", reg)
	toasts := notify.NewNotifier()
	confirms := notify.NewConfirmer()

	authSvc := auth.NewService(gw)
	sessions := session.New(gw, log)
	authSvc.OnStateChange(sessions.HandleAuthChange)

	domain := store.New(gw, gw, authSvc, log, m, toasts)
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 30*time.Second)
	domain.Load(loadCtx)
	cancelLoad()
	domain.Start()
	defer domain.Close()

	h := handlers.New(domain, sessions, authSvc, mediaStore, gw, toasts, confirms, log)
	app := NewApp(h, sessions, reg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      withLogging(app, log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // SSE streams stay open
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// withLogging adds request logging.
func withLogging(next http.Handler, log logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Info("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start).String())
	})
}
