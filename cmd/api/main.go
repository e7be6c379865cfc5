package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookstore/internal/book"
	"bookstore/internal/httpx"
	"bookstore/internal/view"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

func main() {
	loadEnvFiles()
	cfg := loadConfig()

	dbPool := mustOpenDB(cfg.dsn)
	defer dbPool.Close()
	db := stdlib.OpenDBFromPool(dbPool)
	defer db.Close()

	renderer, err := view.New()
	if err != nil {
		log.Fatalf("cannot load templates: %v", err)
	}

	bookRepository := book.NewPostgresRepo(db, cfg.dbTimeout)
	bookHandler := book.NewHTTPHandler(book.NewService(bookRepository), renderer, renderer)

	rateLimiter := httpx.NewRateLimitMiddleware(cfg.rateLimitRPS, cfg.rateLimitBurst, renderer)
	defer rateLimiter.Stop()

	httpServer := &http.Server{
		Addr:         cfg.addr,
		Handler:      newRouter(bookHandler, renderer, db, rateLimiter, cfg.maxBodyBytes),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting server on %s", cfg.addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
	log.Println("server stopped")
}

// newRouter wires the routes and the middleware chain.
func newRouter(books *book.HTTPHandler, renderer *view.Renderer, db *sql.DB, rl *httpx.RateLimitMiddleware, maxBodyBytes int64) http.Handler {
	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	books.Register(router)
	router.Handle("/", httpx.NotFound(renderer))

	return httpx.Chain(router,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware,
		httpx.RecoveryMiddleware(renderer),
		httpx.SecurityHeadersMiddleware,
		rl.Middleware,
		httpx.RequestSizeLimitMiddleware(maxBodyBytes, renderer),
	)
}

func mustOpenDB(dsn string) *pgxpool.Pool {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("cannot create db pool: %v", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		log.Fatalf("cannot ping database (%s): %v", redactDSN(dsn), err)
	}
	log.Println("database connection OK")
	return pool
}
