package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/riandyrn/otelchi"

	"github.com/adamyatiwari12/staysync/internal/adapter/fsm"
	handler "github.com/adamyatiwari12/staysync/internal/adapter/http"
	otelad "github.com/adamyatiwari12/staysync/internal/adapter/otel"
	riverad "github.com/adamyatiwari12/staysync/internal/adapter/river"
	"github.com/adamyatiwari12/staysync/internal/adapter/sqlite"
	"github.com/adamyatiwari12/staysync/internal/adapter/token"
	"github.com/adamyatiwari12/staysync/internal/app"
	"github.com/adamyatiwari12/staysync/internal/domain"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("staysync: %v", err)
	}
}

func run() error {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	port := envOrDefault("PORT", "8080")
	dbPath := envOrDefault("DATABASE_PATH", "staysync.db")
	secret := envOrDefault("AUTH_SECRET", "dev-secret-change-in-production")
	ttl, err := time.ParseDuration(envOrDefault("TOKEN_TTL", "24h"))
	if err != nil {
		return fmt.Errorf("parsing TOKEN_TTL: %w", err)
	}

	var categories []string
	if raw := os.Getenv("COMPLAINT_CATEGORIES"); raw != "" {
		for _, c := range strings.Split(raw, ",") {
			if c = strings.TrimSpace(c); c != "" {
				categories = append(categories, c)
			}
		}
	}

	ctx := context.Background()

	// --- Observability ---
	providers, err := otelad.Setup(ctx, otelad.ConfigFromEnv())
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}()

	// --- Adapters (out) ---
	db, err := otelad.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}

	store, err := sqlite.NewFromDB(db)
	if err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	defer store.Close()

	riverClient, err := riverad.Setup(ctx, db)
	if err != nil {
		return fmt.Errorf("river: %w", err)
	}

	publisher := otelad.NewTracingPublisher(riverad.NewPublisher(riverClient))
	rooms := otelad.NewTracingRoomRepository(store.Rooms())

	tokens, err := token.New([]byte(secret), ttl)
	if err != nil {
		return fmt.Errorf("token issuer: %w", err)
	}

	// --- Application ---
	authSvc := app.NewAuthService(store.Actors(), tokens)
	roomSvc := app.NewRoomService(rooms, store.Actors(), publisher)
	paymentSvc := app.NewPaymentService(store.Payments(), rooms, store.Actors(), fsm.New(domain.PaymentTransitions), publisher)
	complaintSvc := app.NewComplaintService(store.Complaints(), store.Actors(), fsm.New(domain.ComplaintTransitions), publisher, categories)

	// --- Adapters (in) ---
	router := chi.NewMux()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(otelchi.Middleware("staysync", otelchi.WithChiRoutes(router)))

	api := humachi.New(router, huma.DefaultConfig("staysync", "0.1.0"))
	auth := handler.NewAuth(api, tokens)
	handler.RegisterAuth(api, auth, authSvc)
	handler.RegisterRooms(api, auth, roomSvc)
	handler.RegisterPayments(api, auth, paymentSvc)
	handler.RegisterComplaints(api, auth, complaintSvc)
	handler.RegisterUsers(api, auth, authSvc)

	// --- Job queue ---
	if err := riverClient.Start(ctx); err != nil {
		return fmt.Errorf("starting river: %w", err)
	}

	// --- Server ---
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("staysync listening on :%s", port)
		log.Printf("API docs: http://localhost:%s/docs", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-done:
	}

	log.Println("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown: %v", err)
	}
	if err := riverClient.Stop(shutdownCtx); err != nil {
		log.Printf("river stop: %v", err)
	}

	log.Println("stopped")
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
