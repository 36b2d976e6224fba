package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"

	"github.com/adamyatiwari12/staysync/internal/adapter/fsm"
	handler "github.com/adamyatiwari12/staysync/internal/adapter/http"
	"github.com/adamyatiwari12/staysync/internal/adapter/sqlite"
	"github.com/adamyatiwari12/staysync/internal/adapter/token"
	"github.com/adamyatiwari12/staysync/internal/app"
	"github.com/adamyatiwari12/staysync/internal/domain"
)

func TestEnvOrDefault_Fallback(t *testing.T) {
	v := envOrDefault("STAYSYNC_TEST_NONEXISTENT_KEY", "fallback")
	if v != "fallback" {
		t.Errorf("got %q, want %q", v, "fallback")
	}
}

func TestEnvOrDefault_EnvSet(t *testing.T) {
	t.Setenv("STAYSYNC_TEST_KEY", "custom")

	v := envOrDefault("STAYSYNC_TEST_KEY", "fallback")
	if v != "custom" {
		t.Errorf("got %q, want %q", v, "custom")
	}
}

// testPublisher is a local EventPublisher for the smoke test.
// The smoke test verifies HTTP wiring, not River.
type testPublisher struct{}

func (p *testPublisher) Publish(_ context.Context, _ domain.Event, _ domain.EventPayload) error {
	return nil
}

// TestSmoke wires the full stack like main() and verifies signup works
// through the HTTP surface.
func TestSmoke(t *testing.T) {
	dbPath := t.TempDir() + "/test.db"

	store, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("database: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	tokens, err := token.New([]byte("smoke-test-secret"), time.Hour)
	if err != nil {
		t.Fatalf("token issuer: %v", err)
	}

	publisher := &testPublisher{}
	authSvc := app.NewAuthService(store.Actors(), tokens)
	roomSvc := app.NewRoomService(store.Rooms(), store.Actors(), publisher)
	paymentSvc := app.NewPaymentService(store.Payments(), store.Rooms(), store.Actors(), fsm.New(domain.PaymentTransitions), publisher)
	complaintSvc := app.NewComplaintService(store.Complaints(), store.Actors(), fsm.New(domain.ComplaintTransitions), publisher, nil)

	router := chi.NewMux()
	api := humachi.New(router, huma.DefaultConfig("staysync", "0.1.0"))
	auth := handler.NewAuth(api, tokens)
	handler.RegisterAuth(api, auth, authSvc)
	handler.RegisterRooms(api, auth, roomSvc)
	handler.RegisterPayments(api, auth, paymentSvc)
	handler.RegisterComplaints(api, auth, complaintSvc)
	handler.RegisterUsers(api, auth, authSvc)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	body := `{"username":"alice","email":"alice@example.com","password":"password123","stayId":"stay-1"}`
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, srv.URL+"/api/auth/signup", strings.NewReader(body))
	if err != nil {
		t.Fatalf("creating request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST /api/auth/signup failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}

	var out struct {
		Token string `json:"token"`
		User  struct {
			Role string `json:"role"`
		} `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Token == "" || out.User.Role != "admin" {
		t.Errorf("signup = token:%q role:%q, want a token and admin role", out.Token, out.User.Role)
	}
}

// TestRun exercises the real run() function end-to-end: OTel, River, HTTP
// server, and graceful shutdown. It uses stdout OTel exporter and a temp
// database to avoid external dependencies.
func TestRun(t *testing.T) {
	t.Setenv("DATABASE_PATH", t.TempDir()+"/test-run.db")
	t.Setenv("PORT", "19876")
	t.Setenv("OTEL_EXPORTER", "stdout")
	t.Setenv("OTEL_ENVIRONMENT", "test")

	// Discard OTel stdout exporter output during the test.
	origStdout := os.Stdout
	devNull, err := os.Open(os.DevNull)
	if err != nil {
		t.Fatalf("opening /dev/null: %v", err)
	}
	os.Stdout = devNull
	t.Cleanup(func() {
		os.Stdout = origStdout
		devNull.Close()
	})

	errCh := make(chan error, 1)
	go func() { errCh <- run() }()

	// Wait for the HTTP server to become ready. Signin with unknown
	// credentials returns 401, which proves the full stack is wired.
	serverURL := "http://localhost:19876"
	ready := false
	for i := 0; i < 50; i++ {
		req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, serverURL+"/docs", nil)
		resp, reqErr := http.DefaultClient.Do(req)
		if reqErr == nil {
			resp.Body.Close()
			ready = true
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	if !ready {
		t.Fatal("server did not start within 5 seconds")
	}

	body := `{"email":"ghost@example.com","password":"wrong","stayId":"stay-1"}`
	req, _ := http.NewRequestWithContext(context.Background(), http.MethodPost, serverURL+"/api/auth/signin", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST /api/auth/signin failed: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}

	// Send SIGINT to trigger graceful shutdown.
	proc, err := os.FindProcess(os.Getpid())
	if err != nil {
		t.Fatalf("finding process: %v", err)
	}
	if err := proc.Signal(syscall.SIGINT); err != nil {
		t.Fatalf("sending SIGINT: %v", err)
	}

	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("run() returned error: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("run() did not exit within 10 seconds")
	}
}

// TestRun_InvalidDB verifies run() returns an error for an invalid database path.
func TestRun_InvalidDB(t *testing.T) {
	t.Setenv("DATABASE_PATH", "/nonexistent/path/db.sqlite")
	t.Setenv("PORT", "19877")
	t.Setenv("OTEL_EXPORTER", "stdout")
	t.Setenv("OTEL_ENVIRONMENT", "test")

	// Discard OTel stdout output.
	origStdout := os.Stdout
	devNull, err := os.Open(os.DevNull)
	if err != nil {
		t.Fatalf("opening /dev/null: %v", err)
	}
	os.Stdout = devNull
	t.Cleanup(func() {
		os.Stdout = origStdout
		devNull.Close()
	})

	if err := run(); err == nil {
		t.Fatal("expected error for invalid database path, got nil")
	}
}
