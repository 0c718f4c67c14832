package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/simp-lee/logger"
	"gorm.io/gorm"

	"github.com/simp-lee/rentsearch/internal/config"
	"github.com/simp-lee/rentsearch/internal/domain"
	"github.com/simp-lee/rentsearch/internal/module/listing"
	"github.com/simp-lee/rentsearch/internal/seed"
)

type fakeHTTPServer struct {
	listenErr      error
	listenStarted  chan struct{}
	shutdownCalled bool
	stopCh         chan struct{}
	mu             sync.Mutex
}

func (f *fakeHTTPServer) ListenAndServe() error {
	if f.listenStarted != nil {
		close(f.listenStarted)
	}
	if f.listenErr != nil {
		return f.listenErr
	}
	if f.stopCh != nil {
		<-f.stopCh
	}
	return http.ErrServerClosed
}

func (f *fakeHTTPServer) Shutdown(context.Context) error {
	f.mu.Lock()
	f.shutdownCalled = true
	f.mu.Unlock()
	if f.stopCh != nil {
		close(f.stopCh)
	}
	return nil
}

func (f *fakeHTTPServer) wasShutdownCalled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.shutdownCalled
}

// testConfig returns a validated config backed by a fresh SQLite file.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 8080, Mode: gin.TestMode},
		Database: config.DatabaseConfig{
			Driver:      "sqlite",
			AutoMigrate: true,
			SQLite:      config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "app.db")},
		},
		Log: config.LogConfig{Level: "error", Format: "text"},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	return cfg
}

func newTestApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()
	a, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = config.CloseDatabase(a.db)
		_ = a.logger.Close()
	})
	return a
}

type searchEnvelope struct {
	Code int                    `json:"code"`
	Data listing.SearchResponse `json:"data"`
}

func searchListings(t *testing.T, a *App, query string) (*httptest.ResponseRecorder, searchEnvelope) {
	t.Helper()
	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/listings?"+query, nil))

	var env searchEnvelope
	if w.Code == http.StatusOK {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("unmarshal: %v\n%s", err, w.Body.String())
		}
	}
	return w, env
}

func listingIDs(items []listing.ListingResponse) []string {
	out := make([]string, len(items))
	for i, l := range items {
		out[i] = l.ID
	}
	return out
}

func TestNew_NilConfig(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatal("New(nil) error = nil, want error")
	}
}

func TestNew_ReturnsError_WhenDatabaseSetupFails(t *testing.T) {
	cfg := &config.Config{
		Server:   config.ServerConfig{Host: "127.0.0.1", Port: 8080, Mode: gin.TestMode},
		Database: config.DatabaseConfig{Driver: "unsupported"},
		Log:      config.LogConfig{Level: "info", Format: "text"},
	}

	app, err := New(cfg)
	if err == nil {
		t.Fatalf("New() error = nil, want error")
	}
	if app != nil {
		t.Fatalf("New() app = %#v, want nil", app)
	}
	if !strings.Contains(err.Error(), "setup database") {
		t.Fatalf("New() error = %q, want contains %q", err.Error(), "setup database")
	}
}

func TestNew_EmptyDatabaseServesFallbackListings(t *testing.T) {
	a := newTestApp(t, testConfig(t))

	w, env := searchListings(t, a, "location=Kathmandu&sort=price_desc")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if env.Data.Source != domain.SourceFallback {
		t.Errorf("source = %q, want %q", env.Data.Source, domain.SourceFallback)
	}
	if got := strings.Join(listingIDs(env.Data.Items), ","); got != "prop-6,prop-3,prop-1" {
		t.Errorf("items = %s, want prop-6,prop-3,prop-1", got)
	}
	if env.Data.Summary != "Properties in Kathmandu · highest price first" {
		t.Errorf("summary = %q", env.Data.Summary)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID response header")
	}
}

func TestNew_SeededDatabaseServesPrimaryListings(t *testing.T) {
	a := newTestApp(t, testConfig(t))

	listings, err := seed.Default()
	if err != nil {
		t.Fatalf("seed.Default() error = %v", err)
	}
	if err := listing.Seed(context.Background(), a.db, listings); err != nil {
		t.Fatalf("listing.Seed() error = %v", err)
	}

	w, env := searchListings(t, a, "location=kathmandu&type=apartment&beds=2&maxPrice=50000")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if env.Data.Source != domain.SourcePrimary {
		t.Errorf("source = %q, want %q", env.Data.Source, domain.SourcePrimary)
	}
	for _, l := range env.Data.Items {
		if l.Type != domain.TypeApartment || l.Bedrooms < 2 || l.Price > 50000 {
			t.Errorf("listing %s does not match criteria: %+v", l.ID, l)
		}
	}

	w = httptest.NewRecorder()
	a.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/listings/prop-1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /listings/prop-1 = %d, want 200", w.Code)
	}
	var one struct {
		Data listing.ListingResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &one); err != nil {
		t.Fatalf("failed to decode listing: %v", err)
	}
	if len(one.Data.Images) == 0 || one.Data.PrimaryImage != one.Data.Images[0] {
		t.Errorf("primary_image = %q, images = %v", one.Data.PrimaryImage, one.Data.Images)
	}
}

func TestNew_FallbackDisabledReturnsEmptyPrimary(t *testing.T) {
	cfg := testConfig(t)
	disabled := false
	cfg.Search.Fallback.Enabled = &disabled
	a := newTestApp(t, cfg)

	w, env := searchListings(t, a, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if env.Data.Source != domain.SourcePrimary || len(env.Data.Items) != 0 || env.Data.TotalCount != 0 {
		t.Errorf("unexpected data %+v", env.Data)
	}
	if !strings.Contains(w.Body.String(), `"items":[]`) {
		t.Errorf("expected empty items array, got %s", w.Body.String())
	}
}

func TestNew_DatasetFileFailureIsUnavailable(t *testing.T) {
	cfg := testConfig(t)
	cfg.Search.Fallback.DatasetPath = filepath.Join(t.TempDir(), "missing.yaml")
	a := newTestApp(t, cfg)

	w, _ := searchListings(t, a, "")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d: %s", w.Code, w.Body.String())
	}
}

func TestNew_HealthReportsDatabase(t *testing.T) {
	a := newTestApp(t, testConfig(t))

	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestResolveCORSConfig(t *testing.T) {
	tests := []struct {
		name            string
		mode            string
		cfg             *config.CORSConfig
		wantOrigins     []string
		wantMethods     []string
		wantCredentials bool
		wantMaxAge      time.Duration
	}{
		{
			name:        "debug mode uses permissive default",
			mode:        gin.DebugMode,
			cfg:         &config.CORSConfig{},
			wantOrigins: []string{"*"},
			wantMethods: []string{"GET", "HEAD", "OPTIONS"},
			wantMaxAge:  24 * time.Hour,
		},
		{
			name:        "release mode denies cross-origin when not configured",
			mode:        gin.ReleaseMode,
			cfg:         &config.CORSConfig{},
			wantOrigins: nil,
			wantMethods: []string{"GET", "HEAD", "OPTIONS"},
			wantMaxAge:  24 * time.Hour,
		},
		{
			name: "explicit settings override defaults",
			mode: gin.ReleaseMode,
			cfg: &config.CORSConfig{
				AllowOrigins:     []string{"https://rent.example.com"},
				AllowMethods:     []string{"GET"},
				AllowCredentials: true,
				MaxAge:           "12h",
			},
			wantOrigins:     []string{"https://rent.example.com"},
			wantMethods:     []string{"GET"},
			wantCredentials: true,
			wantMaxAge:      12 * time.Hour,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveCORSConfig(tt.mode, tt.cfg)
			if strings.Join(got.AllowOrigins, ",") != strings.Join(tt.wantOrigins, ",") {
				t.Errorf("AllowOrigins = %v, want %v", got.AllowOrigins, tt.wantOrigins)
			}
			if strings.Join(got.AllowMethods, ",") != strings.Join(tt.wantMethods, ",") {
				t.Errorf("AllowMethods = %v, want %v", got.AllowMethods, tt.wantMethods)
			}
			if got.AllowCredentials != tt.wantCredentials {
				t.Errorf("AllowCredentials = %v, want %v", got.AllowCredentials, tt.wantCredentials)
			}
			if got.MaxAge != tt.wantMaxAge {
				t.Errorf("MaxAge = %v, want %v", got.MaxAge, tt.wantMaxAge)
			}
		})
	}
}

func TestValidateGinMode(t *testing.T) {
	for _, mode := range []string{gin.DebugMode, gin.ReleaseMode, gin.TestMode} {
		if err := validateGinMode(mode); err != nil {
			t.Errorf("validateGinMode(%q) error = %v", mode, err)
		}
	}
	if err := validateGinMode("staging"); err == nil {
		t.Error("validateGinMode(staging) error = nil, want error")
	}
}

func TestRun_ReturnsError_WhenListenFails(t *testing.T) {
	originalNewHTTPServer := newHTTPServer
	originalNotifyContext := notifyContext
	defer func() {
		newHTTPServer = originalNewHTTPServer
		notifyContext = originalNotifyContext
	}()

	listenErr := errors.New("listen failed")
	newHTTPServer = func(string, http.Handler) httpServer {
		return &fakeHTTPServer{listenErr: listenErr}
	}
	notifyContext = func(context.Context, ...os.Signal) (context.Context, context.CancelFunc) {
		return context.WithCancel(context.Background())
	}

	a := &App{
		engine: gin.New(),
		logger: logger.Default(),
		cfg:    &config.Config{Server: config.ServerConfig{Host: "127.0.0.1", Port: 8080}},
	}

	err := a.Run()
	if !errors.Is(err, listenErr) {
		t.Fatalf("Run() error = %v, want wraps %v", err, listenErr)
	}
	if !strings.Contains(err.Error(), "server error") {
		t.Fatalf("Run() error = %q, want contains %q", err.Error(), "server error")
	}
}

func TestRun_ShutdownSignal_ClosesDatabase(t *testing.T) {
	originalNewHTTPServer := newHTTPServer
	originalNotifyContext := notifyContext
	defer func() {
		newHTTPServer = originalNewHTTPServer
		notifyContext = originalNotifyContext
	}()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("gorm.Open() error = %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB() error = %v", err)
	}

	server := &fakeHTTPServer{listenStarted: make(chan struct{}), stopCh: make(chan struct{})}
	newHTTPServer = func(string, http.Handler) httpServer {
		return server
	}
	ctx, cancel := context.WithCancel(context.Background())
	notifyContext = func(context.Context, ...os.Signal) (context.Context, context.CancelFunc) {
		return ctx, cancel
	}

	a := &App{
		engine: gin.New(),
		db:     db,
		logger: logger.Default(),
		cfg:    &config.Config{Server: config.ServerConfig{Host: "127.0.0.1", Port: 8080, Timeout: "1s"}},
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Run()
	}()

	select {
	case <-server.listenStarted:
	case <-time.After(2 * time.Second):
		t.Fatal("server did not start listening in time")
	}

	cancel()

	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("Run() error = %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return in time after shutdown signal")
	}

	if !server.wasShutdownCalled() {
		t.Fatal("expected server Shutdown() to be called")
	}
	if pingErr := sqlDB.Ping(); pingErr == nil {
		t.Fatal("expected database connection to be closed, but Ping() succeeded")
	}
}

func TestRun_NilGuards(t *testing.T) {
	var nilApp *App
	if err := nilApp.Run(); err == nil {
		t.Error("nil app Run() error = nil")
	}
	if err := (&App{}).Run(); err == nil {
		t.Error("Run() without config error = nil")
	}
	if err := (&App{cfg: &config.Config{}}).Run(); err == nil {
		t.Error("Run() without engine error = nil")
	}
}
