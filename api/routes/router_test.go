package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/parisy/pasarsayur-backend/internal/catalog"
	"github.com/parisy/pasarsayur-backend/internal/policy"
	"github.com/parisy/pasarsayur-backend/pkg/config"
	"github.com/parisy/pasarsayur-backend/pkg/logger"
)

func testDeps(t *testing.T) Deps {
	t.Helper()
	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.JWT = config.JWTConfig{Secret: "secret", Issuer: "pasarsayur", ExpirationMinutes: 30}
	logg := logger.New(logger.Options{ServiceName: "router-test", Level: zerolog.ErrorLevel})
	return Deps{Config: cfg, Logger: logg}
}

func TestRouterHealthLive(t *testing.T) {
	router := NewRouter(testDeps(t))

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if env := rec.Header().Get("X-PasarSayur-Env"); env != "test" {
		t.Fatalf("expected env header, got %q", env)
	}
}

func TestRouterProtectedRoutesRequireAuth(t *testing.T) {
	router := NewRouter(testDeps(t))

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/vegetable/admin"},
		{http.MethodPost, "/api/v1/vegetable/"},
		{http.MethodGet, "/api/v1/cart/"},
		{http.MethodGet, "/api/v1/transaction/history"},
		{http.MethodGet, "/api/v1/finance/summary"},
		{http.MethodGet, "/api/v1/user/profile"},
	}
	for _, tc := range paths {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401 got %d", tc.method, tc.path, rec.Code)
		}
	}
}

type stubPublicCatalog struct{}

func (stubPublicCatalog) List(ctx context.Context) ([]catalog.VegetableDTO, error) {
	return []catalog.VegetableDTO{{Name: "Kangkung"}}, nil
}

func (stubPublicCatalog) Get(ctx context.Context, id uuid.UUID) (*catalog.VegetableDTO, error) {
	return &catalog.VegetableDTO{Name: "Kangkung"}, nil
}

func (stubPublicCatalog) ByCategory(ctx context.Context, category string) ([]catalog.VegetableDTO, error) {
	return nil, nil
}

func (stubPublicCatalog) Search(ctx context.Context, query, category string) ([]catalog.VegetableDTO, error) {
	return nil, nil
}

func (stubPublicCatalog) AdminList(ctx context.Context) ([]catalog.VegetableDTO, error) {
	return nil, nil
}

func (stubPublicCatalog) Create(ctx context.Context, actor policy.Actor, input catalog.CreateVegetableInput) (*catalog.VegetableDTO, error) {
	return nil, nil
}

func (stubPublicCatalog) Update(ctx context.Context, id uuid.UUID, input catalog.UpdateVegetableInput) (*catalog.VegetableDTO, error) {
	return nil, nil
}

func (stubPublicCatalog) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (stubPublicCatalog) UpdateStock(ctx context.Context, id uuid.UUID, stock int) (*catalog.VegetableDTO, error) {
	return nil, nil
}

func (stubPublicCatalog) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*catalog.VegetableDTO, error) {
	return nil, nil
}

func TestRouterCatalogReadsArePublic(t *testing.T) {
	deps := testDeps(t)
	deps.CatalogService = stubPublicCatalog{}
	router := NewRouter(deps)

	paths := []string{
		"/api/v1/vegetable/",
		"/api/v1/vegetable/search?q=kangkung",
		"/api/v1/vegetable/category/daun",
		"/api/v1/vegetable/" + uuid.NewString(),
	}
	for _, path := range paths {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s: expected 200 without a token, got %d", path, rec.Code)
		}
	}
}

func TestRouterMetricsEndpoint(t *testing.T) {
	router := NewRouter(testDeps(t))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}
