package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pageza/recipe-share/backend/internal/database"
	"github.com/pageza/recipe-share/backend/internal/metrics"
	"github.com/pageza/recipe-share/backend/internal/service"
)

const testJWTSecret = "test-secret"

// MockTextGenerator stands in for the hosted model
type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) GenerateText(ctx context.Context, model, prompt string) (string, error) {
	args := m.Called(ctx, model, prompt)
	return args.String(0), args.Error(1)
}

// testEnv bundles an in-memory database with the services built on it
type testEnv struct {
	DB          *gorm.DB
	AuthService *service.AuthService
	Recipes     *service.RecipeService
	Metrics     *metrics.Metrics
	Registry    *prometheus.Registry
	Logger      *zap.Logger
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), database.GormConfig())
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Each new connection to :memory: would open an empty database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))

	reg := prometheus.NewRegistry()
	return &testEnv{
		DB:          db,
		AuthService: service.NewAuthService(db, testJWTSecret),
		Recipes:     service.NewRecipeService(db),
		Metrics:     metrics.New(reg),
		Registry:    reg,
		Logger:      zap.NewNop(),
	}
}

// CreateTestUserAndToken registers a user and returns their ID and a valid JWT token
func CreateTestUserAndToken(t *testing.T, env *testEnv, username string) (uuid.UUID, string) {
	t.Helper()
	user, token, err := env.AuthService.Register(context.Background(), username+"@example.com", "testpassword123", username)
	require.NoError(t, err)
	return user.ID, token
}

// PerformRequest sends a JSON request through router. body may be nil, a
// string sent verbatim, or a value marshalled to JSON.
func PerformRequest(t *testing.T, router http.Handler, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf *bytes.Buffer
	switch b := body.(type) {
	case nil:
		buf = &bytes.Buffer{}
	case string:
		buf = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		buf = bytes.NewBuffer(data)
	}

	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
