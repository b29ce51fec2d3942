package routes_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/shopkeeper-api/internal/bootstrap"
	"github.com/sangkips/shopkeeper-api/internal/config"
	"github.com/sangkips/shopkeeper-api/internal/infrastructure/database"
	"github.com/sangkips/shopkeeper-api/internal/presentation/http/dto/request"
	"github.com/sangkips/shopkeeper-api/pkg/apperror"
	"github.com/sangkips/shopkeeper-api/pkg/printer"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := request.RegisterValidators(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "shopkeeper-test", Env: "test"},
		JWT: config.JWTConfig{
			Secret:             "test-secret-key-0123456789",
			ExpiryHours:        time.Hour,
			RefreshExpiryHours: 24 * time.Hour,
		},
		RateLimit: config.RateLimitConfig{Requests: 1000, Duration: 1},
		Printer:   config.PrinterConfig{Type: "none", Width: 32},
		Shop:      config.ShopConfig{Name: "Test Shop", Timezone: "UTC"},
		Auth: config.AuthConfig{
			AdminUsername: "admin",
			AdminPassword: "admin123",
			StaffUsername: "staff",
			StaffPassword: "staff123",
		},
		Retention: config.RetentionConfig{
			BillingDays:    45,
			SupplierDays:   60,
			ExpenseDays:    7,
			IdempotencyTTL: time.Hour,
		},
	}
}

type testServer struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	return newTestServerWith(t, testConfig(), nil)
}

func newTestServerWith(t *testing.T, cfg *config.Config, p printer.Printer) *testServer {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	log := zap.NewNop()
	require.NoError(t, database.AutoMigrate(db))
	require.NoError(t, database.SeedUsers(db, &cfg.Auth, log))

	app := bootstrap.New(cfg, db, log, bootstrap.Options{Printer: p, Location: time.UTC})
	return &testServer{t: t, db: db, router: app.Router(nil)}
}

type envelope struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Data    json.RawMessage       `json:"data"`
	Errors  []apperror.FieldError `json:"errors"`
}

func (s *testServer) do(method, path string, body interface{}, token string, headers ...string) *httptest.ResponseRecorder {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(s.t, json.NewEncoder(&buf).Encode(b))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data), string(env.Data))
	}
	return env
}

func (s *testServer) login(username, password string) string {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, "")
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())

	var out struct {
		AccessToken string `json:"access_token"`
	}
	decode(s.t, rec, &out)
	require.NotEmpty(s.t, out.AccessToken)
	return out.AccessToken
}

func (s *testServer) admin() string { return s.login("admin", "admin123") }
func (s *testServer) staff() string { return s.login("staff", "staff123") }
