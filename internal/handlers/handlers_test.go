package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/nlecomte/filegate/internal/metrics"
	"github.com/nlecomte/filegate/internal/models"
	"github.com/nlecomte/filegate/internal/repo"
	"github.com/nlecomte/filegate/internal/service"
)

var testJWTSecret = []byte("test-jwt-secret")

func initTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}
	return db
}

type testEnv struct {
	E       *echo.Echo
	DB      *gorm.DB
	Users   *repo.UserRepo
	Metrics *metrics.Metrics
	Auth    *AuthHandler
	User    *UserHandler
}

func newTestEnv(t *testing.T) *testEnv {
	db := initTestDB(t)
	users := &repo.UserRepo{DB: db}
	m := metrics.New()

	authSvc := &service.AuthService{
		Users:     users,
		Metrics:   m,
		JWTSecret: testJWTSecret,
		TokenTTL:  time.Hour,
	}
	userSvc := &service.UserService{
		Users:      users,
		Metrics:    m,
		BcryptCost: bcrypt.MinCost,
	}

	return &testEnv{
		E:       echo.New(),
		DB:      db,
		Users:   users,
		Metrics: m,
		Auth:    &AuthHandler{Auth: authSvc},
		User:    &UserHandler{Users: userSvc},
	}
}

func (env *testEnv) jsonRequest(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return env.E.NewContext(req, rec), rec
}

func requireHTTPError(t *testing.T, err error, code int) *echo.HTTPError {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected *echo.HTTPError, got %v", err)
	require.Equal(t, code, he.Code)
	return he
}
