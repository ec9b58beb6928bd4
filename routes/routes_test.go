package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"reminders-backend/config"
	"reminders-backend/models"
	"reminders-backend/services"
)

type nullDirectory struct{}

func (nullDirectory) Lookup(context.Context, string) (*services.UserInfo, error) {
	return nil, nil
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Reminder{}); err != nil {
		t.Fatal(err)
	}
	config.DB = db

	cfg := &config.Config{
		FrontendAddress: "http://localhost:3000",
		AuthKey:         "shared-secret",
		Port:            "8080",
		CheckInterval:   time.Minute,
	}
	return SetupRouter(cfg, nullDirectory{})
}

func request(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRejectsMissingToken(t *testing.T) {
	r := setupRouter(t)
	if w := request(r, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestAuthRejectsWrongToken(t *testing.T) {
	r := setupRouter(t)
	if w := request(r, "Bearer wrong-secret"); w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	// Scheme must be Bearer.
	if w := request(r, "shared-secret"); w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestHealthWithValidToken(t *testing.T) {
	r := setupRouter(t)
	w := request(r, "Bearer shared-secret")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Body.String() != "OK" {
		t.Fatalf("body = %q, want OK", w.Body.String())
	}
}

func TestAuthGuardsReminderRoutes(t *testing.T) {
	r := setupRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/reminders?userId=u1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/reminders?userId=u1", nil)
	req.Header.Set("Authorization", "Bearer shared-secret")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}
