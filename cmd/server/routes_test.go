package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"brixium.backend/internal/interfaces/http/handlers"
)

func testRouteDeps(auth gin.HandlerFunc) routeDeps {
	return routeDeps{
		authHandler:         &handlers.AuthHandler{},
		accountHandler:      &handlers.AccountHandler{},
		ledgerHandler:       &handlers.LedgerHandler{},
		kycHandler:          &handlers.KYCHandler{},
		withdrawalHandler:   &handlers.WithdrawalHandler{},
		notificationHandler: &handlers.NotificationHandler{},
		settingsHandler:     &handlers.SettingsHandler{},
		adminHandler:        &handlers.AdminHandler{},
		authMiddleware:      auth,
		idempotencyTTL:      time.Hour,
	}
}

func TestRegisterAPIV1Routes_RegistersKeyRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	registerAPIV1Routes(r, testRouteDeps(func(c *gin.Context) { c.Next() }))

	routes := r.Routes()
	if len(routes) < 40 {
		t.Fatalf("expected many routes registered, got %d", len(routes))
	}

	expects := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/auth/signup"},
		{http.MethodPost, "/api/v1/auth/login"},
		{http.MethodPost, "/api/v1/auth/admin/login"},
		{http.MethodPost, "/api/v1/auth/refresh"},
		{http.MethodPost, "/api/v1/auth/logout"},
		{http.MethodGet, "/api/v1/settings/public"},
		{http.MethodGet, "/api/v1/exchange/rates"},
		{http.MethodGet, "/api/v1/me"},
		{http.MethodPut, "/api/v1/me/settings"},
		{http.MethodPost, "/api/v1/transfers"},
		{http.MethodGet, "/api/v1/transfers/recipient"},
		{http.MethodPost, "/api/v1/exchange"},
		{http.MethodGet, "/api/v1/exchange/quote"},
		{http.MethodPost, "/api/v1/withdrawals"},
		{http.MethodPost, "/api/v1/kyc"},
		{http.MethodGet, "/api/v1/fees/quote"},
		{http.MethodPost, "/api/v1/notifications/:id/read"},
		{http.MethodPost, "/api/v1/admin/users/:id/fund"},
		{http.MethodPost, "/api/v1/admin/users/:id/deduct"},
		{http.MethodPut, "/api/v1/admin/users/:id/kyc"},
		{http.MethodPost, "/api/v1/admin/kyc/:id/review"},
		{http.MethodPost, "/api/v1/admin/withdrawals/:id/process"},
		{http.MethodDelete, "/api/v1/admin/fees/:id"},
		{http.MethodPut, "/api/v1/admin/settings"},
		{http.MethodGet, "/api/v1/admin/dashboard"},
	}

	seen := make(map[string]bool, len(routes))
	for _, rt := range routes {
		seen[rt.Method+" "+rt.Path] = true
	}
	for _, e := range expects {
		if !seen[e.method+" "+e.path] {
			t.Fatalf("missing route %s %s", e.method, e.path)
		}
	}
}

func TestRegisterAPIV1Routes_RouteResponds(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	registerAPIV1Routes(r, testRouteDeps(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusUnauthorized)
	}))

	for _, path := range []string{"/api/v1/me", "/api/v1/admin/dashboard"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for %s, got %d", path, rec.Code)
		}
	}
}
