package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"brixium.backend/internal/domain/entities"
	"brixium.backend/internal/infrastructure/repositories"
	"brixium.backend/internal/infrastructure/seed"
	"brixium.backend/internal/infrastructure/snapshot"
	"brixium.backend/internal/interfaces/http/handlers"
	"brixium.backend/internal/interfaces/http/middleware"
	"brixium.backend/internal/usecases"
	"brixium.backend/pkg/crypto"
	"brixium.backend/pkg/jwt"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	aliceID = "user-001"
	bobID   = "user-002"
)

type testServer struct {
	router *gin.Engine
	jwt    *jwt.JWTService
	users  *repositories.UserRepository
}

// newTestServer wires every handler to a seeded in-memory store
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hasher := crypto.NewHasher(bcrypt.MinCost)
	jwtService := jwt.NewJWTService("test-secret", "brixium", 15*time.Minute, 24*time.Hour)
	store := repositories.NewStore(snapshot.NewMemoryStore())
	require.NoError(t, store.Load(context.Background(), func() (*seed.Data, error) {
		return seed.Load(time.Now().UTC(), hasher)
	}))

	uow := repositories.NewUnitOfWork(store)
	userRepo := repositories.NewUserRepository(store)
	txRepo := repositories.NewTransactionRepository(store)
	kycRepo := repositories.NewKYCRepository(store)
	wdRepo := repositories.NewWithdrawalRepository(store)
	notifRepo := repositories.NewNotificationRepository(store)
	settingsRepo := repositories.NewSettingsRepository(store)

	admin := usecases.AdminCredentials{ID: "admin-001", Email: "admin@brixium.com", Password: "adminpassword"}
	feeGate := usecases.NewFeeGate(settingsRepo)

	authH := handlers.NewAuthHandler(usecases.NewAuthUsecase(userRepo, settingsRepo, jwtService, hasher, nil, time.Hour, admin))
	accountH := handlers.NewAccountHandler(usecases.NewAccountUsecase(uow, userRepo, settingsRepo, hasher))
	ledgerH := handlers.NewLedgerHandler(usecases.NewLedgerUsecase(uow, userRepo, txRepo, notifRepo, settingsRepo, feeGate, hasher))
	kycH := handlers.NewKYCHandler(usecases.NewKYCUsecase(uow, kycRepo, userRepo, notifRepo))
	wdH := handlers.NewWithdrawalHandler(usecases.NewWithdrawalUsecase(uow, wdRepo, userRepo, txRepo, notifRepo, settingsRepo, feeGate))
	notifH := handlers.NewNotificationHandler(usecases.NewNotificationUsecase(notifRepo, userRepo))
	settingsH := handlers.NewSettingsHandler(usecases.NewSettingsUsecase(uow, settingsRepo), feeGate)
	adminH := handlers.NewAdminHandler(usecases.NewAdminUsecase(uow, userRepo, kycRepo, wdRepo, settingsRepo))

	r := gin.New()
	api := r.Group("/api/v1")
	api.POST("/auth/signup", authH.Signup)
	api.POST("/auth/login", authH.Login)
	api.POST("/auth/admin/login", authH.AdminLogin)
	api.POST("/auth/refresh", authH.Refresh)
	api.POST("/auth/logout", authH.Logout)
	api.GET("/settings/public", settingsH.Public)
	api.GET("/exchange/rates", ledgerH.Rates)

	auth := middleware.AuthMiddleware(jwtService, nil)
	customer := api.Group("", auth, middleware.RequireCustomer())
	customer.GET("/me", authH.Me)
	customer.PUT("/me/profile", accountH.UpdateProfile)
	customer.PUT("/me/settings", accountH.UpdateSettings)
	customer.PUT("/me/password", authH.ChangePassword)
	customer.GET("/transfers/recipient", ledgerH.LookupRecipient)
	customer.POST("/transfers", ledgerH.Transfer)
	customer.GET("/exchange/quote", ledgerH.Quote)
	customer.POST("/exchange", ledgerH.Exchange)
	customer.GET("/transactions", ledgerH.ListTransactions)
	customer.POST("/withdrawals", wdH.Request)
	customer.GET("/withdrawals", wdH.ListMine)
	customer.POST("/kyc", kycH.Submit)
	customer.GET("/kyc", kycH.Status)
	customer.GET("/notifications", notifH.List)
	customer.POST("/notifications/:id/read", notifH.MarkRead)
	customer.GET("/fees/quote", settingsH.FeeQuote)

	adm := api.Group("/admin", auth, middleware.RequireAdmin())
	adm.GET("/dashboard", adminH.Dashboard)
	adm.GET("/users", adminH.ListUsers)
	adm.GET("/users/:id", adminH.GetUser)
	adm.PUT("/users/:id", adminH.UpdateUser)
	adm.POST("/users/:id/fund", ledgerH.Fund)
	adm.POST("/users/:id/deduct", ledgerH.Deduct)
	adm.PUT("/users/:id/kyc", kycH.SetVerification)
	adm.POST("/users/:id/message", notifH.Message)
	adm.GET("/transactions", ledgerH.ListAllTransactions)
	adm.GET("/kyc", kycH.List)
	adm.POST("/kyc/:id/review", kycH.Review)
	adm.GET("/withdrawals", wdH.List)
	adm.POST("/withdrawals/:id/process", wdH.Process)
	adm.GET("/fees", settingsH.ListFees)
	adm.POST("/fees", settingsH.CreateFee)
	adm.PUT("/fees/:id", settingsH.UpdateFee)
	adm.DELETE("/fees/:id", settingsH.DeleteFee)
	adm.GET("/settings", settingsH.Get)
	adm.PUT("/settings", settingsH.Update)
	adm.GET("/notifications", notifH.List)

	return &testServer{router: r, jwt: jwtService, users: userRepo}
}

func (s *testServer) token(t *testing.T, id, email, role string) string {
	t.Helper()
	pair, err := s.jwt.GenerateTokenPair(id, email, role)
	require.NoError(t, err)
	return pair.AccessToken
}

func (s *testServer) alice(t *testing.T) string {
	return s.token(t, aliceID, "alice@example.com", entities.RoleUser)
}

func (s *testServer) admin(t *testing.T) string {
	return s.token(t, "admin-001", "admin@brixium.com", entities.RoleAdmin)
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, status int) map[string]interface{} {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	return decode(t, rec)
}

func statusOK(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	return expectStatus(t, rec, http.StatusOK)
}
