package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Despicable-at/robot-delivery-backend/internal/config"
	domainAccount "github.com/Despicable-at/robot-delivery-backend/internal/domain/account"
	"github.com/Despicable-at/robot-delivery-backend/internal/usecase/auth"
	appErrors "github.com/Despicable-at/robot-delivery-backend/pkg/errors"
)

type stubAccountRepo struct {
	account *domainAccount.Account
}

func (r *stubAccountRepo) Create(context.Context, *domainAccount.Account) error { return nil }

func (r *stubAccountRepo) GetByEmail(_ context.Context, email string) (*domainAccount.Account, error) {
	if r.account != nil && r.account.Email == email {
		return r.account, nil
	}
	return nil, domainAccount.ErrAccountNotFound
}

func (r *stubAccountRepo) GetByID(context.Context, uuid.UUID) (*domainAccount.Account, error) {
	return nil, domainAccount.ErrAccountNotFound
}

func (r *stubAccountRepo) GetAll(context.Context) ([]*domainAccount.Account, error) {
	return nil, nil
}

func (r *stubAccountRepo) UpdatePassword(context.Context, uuid.UUID, string) error { return nil }
func (r *stubAccountRepo) UpdateRobotPIN(context.Context, uuid.UUID, string) error { return nil }

type stubCredentialRepo struct {
	created int
}

func (r *stubCredentialRepo) CreateVerification(context.Context, *domainAccount.EmailVerification) error {
	return nil
}

func (r *stubCredentialRepo) GetActiveVerification(context.Context, uuid.UUID) (*domainAccount.EmailVerification, error) {
	return nil, domainAccount.ErrVerificationNotFound
}

func (r *stubCredentialRepo) ConsumeVerification(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}

func (r *stubCredentialRepo) CreateReset(context.Context, *domainAccount.PasswordReset) error {
	r.created++
	return nil
}

func (r *stubCredentialRepo) ListActiveResets(context.Context) ([]*domainAccount.PasswordReset, error) {
	return nil, nil
}

func (r *stubCredentialRepo) ConsumeResetAndRevoke(context.Context, uuid.UUID, uuid.UUID, string) error {
	return nil
}

func (r *stubCredentialRepo) DeleteStale(context.Context, time.Duration) error { return nil }

type stubSessionRepo struct{}

func (r *stubSessionRepo) Create(context.Context, *domainAccount.Session) error { return nil }
func (r *stubSessionRepo) ListActive(context.Context) ([]*domainAccount.Session, error) {
	return nil, nil
}
func (r *stubSessionRepo) Delete(context.Context, uuid.UUID) error              { return nil }
func (r *stubSessionRepo) DeleteAllForAccount(context.Context, uuid.UUID) error { return nil }
func (r *stubSessionRepo) DeleteExpired(context.Context, time.Duration) error   { return nil }

type stubMailer struct {
	sent int
}

func (m *stubMailer) SendVerificationCode(context.Context, string, string) error { return nil }
func (m *stubMailer) SendPasswordResetLink(context.Context, string, string) error {
	m.sent++
	return nil
}

func testAuthConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			AccessSecret:      "test-access-secret",
			AccessTTL:         15 * time.Minute,
			RefreshSecret:     "test-refresh-secret",
			RefreshTTL:        7 * 24 * time.Hour,
			RememberMeTTL:     30 * 24 * time.Hour,
			HashCost:          bcrypt.MinCost,
			VerificationTTL:   15 * time.Minute,
			PasswordResetTTL:  15 * time.Minute,
			PasswordResetBase: "https://delivery.example.com",
		},
	}
}

func newForgotPasswordRouter(accounts *stubAccountRepo, creds *stubCredentialRepo, mail *stubMailer) *gin.Engine {
	gin.SetMode(gin.TestMode)

	service := auth.NewService(accounts, creds, &stubSessionRepo{}, mail, testAuthConfig())
	handler := NewAuthHandler(service)

	router := gin.New()
	handler.RegisterRoutes(router.Group("/api"))
	return router
}

func postForgotPassword(router *gin.Engine, email string) *httptest.ResponseRecorder {
	body := strings.NewReader(`{"email":"` + email + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/forgot-password", body)
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestForgotPasswordResponseIsUniform(t *testing.T) {
	known := &domainAccount.Account{
		ID:         uuid.New(),
		Email:      "ama@example.com",
		IsVerified: true,
	}
	accounts := &stubAccountRepo{account: known}
	creds := &stubCredentialRepo{}
	mail := &stubMailer{}
	router := newForgotPasswordRouter(accounts, creds, mail)

	knownResp := postForgotPassword(router, "ama@example.com")
	unknownResp := postForgotPassword(router, "nobody@example.com")

	if knownResp.Code != http.StatusOK || unknownResp.Code != http.StatusOK {
		t.Fatalf("status codes differ or are not 200: known=%d unknown=%d",
			knownResp.Code, unknownResp.Code)
	}
	if knownResp.Body.String() != unknownResp.Body.String() {
		t.Errorf("response bodies differ:\nknown:   %s\nunknown: %s",
			knownResp.Body.String(), unknownResp.Body.String())
	}

	// Behind the identical responses the side effects diverge.
	if creds.created != 1 || mail.sent != 1 {
		t.Errorf("known email: resets created = %d, mails sent = %d, want 1 and 1",
			creds.created, mail.sent)
	}
}

func TestRespondWithErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"email taken", appErrors.ErrEmailTaken, http.StatusConflict},
		{"invalid credentials", appErrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{"invalid token", appErrors.ErrInvalidToken, http.StatusUnauthorized},
		{"not verified", appErrors.ErrNotVerified, http.StatusForbidden},
		{"account not found", appErrors.ErrAccountNotFound, http.StatusNotFound},
		{"already verified", appErrors.ErrAlreadyVerified, http.StatusBadRequest},
		{"bad code", appErrors.ErrInvalidOrExpiredCode, http.StatusBadRequest},
		{"bad reset token", appErrors.ErrInvalidOrExpiredReset, http.StatusBadRequest},
		{"app error", appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", nil), http.StatusBadRequest},
		{"unknown error", context.DeadlineExceeded, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(recorder)
			c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

			respondWithError(c, tt.err)

			if recorder.Code != tt.status {
				t.Errorf("status = %d, want %d", recorder.Code, tt.status)
			}
		})
	}
}
