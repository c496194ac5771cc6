package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Despicable-at/robot-delivery-backend/internal/config"
	domainAccount "github.com/Despicable-at/robot-delivery-backend/internal/domain/account"
	"github.com/Despicable-at/robot-delivery-backend/internal/logger"
	"github.com/Despicable-at/robot-delivery-backend/internal/mailer"
	appErrors "github.com/Despicable-at/robot-delivery-backend/pkg/errors"
	"github.com/Despicable-at/robot-delivery-backend/pkg/utils"
)

// Service orchestrates signup, verification, login, refresh, logout and
// password reset as state transitions over accounts, ephemeral credentials
// and the session registry.
type Service struct {
	accountRepo domainAccount.Repository
	credRepo    domainAccount.CredentialRepository
	sessionRepo domainAccount.SessionRepository
	mail        mailer.Mailer
	config      *config.Config

	// timingPad is compared against on the unknown-email login path so that
	// path costs one bcrypt compare, the same as a wrong password.
	timingPad string
}

// NewService creates a new authentication service
func NewService(
	accountRepo domainAccount.Repository,
	credRepo domainAccount.CredentialRepository,
	sessionRepo domainAccount.SessionRepository,
	mail mailer.Mailer,
	cfg *config.Config,
) *Service {
	timingPad, _ := utils.HashSecret("login-timing-pad", cfg.Auth.HashCost)

	return &Service{
		accountRepo: accountRepo,
		credRepo:    credRepo,
		sessionRepo: sessionRepo,
		mail:        mail,
		config:      cfg,
		timingPad:   timingPad,
	}
}

// Signup creates an unverified account and emails a single-use verification
// code. A taken email is the one signup failure reported distinctly.
func (s *Service) Signup(ctx context.Context, req *SignupRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if err := utils.ValidatePassword(req.Password); err != nil {
		return appErrors.NewAppError("WEAK_PASSWORD", err.Error(), nil)
	}

	existing, err := s.accountRepo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, domainAccount.ErrAccountNotFound) {
		return fmt.Errorf("failed to check existing account: %w", err)
	}
	if existing != nil {
		logger.Warn("Signup attempt with existing email",
			zap.String("email", req.Email),
			zap.String("event", "signup_failed_duplicate_email"),
		)
		return appErrors.ErrEmailTaken
	}

	passwordHash, err := utils.HashSecret(req.Password, s.config.Auth.HashCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	acc := &domainAccount.Account{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		OfficeID:     req.OfficeID,
		PasswordHash: passwordHash,
		IsVerified:   false,
	}

	if err := s.accountRepo.Create(ctx, acc); err != nil {
		if errors.Is(err, domainAccount.ErrEmailTaken) {
			return appErrors.ErrEmailTaken
		}
		return err
	}

	code, err := utils.GenerateVerificationCode()
	if err != nil {
		return err
	}

	codeHash, err := utils.HashSecret(code, s.config.Auth.HashCost)
	if err != nil {
		return fmt.Errorf("failed to hash verification code: %w", err)
	}

	verification := &domainAccount.EmailVerification{
		AccountID: acc.ID,
		CodeHash:  codeHash,
		ExpiresAt: time.Now().Add(s.config.Auth.VerificationTTL),
	}
	if err := s.credRepo.CreateVerification(ctx, verification); err != nil {
		return fmt.Errorf("failed to create email verification: %w", err)
	}

	if err := s.mail.SendVerificationCode(ctx, acc.Email, code); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}

	logger.Info("Account registered",
		zap.String("account_id", acc.ID.String()),
		zap.String("email", acc.Email),
		zap.String("event", "account_registered"),
	)

	return nil
}

// VerifyEmail consumes the latest active verification code and flips the
// account to verified in one transaction. A missing active record and a code
// mismatch are reported identically.
func (s *Service) VerifyEmail(ctx context.Context, req *VerifyEmailRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	acc, err := s.accountRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domainAccount.ErrAccountNotFound) {
			return appErrors.ErrAccountNotFound
		}
		return err
	}

	if acc.IsVerified {
		return appErrors.ErrAlreadyVerified
	}

	verification, err := s.credRepo.GetActiveVerification(ctx, acc.ID)
	if err != nil {
		if errors.Is(err, domainAccount.ErrVerificationNotFound) {
			return appErrors.ErrInvalidOrExpiredCode
		}
		return err
	}

	if !utils.CheckSecret(verification.CodeHash, req.Code) {
		logger.Warn("Email verification failed",
			zap.String("account_id", acc.ID.String()),
			zap.String("event", "verification_failed_code_mismatch"),
		)
		return appErrors.ErrInvalidOrExpiredCode
	}

	if err := s.credRepo.ConsumeVerification(ctx, verification.ID, acc.ID); err != nil {
		return fmt.Errorf("failed to consume verification: %w", err)
	}

	logger.Info("Email verified",
		zap.String("account_id", acc.ID.String()),
		zap.String("event", "email_verified"),
	)

	return nil
}

// Login issues an access token and a refresh token and registers the refresh
// session. Unknown email and wrong password produce the same error; an
// unverified account is rejected before the password is checked so the
// response carries no credential-correctness signal.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*TokenPairResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	acc, err := s.accountRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domainAccount.ErrAccountNotFound) {
			utils.CheckSecret(s.timingPad, req.Password)
			logger.Warn("Login attempt with unknown email",
				zap.String("email", req.Email),
				zap.String("event", "login_failed_unknown_email"),
			)
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !acc.IsVerified {
		logger.Warn("Login attempt on unverified account",
			zap.String("account_id", acc.ID.String()),
			zap.String("event", "login_failed_not_verified"),
		)
		return nil, appErrors.ErrNotVerified
	}

	if !utils.CheckSecret(acc.PasswordHash, req.Password) {
		logger.Warn("Login attempt with invalid password",
			zap.String("account_id", acc.ID.String()),
			zap.String("event", "login_failed_invalid_password"),
		)
		return nil, appErrors.ErrInvalidCredentials
	}

	accessToken, err := utils.IssueAccessToken(acc.ID, acc.Email,
		s.config.Auth.AccessSecret, s.config.Auth.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	refreshTTL := s.config.Auth.RefreshTTL
	if req.RememberMe {
		refreshTTL = s.config.Auth.RememberMeTTL
	}

	refreshToken, err := utils.IssueRefreshToken(acc.ID, s.config.Auth.RefreshSecret, refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	tokenHash, err := utils.HashSecret(refreshToken, s.config.Auth.HashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash refresh token: %w", err)
	}

	session := &domainAccount.Session{
		AccountID: acc.ID,
		TokenHash: tokenHash,
		ExpiresAt: time.Now().Add(refreshTTL),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to register session: %w", err)
	}

	logger.Info("Account logged in",
		zap.String("account_id", acc.ID.String()),
		zap.Bool("remember_me", req.RememberMe),
		zap.String("event", "login_success"),
	)

	return &TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh mints a new access token. The presented secret must both resolve
// to a registered session and carry a valid refresh signature; either check
// alone is insufficient. The refresh token itself is not rotated.
func (s *Service) Refresh(ctx context.Context, req *RefreshRequest) (*AccessTokenResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	session, err := s.findSessionByToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, appErrors.ErrInvalidToken
	}

	claims, err := utils.ParseRefreshToken(req.RefreshToken, s.config.Auth.RefreshSecret)
	if err != nil {
		return nil, appErrors.ErrInvalidToken
	}

	acc, err := s.accountRepo.GetByID(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, domainAccount.ErrAccountNotFound) {
			return nil, appErrors.ErrInvalidToken
		}
		return nil, err
	}

	accessToken, err := utils.IssueAccessToken(acc.ID, acc.Email,
		s.config.Auth.AccessSecret, s.config.Auth.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	return &AccessTokenResponse{AccessToken: accessToken}, nil
}

// Logout deletes the matching session. The caller always sees success, even
// when nothing matched.
func (s *Service) Logout(ctx context.Context, req *LogoutRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	session, err := s.findSessionByToken(ctx, req.RefreshToken)
	if err != nil {
		return err
	}
	if session == nil {
		return nil
	}

	if err := s.sessionRepo.Delete(ctx, session.ID); err != nil {
		if errors.Is(err, domainAccount.ErrSessionNotFound) {
			return nil
		}
		return err
	}

	logger.Info("Session revoked",
		zap.String("account_id", session.AccountID.String()),
		zap.String("event", "logout"),
	)

	return nil
}

// ForgotPassword issues a reset token when the account exists. The outcome
// visible to the caller is identical either way.
func (s *Service) ForgotPassword(ctx context.Context, req *ForgotPasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	acc, err := s.accountRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domainAccount.ErrAccountNotFound) {
			logger.Info("Password reset requested for unknown email",
				zap.String("email", req.Email),
				zap.String("event", "password_reset_unknown_email"),
			)
			return nil
		}
		return fmt.Errorf("failed to retrieve account: %w", err)
	}

	token, err := utils.GenerateResetToken()
	if err != nil {
		return err
	}

	tokenHash, err := utils.HashSecret(token, s.config.Auth.HashCost)
	if err != nil {
		return fmt.Errorf("failed to hash reset token: %w", err)
	}

	reset := &domainAccount.PasswordReset{
		AccountID: acc.ID,
		TokenHash: tokenHash,
		ExpiresAt: time.Now().Add(s.config.Auth.PasswordResetTTL),
	}
	if err := s.credRepo.CreateReset(ctx, reset); err != nil {
		return fmt.Errorf("failed to create reset record: %w", err)
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.config.Auth.PasswordResetBase, token)
	if err := s.mail.SendPasswordResetLink(ctx, acc.Email, resetLink); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}

	logger.Info("Password reset token issued",
		zap.String("account_id", acc.ID.String()),
		zap.Time("expires_at", reset.ExpiresAt),
		zap.String("event", "password_reset_issued"),
	)

	return nil
}

// ResetPassword resolves the presented token against every live reset record
// by hash comparison, then replaces the password, consumes the record and
// revokes all sessions for the account in one transaction.
func (s *Service) ResetPassword(ctx context.Context, req *ResetPasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if err := utils.ValidatePassword(req.NewPassword); err != nil {
		return appErrors.NewAppError("WEAK_PASSWORD", err.Error(), nil)
	}

	resets, err := s.credRepo.ListActiveResets(ctx)
	if err != nil {
		return err
	}

	var match *domainAccount.PasswordReset
	for _, reset := range resets {
		if utils.CheckSecret(reset.TokenHash, req.Token) {
			match = reset
			break
		}
	}
	if match == nil {
		logger.Warn("Password reset attempt with invalid token",
			zap.String("event", "password_reset_failed_invalid_token"),
		)
		return appErrors.ErrInvalidOrExpiredReset
	}

	passwordHash, err := utils.HashSecret(req.NewPassword, s.config.Auth.HashCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.credRepo.ConsumeResetAndRevoke(ctx, match.ID, match.AccountID, passwordHash); err != nil {
		return fmt.Errorf("failed to complete password reset: %w", err)
	}

	logger.Info("Password reset completed",
		zap.String("account_id", match.AccountID.String()),
		zap.String("event", "password_reset_success"),
	)

	return nil
}

// findSessionByToken resolves a presented refresh secret against the
// registry. Hashes are salted, so there is no indexable lookup: every
// unexpired row is compared until a match or exhaustion. Cost is O(active
// sessions).
func (s *Service) findSessionByToken(ctx context.Context, token string) (*domainAccount.Session, error) {
	sessions, err := s.sessionRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	for _, session := range sessions {
		if utils.CheckSecret(session.TokenHash, token) {
			return session, nil
		}
	}

	return nil, nil
}
