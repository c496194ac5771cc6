package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Despicable-at/robot-delivery-backend/internal/config"
	domainAccount "github.com/Despicable-at/robot-delivery-backend/internal/domain/account"
	appErrors "github.com/Despicable-at/robot-delivery-backend/pkg/errors"
	"github.com/Despicable-at/robot-delivery-backend/pkg/utils"
)

type fakeAccountRepo struct {
	accounts map[uuid.UUID]*domainAccount.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[uuid.UUID]*domainAccount.Account)}
}

func (r *fakeAccountRepo) add(acc *domainAccount.Account) {
	if acc.ID == uuid.Nil {
		acc.ID = uuid.New()
	}
	r.accounts[acc.ID] = acc
}

func (r *fakeAccountRepo) Create(_ context.Context, acc *domainAccount.Account) error {
	r.add(acc)
	return nil
}

func (r *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*domainAccount.Account, error) {
	for _, acc := range r.accounts {
		if acc.Email == email {
			return acc, nil
		}
	}
	return nil, domainAccount.ErrAccountNotFound
}

func (r *fakeAccountRepo) GetByID(_ context.Context, accountID uuid.UUID) (*domainAccount.Account, error) {
	acc, ok := r.accounts[accountID]
	if !ok {
		return nil, domainAccount.ErrAccountNotFound
	}
	return acc, nil
}

func (r *fakeAccountRepo) GetAll(_ context.Context) ([]*domainAccount.Account, error) {
	out := make([]*domainAccount.Account, 0, len(r.accounts))
	for _, acc := range r.accounts {
		out = append(out, acc)
	}
	return out, nil
}

func (r *fakeAccountRepo) UpdatePassword(_ context.Context, accountID uuid.UUID, passwordHash string) error {
	acc, ok := r.accounts[accountID]
	if !ok {
		return domainAccount.ErrAccountNotFound
	}
	acc.PasswordHash = passwordHash
	return nil
}

func (r *fakeAccountRepo) UpdateRobotPIN(_ context.Context, accountID uuid.UUID, pinHash string) error {
	acc, ok := r.accounts[accountID]
	if !ok {
		return domainAccount.ErrAccountNotFound
	}
	acc.RobotPINHash = &pinHash
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{HashCost: bcrypt.MinCost},
	}
}

func TestGetProfileNeverExposesHashes(t *testing.T) {
	repo := newFakeAccountRepo()
	pinHash := "$2a$04$fakehash"
	acc := &domainAccount.Account{
		FirstName:    "Ama",
		LastName:     "Mensah",
		Email:        "ama@example.com",
		PasswordHash: "$2a$04$anotherfakehash",
		RobotPINHash: &pinHash,
		IsVerified:   true,
		CreatedAt:    time.Now(),
	}
	repo.add(acc)

	service := NewService(repo, testConfig())
	resp, err := service.GetProfile(context.Background(), acc.ID)
	if err != nil {
		t.Fatalf("GetProfile returned error: %v", err)
	}

	if resp.Email != "ama@example.com" {
		t.Errorf("email = %q", resp.Email)
	}
	if !resp.HasRobotPIN {
		t.Error("HasRobotPIN = false for an account with a PIN")
	}
}

func TestGetProfileUnknownAccount(t *testing.T) {
	service := NewService(newFakeAccountRepo(), testConfig())

	_, err := service.GetProfile(context.Background(), uuid.New())
	if !errors.Is(err, domainAccount.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestUpdateRobotPIN(t *testing.T) {
	repo := newFakeAccountRepo()
	acc := &domainAccount.Account{Email: "ama@example.com"}
	repo.add(acc)

	service := NewService(repo, testConfig())
	ctx := context.Background()

	if err := service.UpdateRobotPIN(ctx, acc.ID, &UpdatePINRequest{PIN: "4831"}); err != nil {
		t.Fatalf("UpdateRobotPIN returned error: %v", err)
	}

	stored := repo.accounts[acc.ID]
	if stored.RobotPINHash == nil {
		t.Fatal("PIN hash not stored")
	}
	if *stored.RobotPINHash == "4831" {
		t.Error("PIN stored as plaintext")
	}
	if !utils.CheckSecret(*stored.RobotPINHash, "4831") {
		t.Error("stored hash does not verify the original PIN")
	}
}

func TestUpdateRobotPINRejectsInvalid(t *testing.T) {
	repo := newFakeAccountRepo()
	acc := &domainAccount.Account{Email: "ama@example.com"}
	repo.add(acc)

	service := NewService(repo, testConfig())
	ctx := context.Background()

	for _, pin := range []string{"12", "12345678", "12ab", ""} {
		err := service.UpdateRobotPIN(ctx, acc.ID, &UpdatePINRequest{PIN: pin})
		var appErr *appErrors.AppError
		if !errors.As(err, &appErr) {
			t.Errorf("PIN %q: expected validation AppError, got %v", pin, err)
		}
	}

	if repo.accounts[acc.ID].RobotPINHash != nil {
		t.Error("a rejected PIN was stored")
	}
}
