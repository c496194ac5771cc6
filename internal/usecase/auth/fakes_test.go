package auth

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	domainAccount "github.com/Despicable-at/robot-delivery-backend/internal/domain/account"
)

type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*domainAccount.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[uuid.UUID]*domainAccount.Account)}
}

func (r *fakeAccountRepo) Create(_ context.Context, acc *domainAccount.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.accounts {
		if existing.Email == acc.Email {
			return domainAccount.ErrEmailTaken
		}
	}
	if acc.ID == uuid.Nil {
		acc.ID = uuid.New()
	}
	acc.CreatedAt = time.Now()
	copied := *acc
	r.accounts[acc.ID] = &copied
	return nil
}

func (r *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*domainAccount.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, acc := range r.accounts {
		if acc.Email == email {
			copied := *acc
			return &copied, nil
		}
	}
	return nil, domainAccount.ErrAccountNotFound
}

func (r *fakeAccountRepo) GetByID(_ context.Context, accountID uuid.UUID) (*domainAccount.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	acc, ok := r.accounts[accountID]
	if !ok {
		return nil, domainAccount.ErrAccountNotFound
	}
	copied := *acc
	return &copied, nil
}

func (r *fakeAccountRepo) GetAll(_ context.Context) ([]*domainAccount.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*domainAccount.Account, 0, len(r.accounts))
	for _, acc := range r.accounts {
		copied := *acc
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeAccountRepo) UpdatePassword(_ context.Context, accountID uuid.UUID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	acc, ok := r.accounts[accountID]
	if !ok {
		return domainAccount.ErrAccountNotFound
	}
	acc.PasswordHash = passwordHash
	return nil
}

func (r *fakeAccountRepo) UpdateRobotPIN(_ context.Context, accountID uuid.UUID, pinHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	acc, ok := r.accounts[accountID]
	if !ok {
		return domainAccount.ErrAccountNotFound
	}
	acc.RobotPINHash = &pinHash
	return nil
}

func (r *fakeAccountRepo) setVerified(accountID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if acc, ok := r.accounts[accountID]; ok {
		acc.IsVerified = true
	}
}

type fakeCredentialRepo struct {
	mu            sync.Mutex
	verifications map[uuid.UUID]*domainAccount.EmailVerification
	resets        map[uuid.UUID]*domainAccount.PasswordReset
	accounts      *fakeAccountRepo
	sessions      *fakeSessionRepo
	staleCalls    int
}

func newFakeCredentialRepo(accounts *fakeAccountRepo, sessions *fakeSessionRepo) *fakeCredentialRepo {
	return &fakeCredentialRepo{
		verifications: make(map[uuid.UUID]*domainAccount.EmailVerification),
		resets:        make(map[uuid.UUID]*domainAccount.PasswordReset),
		accounts:      accounts,
		sessions:      sessions,
	}
}

func (r *fakeCredentialRepo) CreateVerification(_ context.Context, v *domainAccount.EmailVerification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	v.CreatedAt = time.Now()
	copied := *v
	r.verifications[v.ID] = &copied
	return nil
}

func (r *fakeCredentialRepo) GetActiveVerification(_ context.Context, accountID uuid.UUID) (*domainAccount.EmailVerification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var active []*domainAccount.EmailVerification
	for _, v := range r.verifications {
		if v.AccountID == accountID && v.IsActive() {
			active = append(active, v)
		}
	}
	if len(active) == 0 {
		return nil, domainAccount.ErrVerificationNotFound
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].CreatedAt.After(active[j].CreatedAt)
	})
	copied := *active[0]
	return &copied, nil
}

func (r *fakeCredentialRepo) ConsumeVerification(_ context.Context, verificationID, accountID uuid.UUID) error {
	r.mu.Lock()
	v, ok := r.verifications[verificationID]
	if ok {
		v.Used = true
	}
	r.mu.Unlock()

	r.accounts.setVerified(accountID)
	return nil
}

func (r *fakeCredentialRepo) CreateReset(_ context.Context, reset *domainAccount.PasswordReset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if reset.ID == uuid.Nil {
		reset.ID = uuid.New()
	}
	reset.CreatedAt = time.Now()
	copied := *reset
	r.resets[reset.ID] = &copied
	return nil
}

func (r *fakeCredentialRepo) ListActiveResets(_ context.Context) ([]*domainAccount.PasswordReset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*domainAccount.PasswordReset
	for _, reset := range r.resets {
		if reset.IsActive() {
			copied := *reset
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeCredentialRepo) ConsumeResetAndRevoke(ctx context.Context, resetID, accountID uuid.UUID, passwordHash string) error {
	r.mu.Lock()
	if reset, ok := r.resets[resetID]; ok {
		reset.Used = true
	}
	r.mu.Unlock()

	if err := r.accounts.UpdatePassword(ctx, accountID, passwordHash); err != nil {
		return err
	}
	return r.sessions.DeleteAllForAccount(ctx, accountID)
}

func (r *fakeCredentialRepo) DeleteStale(_ context.Context, olderThan time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.staleCalls++
	cutoff := time.Now().Add(-olderThan)
	for id, v := range r.verifications {
		if v.ExpiresAt.Before(cutoff) || (v.Used && v.CreatedAt.Before(cutoff)) {
			delete(r.verifications, id)
		}
	}
	for id, reset := range r.resets {
		if reset.ExpiresAt.Before(cutoff) || (reset.Used && reset.CreatedAt.Before(cutoff)) {
			delete(r.resets, id)
		}
	}
	return nil
}

type fakeSessionRepo struct {
	mu           sync.Mutex
	sessions     map[uuid.UUID]*domainAccount.Session
	expiredCalls int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uuid.UUID]*domainAccount.Session)}
}

func (r *fakeSessionRepo) Create(_ context.Context, s *domainAccount.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.CreatedAt = time.Now()
	copied := *s
	r.sessions[s.ID] = &copied
	return nil
}

func (r *fakeSessionRepo) ListActive(_ context.Context) ([]*domainAccount.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*domainAccount.Session
	for _, s := range r.sessions {
		if !s.IsExpired() {
			copied := *s
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, sessionID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[sessionID]; !ok {
		return domainAccount.ErrSessionNotFound
	}
	delete(r.sessions, sessionID)
	return nil
}

func (r *fakeSessionRepo) DeleteAllForAccount(_ context.Context, accountID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, s := range r.sessions {
		if s.AccountID == accountID {
			delete(r.sessions, id)
		}
	}
	return nil
}

func (r *fakeSessionRepo) DeleteExpired(_ context.Context, _ time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.expiredCalls++
	for id, s := range r.sessions {
		if s.IsExpired() {
			delete(r.sessions, id)
		}
	}
	return nil
}

func (r *fakeSessionRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

type fakeMailer struct {
	mu         sync.Mutex
	codes      map[string]string
	resetLinks map[string]string
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{
		codes:      make(map[string]string),
		resetLinks: make(map[string]string),
	}
}

func (m *fakeMailer) SendVerificationCode(_ context.Context, toEmail, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes[toEmail] = code
	return nil
}

func (m *fakeMailer) SendPasswordResetLink(_ context.Context, toEmail, resetLink string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetLinks[toEmail] = resetLink
	return nil
}

func (m *fakeMailer) lastCode(email string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.codes[email]
}

func (m *fakeMailer) lastResetLink(email string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resetLinks[email]
}
