package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskdeck/backend/domain"
	"github.com/taskdeck/backend/pkg/token"
)

type mockUserRepo struct {
	GetByIDFunc    func(ctx context.Context, id string) (*domain.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
	CreateFunc     func(ctx context.Context, user *domain.User) error
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	user.ID = "generated-id"
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	return nil
}

type mockRevocations struct {
	RevokeFunc func(ctx context.Context, tokenID string, expiresAt time.Time) error
	revoked    map[string]time.Time
}

func (m *mockRevocations) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, tokenID, expiresAt)
	}
	if m.revoked == nil {
		m.revoked = make(map[string]time.Time)
	}
	m.revoked[tokenID] = expiresAt
	return nil
}

func (m *mockRevocations) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	_, ok := m.revoked[tokenID]
	return ok, nil
}

func newTokens(t *testing.T) *token.Manager {
	t.Helper()
	tokens, err := token.NewManager("usecase-test-secret", "taskdeck", time.Hour)
	if err != nil {
		t.Fatalf("token manager: %v", err)
	}
	return tokens
}

func TestRegisterHashesPassword(t *testing.T) {
	var stored *domain.User
	users := &mockUserRepo{
		CreateFunc: func(ctx context.Context, user *domain.User) error {
			user.ID = "user-1"
			stored = user
			return nil
		},
	}
	uc := New(users, newTokens(t), &mockRevocations{}, nil)

	user, signed, err := uc.Register(context.Background(), "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if signed == "" {
		t.Fatalf("expected a session token")
	}
	if stored == nil {
		t.Fatalf("expected user to be persisted")
	}
	if strings.Contains(stored.PasswordHash, "secret1") {
		t.Fatalf("plaintext password leaked into the stored hash")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")); err != nil {
		t.Fatalf("stored hash does not verify the password: %v", err)
	}
	if user.ID != "user-1" {
		t.Fatalf("expected repository-assigned id, got %q", user.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := &mockUserRepo{
		GetByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: "existing", Email: email}, nil
		},
	}
	uc := New(users, newTokens(t), &mockRevocations{}, nil)

	if _, _, err := uc.Register(context.Background(), "a@x.com", "secret1"); !domain.IsDomainError(err, domain.ErrCodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestRegisterDuplicateEmailRace(t *testing.T) {
	// The lookup misses but the unique constraint fires on insert.
	users := &mockUserRepo{
		CreateFunc: func(ctx context.Context, user *domain.User) error {
			return domain.ErrEmailTaken
		},
	}
	uc := New(users, newTokens(t), &mockRevocations{}, nil)

	if _, _, err := uc.Register(context.Background(), "a@x.com", "secret1"); !domain.IsDomainError(err, domain.ErrCodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	users := &mockUserRepo{
		GetByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			if email == "a@x.com" {
				return &domain.User{ID: "user-1", Email: email, PasswordHash: string(hash)}, nil
			}
			return nil, domain.ErrUserNotFound
		},
	}
	uc := New(users, newTokens(t), &mockRevocations{}, nil)

	_, _, wrongPassword := uc.Login(context.Background(), "a@x.com", "wrong-password")
	_, _, unknownEmail := uc.Login(context.Background(), "b@x.com", "anything")

	if wrongPassword == nil || unknownEmail == nil {
		t.Fatalf("expected both logins to fail")
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Fatalf("error messages differ: %q vs %q", wrongPassword, unknownEmail)
	}
	if !domain.IsDomainError(wrongPassword, domain.ErrCodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", wrongPassword)
	}
}

func TestLoginIssuesTokenForTheRightUser(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	users := &mockUserRepo{
		GetByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: "user-1", Email: email, PasswordHash: string(hash)}, nil
		},
	}
	tokens := newTokens(t)
	uc := New(users, tokens, &mockRevocations{}, nil)

	_, signed, err := uc.Login(context.Background(), "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := tokens.Verify(signed)
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Fatalf("token bound to %q, expected user-1", claims.UserID)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	tokens := newTokens(t)
	revocations := &mockRevocations{}
	uc := New(&mockUserRepo{}, tokens, revocations, nil)

	signed, claims, err := tokens.Issue("user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if err := uc.Logout(context.Background(), signed); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if revoked, _ := revocations.IsRevoked(context.Background(), claims.TokenID); !revoked {
		t.Fatalf("expected token id to be revoked")
	}
}

func TestLogoutIgnoresInvalidToken(t *testing.T) {
	revoked := false
	revocations := &mockRevocations{
		RevokeFunc: func(context.Context, string, time.Time) error {
			revoked = true
			return nil
		},
	}
	uc := New(&mockUserRepo{}, newTokens(t), revocations, nil)

	if err := uc.Logout(context.Background(), "garbage"); err != nil {
		t.Fatalf("logout with invalid token must succeed, got %v", err)
	}
	if err := uc.Logout(context.Background(), ""); err != nil {
		t.Fatalf("logout without token must succeed, got %v", err)
	}
	if revoked {
		t.Fatalf("nothing should have been revoked")
	}
}
