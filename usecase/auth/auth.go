package auth

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskdeck/backend/domain"
	"github.com/taskdeck/backend/pkg/token"
	"github.com/taskdeck/backend/repository"
)

// hashCost is the bcrypt work factor for stored password hashes.
const hashCost = 10

type UseCase struct {
	users       repository.UserRepository
	tokens      *token.Manager
	revocations repository.TokenRevocations
	logger      *zap.Logger
}

func New(users repository.UserRepository, tokens *token.Manager, revocations repository.TokenRevocations, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:       users,
		tokens:      tokens,
		revocations: revocations,
		logger:      logger,
	}
}

// Register creates an account and issues its first session token. A taken
// email yields domain.ErrEmailTaken, whether it is caught by the lookup or by
// the unique constraint when two registrations race.
func (uc *UseCase) Register(ctx context.Context, email, password string) (*domain.User, string, error) {
	if _, err := uc.users.GetByEmail(ctx, email); err == nil {
		return nil, "", domain.ErrEmailTaken
	} else if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	signed, _, err := uc.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}

	uc.logger.Info("user registered", zap.String("user_id", user.ID))
	return user, signed, nil
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password both return domain.ErrInvalidCredentials so the response
// never reveals which one it was.
func (uc *UseCase) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	signed, _, err := uc.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}

	return user, signed, nil
}

// Logout denylists the presented token until its natural expiry. It is
// best-effort: an absent or unverifiable token is not an error, the client
// cookie gets cleared regardless.
func (uc *UseCase) Logout(ctx context.Context, rawToken string) error {
	if rawToken == "" {
		return nil
	}
	claims, err := uc.tokens.Verify(rawToken)
	if err != nil {
		return nil
	}
	if err := uc.revocations.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		uc.logger.Error("failed to revoke session token", zap.Error(err))
		return err
	}
	return nil
}
