package repository

import (
	"context"

	"github.com/taskdeck/backend/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// GetByEmail performs a case-sensitive exact match.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create persists a new user and fills in server-assigned fields.
	// A duplicate email surfaces as domain.ErrEmailTaken.
	Create(ctx context.Context, user *domain.User) error
}
