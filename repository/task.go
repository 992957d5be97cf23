package repository

import (
	"context"

	"github.com/taskdeck/backend/domain"
)

// TaskFilter narrows and pages a task listing. The owner is deliberately not
// part of the filter: every TaskRepository method takes it as an explicit
// parameter so the ownership scope cannot be forgotten by a new endpoint.
type TaskFilter struct {
	Status domain.TaskStatus // empty selects all statuses
	Limit  int
	Offset int
}

type TaskRepository interface {
	// ListOwned returns one page of the owner's tasks plus the total count
	// matching the filter. Order: status (enum order), due date with nulls
	// last, newest first within ties.
	ListOwned(ctx context.Context, ownerID string, filter TaskFilter) ([]domain.Task, int, error)
	// GetOwned returns domain.ErrTaskNotFound for missing and not-owned ids alike.
	GetOwned(ctx context.Context, ownerID, id string) (*domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	// UpdateOwned applies a partial update and returns the stored row.
	UpdateOwned(ctx context.Context, ownerID, id string, patch domain.TaskPatch) (*domain.Task, error)
	DeleteOwned(ctx context.Context, ownerID, id string) error
	// UpdateStatusOwned moves the owned-and-existing subset of ids to the
	// given status and reports how many rows actually changed.
	UpdateStatusOwned(ctx context.Context, ownerID string, ids []string, status domain.TaskStatus) (int64, error)
}
