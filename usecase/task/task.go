package task

import (
	"context"

	"go.uber.org/zap"

	"github.com/taskdeck/backend/domain"
	"github.com/taskdeck/backend/repository"
)

// UseCase exposes owner-scoped task operations. The owner id always comes
// from the authenticated identity, never from request input.
type UseCase struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		logger: logger,
	}
}

// List returns one page of the owner's tasks and the total match count.
func (uc *UseCase) List(ctx context.Context, ownerID string, filter repository.TaskFilter) ([]domain.Task, int, error) {
	return uc.tasks.ListOwned(ctx, ownerID, filter)
}

func (uc *UseCase) Get(ctx context.Context, ownerID, id string) (*domain.Task, error) {
	return uc.tasks.GetOwned(ctx, ownerID, id)
}

func (uc *UseCase) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	created, err := uc.tasks.Create(ctx, task)
	if err != nil {
		return nil, err
	}
	uc.logger.Info("task created",
		zap.String("task_id", created.ID),
		zap.String("user_id", created.UserID))
	return created, nil
}

func (uc *UseCase) Update(ctx context.Context, ownerID, id string, patch domain.TaskPatch) (*domain.Task, error) {
	return uc.tasks.UpdateOwned(ctx, ownerID, id, patch)
}

func (uc *UseCase) Delete(ctx context.Context, ownerID, id string) error {
	return uc.tasks.DeleteOwned(ctx, ownerID, id)
}

// BulkStatus moves the owned subset of ids to the target status and returns
// how many rows changed. Ids that are unknown or owned by someone else are
// skipped silently.
func (uc *UseCase) BulkStatus(ctx context.Context, ownerID string, ids []string, status domain.TaskStatus) (int64, error) {
	count, err := uc.tasks.UpdateStatusOwned(ctx, ownerID, ids, status)
	if err != nil {
		return 0, err
	}
	if count < int64(len(ids)) {
		uc.logger.Debug("bulk status skipped unowned or missing tasks",
			zap.String("user_id", ownerID),
			zap.Int("requested", len(ids)),
			zap.Int64("updated", count))
	}
	return count, nil
}
