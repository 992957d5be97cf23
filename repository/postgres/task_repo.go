package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskdeck/backend/domain"
	"github.com/taskdeck/backend/repository"
)

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
// Every statement carries the owner predicate; there is no unscoped access path.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) ListOwned(ctx context.Context, ownerID string, filter repository.TaskFilter) ([]domain.Task, int, error) {
	// status sorts in enum declaration order (TODO, IN_PROGRESS, DONE);
	// undated tasks go after dated ones within a status group.
	const query = `
	SELECT id, user_id, title, content, status, due_date, created_at, updated_at
	FROM tasks
	WHERE user_id = $1
	  AND ($2 = '' OR status::text = $2)
	ORDER BY status ASC, due_date ASC NULLS LAST, created_at DESC
	LIMIT $3 OFFSET $4
	`
	rows, err := r.pool.Query(ctx, query, ownerID, string(filter.Status), clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, 0, err
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	const countQuery = `
	SELECT COUNT(*)
	FROM tasks
	WHERE user_id = $1
	  AND ($2 = '' OR status::text = $2)
	`
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, ownerID, string(filter.Status)).Scan(&total); err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

func (r *taskRepository) GetOwned(ctx context.Context, ownerID, id string) (*domain.Task, error) {
	const query = `
	SELECT id, user_id, title, content, status, due_date, created_at, updated_at
	FROM tasks
	WHERE id = $1 AND user_id = $2
	`
	return scanTask(r.pool.QueryRow(ctx, query, id, ownerID))
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.Status == "" {
		task.Status = domain.StatusTodo
	}

	const query = `
	INSERT INTO tasks (id, user_id, title, content, status, due_date)
	VALUES ($1, $2, $3, $4, $5::task_status, $6)
	RETURNING created_at, updated_at
	`

	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.UserID,
		task.Title,
		task.Content,
		string(task.Status),
		task.DueDate,
	).Scan(&task.CreatedAt, &task.UpdatedAt); err != nil {
		return nil, err
	}

	return task, nil
}

func (r *taskRepository) UpdateOwned(ctx context.Context, ownerID, id string, patch domain.TaskPatch) (*domain.Task, error) {
	const query = `
	UPDATE tasks
	SET title = COALESCE($3, title),
		content = COALESCE($4, content),
		status = COALESCE($5::task_status, status),
		due_date = CASE WHEN $6 THEN $7 ELSE due_date END,
		updated_at = NOW()
	WHERE id = $1 AND user_id = $2
	RETURNING id, user_id, title, content, status, due_date, created_at, updated_at
	`

	var status *string
	if patch.Status != nil {
		s := string(*patch.Status)
		status = &s
	}

	return scanTask(r.pool.QueryRow(ctx, query,
		id,
		ownerID,
		patch.Title,
		patch.Content,
		status,
		patch.DueDateSet,
		patch.DueDate,
	))
}

func (r *taskRepository) DeleteOwned(ctx context.Context, ownerID, id string) error {
	const query = `DELETE FROM tasks WHERE id = $1 AND user_id = $2`
	tag, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) UpdateStatusOwned(ctx context.Context, ownerID string, ids []string, status domain.TaskStatus) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	// ids that do not exist or belong to someone else simply fall out of
	// the predicate; the rows-affected count is the contract.
	const query = `
	UPDATE tasks
	SET status = $3::task_status,
		updated_at = NOW()
	WHERE id = ANY($1) AND user_id = $2
	`
	tag, err := r.pool.Exec(ctx, query, ids, ownerID, string(status))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var task domain.Task
	var (
		status string
		due    *time.Time
	)

	if err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Content,
		&status,
		&due,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	task.Status = domain.TaskStatus(status)
	task.DueDate = due
	return &task, nil
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 10
	}
	return limit
}
