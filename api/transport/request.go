package transport

import (
	"bytes"
	"encoding/json"
	"net/mail"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/taskdeck/backend/domain"
)

const (
	titleMaxLen   = 100
	contentMaxLen = 500
	passwordMin   = 6
	passwordMax   = 72 // bcrypt input limit

	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

var jsonNull = []byte("null")

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the credential pair. The same rules apply to login so the
// two endpoints reject malformed input identically.
func (r RegisterRequest) Validate() error {
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	return validatePassword(r.Password)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	return validatePassword(r.Password)
}

type CreateTaskRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Status  string `json:"status"`
	DueDate string `json:"dueDate"`
}

// Model validates the request and builds the task to persist for the given
// owner. Status defaults to TODO when omitted.
func (r CreateTaskRequest) Model(ownerID string) (*domain.Task, error) {
	if err := validateTitle(r.Title); err != nil {
		return nil, err
	}
	if err := validateContent(r.Content); err != nil {
		return nil, err
	}

	status := domain.StatusTodo
	if r.Status != "" {
		parsed, ok := domain.ParseTaskStatus(r.Status)
		if !ok {
			return nil, errInvalidStatus
		}
		status = parsed
	}

	var due *time.Time
	if r.DueDate != "" {
		parsed, err := time.Parse(time.RFC3339, r.DueDate)
		if err != nil {
			return nil, errInvalidDueDate
		}
		due = &parsed
	}

	return &domain.Task{
		UserID:  ownerID,
		Title:   r.Title,
		Content: r.Content,
		Status:  status,
		DueDate: due,
	}, nil
}

// UpdateTaskRequest distinguishes absent fields from explicit values; dueDate
// additionally distinguishes an explicit null, which clears the date.
type UpdateTaskRequest struct {
	Title   *string         `json:"title"`
	Content *string         `json:"content"`
	Status  *string         `json:"status"`
	DueDate json.RawMessage `json:"dueDate"`
}

// Patch validates the supplied fields and converts them into a partial update.
func (r UpdateTaskRequest) Patch() (domain.TaskPatch, error) {
	var patch domain.TaskPatch

	if r.Title != nil {
		if err := validateTitle(*r.Title); err != nil {
			return patch, err
		}
		patch.Title = r.Title
	}
	if r.Content != nil {
		if err := validateContent(*r.Content); err != nil {
			return patch, err
		}
		patch.Content = r.Content
	}
	if r.Status != nil {
		status, ok := domain.ParseTaskStatus(*r.Status)
		if !ok {
			return patch, errInvalidStatus
		}
		patch.Status = &status
	}
	if len(r.DueDate) > 0 {
		patch.DueDateSet = true
		if !bytes.Equal(r.DueDate, jsonNull) {
			var raw string
			if err := json.Unmarshal(r.DueDate, &raw); err != nil {
				return patch, errInvalidDueDate
			}
			parsed, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				return patch, errInvalidDueDate
			}
			patch.DueDate = &parsed
		}
	}

	return patch, nil
}

type BulkStatusRequest struct {
	TaskIDs []string `json:"taskIds"`
	Status  string   `json:"status"`
}

func (r BulkStatusRequest) Validate() (domain.TaskStatus, error) {
	if r.TaskIDs == nil {
		return "", domain.NewError(domain.ErrCodeInvalid, "taskIds is required")
	}
	status, ok := domain.ParseTaskStatus(r.Status)
	if !ok {
		return "", errInvalidStatus
	}
	return status, nil
}

// ListParams are the validated list-endpoint query parameters.
type ListParams struct {
	Status domain.TaskStatus
	Page   int
	Limit  int
}

// Offset converts the 1-based page into a row offset.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ParseListParams validates raw query values, applying page/limit defaults
// when a value is absent.
func ParseListParams(status, page, limit string) (ListParams, error) {
	params := ListParams{Page: defaultPage, Limit: defaultLimit}

	if status != "" {
		parsed, ok := domain.ParseTaskStatus(status)
		if !ok {
			return params, errInvalidStatus
		}
		params.Status = parsed
	}
	if page != "" {
		n, err := strconv.Atoi(page)
		if err != nil || n < 1 {
			return params, domain.NewError(domain.ErrCodeInvalid, "page must be a positive integer")
		}
		params.Page = n
	}
	if limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 1 || n > maxLimit {
			return params, domain.NewError(domain.ErrCodeInvalid, "limit must be between 1 and 100")
		}
		params.Limit = n
	}

	return params, nil
}

var (
	errInvalidStatus  = domain.NewError(domain.ErrCodeInvalid, "status must be one of TODO, IN_PROGRESS, DONE")
	errInvalidDueDate = domain.NewError(domain.ErrCodeInvalid, "dueDate must be an ISO 8601 timestamp")
)

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return domain.NewError(domain.ErrCodeInvalid, "a valid email address is required")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < passwordMin {
		return domain.NewError(domain.ErrCodeInvalid, "password must be at least 6 characters")
	}
	if len(password) > passwordMax {
		return domain.NewError(domain.ErrCodeInvalid, "password must be at most 72 characters")
	}
	return nil
}

func validateTitle(title string) error {
	if title == "" {
		return domain.NewError(domain.ErrCodeInvalid, "title is required")
	}
	if utf8.RuneCountInString(title) > titleMaxLen {
		return domain.NewError(domain.ErrCodeInvalid, "title must be at most 100 characters")
	}
	return nil
}

func validateContent(content string) error {
	if utf8.RuneCountInString(content) > contentMaxLen {
		return domain.NewError(domain.ErrCodeInvalid, "content must be at most 500 characters")
	}
	return nil
}
