package transport

import "github.com/taskdeck/backend/domain"

// ErrorBody is the wire shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
}

type UserBody struct {
	User *domain.User `json:"user"`
}

// IdentityBody carries the middleware-resolved principal, the /me payload.
type IdentityBody struct {
	User domain.Identity `json:"user"`
}

type TaskBody struct {
	Task *domain.Task `json:"task"`
}

type MessageBody struct {
	Message string `json:"message"`
}

// CountBody reports how many rows an operation touched.
type CountBody struct {
	Message string `json:"message"`
	Count   int64  `json:"count"`
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type TaskListBody struct {
	Tasks      []domain.Task `json:"tasks"`
	Pagination Pagination    `json:"pagination"`
}

// NewPagination computes totalPages = ceil(total/limit).
func NewPagination(page, limit, total int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
