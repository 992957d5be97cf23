package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/taskdeck/backend/api/handler"
)

type Handlers struct {
	Auth   *apiHandler.AuthHandler
	Task   *apiHandler.TaskHandler
	Health *apiHandler.HealthHandler
}

// New builds the route table. Everything that touches task data, plus /me,
// goes through the session middleware; register/login/logout do not.
func New(handlers Handlers, sessionAuth func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	r.POST("/api/auth/register", handlers.Auth.Register)
	r.POST("/api/auth/login", handlers.Auth.Login)
	r.GET("/api/auth/me", sessionAuth(handlers.Auth.Me))
	r.POST("/api/auth/logout", handlers.Auth.Logout)

	r.GET("/api/tasks", sessionAuth(handlers.Task.List))
	r.POST("/api/tasks", sessionAuth(handlers.Task.Create))
	r.PATCH("/api/tasks/bulk-status", sessionAuth(handlers.Task.BulkStatus))
	r.GET("/api/tasks/{id}", sessionAuth(handlers.Task.Get))
	r.PUT("/api/tasks/{id}", sessionAuth(handlers.Task.Update))
	r.DELETE("/api/tasks/{id}", sessionAuth(handlers.Task.Delete))

	return r
}
