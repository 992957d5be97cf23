package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskdeck/backend/api/transport"
	"github.com/taskdeck/backend/domain"
	"github.com/taskdeck/backend/internal/middleware"
	"github.com/taskdeck/backend/pkg/httpcontext"
)

type baseHandler struct {
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload interface{}) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(payload)
	ctx.SetBody(body)
}

// respondError maps a domain error onto its HTTP status. Anything outside the
// taxonomy is an internal error: it gets logged here and replaced with a
// generic message so the cause never reaches the client.
func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, err error) {
	var dErr *domain.Error
	if errors.As(err, &dErr) {
		switch dErr.Code {
		case domain.ErrCodeInvalid:
			h.respondJSON(ctx, http.StatusBadRequest, transport.ErrorBody{Error: dErr.Message})
			return
		case domain.ErrCodeConflict:
			h.respondJSON(ctx, http.StatusConflict, transport.ErrorBody{Error: dErr.Message})
			return
		case domain.ErrCodeUnauthorized:
			h.respondJSON(ctx, http.StatusUnauthorized, transport.ErrorBody{Error: dErr.Message})
			return
		case domain.ErrCodeNotFound:
			h.respondJSON(ctx, http.StatusNotFound, transport.ErrorBody{Error: dErr.Message})
			return
		}
	}

	h.logger.Error("request failed", zap.Error(err))
	h.respondJSON(ctx, http.StatusInternalServerError, transport.ErrorBody{Error: "internal server error"})
}

// identity fetches the principal resolved by the auth middleware. A missing
// identity means the route was wired without the middleware; treat it as
// unauthenticated rather than panicking.
func (h baseHandler) identity(ctx *fasthttp.RequestCtx) (domain.Identity, bool) {
	identity, ok := middleware.IdentityFrom(ctx)
	if !ok {
		h.respondJSON(ctx, http.StatusUnauthorized, transport.ErrorBody{Error: domain.ErrUnauthenticated.Message})
	}
	return identity, ok
}
