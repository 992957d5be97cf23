package middleware

import (
	"encoding/json"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskdeck/backend/api/transport"
	"github.com/taskdeck/backend/domain"
	"github.com/taskdeck/backend/pkg/httpcontext"
	"github.com/taskdeck/backend/pkg/token"
	"github.com/taskdeck/backend/repository"
)

const identityKey = "auth_identity"

// SessionAuth resolves the session cookie into an authenticated identity and
// attaches it to the request. The chain is: cookie present → signature and
// expiry verify → token not revoked → user still exists. Each stage
// short-circuits with its own status; nothing past the context attachment is
// mutated, and the token is never renewed here.
func SessionAuth(
	cookieName string,
	tokens *token.Manager,
	users repository.UserRepository,
	revocations repository.TokenRevocations,
	adapter *httpcontext.Adapter,
	logger *zap.Logger,
) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			raw := string(ctx.Request.Header.Cookie(cookieName))
			if raw == "" {
				respondError(ctx, fasthttp.StatusUnauthorized, domain.ErrUnauthenticated.Message)
				return
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				logger.Warn("session token rejected", zap.Error(err))
				respondError(ctx, fasthttp.StatusUnauthorized, domain.ErrInvalidToken.Message)
				return
			}

			stdCtx, cancel := adapter.Attach(ctx)
			defer cancel()

			// a revocation store failure fails closed
			revoked, err := revocations.IsRevoked(stdCtx, claims.TokenID)
			if err != nil {
				logger.Error("revocation check failed", zap.Error(err))
				respondError(ctx, fasthttp.StatusUnauthorized, domain.ErrInvalidToken.Message)
				return
			}
			if revoked {
				respondError(ctx, fasthttp.StatusUnauthorized, domain.ErrInvalidToken.Message)
				return
			}

			user, err := users.GetByID(stdCtx, claims.UserID)
			if err != nil {
				if domain.IsDomainError(err, domain.ErrCodeNotFound) {
					respondError(ctx, fasthttp.StatusNotFound, domain.ErrUserNotFound.Message)
					return
				}
				logger.Error("identity lookup failed", zap.Error(err))
				respondError(ctx, fasthttp.StatusInternalServerError, "internal server error")
				return
			}

			ctx.SetUserValue(identityKey, domain.Identity{ID: user.ID, Email: user.Email})
			next(ctx)
		}
	}
}

// IdentityFrom returns the identity resolved by SessionAuth, if any.
func IdentityFrom(ctx *fasthttp.RequestCtx) (domain.Identity, bool) {
	identity, ok := ctx.UserValue(identityKey).(domain.Identity)
	return identity, ok
}

func respondError(ctx *fasthttp.RequestCtx, status int, message string) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(transport.ErrorBody{Error: message})
	ctx.SetBody(body)
}
