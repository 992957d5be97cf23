package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskdeck/backend/api/transport"
	"github.com/taskdeck/backend/domain"
	"github.com/taskdeck/backend/pkg/httpcontext"
	authUC "github.com/taskdeck/backend/usecase/auth"
)

type AuthHandler struct {
	baseHandler
	uc           *authUC.UseCase
	cookieName   string
	cookieTTL    time.Duration
	secureCookie bool
}

func NewAuthHandler(uc *authUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger, cookieName string, cookieTTL time.Duration, secureCookie bool) *AuthHandler {
	if cookieName == "" {
		cookieName = "token"
	}
	if cookieTTL <= 0 {
		cookieTTL = 24 * time.Hour
	}
	return &AuthHandler{
		baseHandler:  newBaseHandler(adapter, logger),
		uc:           uc,
		cookieName:   cookieName,
		cookieTTL:    cookieTTL,
		secureCookie: secureCookie,
	}
}

// Register creates an account, starts a session, and sets the cookie.
func (h *AuthHandler) Register(ctx *fasthttp.RequestCtx) {
	var req transport.RegisterRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondError(ctx, domain.ErrInvalidPayload)
		return
	}
	if err := req.Validate(); err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, signed, err := h.uc.Register(stdCtx, req.Email, req.Password)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	h.setSessionCookie(ctx, signed)
	h.respondJSON(ctx, http.StatusCreated, transport.UserBody{User: user})
}

// Login verifies credentials and sets a fresh session cookie.
func (h *AuthHandler) Login(ctx *fasthttp.RequestCtx) {
	var req transport.LoginRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondError(ctx, domain.ErrInvalidPayload)
		return
	}
	if err := req.Validate(); err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, signed, err := h.uc.Login(stdCtx, req.Email, req.Password)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	h.setSessionCookie(ctx, signed)
	h.respondJSON(ctx, http.StatusOK, transport.UserBody{User: user})
}

// Me returns the identity the auth middleware resolved for this request.
func (h *AuthHandler) Me(ctx *fasthttp.RequestCtx) {
	identity, ok := h.identity(ctx)
	if !ok {
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.IdentityBody{User: identity})
}

// Logout revokes the presented token (if any) and clears the cookie. It
// succeeds even without a valid session so a stale client can always reset.
func (h *AuthHandler) Logout(ctx *fasthttp.RequestCtx) {
	raw := string(ctx.Request.Header.Cookie(h.cookieName))

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Logout(stdCtx, raw); err != nil {
		h.respondError(ctx, err)
		return
	}

	h.clearSessionCookie(ctx)
	h.respondJSON(ctx, http.StatusOK, transport.MessageBody{Message: "logged out"})
}

func (h *AuthHandler) setSessionCookie(ctx *fasthttp.RequestCtx, value string) {
	cookie := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(cookie)

	cookie.SetKey(h.cookieName)
	cookie.SetValue(value)
	cookie.SetPath("/")
	cookie.SetHTTPOnly(true)
	cookie.SetSameSite(fasthttp.CookieSameSiteLaxMode)
	cookie.SetSecure(h.secureCookie)
	cookie.SetExpire(time.Now().Add(h.cookieTTL))

	ctx.Response.Header.SetCookie(cookie)
}

func (h *AuthHandler) clearSessionCookie(ctx *fasthttp.RequestCtx) {
	cookie := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(cookie)

	cookie.SetKey(h.cookieName)
	cookie.SetValue("")
	cookie.SetPath("/")
	cookie.SetHTTPOnly(true)
	cookie.SetSameSite(fasthttp.CookieSameSiteLaxMode)
	cookie.SetSecure(h.secureCookie)
	cookie.SetExpire(fasthttp.CookieExpireDelete)

	ctx.Response.Header.SetCookie(cookie)
}
