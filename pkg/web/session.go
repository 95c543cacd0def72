package web

import (
	"errors"
	"strings"

	"github.com/dukex/approved-premises/pkg/session"
	"github.com/gofiber/fiber/v3"
)

const (
	// SessionCookie is the name of the cookie carrying the session id.
	SessionCookie = "ap_session"

	localsSession = "session"
	localsToken   = "token"
	localsUser    = "user"
)

// Session loads the caller's session before the handler runs and saves it afterwards.
func (h *Handlers) Session(c fiber.Ctx) error {
	state, err := h.loadSession(c)
	if err != nil {
		return internalError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    state.ID,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	c.Locals(localsSession, state)

	handlerErr := c.Next()

	err = h.sessions.Save(c.Context(), state)
	if err != nil {
		h.logger.Error("Failed to save session", "session_id", state.ID, "error", err)

		if handlerErr == nil {
			return internalError(c, err)
		}
	}

	return handlerErr
}

func (h *Handlers) loadSession(c fiber.Ctx) (*session.State, error) {
	id := c.Cookies(SessionCookie)
	if id == "" {
		return session.New(), nil
	}

	state, err := h.sessions.Load(c.Context(), id)
	if errors.Is(err, session.ErrNotFound) {
		return session.New(), nil
	}

	if err != nil {
		return nil, err
	}

	return state, nil
}

// Auth requires a bearer token, which is passed through to the backend. The user id is
// taken from the X-User-Id header set by the authenticating proxy.
func (h *Handlers) Auth(c fiber.Ctx) error {
	token, ok := strings.CutPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return unauthorized(c, "a bearer token is required")
	}

	c.Locals(localsToken, token)
	c.Locals(localsUser, c.Get("X-User-Id"))

	return c.Next()
}

func sessionOf(c fiber.Ctx) *session.State {
	if s, ok := c.Locals(localsSession).(*session.State); ok {
		return s
	}

	return session.New()
}

func tokenOf(c fiber.Ctx) string {
	s, _ := c.Locals(localsToken).(string)

	return s
}

func userOf(c fiber.Ctx) string {
	s, _ := c.Locals(localsUser).(string)

	return s
}
