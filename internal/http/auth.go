package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"notes-server/internal/service"
	"notes-server/internal/session"
)

const sessionCookie = "session"

// loadUser resolves the session cookie to a user and stores it in the request context.
// Missing, invalid or orphaned sessions leave the request anonymous.
func (h *Handler) loadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(sessionCookie)
		if err != nil || token == "" {
			c.Next()
			return
		}

		userID, err := h.sessions.Parse(token)
		if err != nil {
			h.endSession(c)
			c.Next()
			return
		}

		user, err := h.users.GetByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, service.ErrUserNotFound) {
				h.endSession(c)
				c.Next()
				return
			}
			h.fail(c, err)
			return
		}

		c.Request = c.Request.WithContext(session.WithUser(c.Request.Context(), user))
		c.Next()
	}
}

// requireUser sends anonymous visitors to the login page.
func (h *Handler) requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := currentUser(c); !ok {
			h.setFlash(c, flashError, "You must be logged in to access this page.")
			redirect(c, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (h *Handler) startSession(c *gin.Context, userID string) error {
	token, err := h.sessions.Issue(userID)
	if err != nil {
		return err
	}
	h.setCookie(c, sessionCookie, token, int(h.sessions.TTL().Seconds()))
	return nil
}

func (h *Handler) endSession(c *gin.Context) {
	h.setCookie(c, sessionCookie, "", -1)
}

func (h *Handler) registerForm(c *gin.Context) {
	h.render(c, "register.html", nil)
}

func (h *Handler) register(c *gin.Context) {
	_, err := h.users.Register(c.Request.Context(), c.PostForm("username"), c.PostForm("password"))
	switch {
	case err == nil:
		h.setFlash(c, flashSuccess, "Registration successful. Please log in.")
		redirect(c, "/login")
	case errors.Is(err, service.ErrUserAlreadyExists):
		h.setFlash(c, flashError, "You already have an account. Please login.")
		redirect(c, "/login")
	case errors.Is(err, service.ErrInvalidInput):
		h.setFlash(c, flashError, "Username and password are required.")
		redirect(c, "/register")
	default:
		h.fail(c, err)
	}
}

func (h *Handler) loginForm(c *gin.Context) {
	h.render(c, "login.html", nil)
}

func (h *Handler) login(c *gin.Context) {
	user, err := h.users.Authenticate(c.Request.Context(), c.PostForm("username"), c.PostForm("password"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.setFlash(c, flashError, "Invalid username or password.")
			redirect(c, "/login")
			return
		}
		h.fail(c, err)
		return
	}

	if err := h.startSession(c, user.ID); err != nil {
		h.fail(c, err)
		return
	}
	h.setFlash(c, flashSuccess, "You are logged in successfully.")
	redirect(c, "/")
}

func (h *Handler) logout(c *gin.Context) {
	h.endSession(c)
	h.setFlash(c, flashSuccess, "You have been successfully logged out.")
	redirect(c, "/login")
}
