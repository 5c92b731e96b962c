package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const flashCookie = "flash"

const (
	flashSuccess = "success"
	flashError   = "error"
)

// Flash is a one-shot status message shown on the next rendered page.
type Flash struct {
	Category string
	Message  string
}

// setFlash stores the message signed with the session secret.
func (h *Handler) setFlash(c *gin.Context, category, message string) {
	token, err := h.sessions.IssueMessage(category, message)
	if err != nil {
		h.logger.WithError(err).Warn("sign flash message")
		return
	}
	h.setCookie(c, flashCookie, token, 0)
}

// popFlash returns the pending message, if any, and clears it so it is shown once.
func (h *Handler) popFlash(c *gin.Context) *Flash {
	value, err := c.Cookie(flashCookie)
	if err != nil || value == "" {
		return nil
	}
	h.setCookie(c, flashCookie, "", -1)

	category, message, err := h.sessions.ParseMessage(value)
	if err != nil {
		return nil
	}
	return &Flash{Category: category, Message: message}
}

func (h *Handler) setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", h.secureCookie, true)
}
