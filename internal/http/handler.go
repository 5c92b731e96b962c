package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"notes-server/internal/domain"
	"notes-server/internal/http/views"
	"notes-server/internal/service"
	"notes-server/internal/session"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users        service.UserService
	notes        service.NoteService
	sessions     *session.Manager
	secureCookie bool
	logger       *logrus.Logger
}

func NewHandler(users service.UserService, notes service.NoteService, sessions *session.Manager, secureCookie bool, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Handler{
		users:        users,
		notes:        notes,
		sessions:     sessions,
		secureCookie: secureCookie,
		logger:       logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.SetHTMLTemplate(views.Templates())
	router.Use(requestLogger(h.logger), h.loadUser())

	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	router.GET("/register", h.registerForm)
	router.POST("/register", h.register)
	router.GET("/login", h.loginForm)
	router.POST("/login", h.login)

	authed := router.Group("/", h.requireUser())
	{
		authed.GET("/logout", h.logout)
		authed.GET("/", h.listNotes)
		authed.GET("/create", h.createForm)
		authed.POST("/create", h.createNote)
		authed.GET("/view/:id", h.viewNote)
		authed.GET("/edit/:id", h.editForm)
		authed.POST("/edit/:id", h.updateNote)
		authed.GET("/delete/:id", h.deleteNote)
		authed.POST("/search", h.search)
	}
}

// render executes page with the current user and pending flash merged into data.
func (h *Handler) render(c *gin.Context, page string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if user, ok := currentUser(c); ok {
		data["User"] = user
	}
	data["Flash"] = h.popFlash(c)
	c.HTML(http.StatusOK, page, data)
}

// redirect follows a POST with 303 so the browser re-issues a GET.
func redirect(c *gin.Context, location string) {
	status := http.StatusFound
	if c.Request.Method == http.MethodPost {
		status = http.StatusSeeOther
	}
	c.Redirect(status, location)
}

// fail reports a store or internal failure; there is no recovery path.
func (h *Handler) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	h.logger.WithError(err).WithFields(logrus.Fields{
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
	}).Error("request failed")
	c.AbortWithStatus(http.StatusInternalServerError)
}

func currentUser(c *gin.Context) (*domain.User, bool) {
	return session.UserFromContext(c.Request.Context())
}
