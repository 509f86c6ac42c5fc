package handlers

import (
	"errors"
	"net/http"

	"halal-directory/middleware"
	"halal-directory/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves the HTML pages over the entity services.
type Handler struct {
	svc    *services.Services
	auth   *middleware.EditorAuth
	logger *zap.Logger
}

func New(svc *services.Services, auth *middleware.EditorAuth, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, auth: auth, logger: logger}
}

// fail renders the error page for errors the page cannot recover from.
func (h *Handler) fail(c *gin.Context, err error) {
	var notFound *services.NotFoundError
	if errors.As(err, &notFound) {
		c.HTML(http.StatusNotFound, "error.html", gin.H{
			"Title":   "Not found",
			"Message": notFound.Entity + " not found",
			"Status":  http.StatusNotFound,
		})
		return
	}
	_ = c.Error(err)
	h.logger.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	c.HTML(http.StatusInternalServerError, "error.html", gin.H{
		"Title":   "Something went wrong",
		"Message": "The request could not be completed.",
		"Status":  http.StatusInternalServerError,
	})
}

func (h *Handler) badRequest(c *gin.Context, err error) {
	h.logger.Debug("bad form submission", zap.Error(err))
	c.HTML(http.StatusBadRequest, "error.html", gin.H{
		"Title":   "Bad request",
		"Message": "The submitted form could not be read.",
		"Status":  http.StatusBadRequest,
	})
}

// asValidation reports whether err carries form messages.
func asValidation(err error) (*services.ValidationError, bool) {
	var verr *services.ValidationError
	ok := errors.As(err, &verr)
	return verr, ok
}

func asConflict(err error) bool {
	var conflict *services.ConflictError
	return errors.As(err, &conflict)
}

// redirect sends the browser to url after a successful write.
func redirect(c *gin.Context, url string) {
	c.Redirect(http.StatusSeeOther, url)
}
