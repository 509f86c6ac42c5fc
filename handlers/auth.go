package handlers

import (
	"net/http"
	"strings"
	"time"

	"halal-directory/middleware"
	"halal-directory/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type LoginRequest struct {
	Password string `form:"password"`
	Next     string `form:"next"`
}

// safeNext keeps redirects on this site.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}

func (h *Handler) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"Title": "Editor Sign In",
		"Next":  safeNext(c.Query("next")),
	})
}

// Login exchanges the editor password for a session cookie.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	next := safeNext(req.Next)

	if !h.auth.CheckPassword(req.Password) {
		h.logger.Warn("editor sign-in rejected", zap.String("client_ip", c.ClientIP()))
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{
			"Title":  "Editor Sign In",
			"Next":   next,
			"Errors": []services.FieldError{{Field: "password", Message: "Invalid password."}},
		})
		return
	}

	token, err := h.auth.GenerateToken(time.Now())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.EditorCookie, token, int(middleware.SessionTTL.Seconds()), "/", "", false, true)
	redirect(c, next)
}

func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie(middleware.EditorCookie, "", -1, "/", "", false, true)
	redirect(c, "/")
}
