package middleware

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// EditorCookie carries the signed editor session.
const EditorCookie = "editor_token"

const editorSubject = "editor"

// SessionTTL is how long an editor stays signed in.
const SessionTTL = 12 * time.Hour

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// EditorAuth gates the write routes behind a single shared editor password.
// A zero EditorAuth (no password hash) leaves every route open.
type EditorAuth struct {
	PasswordHash string
	Secret       []byte
}

func NewEditorAuth(passwordHash, secret string) *EditorAuth {
	return &EditorAuth{PasswordHash: passwordHash, Secret: []byte(secret)}
}

// Enabled reports whether writes require sign-in.
func (a *EditorAuth) Enabled() bool {
	return a != nil && a.PasswordHash != ""
}

// CheckPassword compares a submitted password with the configured hash.
func (a *EditorAuth) CheckPassword(password string) bool {
	if !a.Enabled() {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) == nil
}

// GenerateToken creates a signed editor session token.
func (a *EditorAuth) GenerateToken(now time.Time) (string, error) {
	claims := Claims{
		Role: editorSubject,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   editorSubject,
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.Secret)
}

// ParseToken validates a session token.
func (a *EditorAuth) ParseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return a.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.Role != editorSubject {
		return nil, errors.New("not an editor session")
	}
	return claims, nil
}

// EditorRequired sends visitors without a valid session to the sign-in page.
// It is a no-op when editor auth is disabled.
func (a *EditorAuth) EditorRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.Enabled() {
			c.Next()
			return
		}
		tokenStr, err := c.Cookie(EditorCookie)
		if err == nil {
			if _, err = a.ParseToken(tokenStr); err == nil {
				c.Set("editor", true)
				c.Next()
				return
			}
		}
		c.Redirect(http.StatusSeeOther, "/login?next="+url.QueryEscape(c.Request.URL.Path))
		c.Abort()
	}
}

// HashPassword returns the bcrypt hash to place in EDITOR_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
