package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestAuth(t *testing.T) *EditorAuth {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("open sesame"), bcrypt.MinCost)
	require.NoError(t, err)
	return NewEditorAuth(string(hash), "test-secret")
}

func TestEditorAuthDisabled(t *testing.T) {
	var nilAuth *EditorAuth
	assert.False(t, nilAuth.Enabled())
	assert.False(t, NewEditorAuth("", "secret").Enabled())
	assert.False(t, NewEditorAuth("", "secret").CheckPassword(""))
}

func TestCheckPassword(t *testing.T) {
	a := newTestAuth(t)
	assert.True(t, a.Enabled())
	assert.True(t, a.CheckPassword("open sesame"))
	assert.False(t, a.CheckPassword("open"))
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("open sesame")
	require.NoError(t, err)
	assert.True(t, NewEditorAuth(hash, "s").CheckPassword("open sesame"))
}

func TestTokenRoundTrip(t *testing.T) {
	a := newTestAuth(t)
	now := time.Now()

	token, err := a.GenerateToken(now)
	require.NoError(t, err)
	claims, err := a.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "editor", claims.Subject)

	other := NewEditorAuth(a.PasswordHash, "other-secret")
	_, err = other.ParseToken(token)
	assert.Error(t, err, "wrong secret")

	expired, err := a.GenerateToken(now.Add(-2 * SessionTTL))
	require.NoError(t, err)
	_, err = a.ParseToken(expired)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseTokenRejectsOtherRoles(t *testing.T) {
	a := newTestAuth(t)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role: "customer",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(a.Secret)
	require.NoError(t, err)

	_, err = a.ParseToken(token)
	assert.Error(t, err)
}

func TestEditorRequired(t *testing.T) {
	a := newTestAuth(t)
	r := gin.New()
	r.GET("/cuisine/create", a.EditorRequired(), func(c *gin.Context) {
		c.String(http.StatusOK, "form")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cuisine/create", nil))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login?next=%2Fcuisine%2Fcreate", w.Header().Get("Location"))

	token, err := a.GenerateToken(time.Now())
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/cuisine/create", nil)
	req.AddCookie(&http.Cookie{Name: EditorCookie, Value: token})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "form", w.Body.String())
}

func TestEditorRequiredOpenWhenDisabled(t *testing.T) {
	var a *EditorAuth
	r := gin.New()
	r.GET("/cuisine/create", a.EditorRequired(), func(c *gin.Context) {
		c.String(http.StatusOK, "form")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cuisine/create", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
