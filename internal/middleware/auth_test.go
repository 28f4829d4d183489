package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	iauth "github.com/akshay-h-dev/milestack/internal/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthTestRouter(t *testing.T, cfg iauth.JWTConfig) (*gin.Engine, *iauth.JWTService) {
	t.Helper()

	svc, err := iauth.NewJWTService(cfg)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/protected", Auth(svc), func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"userId": claims.UserID, "email": claims.Email})
	})
	return r, svc
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	r, _ := newAuthTestRouter(t, iauth.JWTConfig{Secret: "s"})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Authorization header missing or malformed", errorBody(t, rec))
}

func TestAuthRejectsMalformedHeader(t *testing.T) {
	r, _ := newAuthTestRouter(t, iauth.JWTConfig{Secret: "s"})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abcdef")
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Authorization header missing or malformed", errorBody(t, rec))
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	r, _ := newAuthTestRouter(t, iauth.JWTConfig{Secret: "s"})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "invalid_token", errorBody(t, rec))
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	past := time.Now().Add(-72 * time.Hour)
	issuer, err := iauth.NewJWTService(iauth.JWTConfig{
		Secret: "s",
		Clock:  func() time.Time { return past },
	})
	require.NoError(t, err)

	token, err := issuer.Issue(iauth.Identity{UserID: "user-deadbeef"})
	require.NoError(t, err)

	r, _ := newAuthTestRouter(t, iauth.JWTConfig{Secret: "s"})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "token_expired", errorBody(t, rec))
}

func TestAuthAttachesIdentity(t *testing.T) {
	r, svc := newAuthTestRouter(t, iauth.JWTConfig{Secret: "s"})

	token, err := svc.Issue(iauth.Identity{UserID: "user-deadbeef", Email: "alice@x.com", Name: "Alice"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "user-deadbeef", body["userId"])
	require.Equal(t, "alice@x.com", body["email"])
}
