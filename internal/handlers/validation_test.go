package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	appValidator "github.com/akshay-h-dev/milestack/pkg/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type bindTestPayload struct {
	Title string `json:"title" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
}

func bindRecorder(t *testing.T, body string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var payload bindTestPayload
	ok := bindAndValidate(c, &payload)
	return rec, ok
}

func TestBindAndValidateRejectsMalformedJSON(t *testing.T) {
	rec, ok := bindRecorder(t, "{not json")
	require.False(t, ok)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "invalid JSON payload")
}

func TestBindAndValidateNamesMissingField(t *testing.T) {
	rec, ok := bindRecorder(t, `{"email": "alice@x.com"}`)
	require.False(t, ok)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "title is required")
}

func TestBindAndValidateReportsBadEmail(t *testing.T) {
	rec, ok := bindRecorder(t, `{"title": "x", "email": "nope"}`)
	require.False(t, ok)
	require.Contains(t, rec.Body.String(), "email must be a valid email address")
}

func TestBindAndValidateAcceptsValidPayload(t *testing.T) {
	rec, ok := bindRecorder(t, `{"title": "x", "email": "alice@x.com"}`)
	require.True(t, ok)
	require.Empty(t, rec.Body.String())
}

func TestFormatValidationErrorFallsBack(t *testing.T) {
	require.Equal(t, "invalid request payload", formatValidationError(nil))
	require.Equal(t, "invalid request payload", formatValidationError(appValidator.ValidationErrors{}))
}

func TestRequireProjectIDQuery(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/tasks", nil)

	_, ok := requireProjectIDQuery(c)
	require.False(t, ok)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "projectId required")

	rec = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/tasks?projectId=proj-deadbeef", nil)

	projectID, ok := requireProjectIDQuery(c)
	require.True(t, ok)
	require.Equal(t, "proj-deadbeef", projectID)
}
