package response

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/yahorse/boardo/internal/pkg/apperror"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func TestErrorWritesAppError(t *testing.T) {
	c, w := newTestContext()

	Error(c, apperror.New(http.StatusNotFound, "booking not found"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"booking not found"}`, w.Body.String())
}

func TestErrorMarksRetryable(t *testing.T) {
	c, w := newTestContext()

	// Wrapped store failures still surface as 503 with the retry hint.
	Error(c, fmt.Errorf("list rooms: %w", apperror.ErrStoreUnavailable))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"error":"datastore unavailable, retry later","retryable":true}`, w.Body.String())
}

func TestErrorDefaultsToInternal(t *testing.T) {
	c, w := newTestContext()

	Error(c, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
}
