package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/relief-directory/internal/application"
	"github.com/oksasatya/relief-directory/pkg/helpers"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{application.ErrInvalidInput, http.StatusBadRequest},
		{application.ErrUnauthorized, http.StatusUnauthorized},
		{application.ErrInvalidCredentials, http.StatusUnauthorized},
		{application.ErrDuplicateEmail, http.StatusConflict},
		{application.ErrForbidden, http.StatusForbidden},
		{application.ErrNotFound, http.StatusNotFound},
		{application.ErrInternal, http.StatusInternalServerError},
		{errors.New("untyped"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.err), tt.err.Error())
	}
}

func TestWriteError_HidesInternalCause(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	cause := &application.Error{Kind: application.KindInternal, Message: "Internal server error during login.", Err: errors.New("pq: password authentication failed for user postgres")}
	writeError(c, helpers.NewDiscardLogger(), cause)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error during login."}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "postgres")
}

func TestWriteError_UntypedFallsBackToGenericMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	writeError(c, nil, errors.New("dial tcp 10.0.0.5:5432: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error."}`, w.Body.String())
}
