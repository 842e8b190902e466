package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/zasta/tokenvault/internal/auth/domain"
	"github.com/zasta/tokenvault/internal/auth/http/mocks"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func performAuthRequest(handler *AuthHandler, body []byte) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/v1/auth", handler.AuthenticateHandler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Authenticate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		useCase := &mocks.MockAuthUseCase{}
		handler := NewAuthHandler(useCase, testLogger())

		expiresAt := time.Now().UTC().Add(time.Hour).Truncate(time.Second)
		useCase.On("Authenticate", mock.Anything, "service1", "s3cret").
			Return(&authDomain.Credential{Token: "signed-credential", ExpiresAt: expiresAt}, nil)

		body, err := json.Marshal(map[string]string{
			"service_id": "service1",
			"secret":     "s3cret",
		})
		require.NoError(t, err)

		w := performAuthRequest(handler, body)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "signed-credential", response["token"])
		assert.NotEmpty(t, response["expires_at"])
	})

	t.Run("InvalidCredentials", func(t *testing.T) {
		useCase := &mocks.MockAuthUseCase{}
		handler := NewAuthHandler(useCase, testLogger())

		useCase.On("Authenticate", mock.Anything, "service1", "wrong").
			Return(nil, authDomain.ErrInvalidCredentials)

		body, _ := json.Marshal(map[string]string{
			"service_id": "service1",
			"secret":     "wrong",
		})

		w := performAuthRequest(handler, body)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("MalformedJSON", func(t *testing.T) {
		useCase := &mocks.MockAuthUseCase{}
		handler := NewAuthHandler(useCase, testLogger())

		w := performAuthRequest(handler, []byte(`{"service_id": `))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		useCase.AssertNotCalled(t, "Authenticate")
	})

	t.Run("ValidationFailure", func(t *testing.T) {
		useCase := &mocks.MockAuthUseCase{}
		handler := NewAuthHandler(useCase, testLogger())

		body, _ := json.Marshal(map[string]string{"service_id": "", "secret": ""})

		w := performAuthRequest(handler, body)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		useCase.AssertNotCalled(t, "Authenticate")
	})
}
