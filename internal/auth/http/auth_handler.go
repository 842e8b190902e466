package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zasta/tokenvault/internal/auth/http/dto"
	authUseCase "github.com/zasta/tokenvault/internal/auth/usecase"
	"github.com/zasta/tokenvault/internal/httputil"
	customValidation "github.com/zasta/tokenvault/internal/validation"
)

// AuthHandler handles HTTP requests for credential issuance.
type AuthHandler struct {
	authUseCase authUseCase.AuthUseCase
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler with required dependencies.
func NewAuthHandler(
	authUseCase authUseCase.AuthUseCase,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		logger:      logger,
	}
}

// AuthenticateHandler issues a bearer credential for a registered service.
// POST /v1/auth - No authentication required (this is the authentication endpoint).
// Returns 201 Created with the credential and its expiration time; unknown
// service and wrong secret both produce 401.
func (h *AuthHandler) AuthenticateHandler(c *gin.Context) {
	var req dto.AuthRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	credential, err := h.authUseCase.Authenticate(c.Request.Context(), req.ServiceID, req.Secret)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.AuthResponse{
		Token:     credential.Token,
		ExpiresAt: credential.ExpiresAt,
	}

	c.JSON(http.StatusCreated, response)
}
