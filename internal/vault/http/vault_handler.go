// Package http provides HTTP handlers for vault operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zasta/tokenvault/internal/httputil"
	customValidation "github.com/zasta/tokenvault/internal/validation"
	"github.com/zasta/tokenvault/internal/vault/http/dto"
	vaultUseCase "github.com/zasta/tokenvault/internal/vault/usecase"
)

// VaultHandler handles HTTP requests for tokenize and detokenize operations.
type VaultHandler struct {
	vaultUseCase vaultUseCase.VaultUseCase
	logger       *slog.Logger
}

// NewVaultHandler creates a new vault handler with required dependencies.
func NewVaultHandler(
	vaultUseCase vaultUseCase.VaultUseCase,
	logger *slog.Logger,
) *VaultHandler {
	return &VaultHandler{
		vaultUseCase: vaultUseCase,
		logger:       logger,
	}
}

// TokenizeHandler exchanges field values for tokens.
// POST /v1/tokenize - Requires TOKENIZER or DETOKENIZER role.
// Returns 201 Created with one token per field.
func (h *VaultHandler) TokenizeHandler(c *gin.Context) {
	var req dto.TokenizeRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	tokens, err := h.vaultUseCase.Tokenize(c.Request.Context(), req.Data)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.TokenizeResponse{
		ID:   req.ID,
		Data: tokens,
	}

	c.JSON(http.StatusCreated, response)
}

// DetokenizeHandler resolves tokens back to their original values.
// POST /v1/detokenize - Requires DETOKENIZER role.
// Returns 200 OK with a per-field {found, value} outcome; unknown tokens are
// reported per field, never as a request-level error.
func (h *VaultHandler) DetokenizeHandler(c *gin.Context) {
	var req dto.DetokenizeRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	results, err := h.vaultUseCase.Detokenize(c.Request.Context(), req.Data)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	data := make(map[string]dto.FieldResult, len(results))
	for name, result := range results {
		data[name] = dto.FieldResult{
			Found: result.Found,
			Value: result.Value,
		}
	}

	response := dto.DetokenizeResponse{
		ID:   req.ID,
		Data: data,
	}

	c.JSON(http.StatusOK, response)
}
