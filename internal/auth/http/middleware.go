package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authDomain "github.com/zasta/tokenvault/internal/auth/domain"
	authService "github.com/zasta/tokenvault/internal/auth/service"
	apperrors "github.com/zasta/tokenvault/internal/errors"
	"github.com/zasta/tokenvault/internal/httputil"
)

// AuthenticationMiddleware authenticates requests via a Bearer credential in
// the Authorization header.
//
// The middleware extracts the credential, verifies its signature and expiry
// through the CredentialService, and stores the resulting principal in the
// request context for downstream handlers (see GetPrincipal).
//
// Error handling:
//   - Missing or malformed Authorization header → 401 Unauthorized
//   - Invalid, tampered, or expired credential → 401 Unauthorized
//
// All failures produce the same response so callers cannot probe which check
// rejected them.
func AuthenticationMiddleware(
	credentialService authService.CredentialService,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		// Parse Bearer credential (case-insensitive scheme)
		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		credential := authHeader[len(bearerPrefix):]
		if credential == "" {
			logger.Debug("authentication failed: empty bearer credential")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		principal, err := credentialService.Verify(credential)
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		ctx := WithPrincipal(c.Request.Context(), principal)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authentication successful",
			slog.String("service_id", principal.ServiceID),
			slog.String("role", string(principal.Role)))

		c.Next()
	}
}

// AuthorizationMiddleware gates an operation on the principal's role.
//
// MUST be used after AuthenticationMiddleware. The principal's role has to be
// in the allowed set; anything else (including VISITOR on every vault
// operation) is rejected with 403 Forbidden. A missing principal means the
// authentication middleware did not run and yields 401.
//
// Usage:
//
//	router.POST("/v1/detokenize",
//	    AuthenticationMiddleware(credentialService, logger),
//	    AuthorizationMiddleware(logger, authDomain.DetokenizerRole),
//	    handler)
func AuthorizationMiddleware(
	logger *slog.Logger,
	allowed ...authDomain.Role,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c.Request.Context())
		if !ok || principal == nil {
			logger.Debug("authorization failed: no authenticated principal in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if !principal.HasAnyRole(allowed...) {
			logger.Debug("authorization failed: insufficient role",
				slog.String("service_id", principal.ServiceID),
				slog.String("role", string(principal.Role)))
			httputil.HandleErrorGin(c, apperrors.ErrForbidden, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}
