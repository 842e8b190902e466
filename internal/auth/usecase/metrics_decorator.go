package usecase

import (
	"context"
	"time"

	authDomain "github.com/zasta/tokenvault/internal/auth/domain"
	"github.com/zasta/tokenvault/internal/metrics"
)

// authUseCaseWithMetrics decorates AuthUseCase with metrics instrumentation.
type authUseCaseWithMetrics struct {
	next    AuthUseCase
	metrics metrics.BusinessMetrics
}

// NewAuthUseCaseWithMetrics wraps an AuthUseCase with metrics recording.
func NewAuthUseCaseWithMetrics(useCase AuthUseCase, m metrics.BusinessMetrics) AuthUseCase {
	return &authUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Authenticate records metrics for authentication operations.
func (a *authUseCaseWithMetrics) Authenticate(
	ctx context.Context,
	serviceID, secret string,
) (*authDomain.Credential, error) {
	start := time.Now()
	credential, err := a.next.Authenticate(ctx, serviceID, secret)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "auth", "authenticate", status)
	a.metrics.RecordDuration(ctx, "auth", "authenticate", time.Since(start), status)

	return credential, err
}

// CreateService records metrics for service registration operations.
func (a *authUseCaseWithMetrics) CreateService(
	ctx context.Context,
	input *authDomain.CreateServiceInput,
) (*authDomain.CreateServiceOutput, error) {
	start := time.Now()
	output, err := a.next.CreateService(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "auth", "service_create", status)
	a.metrics.RecordDuration(ctx, "auth", "service_create", time.Since(start), status)

	return output, err
}
