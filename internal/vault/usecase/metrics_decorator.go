package usecase

import (
	"context"
	"time"

	"github.com/zasta/tokenvault/internal/metrics"
	vaultDomain "github.com/zasta/tokenvault/internal/vault/domain"
)

// vaultUseCaseWithMetrics decorates VaultUseCase with metrics instrumentation.
type vaultUseCaseWithMetrics struct {
	next    VaultUseCase
	metrics metrics.BusinessMetrics
}

// NewVaultUseCaseWithMetrics wraps a VaultUseCase with metrics recording.
func NewVaultUseCaseWithMetrics(useCase VaultUseCase, m metrics.BusinessMetrics) VaultUseCase {
	return &vaultUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Tokenize records metrics for tokenize operations.
func (v *vaultUseCaseWithMetrics) Tokenize(
	ctx context.Context,
	fields map[string]string,
) (map[string]string, error) {
	start := time.Now()
	result, err := v.next.Tokenize(ctx, fields)

	status := "success"
	if err != nil {
		status = "error"
	}

	v.metrics.RecordOperation(ctx, "vault", "tokenize", status)
	v.metrics.RecordDuration(ctx, "vault", "tokenize", time.Since(start), status)

	return result, err
}

// Detokenize records metrics for detokenize operations.
func (v *vaultUseCaseWithMetrics) Detokenize(
	ctx context.Context,
	fields map[string]string,
) (map[string]vaultDomain.FieldResult, error) {
	start := time.Now()
	result, err := v.next.Detokenize(ctx, fields)

	status := "success"
	if err != nil {
		status = "error"
	}

	v.metrics.RecordOperation(ctx, "vault", "detokenize", status)
	v.metrics.RecordDuration(ctx, "vault", "detokenize", time.Since(start), status)

	return result, err
}
