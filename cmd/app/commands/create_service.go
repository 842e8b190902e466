package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	authDomain "github.com/zasta/tokenvault/internal/auth/domain"
	authUseCase "github.com/zasta/tokenvault/internal/auth/usecase"
)

// RunCreateService registers a new service with the given role and prints the
// generated secret. The secret is shown only once; only its Argon2id hash is
// stored. Outputs in either text or JSON format.
//
// Requirements: Database must be migrated and accessible.
func RunCreateService(
	ctx context.Context,
	useCase authUseCase.AuthUseCase,
	logger *slog.Logger,
	io IOTuple,
	serviceID string,
	role string,
	format string,
) error {
	logger.Info("creating new service", slog.String("service_id", serviceID))

	parsedRole := authDomain.Role(role)
	if !parsedRole.IsValid() {
		return fmt.Errorf(
			"invalid role: %q (valid options: %s, %s, %s)",
			role,
			authDomain.VisitorRole,
			authDomain.TokenizerRole,
			authDomain.DetokenizerRole,
		)
	}

	input := &authDomain.CreateServiceInput{
		ID:   serviceID,
		Role: parsedRole,
	}

	output, err := useCase.CreateService(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	if format == "json" {
		outputServiceJSON(output, io.Writer)
	} else {
		outputServiceText(output, io.Writer)
	}

	logger.Info("service created successfully",
		slog.String("service_id", output.ID),
		slog.String("role", string(output.Role)),
	)

	return nil
}

// outputServiceText outputs the result in human-readable text format.
func outputServiceText(output *authDomain.CreateServiceOutput, writer io.Writer) {
	_, _ = fmt.Fprintln(writer, "\nService created successfully!")
	_, _ = fmt.Fprintf(writer, "Service ID: %s\n", output.ID)
	_, _ = fmt.Fprintf(writer, "Role: %s\n", output.Role)
	_, _ = fmt.Fprintf(writer, "Secret: %s\n", output.PlainSecret)
	_, _ = fmt.Fprintln(writer, "\nIMPORTANT: The secret is shown only once. Store it securely.")
}

// outputServiceJSON outputs the result in JSON format for machine consumption.
func outputServiceJSON(output *authDomain.CreateServiceOutput, writer io.Writer) {
	result := map[string]string{
		"service_id": output.ID,
		"role":       string(output.Role),
		"secret":     output.PlainSecret,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
