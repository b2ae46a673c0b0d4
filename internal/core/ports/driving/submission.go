package driving

import (
	"context"

	"github.com/custodia-labs/registro-cli/internal/core/domain"
)

// SubmissionService provides the write path for the data-entry forms.
type SubmissionService interface {
	// Submit validates reg and posts it to the form's endpoint.
	// Validation failures return a *domain.ValidationError and send nothing.
	Submit(ctx context.Context, kind domain.FormKind, reg domain.Registration) (map[string]any, error)
}
