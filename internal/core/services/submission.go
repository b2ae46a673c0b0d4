package services

import (
	"context"
	"errors"

	"github.com/custodia-labs/registro-cli/internal/core/domain"
	"github.com/custodia-labs/registro-cli/internal/core/ports/driven"
	"github.com/custodia-labs/registro-cli/internal/core/ports/driving"
	"github.com/custodia-labs/registro-cli/internal/logger"
)

// Ensure SubmissionService implements the interface.
var _ driving.SubmissionService = (*SubmissionService)(nil)

// SubmissionService posts form payloads to the registry API.
type SubmissionService struct {
	api     driven.RegistryAPI
	metrics driven.Metrics
}

// NewSubmissionService creates a new submission service.
func NewSubmissionService(api driven.RegistryAPI) *SubmissionService {
	return &SubmissionService{
		api:     api,
		metrics: driven.NopMetrics{},
	}
}

// SetMetrics sets the metrics sink. Nil restores the no-op sink.
func (s *SubmissionService) SetMetrics(m driven.Metrics) {
	if m == nil {
		m = driven.NopMetrics{}
	}
	s.metrics = m
}

// Submit validates reg locally and then sends exactly one POST.
// The payload is sent verbatim. Failures are returned unchanged so their
// message can be shown to the user.
func (s *SubmissionService) Submit(
	ctx context.Context, kind domain.FormKind, reg domain.Registration,
) (map[string]any, error) {
	path, err := kind.Path()
	if err != nil {
		return nil, err
	}

	if err := reg.Validate(); err != nil {
		s.metrics.ObserveSubmit(string(kind), driven.OutcomeInvalid)
		logger.Debug("%s form rejected locally: %v", kind, err)
		return nil, err
	}

	if s.api == nil {
		return nil, domain.ErrAPIUnavailable
	}

	logger.Debug("POST %s (%s form)", path, kind)
	resp, err := s.api.Post(ctx, path, reg)
	if err != nil {
		outcome := driven.OutcomeFailure
		if errors.Is(err, context.Canceled) {
			outcome = driven.OutcomeCancelled
		}
		s.metrics.ObserveSubmit(string(kind), outcome)
		logger.Warn("POST %s failed: %v", path, err)
		return nil, err
	}

	s.metrics.ObserveSubmit(string(kind), driven.OutcomeSuccess)
	if resp == nil {
		resp = map[string]any{}
	}
	return resp, nil
}
