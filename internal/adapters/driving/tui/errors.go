package tui

import "errors"

// ErrMissingListingService is returned when the listing service is not provided.
var ErrMissingListingService = errors.New("tui: listing service is required")

// ErrMissingSubmissionService is returned when the submission service is not provided.
var ErrMissingSubmissionService = errors.New("tui: submission service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
