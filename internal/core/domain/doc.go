// Package domain defines the core business entities for registro.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Record: A registration normalised from either read endpoint
//   - Registration: The flat payload posted by the data-entry forms
//   - Endpoint: A configured read endpoint and its source tag
//   - Listing: The merged result of a fetch cycle
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
package domain
