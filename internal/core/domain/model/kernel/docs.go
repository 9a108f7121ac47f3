// Package kernel provides the shared value objects of the dispatch domain.
//
// The package includes:
//   - UUID: identifier value object wrapping github.com/google/uuid
//   - Location: latitude/longitude pair used for delivery points, vehicles and agent reports
//
// Both are immutable and validate their invariants on construction.
package kernel
