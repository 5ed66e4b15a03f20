// Package domain defines the core business entities for PageLens.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Section: A segmented, addressable unit of page content
//   - SearchResult: A ranked hit against the current section set
//   - Command: A structured page action interpreted from free text
//   - Settings: Persisted user configuration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
