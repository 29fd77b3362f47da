// Package domain defines the core business entities for noterag.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Page: A raw note page from the hosting application
//   - Chunk / EmbeddedChunk: The unit of embedding and retrieval
//   - IndexMetadata / IndexStatus: Per-user index summary and status
//   - SearchResult / Answer: Ephemeral query results
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
