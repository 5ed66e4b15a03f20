// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - PageAccessor: Read and navigation access to the current page
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - EmbeddingService: Generates vector embeddings. Without it, semantic
//     search and smart scroll are disabled.
//   - Transport: Delivers Navigate/Click to the browser-side peer. Without
//     it, browser-scoped actions fail with a typed error.
//   - KVStore: Durable cross-session cache for embedding vectors.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or segmenter package
package driven
