// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the pipeline to function:
//
//   - PageStore: Reads a user's note pages from the hosting application
//   - SettingsStore: Per-user AI settings (API key)
//   - AIFactory: Builds remote AI clients from a user's settings
//   - EmbeddingService: Generates vector embeddings
//   - LLMService: Text generation for grounded answers
//   - Normaliser: Strips markup from raw page bodies
//   - Splitter: Splits normalised text into overlapping chunks
//   - IndexStore: Per-user vector index persistence
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the pipeline degrades gracefully:
//
//   - StatusSink: Best-effort progress/status reporting. A nil sink or a
//     failing write never fails the pipeline.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
