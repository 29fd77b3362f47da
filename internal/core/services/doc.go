// Package services implements the core pipeline logic.
//
// Services implement the driving ports and depend only on domain types
// and driven ports. The two orchestrators mirror the two pipeline
// directions: BuildOrchestrator rebuilds a user's index (normalise ->
// chunk -> embed -> store), RagService answers questions (embed query ->
// retrieve -> synthesise).
//
// # Import Rules
//
//   - Can Import: domain, ports/driven, ports/driving, logger
//   - Cannot Import: Any adapter or normaliser package
package services
