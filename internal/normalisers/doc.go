// Package normalisers contains implementations for converting raw page
// bodies into plain text ready for chunking.
//
// Each sub-package implements the driven.Normaliser port for one input
// format. Normalisers are pure functions of their input: no I/O, no
// clock, deterministic output. The HTML normaliser handles exported
// notes with markup; the plaintext normaliser handles bodies that are
// already text and only collapses whitespace. Selector sniffs the body
// and routes it to the right one.
//
// Import Rules:
//   - MAY import core/ports/driven (the Normaliser interface)
//   - MUST NOT import adapters or services
package normalisers
