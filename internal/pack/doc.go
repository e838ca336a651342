// Package pack implements the item-model transformation core for legacy
// Minecraft resource packs (1.14-1.21.3) targeting the 1.21.4+ item schema.
//
// This package is organized into specialized modules:
//   - document: legacy and converted document shapes plus JSON codecs
//   - predicate: override predicate classification
//   - path: model/texture path normalization across schema versions
//   - convert: per-mode conversion of one legacy document
//
// All functions here are pure: no filesystem access, no shared state.
// Directory traversal and file placement live in internal/walker.
package pack
