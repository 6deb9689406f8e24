// Package model defines the core data structures used throughout scriptmap.
//
// This package contains the following main types:
//   - ScriptReference: A deduplicated script URL extracted from input text
//   - ClassifiedScript: A reference paired with its category and party label
//   - ScriptMapReport: The main scan result structure
//   - Summary: An aggregated, human-readable view of a scan
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (extract, classify, report, database) need
// to use these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage.
package model
