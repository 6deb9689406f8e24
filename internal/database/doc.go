// Package database provides SQLite-based persistence for scan history.
// Recorded scans back the compare command, which diffs a site's script
// inventory between runs to surface new and removed dependencies.
package database
