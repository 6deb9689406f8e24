// Package config provides configuration structures and utilities for
// scriptmap. It defines the run options built from CLI flags, the
// optional .scriptmap YAML file with custom classification rules, and
// the XDG directory helpers used for the history database.
package config
