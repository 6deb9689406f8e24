// Package extract implements the reference extractor: a pure
// text-to-data pass that scans an input corpus for script URLs.
//
// The extractor recognizes two surface forms: standalone absolute URLs
// appearing anywhere in a line, and src attributes of <script> elements
// in markup lines. Output is an ordered sequence of unique references;
// ordering follows first occurrence and duplicates by normalized URL are
// suppressed after the first. No network access is performed.
package extract
