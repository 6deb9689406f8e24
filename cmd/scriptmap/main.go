// Package main provides the entry point for the scriptmap CLI.
//
// scriptmap inventories the JavaScript resources referenced by a web
// page or codebase, classifies each by vendor category, labels it
// first- or third-party relative to a primary domain, and generates
// Markdown reports for security reviews.
//
// Usage:
//
//	scriptmap scan --primary-domain example.com scripts.txt
//	scriptmap compare example.com
//
// See --help for all available options.
package main

// main is the entry point for scriptmap.
func main() {
	Execute()
}
