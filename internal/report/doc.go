// Package report provides output writers for scan results.
//
// Two Markdown documents are produced per scan: the inventory (one table
// row per classified script) and the summary (totals, category
// breakdown, third-party domain ranking, and suggested talking points).
// A JSON writer is available for tool integration.
package report
