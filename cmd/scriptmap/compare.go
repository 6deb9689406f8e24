package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/redspecter/scriptmap/internal/classify"
	"github.com/redspecter/scriptmap/internal/config"
	"github.com/redspecter/scriptmap/internal/database"
	"github.com/redspecter/scriptmap/internal/model"
)

// Constants for exposure direction and summary messages.
const (
	exposureDirectionGrew      = "grew"
	exposureDirectionShrank    = "shrank"
	exposureDirectionUnchanged = "unchanged"
)

// NewCompareCmd creates the compare command.
// This command compares scan results with historical data stored in the database.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [primary-domain]",
		Short: "Compare scan results with historical data",
		Long: `Compare displays differences between the current and previous scan results.

This command retrieves historical scan data from the database and shows:
- Scripts that appeared since the last scan
- Scripts that are no longer present
- Changes in a script's category or party classification

The comparison requires at least two scans in the database for the specified
primary domain. Use 'scriptmap scan' to perform scans and save results.

Examples:
  # Compare latest two scans for a domain
  scriptmap compare example.com

  # List all scan history for a domain
  scriptmap compare --list example.com

  # Output comparison in JSON format
  scriptmap compare --json example.com

  # List all scanned domains in the database
  scriptmap compare --list-domains`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCompareCmd,
	}

	// History listing flags
	cmd.Flags().BoolP("list", "l", false,
		"List scan history for the specified primary domain")
	cmd.Flags().BoolP("list-domains", "L", false,
		"List all scanned domains in the database")

	// Output format flags
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	// Handle --list-domains flag first (requires database but no domain)
	listDomains, err := cmd.Flags().GetBool("list-domains")
	if err != nil {
		return err
	}

	// Validate arguments before opening database (unless --list-domains)
	var primaryDomain string
	if !listDomains {
		if len(args) == 0 {
			return errors.New("primary domain is required (use --list-domains to see available domains)")
		}

		// Normalize the domain the same way scan records it so
		// lookups match regardless of input casing or subdomains.
		classifier, err := classify.New(args[0], nil)
		if err != nil {
			return fmt.Errorf("invalid primary domain: %w", err)
		}
		primaryDomain = classifier.PrimaryDomain()
	}

	db, err := database.Open(config.XDGDataDir(), database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	if listDomains {
		return listScannedDomains(ctx, db)
	}

	listHistory, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	if listHistory {
		return listScanHistory(ctx, db, primaryDomain)
	}

	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	return runComparison(ctx, db, primaryDomain, jsonOutput)
}

// listScannedDomains lists all domains that have scan records in the database.
func listScannedDomains(ctx context.Context, db *database.HistoryDB) error {
	domains, err := db.ListDomains(ctx)
	if err != nil {
		return fmt.Errorf("failed to list domains: %w", err)
	}

	if len(domains) == 0 {
		fmt.Println("No scanned domains found in the database.")
		fmt.Println("\nUse 'scriptmap scan -p <domain> <file>' to scan input files.")
		return nil
	}

	fmt.Printf("Scanned domains (%d):\n\n", len(domains))
	for _, domain := range domains {
		fmt.Printf("  • %s\n", domain)
	}
	fmt.Println("\nUse 'scriptmap compare --list <domain>' to see scan history for a domain.")

	return nil
}

// listScanHistory lists all scan records for a specific primary domain.
func listScanHistory(ctx context.Context, db *database.HistoryDB, primaryDomain string) error {
	records, err := db.ListScans(ctx, primaryDomain)
	if err != nil {
		return fmt.Errorf("failed to get scan history: %w", err)
	}

	if len(records) == 0 {
		fmt.Printf("No scan history found for %s\n", primaryDomain)
		fmt.Println("\nUse 'scriptmap scan' to scan input files for this domain.")
		return nil
	}

	fmt.Printf("Scan history for %s (%d scans):\n\n", primaryDomain, len(records))
	fmt.Printf("  %-6s  %-20s  %s\n", "ID", "Date", "Scripts (1st/3rd party)")
	fmt.Println("  " + strings.Repeat("-", 60))

	for _, rec := range records {
		fmt.Printf("  %-6d  %-20s  %d (%d/%d)\n",
			rec.ID,
			rec.Timestamp.Format("2006-01-02 15:04:05"),
			rec.TotalScripts,
			rec.FirstParty,
			rec.ThirdParty,
		)
	}

	fmt.Println("\nUse 'scriptmap compare <domain>' to compare the latest two scans.")

	return nil
}

// runComparison performs the actual comparison between the two latest scans.
func runComparison(ctx context.Context, db *database.HistoryDB, primaryDomain string, jsonOutput bool) error {
	reports, err := db.LatestReports(ctx, primaryDomain, 2)
	if err != nil {
		return fmt.Errorf("failed to get scan history: %w", err)
	}

	if len(reports) == 0 {
		return fmt.Errorf("no scan history found for %s", primaryDomain)
	}
	if len(reports) < 2 {
		return fmt.Errorf("at least 2 scans are required for comparison (found %d)", len(reports))
	}

	// Reports are sorted newest first.
	comparison := compareReports(reports[1], reports[0])

	if jsonOutput {
		return outputComparisonJSON(comparison)
	}
	return outputComparisonText(comparison)
}

// ComparisonResult holds the result of comparing two scan reports.
type ComparisonResult struct {
	// PrimaryDomain is the domain the scans were classified against.
	PrimaryDomain string `json:"primary_domain"`

	// PreviousScan contains metadata about the previous scan.
	PreviousScan ScanMetadata `json:"previous_scan"`

	// CurrentScan contains metadata about the current scan.
	CurrentScan ScanMetadata `json:"current_scan"`

	// AddedScripts contains scripts that are new in the current scan.
	AddedScripts []model.ClassifiedScript `json:"added_scripts,omitempty"`

	// RemovedScripts contains scripts present previously but not now.
	RemovedScripts []model.ClassifiedScript `json:"removed_scripts,omitempty"`

	// ChangedScripts contains scripts whose classification changed.
	ChangedScripts []ScriptChange `json:"changed_scripts,omitempty"`

	// UnchangedCount is the number of scripts that remain unchanged.
	UnchangedCount int `json:"unchanged_count"`

	// ExposureChange describes the overall change in third-party exposure.
	ExposureChange ExposureChange `json:"exposure_change"`
}

// ScanMetadata contains metadata about a scan for comparison display.
type ScanMetadata struct {
	// DateScanned is when the scan was performed.
	DateScanned time.Time `json:"date_scanned"`

	// TotalScripts is the total number of unique scripts in this scan.
	TotalScripts int `json:"total_scripts"`

	// FirstPartyCount is the number of first-party scripts.
	FirstPartyCount int `json:"first_party_count"`

	// ThirdPartyCount is the number of third-party scripts.
	ThirdPartyCount int `json:"third_party_count"`
}

// ScriptChange describes a script whose classification changed between scans.
type ScriptChange struct {
	// URL is the script URL.
	URL string `json:"url"`

	// PreviousCategory is the category in the previous scan.
	PreviousCategory string `json:"previous_category"`

	// CurrentCategory is the category in the current scan.
	CurrentCategory string `json:"current_category"`

	// PreviousParty is the party label in the previous scan.
	PreviousParty string `json:"previous_party"`

	// CurrentParty is the party label in the current scan.
	CurrentParty string `json:"current_party"`
}

// ExposureChange describes the change in third-party exposure between scans.
type ExposureChange struct {
	// Direction is "grew", "shrank", or "unchanged".
	Direction string `json:"direction"`

	// TotalDelta is the change in unique script count.
	TotalDelta int `json:"total_delta"`

	// ThirdPartyDelta is the change in third-party script count.
	ThirdPartyDelta int `json:"third_party_delta"`
}

// compareReports compares two scan reports and generates a comparison result.
func compareReports(previous, current *model.ScriptMapReport) *ComparisonResult {
	result := &ComparisonResult{
		PrimaryDomain: current.PrimaryDomain,
		PreviousScan: ScanMetadata{
			DateScanned:     previous.DateScanned,
			TotalScripts:    previous.TotalScripts(),
			FirstPartyCount: previous.FirstPartyCount(),
			ThirdPartyCount: previous.ThirdPartyCount(),
		},
		CurrentScan: ScanMetadata{
			DateScanned:     current.DateScanned,
			TotalScripts:    current.TotalScripts(),
			FirstPartyCount: current.FirstPartyCount(),
			ThirdPartyCount: current.ThirdPartyCount(),
		},
	}

	previousScripts := make(map[string]model.ClassifiedScript, len(previous.Scripts))
	for _, s := range previous.Scripts {
		previousScripts[s.URL] = s
	}
	currentScripts := make(map[string]model.ClassifiedScript, len(current.Scripts))
	for _, s := range current.Scripts {
		currentScripts[s.URL] = s
	}

	// Walk the scripts in report order so output is deterministic.
	for _, s := range current.Scripts {
		prev, exists := previousScripts[s.URL]
		if !exists {
			result.AddedScripts = append(result.AddedScripts, s)
			continue
		}
		if prev.Category != s.Category || prev.Party != s.Party {
			result.ChangedScripts = append(result.ChangedScripts, ScriptChange{
				URL:              s.URL,
				PreviousCategory: prev.Category.String(),
				CurrentCategory:  s.Category.String(),
				PreviousParty:    prev.Party.String(),
				CurrentParty:     s.Party.String(),
			})
			continue
		}
		result.UnchangedCount++
	}

	for _, s := range previous.Scripts {
		if _, exists := currentScripts[s.URL]; !exists {
			result.RemovedScripts = append(result.RemovedScripts, s)
		}
	}

	result.ExposureChange = calculateExposureChange(result.PreviousScan, result.CurrentScan)

	return result
}

// calculateExposureChange calculates the change in third-party exposure.
// Direction follows the third-party count; total count breaks ties.
func calculateExposureChange(previous, current ScanMetadata) ExposureChange {
	change := ExposureChange{
		TotalDelta:      current.TotalScripts - previous.TotalScripts,
		ThirdPartyDelta: current.ThirdPartyCount - previous.ThirdPartyCount,
	}

	switch {
	case change.ThirdPartyDelta > 0 || (change.ThirdPartyDelta == 0 && change.TotalDelta > 0):
		change.Direction = exposureDirectionGrew
	case change.ThirdPartyDelta < 0 || (change.ThirdPartyDelta == 0 && change.TotalDelta < 0):
		change.Direction = exposureDirectionShrank
	default:
		change.Direction = exposureDirectionUnchanged
	}

	return change
}

// outputComparisonJSON outputs the comparison result in JSON format.
func outputComparisonJSON(result *ComparisonResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// outputComparisonText outputs the comparison result in human-readable text format.
func outputComparisonText(result *ComparisonResult) error {
	fmt.Printf("Scan Comparison: %s\n", result.PrimaryDomain)
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("\nThird-Party Exposure: %s\n", formatExposureDirection(result.ExposureChange.Direction))

	fmt.Printf("\nPrevious scan: %s\n", result.PreviousScan.DateScanned.Format("2006-01-02 15:04:05"))
	fmt.Printf("Current scan:  %s\n", result.CurrentScan.DateScanned.Format("2006-01-02 15:04:05"))

	fmt.Println("\nScript Summary:")
	fmt.Printf("  %-12s  %-10s  %-10s  %-10s\n", "Label", "Previous", "Current", "Change")
	fmt.Println("  " + strings.Repeat("-", 47))
	fmt.Printf("  %-12s  %-10d  %-10d  %-10s\n", "First-party",
		result.PreviousScan.FirstPartyCount, result.CurrentScan.FirstPartyCount,
		formatDelta(result.CurrentScan.FirstPartyCount-result.PreviousScan.FirstPartyCount))
	fmt.Printf("  %-12s  %-10d  %-10d  %-10s\n", "Third-party",
		result.PreviousScan.ThirdPartyCount, result.CurrentScan.ThirdPartyCount,
		formatDelta(result.ExposureChange.ThirdPartyDelta))
	fmt.Println("  " + strings.Repeat("-", 47))
	fmt.Printf("  %-12s  %-10d  %-10d  %-10s\n", "Total",
		result.PreviousScan.TotalScripts, result.CurrentScan.TotalScripts,
		formatDelta(result.ExposureChange.TotalDelta))

	if len(result.AddedScripts) > 0 {
		fmt.Printf("\nAdded Scripts (%d):\n", len(result.AddedScripts))
		for _, s := range result.AddedScripts {
			fmt.Printf("  [+] [%s] [%s] %s\n", s.Category.String(), s.Party.String(), s.URL)
		}
	}

	if len(result.RemovedScripts) > 0 {
		fmt.Printf("\nRemoved Scripts (%d):\n", len(result.RemovedScripts))
		for _, s := range result.RemovedScripts {
			fmt.Printf("  [-] [%s] [%s] %s\n", s.Category.String(), s.Party.String(), s.URL)
		}
	}

	if len(result.ChangedScripts) > 0 {
		fmt.Printf("\nReclassified Scripts (%d):\n", len(result.ChangedScripts))
		for _, c := range result.ChangedScripts {
			fmt.Printf("  [~] %s\n", c.URL)
			if c.PreviousCategory != c.CurrentCategory {
				fmt.Printf("      category: %s -> %s\n", c.PreviousCategory, c.CurrentCategory)
			}
			if c.PreviousParty != c.CurrentParty {
				fmt.Printf("      party:    %s -> %s\n", c.PreviousParty, c.CurrentParty)
			}
		}
	}

	if result.UnchangedCount > 0 {
		fmt.Printf("\nUnchanged: %d scripts\n", result.UnchangedCount)
	}

	return nil
}

// formatExposureDirection formats the exposure change direction for display.
func formatExposureDirection(direction string) string {
	switch direction {
	case exposureDirectionGrew:
		return "GREW (more scripts in play)"
	case exposureDirectionShrank:
		return "SHRANK (fewer scripts in play)"
	default:
		return "UNCHANGED"
	}
}

// formatDelta formats a numeric delta with sign for display.
func formatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	} else if delta < 0 {
		return strconv.Itoa(delta)
	}
	return "0"
}
