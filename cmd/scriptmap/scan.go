package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/redspecter/scriptmap/internal/classify"
	"github.com/redspecter/scriptmap/internal/config"
	"github.com/redspecter/scriptmap/internal/database"
	"github.com/redspecter/scriptmap/internal/extract"
	"github.com/redspecter/scriptmap/internal/log"
	"github.com/redspecter/scriptmap/internal/model"
	"github.com/redspecter/scriptmap/internal/report"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [input-file]...",
		Short: "Inventory and classify script references in input files",
		Long: `Scan reads one or more input files containing script URLs or HTML
<script> tags, classifies every reference, and writes two Markdown
documents: a per-script inventory table and a summary for risk
discussions.

Each input line can be:
- A full script URL (e.g. https://www.googletagmanager.com/gtm.js?id=GTM-XXXX)
- An HTML <script> tag (the src attribute is extracted)

Examples:
  # Scan a URL list against a primary domain
  scriptmap scan --primary-domain example.com scripts.txt

  # Scan multiple files, writing reports with a custom prefix
  scriptmap scan -p example.com -o audit/example homepage.html checkout.html

  # Print both Markdown documents to stdout
  scriptmap scan -p example.com --stdout scripts.txt

  # Output the full report as JSON
  scriptmap scan -p example.com --json scripts.txt

Configuration file (.scriptmap) example:
  primaryDomain: example.com
  rules:
    - pattern: tags.internal-cdn.example.net
      kind: suffix
      category: cdn/library
  ignorePatterns:
    - localhost`,
		Args: cobra.MinimumNArgs(1),
		RunE: runScanCmd,
	}

	cmd.Flags().StringP("primary-domain", "p", "",
		"Primary application domain (e.g. example.com) used to distinguish first/third-party")
	cmd.Flags().StringP("output", "o", config.DefaultOutputPrefix,
		"Prefix for the generated report files (<prefix>_inventory.md, <prefix>_summary.md)")
	cmd.Flags().Bool("stdout", false,
		"Print both Markdown documents to stdout instead of writing files")
	cmd.Flags().BoolP("json", "j", false,
		"Output the full report as JSON to stdout (mutually exclusive with --stdout)")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .scriptmap in current or home directory)")
	cmd.Flags().Bool("no-save", false,
		"Do not record this scan in the history database")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewRedactLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	return runScan(context.Background(), cfg, logger)
}

// buildConfig creates a Config from cobra command flags and the optional
// configuration file. Flag values take precedence over file values.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.PrimaryDomain, err = cmd.Flags().GetString("primary-domain")
	if err != nil {
		return nil, err
	}

	cfg.OutputPrefix, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.WriteToStdout, err = cmd.Flags().GetBool("stdout")
	if err != nil {
		return nil, err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noSave
	cfg.DBDir = config.XDGDataDir()

	cfg.Verbose = getVerboseFlag(cmd)

	// Load the configuration file.
	// If the user explicitly specified a path, a missing file is an
	// error; a discovered file is optional.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cf, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cf.Apply(cfg)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	// Positional arguments are the input files.
	cfg.InputFiles = args

	return cfg, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// runScan executes the scan: read, extract, classify, report, record.
func runScan(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	corpus, err := readInputFiles(cfg.InputFiles)
	if err != nil {
		return err
	}

	extractor := extract.New(extract.WithIgnorePatterns(cfg.IgnorePatterns))
	refs, err := extractor.Extract(strings.NewReader(corpus))
	if err != nil {
		return fmt.Errorf("failed to extract script references: %w", err)
	}

	logger.Info("extraction complete",
		"inputFiles", len(cfg.InputFiles),
		"references", len(refs),
	)

	rules := append(customRules(cfg.Rules), classify.DefaultRules()...)
	classifier, err := classify.New(cfg.PrimaryDomain, rules)
	if err != nil {
		return fmt.Errorf("failed to create classifier: %w", err)
	}

	scanReport := model.NewScriptMapReport(classifier.PrimaryDomain())
	scanReport.InputFiles = cfg.InputFiles
	scanReport.Scripts = classifier.ClassifyAll(refs)
	scanReport.Summary = model.NewSummary(scanReport)

	for _, s := range scanReport.Scripts {
		logger.Debug("classified script",
			"url", s.URL,
			"category", s.Category.String(),
			"party", s.Party.String(),
		)
	}

	if err := outputReport(cfg, scanReport); err != nil {
		return err
	}

	if cfg.SaveToDB {
		if err := saveScanReport(ctx, cfg, scanReport, logger); err != nil {
			logger.Error("failed to save scan report", "error", err)
		}
	}

	return nil
}

// readInputFiles reads and concatenates the input files in argument
// order. A missing or unreadable file aborts the run before
// classification starts.
func readInputFiles(paths []string) (string, error) {
	var sb strings.Builder
	for _, path := range paths {
		data, err := os.ReadFile(path) //nolint:gosec // User-provided input path is intentional
		if err != nil {
			return "", fmt.Errorf("failed to read input file %s: %w", path, err)
		}
		sb.Write(data)
		if len(data) > 0 && data[len(data)-1] != '\n' {
			sb.WriteByte('\n')
		}
	}
	return sb.String(), nil
}

// customRules converts config file rule entries to classifier rules.
func customRules(entries []config.RuleEntry) []classify.Rule {
	rules := make([]classify.Rule, 0, len(entries))
	for _, e := range entries {
		if e.Pattern == "" {
			continue
		}
		rules = append(rules, classify.Rule{
			Pattern:  e.Pattern,
			Kind:     classify.ParsePatternKind(e.Kind),
			Category: model.ParseCategory(e.Category),
		})
	}
	return rules
}

// outputReport writes the scan report in the requested format.
func outputReport(cfg *config.Config, scanReport *model.ScriptMapReport) error {
	// JSON output (detailed report with all data)
	if cfg.JSONReport {
		writer := report.NewFullJSONWriter(os.Stdout, getVersion(), report.WithPrettyPrint())
		_, err := writer.Write(scanReport)
		return err
	}

	// Markdown to stdout
	if cfg.WriteToStdout {
		writer := report.NewMultiWriter(
			report.NewInventoryWriter(os.Stdout),
			report.NewSummaryWriter(os.Stdout),
		)
		_, err := writer.Write(scanReport)
		return err
	}

	// Markdown to files (default)
	inventoryPath := cfg.OutputPrefix + "_inventory.md"
	summaryPath := cfg.OutputPrefix + "_summary.md"

	err := writeMarkdownFile(inventoryPath, scanReport, func(w io.Writer) report.Writer {
		return report.NewInventoryWriter(w)
	})
	if err != nil {
		return err
	}
	err = writeMarkdownFile(summaryPath, scanReport, func(w io.Writer) report.Writer {
		return report.NewSummaryWriter(w)
	})
	if err != nil {
		return err
	}

	fmt.Printf("ScriptMap complete.\n")
	fmt.Printf("  Scripts detected: %d\n", scanReport.TotalScripts())
	fmt.Printf("  Inventory table:  %s\n", inventoryPath)
	fmt.Printf("  Summary report:   %s\n", summaryPath)

	return nil
}

// writeMarkdownFile writes one report document to a file.
// Script URLs can embed API keys, so reports are owner-readable only.
func writeMarkdownFile(path string, scanReport *model.ScriptMapReport, newWriter func(w io.Writer) report.Writer) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if _, err := newWriter(f).Write(scanReport); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}

// saveScanReport records the scan in the history database.
func saveScanReport(ctx context.Context, cfg *config.Config, scanReport *model.ScriptMapReport, logger *slog.Logger) error {
	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	id, err := db.SaveReport(ctx, scanReport)
	if err != nil {
		return err
	}

	logger.Info("scan recorded",
		"scanID", id,
		"primaryDomain", scanReport.PrimaryDomain,
	)
	return nil
}
