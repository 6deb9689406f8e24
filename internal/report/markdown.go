package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/redspecter/scriptmap/internal/model"
)

// titleCaser renders category names for table display.
var titleCaser = cases.Title(language.English)

// InventoryWriter outputs the script inventory document in Markdown.
// One table row per classified script, in first-seen order.
//
// Design decision: We use the nao1215/markdown library for fluent
// markdown generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type InventoryWriter struct {
	baseWriter
}

// NewInventoryWriter creates an InventoryWriter that outputs to the given writer.
func NewInventoryWriter(output io.Writer) *InventoryWriter {
	return &InventoryWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the inventory document.
func (w *InventoryWriter) Write(report *model.ScriptMapReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Script Inventory")
	md.PlainText("")

	if len(report.Scripts) == 0 {
		md.PlainText("_No script URLs found in input._")
		return len(md.String()), md.Build()
	}

	rows := make([][]string, len(report.Scripts))
	for i, s := range report.Scripts {
		rows[i] = []string{
			"`" + escapePipes(s.URL) + "`",
			"`" + escapePipes(s.DomainLabel()) + "`",
			displayCategory(s.Category),
			s.Party.String(),
			escapePipes(strings.Join(s.Notes, "; ")),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"URL", "Host", "Category", "Party", "Notes"},
		Rows:   rows,
	})

	return len(md.String()), md.Build()
}

// SummaryWriter outputs the scan summary document in Markdown.
// This is the document meant for risk discussions: totals, category
// breakdown, third-party domain ranking, and fixed talking points.
type SummaryWriter struct {
	baseWriter
}

// NewSummaryWriter creates a SummaryWriter that outputs to the given writer.
func NewSummaryWriter(output io.Writer) *SummaryWriter {
	return &SummaryWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the summary document.
func (w *SummaryWriter) Write(report *model.ScriptMapReport) (int, error) {
	summary := ensureSummary(report)

	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, summary)
	w.writeAlert(md, summary)
	w.writeCategoryBreakdown(md, summary)
	w.writeTopDomains(md, summary)
	w.writeTalkingPoints(md)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the summary header with scan information.
func (w *SummaryWriter) writeHeader(md *markdown.Markdown, summary *model.Summary) {
	md.H1("ScriptMap Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Primary Domain", "`" + summary.PrimaryDomain + "`"},
			{"Scan Date", summary.DateScanned.Format("2006-01-02 15:04:05 MST")},
			{"Total Scripts", strconv.Itoa(summary.TotalScripts)},
			{"First-party", strconv.Itoa(summary.FirstPartyCount)},
			{"Third-party", strconv.Itoa(summary.ThirdPartyCount)},
			{"Needs Review", strconv.Itoa(summary.NeedsReviewCount)},
		},
	})
	md.PlainText("")
}

// writeAlert writes an appropriate alert based on the third-party exposure.
func (w *SummaryWriter) writeAlert(md *markdown.Markdown, summary *model.Summary) {
	switch {
	case summary.TotalScripts == 0:
		md.Note("No scripts were detected in the input.")
	case summary.ThirdPartyCount > 10:
		md.Warningf(
			"%d third-party scripts detected. Each one is a supply-chain dependency worth reviewing.",
			summary.ThirdPartyCount,
		)
	case summary.ThirdPartyCount > 0:
		md.Importantf(
			"%d third-party script(s) detected. Review the domain list before tightening CSP.",
			summary.ThirdPartyCount,
		)
	default:
		md.Tip("All detected scripts are first-party.")
	}
	md.PlainText("")
}

// writeCategoryBreakdown writes the per-category counts with a pie chart.
func (w *SummaryWriter) writeCategoryBreakdown(md *markdown.Markdown, summary *model.Summary) {
	md.H2("Category Breakdown")
	md.PlainText("")

	if len(summary.CategoryCounts) == 0 {
		md.PlainText("_No scripts detected._")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(summary.CategoryCounts))
	for i, cc := range summary.CategoryCounts {
		rows[i] = []string{displayCategory(cc.Category), strconv.Itoa(cc.Count)}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Category", "Count"},
		Rows:   rows,
	})

	w.writePieChart(md, summary)
}

// writePieChart writes a mermaid pie chart for the category distribution.
func (w *SummaryWriter) writePieChart(md *markdown.Markdown, summary *model.Summary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Script Category Distribution"),
		piechart.WithShowData(true),
	)

	for _, cc := range summary.CategoryCounts {
		if cc.Count > 0 {
			chart.LabelAndIntValue(displayCategory(cc.Category), uint64(cc.Count))
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeTopDomains writes the third-party domain frequency ranking.
func (w *SummaryWriter) writeTopDomains(md *markdown.Markdown, summary *model.Summary) {
	md.H2("Top Third-Party Domains")
	md.PlainText("")

	if len(summary.TopThirdPartyDomains) == 0 {
		md.PlainText("_No third-party script domains detected._")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(summary.TopThirdPartyDomains))
	for i, dc := range summary.TopThirdPartyDomains {
		rows[i] = []string{"`" + escapePipes(dc.Domain) + "`", strconv.Itoa(dc.Count)}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Domain", "Count"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeTalkingPoints writes the fixed discussion list.
func (w *SummaryWriter) writeTalkingPoints(md *markdown.Markdown) {
	md.H2("Suggested Talking Points")
	md.PlainText("")
	md.BulletList(model.TalkingPoints()...)
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *SummaryWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by scriptmap*")
}

// displayCategory returns the table display name for a category.
// CDN keeps its acronym; everything else is title-cased.
func displayCategory(c model.Category) string {
	if c == model.CategoryCDN {
		return "CDN/Library"
	}
	return titleCaser.String(c.String())
}

// escapePipes escapes pipe characters so URLs cannot break table rows.
func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
