package extract

import (
	"bufio"
	"io"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/redspecter/scriptmap/internal/model"
)

// maxLineSize is the scanner buffer limit. Minified HTML can put an
// entire document on one line, so the default 64KB is not enough.
const maxLineSize = 1024 * 1024

// bareURLRegex matches standalone absolute http/https URLs in a line.
// The asterisk quantifier deliberately accepts hostless tokens like
// "https://" so they reach the classifier and surface as malformed
// entries rather than vanishing from the inventory.
var bareURLRegex = regexp.MustCompile(`(?i)https?://[^\s"'<>` + "`" + `]*`)

// Extractor scans raw input text and produces a deduplicated ordered
// sequence of script references. It recognizes bare URLs, protocol-relative
// URLs, and src attributes inside <script> markup.
//
// Design decision: Markup lines are parsed with golang.org/x/net/html
// rather than regex because:
//  1. It correctly handles malformed HTML common in pasted snippets
//  2. Attribute quoting variants (single, double, unquoted) come for free
//  3. More maintainable than complex regex patterns
type Extractor struct {
	// ignorePatterns are substrings; a URL containing any of them is
	// skipped during extraction.
	ignorePatterns []string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithIgnorePatterns sets URL substring patterns to skip during extraction.
func WithIgnorePatterns(patterns []string) Option {
	return func(e *Extractor) {
		e.ignorePatterns = patterns
	}
}

// New creates an Extractor.
func New(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract scans the input line by line and returns unique script
// references in first-occurrence order. Duplicates by normalized URL
// increment Occurrences on the first-seen reference. Malformed URL-like
// tokens are skipped without aborting the scan.
func (e *Extractor) Extract(r io.Reader) ([]model.ScriptReference, error) {
	refs := make([]model.ScriptReference, 0)
	seen := make(map[string]int) // normalized URL -> index into refs

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || isComment(line) {
			continue
		}

		for _, cand := range e.candidates(line) {
			ref, ok := e.buildReference(line, lineNum, cand)
			if !ok {
				continue
			}

			key := normalizeKey(ref)
			if idx, dup := seen[key]; dup {
				refs[idx].Occurrences++
				continue
			}
			seen[key] = len(refs)
			refs = append(refs, ref)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return refs, nil
}

// candidate is a URL-like token found in a line, before validation.
type candidate struct {
	url  string
	form model.SourceForm
}

// candidates finds all URL-like tokens in a line. Markup lines yield
// script src values; other lines yield bare absolute URLs and
// protocol-relative URLs.
func (e *Extractor) candidates(line string) []candidate {
	if strings.Contains(strings.ToLower(line), "<script") {
		return scriptSources(line)
	}

	result := make([]candidate, 0, 1)
	if rest, ok := protocolRelative(line); ok {
		result = append(result, candidate{url: "https://" + rest, form: model.SourceBare})
		return result
	}
	for _, match := range bareURLRegex.FindAllString(line, -1) {
		result = append(result, candidate{url: trimTrailingPunct(match), form: model.SourceBare})
	}
	return result
}

// buildReference validates a candidate and fills in the parsed components.
// It returns false for unparseable tokens and for ignored URLs; both are
// skipped non-fatally.
func (e *Extractor) buildReference(line string, lineNum int, cand candidate) (model.ScriptReference, bool) {
	if e.ignored(cand.url) {
		return model.ScriptReference{}, false
	}

	ref := model.ScriptReference{
		Raw:         line,
		URL:         cand.url,
		Line:        lineNum,
		Source:      cand.form,
		Occurrences: 1,
	}

	if cand.form == model.SourceRelative {
		ref.Path = cand.url
		return ref, true
	}

	u, err := url.Parse(cand.url)
	if err != nil {
		return model.ScriptReference{}, false
	}

	ref.Scheme = strings.ToLower(u.Scheme)
	ref.Host = strings.ToLower(u.Host)
	ref.Path = u.Path
	if ref.Path == "" {
		ref.Path = "/"
	}
	return ref, true
}

// ignored reports whether the URL matches any ignore pattern.
func (e *Extractor) ignored(rawURL string) bool {
	for _, pattern := range e.ignorePatterns {
		if pattern != "" && strings.Contains(rawURL, pattern) {
			return true
		}
	}
	return false
}

// scriptSources parses a markup line and extracts src values from all
// <script> elements found in it. html.Parse tolerates fragments and
// malformed markup, wrapping content in an implied document.
func scriptSources(line string) []candidate {
	doc, err := html.Parse(strings.NewReader(line))
	if err != nil {
		// Not fatal; the line simply yields no references.
		return nil
	}

	result := make([]candidate, 0, 1)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "script" {
			if src := strings.TrimSpace(getAttr(n, "src")); src != "" {
				result = append(result, classifySrc(src))
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return result
}

// classifySrc determines the source form of a script src value and
// normalizes protocol-relative URLs to https.
func classifySrc(src string) candidate {
	lower := strings.ToLower(src)
	switch {
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return candidate{url: src, form: model.SourceMarkup}
	case strings.HasPrefix(src, "//"):
		return candidate{url: "https:" + src, form: model.SourceMarkup}
	default:
		return candidate{url: src, form: model.SourceRelative}
	}
}

// protocolRelative reports whether a line is a standalone
// protocol-relative URL ("//host/path") and returns the part after the
// slashes. Lines starting with "//" that do not look like a host are
// treated as comments.
func protocolRelative(line string) (string, bool) {
	if !strings.HasPrefix(line, "//") {
		return "", false
	}
	rest := line[2:]
	host := rest
	if i := strings.IndexAny(host, "/?#"); i >= 0 {
		host = host[:i]
	}
	if host == "" || strings.ContainsAny(host, " \t") || !strings.Contains(host, ".") {
		return "", false
	}
	return rest, true
}

// isComment reports whether a line is a comment. "//" is only a comment
// marker when the line is not a protocol-relative URL.
func isComment(line string) bool {
	if strings.HasPrefix(line, "#") || strings.HasPrefix(line, "<!--") {
		return true
	}
	if strings.HasPrefix(line, "//") {
		_, isURL := protocolRelative(line)
		return !isURL
	}
	return false
}

// trimTrailingPunct removes punctuation that commonly trails URLs pasted
// into prose or code (commas, closing brackets, statement terminators).
func trimTrailingPunct(s string) string {
	return strings.TrimRight(s, ".,;:)]}")
}

// normalizeKey builds the deduplication key: scheme, case-folded host,
// path, and query. Fragments are dropped; two URLs differing only in
// fragment are the same script.
func normalizeKey(ref model.ScriptReference) string {
	if ref.Source == model.SourceRelative {
		return "relative:" + ref.URL
	}

	key := ref.Scheme + "://" + ref.Host + ref.Path
	if u, err := url.Parse(ref.URL); err == nil && u.RawQuery != "" {
		key += "?" + u.RawQuery
	}
	return key
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if strings.EqualFold(attr.Key, key) {
			return attr.Val
		}
	}
	return ""
}
