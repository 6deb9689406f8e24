package extract

import (
	"strings"
	"testing"

	"github.com/redspecter/scriptmap/internal/model"
)

// extractAll is a test helper running a full extraction over input text.
func extractAll(t *testing.T, input string, opts ...Option) []model.ScriptReference {
	t.Helper()
	refs, err := New(opts...).Extract(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return refs
}

// TestExtractBareURLs tests extraction of standalone URLs.
func TestExtractBareURLs(t *testing.T) {
	t.Parallel()

	input := `https://www.googletagmanager.com/gtm.js?id=GTM-XXXX
http://legacy.example.com/old.js
`
	refs := extractAll(t, input)

	if len(refs) != 2 {
		t.Fatalf("expected 2 references, got %d", len(refs))
	}

	t.Run("parses components", func(t *testing.T) {
		t.Parallel()
		first := refs[0]
		if first.URL != "https://www.googletagmanager.com/gtm.js?id=GTM-XXXX" {
			t.Errorf("unexpected URL %q", first.URL)
		}
		if first.Scheme != "https" {
			t.Errorf("expected scheme 'https', got %q", first.Scheme)
		}
		if first.Host != "www.googletagmanager.com" {
			t.Errorf("expected host 'www.googletagmanager.com', got %q", first.Host)
		}
		if first.Path != "/gtm.js" {
			t.Errorf("expected path '/gtm.js', got %q", first.Path)
		}
		if first.Source != model.SourceBare {
			t.Errorf("expected bare source, got %s", first.Source)
		}
	})

	t.Run("records line numbers", func(t *testing.T) {
		t.Parallel()
		if refs[0].Line != 1 {
			t.Errorf("expected line 1, got %d", refs[0].Line)
		}
		if refs[1].Line != 2 {
			t.Errorf("expected line 2, got %d", refs[1].Line)
		}
	})

	t.Run("keeps http scheme", func(t *testing.T) {
		t.Parallel()
		if refs[1].Scheme != "http" {
			t.Errorf("expected scheme 'http', got %q", refs[1].Scheme)
		}
	})
}

// TestExtractMarkup tests extraction from <script> tags.
func TestExtractMarkup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		wantURL  string
		wantForm model.SourceForm
	}{
		{
			name:     "double quoted src",
			input:    `<script src="https://js.stripe.com/v3/"></script>`,
			wantURL:  "https://js.stripe.com/v3/",
			wantForm: model.SourceMarkup,
		},
		{
			name:     "single quoted src",
			input:    `<script src='https://cdn.example.net/lib.js'></script>`,
			wantURL:  "https://cdn.example.net/lib.js",
			wantForm: model.SourceMarkup,
		},
		{
			name:     "unquoted src",
			input:    `<script src=https://cdn.example.net/lib.js></script>`,
			wantURL:  "https://cdn.example.net/lib.js",
			wantForm: model.SourceMarkup,
		},
		{
			name:     "uppercase tag",
			input:    `<SCRIPT SRC="https://cdn.example.net/lib.js"></SCRIPT>`,
			wantURL:  "https://cdn.example.net/lib.js",
			wantForm: model.SourceMarkup,
		},
		{
			name:     "src with extra attributes",
			input:    `<script async defer src="https://cdn.example.net/lib.js" type="text/javascript"></script>`,
			wantURL:  "https://cdn.example.net/lib.js",
			wantForm: model.SourceMarkup,
		},
		{
			name:     "protocol-relative src normalized to https",
			input:    `<script src="//cdn.example.net/lib.js"></script>`,
			wantURL:  "https://cdn.example.net/lib.js",
			wantForm: model.SourceMarkup,
		},
		{
			name:     "relative src kept as relative",
			input:    `<script src="/js/app.bundle.js"></script>`,
			wantURL:  "/js/app.bundle.js",
			wantForm: model.SourceRelative,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			refs := extractAll(t, tt.input)
			if len(refs) != 1 {
				t.Fatalf("expected 1 reference, got %d", len(refs))
			}
			if refs[0].URL != tt.wantURL {
				t.Errorf("expected URL %q, got %q", tt.wantURL, refs[0].URL)
			}
			if refs[0].Source != tt.wantForm {
				t.Errorf("expected source %s, got %s", tt.wantForm, refs[0].Source)
			}
		})
	}
}

// TestExtractMultipleScriptsPerLine tests minified markup with several tags.
func TestExtractMultipleScriptsPerLine(t *testing.T) {
	t.Parallel()

	input := `<script src="https://a.example.net/1.js"></script><script src="https://b.example.net/2.js"></script>`
	refs := extractAll(t, input)

	if len(refs) != 2 {
		t.Fatalf("expected 2 references, got %d", len(refs))
	}
	if refs[0].Host != "a.example.net" || refs[1].Host != "b.example.net" {
		t.Errorf("expected hosts in document order, got %q then %q", refs[0].Host, refs[1].Host)
	}
	if refs[0].Line != 1 || refs[1].Line != 1 {
		t.Error("expected both references on line 1")
	}
}

// TestExtractScriptWithoutSrc tests that inline scripts yield nothing.
func TestExtractScriptWithoutSrc(t *testing.T) {
	t.Parallel()

	refs := extractAll(t, `<script>console.log("inline")</script>`)
	if len(refs) != 0 {
		t.Errorf("expected 0 references for inline script, got %d", len(refs))
	}
}

// TestExtractDeduplication tests that duplicate URLs collapse to one
// reference with an occurrence count.
func TestExtractDeduplication(t *testing.T) {
	t.Parallel()

	t.Run("exact duplicates increment occurrences", func(t *testing.T) {
		t.Parallel()
		input := `https://js.stripe.com/v3/
https://js.stripe.com/v3/
https://js.stripe.com/v3/
`
		refs := extractAll(t, input)
		if len(refs) != 1 {
			t.Fatalf("expected 1 reference, got %d", len(refs))
		}
		if refs[0].Occurrences != 3 {
			t.Errorf("expected 3 occurrences, got %d", refs[0].Occurrences)
		}
		if refs[0].Line != 1 {
			t.Errorf("expected first-seen line 1, got %d", refs[0].Line)
		}
	})

	t.Run("case-folded hosts are duplicates", func(t *testing.T) {
		t.Parallel()
		input := `https://CDN.Example.Net/lib.js
https://cdn.example.net/lib.js
`
		refs := extractAll(t, input)
		if len(refs) != 1 {
			t.Fatalf("expected 1 reference, got %d", len(refs))
		}
		if refs[0].Occurrences != 2 {
			t.Errorf("expected 2 occurrences, got %d", refs[0].Occurrences)
		}
	})

	t.Run("fragments do not distinguish URLs", func(t *testing.T) {
		t.Parallel()
		input := `https://cdn.example.net/lib.js#main
https://cdn.example.net/lib.js#footer
`
		refs := extractAll(t, input)
		if len(refs) != 1 {
			t.Fatalf("expected 1 reference, got %d", len(refs))
		}
	})

	t.Run("differing query strings are distinct", func(t *testing.T) {
		t.Parallel()
		input := `https://www.googletagmanager.com/gtm.js?id=GTM-AAAA
https://www.googletagmanager.com/gtm.js?id=GTM-BBBB
`
		refs := extractAll(t, input)
		if len(refs) != 2 {
			t.Errorf("expected 2 distinct references, got %d", len(refs))
		}
	})

	t.Run("bare and markup forms of same URL are duplicates", func(t *testing.T) {
		t.Parallel()
		input := `https://js.stripe.com/v3/
<script src="https://js.stripe.com/v3/"></script>
`
		refs := extractAll(t, input)
		if len(refs) != 1 {
			t.Fatalf("expected 1 reference, got %d", len(refs))
		}
		if refs[0].Source != model.SourceBare {
			t.Errorf("expected first-seen form kept, got %s", refs[0].Source)
		}
	})
}

// TestExtractComments tests comment and blank line handling.
func TestExtractComments(t *testing.T) {
	t.Parallel()

	input := `# homepage scripts
<!-- pasted from view-source -->
// note to self

https://cdn.example.net/lib.js
`
	refs := extractAll(t, input)

	if len(refs) != 1 {
		t.Fatalf("expected 1 reference, got %d", len(refs))
	}
	if refs[0].Line != 5 {
		t.Errorf("expected line 5, got %d", refs[0].Line)
	}
}

// TestExtractProtocolRelative tests standalone protocol-relative URLs.
// "//host/path" lines are URLs, "// prose" lines are comments.
func TestExtractProtocolRelative(t *testing.T) {
	t.Parallel()

	t.Run("hostlike line becomes https URL", func(t *testing.T) {
		t.Parallel()
		refs := extractAll(t, "//cdn.example.net/lib.js\n")
		if len(refs) != 1 {
			t.Fatalf("expected 1 reference, got %d", len(refs))
		}
		if refs[0].URL != "https://cdn.example.net/lib.js" {
			t.Errorf("expected https URL, got %q", refs[0].URL)
		}
		if refs[0].Host != "cdn.example.net" {
			t.Errorf("expected host 'cdn.example.net', got %q", refs[0].Host)
		}
	})

	t.Run("prose line is a comment", func(t *testing.T) {
		t.Parallel()
		refs := extractAll(t, "// this is just a note\n")
		if len(refs) != 0 {
			t.Errorf("expected 0 references, got %d", len(refs))
		}
	})

	t.Run("dotless segment is a comment", func(t *testing.T) {
		t.Parallel()
		refs := extractAll(t, "//localhost/app.js\n")
		if len(refs) != 0 {
			t.Errorf("expected 0 references, got %d", len(refs))
		}
	})
}

// TestExtractHostlessToken tests that a bare scheme token survives
// extraction so it can be flagged downstream instead of disappearing.
func TestExtractHostlessToken(t *testing.T) {
	t.Parallel()

	refs := extractAll(t, "https://\n")
	if len(refs) != 1 {
		t.Fatalf("expected 1 reference, got %d", len(refs))
	}
	if refs[0].Host != "" {
		t.Errorf("expected empty host, got %q", refs[0].Host)
	}
	if refs[0].Scheme != "https" {
		t.Errorf("expected scheme 'https', got %q", refs[0].Scheme)
	}
}

// TestExtractTrailingPunctuation tests URL cleanup in prose context.
func TestExtractTrailingPunctuation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trailing period", "see https://cdn.example.net/lib.js.", "https://cdn.example.net/lib.js"},
		{"trailing comma", "https://cdn.example.net/lib.js, and more", "https://cdn.example.net/lib.js"},
		{"closing paren", "(https://cdn.example.net/lib.js)", "https://cdn.example.net/lib.js"},
		{"closing bracket", "[https://cdn.example.net/lib.js]", "https://cdn.example.net/lib.js"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			refs := extractAll(t, tt.input+"\n")
			if len(refs) != 1 {
				t.Fatalf("expected 1 reference, got %d", len(refs))
			}
			if refs[0].URL != tt.want {
				t.Errorf("expected %q, got %q", tt.want, refs[0].URL)
			}
		})
	}
}

// TestExtractMultipleURLsPerLine tests several bare URLs in one line.
func TestExtractMultipleURLsPerLine(t *testing.T) {
	t.Parallel()

	refs := extractAll(t, "https://a.example.net/1.js https://b.example.net/2.js\n")
	if len(refs) != 2 {
		t.Fatalf("expected 2 references, got %d", len(refs))
	}
	if refs[0].Host != "a.example.net" || refs[1].Host != "b.example.net" {
		t.Errorf("expected left-to-right order, got %q then %q", refs[0].Host, refs[1].Host)
	}
}

// TestExtractIgnorePatterns tests substring-based URL exclusion.
func TestExtractIgnorePatterns(t *testing.T) {
	t.Parallel()

	input := `https://localhost:3000/dev.js
https://cdn.example.net/lib.js
`
	refs := extractAll(t, input, WithIgnorePatterns([]string{"localhost"}))

	if len(refs) != 1 {
		t.Fatalf("expected 1 reference, got %d", len(refs))
	}
	if refs[0].Host != "cdn.example.net" {
		t.Errorf("expected only the CDN reference, got %q", refs[0].Host)
	}
}

// TestExtractEmptyInput tests that empty input yields an empty slice.
func TestExtractEmptyInput(t *testing.T) {
	t.Parallel()

	refs := extractAll(t, "")
	if refs == nil {
		t.Fatal("expected non-nil slice")
	}
	if len(refs) != 0 {
		t.Errorf("expected 0 references, got %d", len(refs))
	}
}

// TestExtractLongLine tests that minified single-line documents fit the
// scanner buffer.
func TestExtractLongLine(t *testing.T) {
	t.Parallel()

	line := `<script src="https://cdn.example.net/lib.js"></script>` +
		"<div>" + strings.Repeat("x", 100*1024) + "</div>\n"

	refs := extractAll(t, line)
	if len(refs) != 1 {
		t.Errorf("expected 1 reference from long line, got %d", len(refs))
	}
}

// TestExtractRelativeDeduplication tests that identical relative paths
// collapse like absolute URLs do.
func TestExtractRelativeDeduplication(t *testing.T) {
	t.Parallel()

	input := `<script src="/js/app.js"></script>
<script src="/js/app.js"></script>
`
	refs := extractAll(t, input)
	if len(refs) != 1 {
		t.Fatalf("expected 1 reference, got %d", len(refs))
	}
	if refs[0].Occurrences != 2 {
		t.Errorf("expected 2 occurrences, got %d", refs[0].Occurrences)
	}
	if refs[0].Source != model.SourceRelative {
		t.Errorf("expected relative source, got %s", refs[0].Source)
	}
}
