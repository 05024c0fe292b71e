package render

import (
	"html"
	"strings"

	"github.com/WUZhiyun112/travelplanner/internal/app/models"
)

// References renders the numbered source list appended after a plan.
// Entries with a link become anchors, title-only entries stay plain text
// and entries with neither get a placeholder. Returns "" when there is
// nothing to show.
func References(refs []models.Reference) string {
	if len(refs) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(`<ol class="references">`)
	for _, ref := range refs {
		title := strings.TrimSpace(ref.Title)
		if title == "" {
			title = "untitled source"
		}
		b.WriteString("<li>")
		if ref.Link != "" {
			b.WriteString(`<a href="` + html.EscapeString(ref.Link) + `" target="_blank" rel="noopener">`)
			b.WriteString(html.EscapeString(title))
			b.WriteString("</a>")
		} else {
			b.WriteString(html.EscapeString(title))
		}
		b.WriteString("</li>")
	}
	b.WriteString("</ol>")
	return b.String()
}

// SearchResults renders the search result list. When usingAPI is false a
// degraded-mode banner precedes the results: the server had no search
// credentials, so every hit is a bare hand-off link.
func SearchResults(results []models.SearchResult, usingAPI bool) string {
	var b strings.Builder

	if !usingAPI {
		b.WriteString(`<div class="search-banner">Web search is not configured on the server; showing search links instead of live results.</div>`)
	}

	if len(results) == 0 {
		b.WriteString(`<p class="search-empty">No results found.</p>`)
		return b.String()
	}

	b.WriteString(`<ul class="search-results">`)
	for _, r := range results {
		link := html.EscapeString(r.Link)
		b.WriteString("<li>")
		b.WriteString(`<a href="` + link + `" target="_blank" rel="noopener">` + html.EscapeString(r.Title) + `</a>`)
		if r.Snippet != "" {
			b.WriteString(`<p>` + html.EscapeString(r.Snippet) + `</p>`)
		}
		// The result link and the view link are the same URL in degraded
		// mode; keep both so the layout matches the live-result shape.
		b.WriteString(`<a class="search-view" href="` + link + `" target="_blank" rel="noopener">view</a>`)
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}
