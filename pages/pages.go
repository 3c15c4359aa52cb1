// Package pages holds the dashboard sections and renders their markdown.
package pages

import (
	"embed"
	"fmt"
	"path"
)

//go:embed content/*.md
var content embed.FS

// Page is one dashboard section.
type Page struct {
	Slug  string
	Title string
	// Icon stands in for the title when the sidebar is collapsed.
	Icon string
	Body string
}

type entry struct {
	slug, title, icon string
}

// Sidebar order.
var entries = []entry{
	{"overview", "Overview", "◆"},
	{"assistant", "Assistant", "✦"},
	{"products", "Products", "▤"},
	{"usage", "Usage", "▥"},
	{"billing", "Billing", "$"},
	{"settings", "Settings", "⚙"},
	{"terms", "Terms of Service", "§"},
	{"privacy", "Privacy Policy", "¶"},
}

// DefaultSlug is shown when nothing else is selected.
const DefaultSlug = "overview"

// Load reads every embedded page in sidebar order.
func Load() ([]Page, error) {
	pages := make([]Page, 0, len(entries))
	for _, e := range entries {
		body, err := content.ReadFile(path.Join("content", e.slug+".md"))
		if err != nil {
			return nil, fmt.Errorf("failed to read page %s: %w", e.slug, err)
		}
		pages = append(pages, Page{
			Slug:  e.slug,
			Title: e.title,
			Icon:  e.icon,
			Body:  string(body),
		})
	}
	return pages, nil
}

// Index returns the position of slug in pages, or -1.
func Index(pages []Page, slug string) int {
	for i, p := range pages {
		if p.Slug == slug {
			return i
		}
	}
	return -1
}

// Slugs returns the page slugs in order.
func Slugs(pages []Page) []string {
	slugs := make([]string, len(pages))
	for i, p := range pages {
		slugs[i] = p.Slug
	}
	return slugs
}
