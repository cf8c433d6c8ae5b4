package news

import (
	"strings"

	"github.com/lysyi3m/currents-mcp/app/currents"
)

// normalizeArticle maps a raw provider article into the stable output
// shape. Every field has a defined default, so no input can make it
// fail.
func normalizeArticle(raw currents.Article) Article {
	author := raw.Author
	if author == "" {
		author = "Unknown"
	}

	// The provider uses the literal string "None" for a missing image
	var image *string
	if raw.Image != "" && raw.Image != "None" {
		img := raw.Image
		image = &img
	}

	category := raw.Category
	if category == nil {
		category = []string{}
	}

	return Article{
		ID:          raw.ID,
		Title:       strings.TrimSpace(raw.Title),
		Description: strings.TrimSpace(raw.Description),
		URL:         raw.URL,
		Author:      author,
		Image:       image,
		Language:    raw.Language,
		Category:    category,
		Published:   raw.Published,
		Source:      providerName,
	}
}

// normalizeArticles normalizes up to max raw articles.
func normalizeArticles(raw []currents.Article, max int) []Article {
	if len(raw) > max {
		raw = raw[:max]
	}

	articles := make([]Article, 0, len(raw))
	for _, a := range raw {
		articles = append(articles, normalizeArticle(a))
	}
	return articles
}
