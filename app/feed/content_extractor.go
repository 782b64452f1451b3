package feed

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-shiori/go-readability"
)

// minContentLength is the threshold below which an entry is considered a
// teaser. Shorter entries get the article page fetched and extracted before
// translation, so the translated feed carries the full text.
const minContentLength = 500

type ContentExtractor struct{}

func NewContentExtractor() *ContentExtractor {
	return &ContentExtractor{}
}

func (e *ContentExtractor) Run(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("HTML data is empty")
	}

	article, err := readability.FromReader(strings.NewReader(string(data)), nil)
	if err != nil {
		return "", fmt.Errorf("failed to extract content: %w", err)
	}

	if article.Content == "" {
		return "", fmt.Errorf("no content extracted from HTML data")
	}

	return article.Content, nil
}

// FulltextEnricher replaces teaser entries with the readable body of the
// linked article page. Failures are soft: the entry keeps its original
// content, and the pipeline carries on.
type FulltextEnricher struct {
	fetcher   *Fetcher
	extractor *ContentExtractor
}

func NewFulltextEnricher(fetcher *Fetcher) *FulltextEnricher {
	return &FulltextEnricher{
		fetcher:   fetcher,
		extractor: NewContentExtractor(),
	}
}

func (e *FulltextEnricher) Enrich(ctx context.Context, entry Entry) Entry {
	if len(entry.Content) >= minContentLength || entry.Link == "" {
		return entry
	}

	data, err := e.fetcher.Run(ctx, entry.Link)
	if err != nil {
		slog.Warn("Article fetch failed, keeping feed content", "link", entry.Link, "error", err)
		return entry
	}

	content, err := e.extractor.Run(data)
	if err != nil {
		slog.Warn("Content extraction failed, keeping feed content", "link", entry.Link, "error", err)
		return entry
	}

	slog.Debug("Entry enriched with article content", "link", entry.Link, "content_length", len(content))
	entry.Content = content
	return entry
}
