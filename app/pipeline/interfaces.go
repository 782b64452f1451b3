package pipeline

import (
	"context"

	"github.com/lysyi3m/rss-babel/app/feed"
	"github.com/lysyi3m/rss-babel/app/translator"
)

// CacheStore is the subset of the cache used by the processor.
type CacheStore interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string)
}

// Translator rewrites an entry through the translation service. It must
// always return a usable Result; degraded results are flagged, not raised.
type Translator interface {
	Translate(ctx context.Context, title, content string) translator.Result
}

// Enricher optionally replaces an entry's content before translation (e.g.
// fulltext extraction for teaser-only feeds).
type Enricher interface {
	Enrich(ctx context.Context, entry feed.Entry) feed.Entry
}
