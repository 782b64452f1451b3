package pipeline

import (
	"context"
	"log/slog"
	"regexp"

	"github.com/lysyi3m/rss-babel/app/cache"
	"github.com/lysyi3m/rss-babel/app/feed"
)

// Result is one translated entry. Index is the entry's position in the
// original feed and is the sole ordering key for output; it is assigned at
// dispatch time and never recomputed.
type Result struct {
	Index    int
	Title    string
	Content  string
	Link     string
	GUID     string
	ImageURL string
}

var imgSrcPattern = regexp.MustCompile(`<img[^>]+src=["']([^"']+)["']`)

// FirstImage returns the source of the first image tag in the given HTML,
// or an empty string if there is none.
func FirstImage(html string) string {
	match := imgSrcPattern.FindStringSubmatch(html)
	if match == nil {
		return ""
	}
	return match[1]
}

// Processor runs the per-entry pipeline: fingerprint, cache lookup, on miss
// translate and cache, extract the leading image, assemble the result.
type Processor struct {
	store    CacheStore
	trans    Translator
	enricher Enricher
}

// NewProcessor creates a processor. enricher may be nil, in which case
// entries are translated as delivered by the feed.
func NewProcessor(store CacheStore, trans Translator, enricher Enricher) *Processor {
	return &Processor{
		store:    store,
		trans:    trans,
		enricher: enricher,
	}
}

func (p *Processor) Run(ctx context.Context, index int, entry feed.Entry) Result {
	if p.enricher != nil {
		entry = p.enricher.Enrich(ctx, entry)
	}

	title, content := p.translate(ctx, entry)

	return Result{
		Index:    index,
		Title:    title,
		Content:  content,
		Link:     entry.Link,
		GUID:     entry.GUID,
		ImageURL: FirstImage(entry.Content),
	}
}

func (p *Processor) translate(ctx context.Context, entry feed.Entry) (string, string) {
	key := cache.Key(entry.Title, entry.Content)

	if value, ok := p.store.Get(ctx, key); ok {
		if title, content, ok := cache.DecodeEntry(value); ok {
			slog.Debug("Cache hit", "key", key)
			return title, content
		}
		// Malformed cached value, fall through to translation.
		slog.Debug("Malformed cache value, treating as miss", "key", key)
	}

	result := p.trans.Translate(ctx, entry.Title, entry.Content)

	// Degraded results are never cached, so a transient failure is retried
	// on the next request instead of being served for a week.
	if !result.Degraded {
		p.store.Set(ctx, key, cache.EncodeEntry(result.Title, result.Content))
	}

	return result.Title, result.Content
}
