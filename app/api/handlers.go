package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lysyi3m/rss-babel/app/cache"
	"github.com/lysyi3m/rss-babel/app/cfg"
	"github.com/lysyi3m/rss-babel/app/feed"
	"github.com/lysyi3m/rss-babel/app/pipeline"
)

func NewHandler(store *cache.Store, trans pipeline.Translator, fetcher *feed.Fetcher,
	configCache *feed.ConfigCache) *Handler {
	c := cfg.Get()

	return &Handler{
		store:       store,
		trans:       trans,
		fetcher:     fetcher,
		parser:      feed.NewParser(),
		configCache: configCache,
		generator: &Generator{
			TitlePrefix: c.TitlePrefix,
			Version:     c.Version,
			BaseUrl:     c.BaseUrl,
			Port:        c.Port,
		},
		workerCount: c.WorkerCount,
	}
}

// GetFeed proxies an arbitrary source feed given via the url query
// parameter. Remaining query parameters are re-appended to the target URL,
// so source-side options (e.g. mode=fulltext) pass through untouched.
func (h *Handler) GetFeed(c *gin.Context) {
	target := c.Query("url")
	if target == "" {
		c.String(http.StatusBadRequest, "Missing url parameter")
		return
	}

	query := c.Request.URL.Query()
	query.Del("url")

	if len(query) > 0 {
		connector := "?"
		if strings.Contains(target, "?") {
			connector = "&"
		}
		target += connector + query.Encode()
	}

	h.serveFeed(c, target, false)
}

// GetFeedByName serves a preset feed configured in the feeds directory.
func (h *Handler) GetFeedByName(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	feedConfig, err := h.configCache.GetConfig(name)
	if err != nil {
		slog.Error("Feed preset not found", "feed", name, "error", err)
		c.Status(http.StatusNotFound)
		return
	}

	h.serveFeed(c, feedConfig.URL, feedConfig.ExtractContent)
}

func (h *Handler) serveFeed(c *gin.Context, url string, extractContent bool) {
	ctx := c.Request.Context()

	slog.Info("Fetching feed", "url", url)

	data, err := h.fetcher.Run(ctx, url)
	if err != nil {
		slog.Error("Feed fetch failed", "url", url, "error", err)
		c.String(http.StatusInternalServerError, "Error fetching feed: %s", err)
		return
	}

	metadata, entries, err := h.parser.Run(data)
	if err != nil {
		slog.Error("Feed parse failed", "url", url, "error", err)
		c.String(http.StatusInternalServerError, "Error parsing feed: %s", err)
		return
	}

	// A feed without entries is a valid, empty document, not an error.
	var enricher pipeline.Enricher
	if extractContent {
		enricher = feed.NewFulltextEnricher(h.fetcher)
	}

	processor := pipeline.NewProcessor(h.store, h.trans, enricher)
	dispatcher := pipeline.NewDispatcher(processor, h.workerCount)

	start := time.Now()
	results := dispatcher.Run(ctx, entries)

	slog.Info("Feed processed", "url", url, "entries", len(entries), "results", len(results), "duration", time.Since(start))

	rss := h.generator.Run(metadata, c.Request.URL.RequestURI(), results)

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.Header("X-Feed-Items", strconv.Itoa(len(results)))

	c.String(http.StatusOK, rss)
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"status":    "ok",
		"version":   cfg.Get().Version,
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"cache":     h.store.Health(),
	}

	c.JSON(http.StatusOK, health)
}
