package api

import (
	"github.com/lysyi3m/rss-babel/app/cache"
	"github.com/lysyi3m/rss-babel/app/feed"
	"github.com/lysyi3m/rss-babel/app/pipeline"
)

type Handler struct {
	store       *cache.Store
	trans       pipeline.Translator
	fetcher     *feed.Fetcher
	parser      *feed.Parser
	configCache *feed.ConfigCache
	generator   *Generator
	workerCount int
}
