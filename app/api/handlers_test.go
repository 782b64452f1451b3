package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lysyi3m/rss-babel/app/cache"
	"github.com/lysyi3m/rss-babel/app/feed"
	"github.com/lysyi3m/rss-babel/app/translator"
)

const testFeedXML = `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Upstream Feed</title>
    <link>https://example.com</link>
    <description>Upstream description</description>
    <item>
      <title>First</title>
      <link>https://example.com/1</link>
      <description>First body</description>
    </item>
    <item>
      <title>Second</title>
      <link>https://example.com/2</link>
      <description>Second body</description>
    </item>
  </channel>
</rss>`

type echoTranslator struct{}

func (echoTranslator) Translate(ctx context.Context, title, content string) translator.Result {
	return translator.Result{Title: "t:" + title, Content: "t:" + content}
}

func testHandler(httpClient *http.Client) *Handler {
	return &Handler{
		store:       &cache.Store{},
		trans:       echoTranslator{},
		fetcher:     feed.NewFetcher(httpClient, "test"),
		parser:      feed.NewParser(),
		configCache: feed.NewConfigCache("/nonexistent"),
		generator:   testGenerator(),
		workerCount: 5,
	}
}

func TestGetFeedMissingURL(t *testing.T) {
	handler := testHandler(&http.Client{})
	router := NewServer(handler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/feed", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing url, got: %d", w.Code)
	}
}

func TestGetFeedFetchFailure(t *testing.T) {
	handler := testHandler(&http.Client{})
	router := NewServer(handler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/feed?url=http://127.0.0.1:1/rss", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500 for fetch failure, got: %d", w.Code)
	}
}

func TestGetFeedSuccess(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testFeedXML))
	}))
	defer upstream.Close()

	handler := testHandler(upstream.Client())
	router := NewServer(handler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/feed?url="+upstream.URL, nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got: %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/xml") {
		t.Errorf("Expected XML content type, got: %s", ct)
	}
	if w.Header().Get("X-Feed-Items") != "2" {
		t.Errorf("Expected 2 items header, got: %s", w.Header().Get("X-Feed-Items"))
	}

	body := w.Body.String()
	if !strings.Contains(body, "AI - Upstream Feed") {
		t.Error("Expected prefixed channel title")
	}
	if !strings.Contains(body, "t:First") || !strings.Contains(body, "t:Second") {
		t.Error("Expected translated entry titles")
	}

	first := strings.Index(body, "t:First")
	second := strings.Index(body, "t:Second")
	if first > second {
		t.Error("Expected entries in source order")
	}
}

func TestGetFeedPassthroughParams(t *testing.T) {
	var gotQuery string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(testFeedXML))
	}))
	defer upstream.Close()

	handler := testHandler(upstream.Client())
	router := NewServer(handler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/feed?url="+upstream.URL+"/rss&mode=fulltext&limit=5", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got: %d", w.Code)
	}
	if !strings.Contains(gotQuery, "mode=fulltext") || !strings.Contains(gotQuery, "limit=5") {
		t.Errorf("Expected passthrough params in upstream query, got: %s", gotQuery)
	}
	if strings.Contains(gotQuery, "url=") {
		t.Errorf("Expected url param to be stripped, got: %s", gotQuery)
	}
}

func TestGetFeedEmptyResult(t *testing.T) {
	emptyFeed := `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Empty Upstream</title>
    <link>https://example.com</link>
    <description>Nothing here</description>
  </channel>
</rss>`

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(emptyFeed))
	}))
	defer upstream.Close()

	handler := testHandler(upstream.Client())
	router := NewServer(handler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/feed?url="+upstream.URL, nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 for empty feed, got: %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "AI - Empty Upstream") {
		t.Error("Expected valid empty document with channel title")
	}
	if strings.Contains(body, "<item>") {
		t.Error("Expected no items for empty feed")
	}
}

func TestGetFeedByNameUnknown(t *testing.T) {
	handler := testHandler(&http.Client{})
	router := NewServer(handler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/feeds/unknown", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown preset, got: %d", w.Code)
	}
}
