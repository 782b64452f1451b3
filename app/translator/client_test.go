package translator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseCompletion(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantTitle   string
		wantContent string
	}{
		{
			name:        "two parts",
			raw:         "Translated Title|||<p>Translated body</p>",
			wantTitle:   "Translated Title",
			wantContent: "<p>Translated body</p>",
		},
		{
			name:        "parts are trimmed",
			raw:         "  Translated Title  |||  <p>Body</p>  ",
			wantTitle:   "Translated Title",
			wantContent: "<p>Body</p>",
		},
		{
			name:        "code fences stripped",
			raw:         "```html\nTranslated Title|||<p>Body</p>\n```",
			wantTitle:   "Translated Title",
			wantContent: "<p>Body</p>",
		},
		{
			name:        "no separator keeps original title",
			raw:         "<p>A response without any separator</p>",
			wantTitle:   "Original Title",
			wantContent: "<p>A response without any separator</p>",
		},
		{
			name:        "extra separators stay in content",
			raw:         "Title|||first|||second",
			wantTitle:   "Title",
			wantContent: "first|||second",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, content := parseCompletion(tt.raw, "Original Title")
			if title != tt.wantTitle {
				t.Errorf("Expected title %q, got %q", tt.wantTitle, title)
			}
			if content != tt.wantContent {
				t.Errorf("Expected content %q, got %q", tt.wantContent, content)
			}
		})
	}
}

func TestDegradedResult(t *testing.T) {
	client := &Client{}

	result := client.degraded("Original Title", "<p>Original content</p>", errors.New("connection refused"))

	if !result.Degraded {
		t.Error("Expected result to be flagged degraded")
	}
	if result.Err == nil {
		t.Error("Expected degraded result to carry the error")
	}
	if result.Title != "Original Title" {
		t.Errorf("Expected original title to be kept, got %q", result.Title)
	}
	if !strings.Contains(result.Content, errorMarker) {
		t.Error("Expected degraded content to carry the error marker")
	}
	if !strings.Contains(result.Content, "connection refused") {
		t.Error("Expected degraded content to carry the error detail")
	}
	if !strings.Contains(result.Content, "<p>Original content</p>") {
		t.Error("Expected degraded content to carry the original content verbatim")
	}
}

func TestTranslateWithoutCredentials(t *testing.T) {
	client := &Client{timeout: time.Second}

	result := client.Translate(context.Background(), "Title", "Content")

	if !result.Degraded {
		t.Error("Expected missing credentials to degrade, not fail")
	}
	if result.Title != "Title" {
		t.Errorf("Expected original title, got %q", result.Title)
	}
	if !strings.Contains(result.Content, "Content") {
		t.Error("Expected original content to survive in degraded result")
	}
}
