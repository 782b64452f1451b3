package translator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/lysyi3m/rss-babel/app/cache"
	"github.com/lysyi3m/rss-babel/app/cfg"
)

const systemPromptTemplate = "You are a professional news editor. Translate articles into %s and restructure them as clean, readable HTML."

const userPromptTemplate = `Respond in exactly the following format, with the two parts separated by %s:
1. The translated article title
2. The full translated text (following the HTML rules below)

HTML cleaning and translation rules:
- Never use <div>, <span>, <nav> or <style> tags.
- Never keep class="...", style="..." or id="..." attributes.
- Wrap body paragraphs in <p> tags.
- Use <h3> or <h4> tags for subheadings.
- Keep only these basic tags: <img>, <p>, <b>, <strong>, <blockquote>, <ul>, <li>, <a>.
- Keep <img> links fully intact.

Original title: %s
Original content: %s`

// errorMarker prefixes degraded content so readers can tell a failed
// translation from a successful one.
const errorMarker = "⚠️ Translation service error"

// Result is what a translation call always produces. Degraded results carry
// the original title and the error detail inline with the original content;
// no error ever crosses this boundary as a hard failure.
type Result struct {
	Title    string
	Content  string
	Degraded bool
	Err      error
}

type Client struct {
	client   *openai.Client
	apiKey   string
	model    string
	language string
	timeout  time.Duration
}

func New() *Client {
	c := cfg.Get()

	clientCfg := openai.DefaultConfig(c.OpenAIAPIKey)
	if c.OpenAIBaseURL != "" {
		clientCfg.BaseURL = c.OpenAIBaseURL
	}

	return &Client{
		client:   openai.NewClientWithConfig(clientCfg),
		apiKey:   c.OpenAIAPIKey,
		model:    c.Model,
		language: c.TargetLanguage,
		timeout:  time.Duration(c.TranslateTimeout) * time.Second,
	}
}

// Translate rewrites an entry through the translation service. It never
// fails: any service error degrades into a Result wrapping the original
// title and content, so one bad entry cannot fail a whole batch.
func (c *Client) Translate(ctx context.Context, title, content string) Result {
	if c.apiKey == "" {
		return c.degraded(title, content, errors.New("OPENAI_API_KEY is not set"))
	}
	if c.model == "" {
		return c.degraded(title, content, errors.New("MODEL_NAME is not set"))
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: fmt.Sprintf(systemPromptTemplate, c.language),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(userPromptTemplate, cache.Separator, title, content),
			},
		},
		Temperature: 0.1,
	}

	resp, err := c.client.CreateChatCompletion(timeoutCtx, req)
	if err != nil {
		return c.degraded(title, content, err)
	}

	if len(resp.Choices) == 0 {
		return c.degraded(title, content, errors.New("no completion returned"))
	}

	outTitle, outContent := parseCompletion(resp.Choices[0].Message.Content, title)

	return Result{
		Title:   outTitle,
		Content: outContent,
	}
}

// parseCompletion strips code fences the service may have wrapped the output
// in and splits it on the separator. A response without the separator keeps
// the original title and is used whole as content.
func parseCompletion(raw, originalTitle string) (string, string) {
	raw = strings.ReplaceAll(raw, "```html", "")
	raw = strings.ReplaceAll(raw, "```", "")
	raw = strings.TrimSpace(raw)

	parts := strings.SplitN(raw, cache.Separator, 2)
	if len(parts) < 2 {
		return originalTitle, raw
	}

	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
}

func (c *Client) degraded(title, content string, err error) Result {
	slog.Error("Translation failed, returning original content", "title", truncate(title, 40), "error", err)

	return Result{
		Title:    title,
		Content:  fmt.Sprintf("%s<br>Error detail: %s<br><br>Original content:<br>%s", errorMarker, err, content),
		Degraded: true,
		Err:      err,
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
