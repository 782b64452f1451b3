package api

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/lysyi3m/rss-babel/app/feed"
	"github.com/lysyi3m/rss-babel/app/pipeline"
)

// Generator renders translated results back into an RSS 2.0 document,
// preserving the order the pipeline restored.
type Generator struct {
	TitlePrefix string
	Version     string
	BaseUrl     string
	Port        string
}

func (g *Generator) Run(metadata *feed.Metadata, selfPath string, results []pipeline.Result) string {
	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/" xmlns:atom="http://www.w3.org/2005/Atom">`)
	buf.WriteString("\n  <channel>\n")

	feedTitle := metadata.Title
	if feedTitle == "" {
		feedTitle = "Unknown Feed"
	}
	g.writeElement(&buf, "title", fmt.Sprintf("%s - %s", g.TitlePrefix, feedTitle), 4)
	g.writeElement(&buf, "link", metadata.Link, 4)

	description := metadata.Description
	if description == "" {
		description = fmt.Sprintf("Translated feed: %s", feedTitle)
	}
	g.writeElement(&buf, "description", description, 4)

	var selfLink string
	if g.BaseUrl != "" {
		selfLink = g.BaseUrl + selfPath
	} else {
		selfLink = fmt.Sprintf("http://localhost:%s%s", g.Port, selfPath)
	}
	buf.WriteString(fmt.Sprintf("    <atom:link href=\"%s\" rel=\"self\" type=\"application/rss+xml\" />\n",
		html.EscapeString(selfLink)))

	g.writeElement(&buf, "lastBuildDate", time.Now().In(time.Local).Format(time.RFC1123Z), 4)
	g.writeElement(&buf, "generator", fmt.Sprintf("RSS-Babel/%s", g.Version), 4)
	if metadata.Language != "" {
		g.writeElement(&buf, "language", metadata.Language, 4)
	}

	for _, result := range results {
		g.writeItem(&buf, result)
	}

	buf.WriteString("  </channel>\n</rss>")

	return buf.String()
}

func (g *Generator) writeItem(buf *bytes.Buffer, result pipeline.Result) {
	buf.WriteString("    <item>\n")

	if result.GUID != "" {
		buf.WriteString(fmt.Sprintf("      <guid isPermaLink=\"%t\">", g.isURL(result.GUID)))
		xml.EscapeText(buf, []byte(result.GUID))
		buf.WriteString("</guid>\n")
	}

	if result.Title != "" {
		buf.WriteString("      <title><![CDATA[")
		buf.WriteString(result.Title)
		buf.WriteString("]]></title>\n")
	}

	if result.Link != "" {
		g.writeElement(buf, "link", result.Link, 6)
	}

	// Body is duplicated into description and content:encoded, both CDATA:
	// the content is HTML produced by the translation step.
	buf.WriteString("      <description><![CDATA[")
	buf.WriteString(result.Content)
	buf.WriteString("]]></description>\n")

	buf.WriteString("      <content:encoded><![CDATA[")
	buf.WriteString(result.Content)
	buf.WriteString("]]></content:encoded>\n")

	// The first image extracted from the original entry becomes the item
	// enclosure, so readers can show a thumbnail without the image being
	// duplicated into the translated body.
	if result.ImageURL != "" {
		buf.WriteString(fmt.Sprintf("      <enclosure url=\"%s\" length=\"0\" type=\"%s\" />\n",
			html.EscapeString(result.ImageURL),
			imageMimeType(result.ImageURL)))
	}

	buf.WriteString("    </item>\n")
}

func (g *Generator) writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}

	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}

	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}

func (g *Generator) isURL(s string) bool {
	return (len(s) > 7 && s[:7] == "http://") || (len(s) > 8 && s[:8] == "https://")
}

func imageMimeType(url string) string {
	lower := strings.ToLower(url)
	switch {
	case strings.HasSuffix(lower, ".png"):
		return "image/png"
	case strings.HasSuffix(lower, ".gif"):
		return "image/gif"
	case strings.HasSuffix(lower, ".webp"):
		return "image/webp"
	case strings.HasSuffix(lower, ".svg"):
		return "image/svg+xml"
	default:
		return "image/jpeg"
	}
}
