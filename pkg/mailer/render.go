package mailer

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	// Summaries are line oriented, so single newlines become <br>.
	markdown  = goldmark.New(goldmark.WithRendererOptions(html.WithHardWraps()))
	sanitizer = bluemonday.UGCPolicy()
)

// RenderHTML converts a plain-text/markdown summary into sanitized HTML
func RenderHTML(text string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(text), &buf); err != nil {
		return "", err
	}
	return sanitizer.Sanitize(buf.String()), nil
}
