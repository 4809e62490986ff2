// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// htmlShell wraps the converted report body with minimal inline styling
// so the HTML artifact and the email body render readably on their own.
const htmlShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; line-height: 1.6; max-width: 900px; margin: 0 auto; padding: 20px; color: #333; }
h1, h2, h3 { color: #2c3e50; }
a { color: #3498db; text-decoration: none; }
a:hover { text-decoration: underline; }
code { background-color: #f8f8f8; padding: 2px 4px; border-radius: 3px; }
blockquote { border-left: 4px solid #ccc; padding-left: 15px; color: #666; margin: 15px 0; }
hr { border: 0; border-top: 1px solid #eee; margin: 20px 0; }
</style>
</head>
<body>
%s</body>
</html>
`

// ConvertHTML renders the Markdown report as a styled standalone HTML
// document.
func ConvertHTML(markdown, title string) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))

	var body bytes.Buffer
	if err := md.Convert([]byte(markdown), &body); err != nil {
		return "", fmt.Errorf("converting report to HTML: %w", err)
	}

	return fmt.Sprintf(htmlShell, title, body.String()), nil
}

// SaveHTML converts the Markdown file at mdPath and writes the HTML next
// to it, returning the HTML path.
func SaveHTML(mdPath, title string) (string, error) {
	data, err := os.ReadFile(mdPath)
	if err != nil {
		return "", fmt.Errorf("reading report %s: %w", mdPath, err)
	}

	html, err := ConvertHTML(string(data), title)
	if err != nil {
		return "", err
	}

	htmlPath := strings.TrimSuffix(mdPath, ".md") + ".html"
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return "", fmt.Errorf("writing HTML report: %w", err)
	}
	return htmlPath, nil
}
