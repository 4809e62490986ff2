// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/gogojjh/everyday-my-arxiv/pkg/types"
)

// pdfPromptTmpl accompanies the full-text PDF of one paper.
var pdfPromptTmpl = template.Must(template.New("pdf").Parse(`You are an expert research analyst writing for a daily paper digest. Analyze the attached paper.

Title: {{.Title}}
Authors: {{.Authors}}
Abstract: {{.Abstract}}

Write a concise analysis of roughly {{.SummaryWords}} words covering:
- the problem the paper addresses and why it matters
- the key technical contribution and how it differs from prior work
- the main experimental results and their significance
- limitations a practitioner should be aware of

Write plain prose paragraphs. Do not repeat the title or author list, do not use headings, and do not invent results that are not in the paper.`))

// abstractPromptTmpl is the fallback when the full text is unavailable.
var abstractPromptTmpl = template.Must(template.New("abstract").Parse(`You are an expert research analyst writing for a daily paper digest. Only the metadata below is available; analyze the paper from its abstract.

Title: {{.Title}}
Authors: {{.Authors}}
Categories: {{.Categories}}
Published: {{.Published}}
Abstract: {{.Abstract}}

Write a short analysis (one or two paragraphs) of what the paper claims to contribute and who would find it useful. Be explicit that the assessment is based on the abstract only where that matters. Plain prose, no headings.`))

// summaryPromptTmpl produces the report's executive summary.
var summaryPromptTmpl = template.Must(template.New("summary").Parse(`You are compiling the executive summary for a daily digest of newly published arXiv papers, dated {{.Date}}. The digest contains {{.Count}} papers:

{{.PaperList}}

Write a single executive summary paragraph (120-180 words) identifying the main themes across these papers and calling out the one or two most notable entries. Plain prose, no list, no headings.`))

func renderPDFPrompt(paper types.Paper, summaryWords int) (string, error) {
	return render(pdfPromptTmpl, map[string]any{
		"Title":        paper.Title,
		"Authors":      strings.Join(paper.Authors, ", "),
		"Abstract":     paper.Abstract,
		"SummaryWords": summaryWords,
	})
}

func renderAbstractPrompt(paper types.Paper) (string, error) {
	published := ""
	if !paper.Published.IsZero() {
		published = paper.Published.Format("2006-01-02")
	}
	return render(abstractPromptTmpl, map[string]any{
		"Title":      paper.Title,
		"Authors":    strings.Join(paper.Authors, ", "),
		"Categories": strings.Join(paper.Categories, ", "),
		"Published":  published,
		"Abstract":   paper.Abstract,
	})
}

func renderSummaryPrompt(papers []types.ScoredPaper, date string) (string, error) {
	var list strings.Builder
	for i, p := range papers {
		fmt.Fprintf(&list, "%d. %q by %s\n", i+1, p.Title, p.FormattedAuthors())
	}
	return render(summaryPromptTmpl, map[string]any{
		"Date":      date,
		"Count":     len(papers),
		"PaperList": strings.TrimRight(list.String(), "\n"),
	})
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
