// Package markdown converts description markup from the reference page into
// Markdown for doc comments. It is never consulted for structural
// decisions.
package markdown

import (
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
)

// Converter turns inner markup into Markdown.
type Converter struct {
	conv *md.Converter
}

// New returns a Converter. Relative links such as "#events-available-for-mini-apps"
// are left untouched; <mark> elements become inline code.
func New() *Converter {
	conv := md.NewConverter("", true, nil)
	conv.AddRules(md.Rule{
		Filter: []string{"mark"},
		Replacement: func(content string, _ *goquery.Selection, _ *md.Options) *string {
			return md.String("`" + content + "`")
		},
	})
	return &Converter{conv: conv}
}

// Convert converts markup to Markdown with surrounding whitespace trimmed.
func (c *Converter) Convert(markup string) (string, error) {
	if strings.TrimSpace(markup) == "" {
		return "", nil
	}
	out, err := c.conv.ConvertString(markup)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
