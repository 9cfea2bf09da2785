// Package htmltomarkdown converts HTML support documents to Markdown so they
// index like the rest of the documentation corpus.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/qagent"
)

// Ensure Converter implements qagent.Converter at compile time.
var _ qagent.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown. Tables are kept since pricing and
// shipping rules are often tabular.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", qagent.Errorf(qagent.EINVALID, "empty HTML input")
	}
	return c.conv.ConvertString(html)
}
