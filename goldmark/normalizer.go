// Package goldmark strips Markdown to plain text using goldmark's parser.
package goldmark

import (
	"strings"

	"github.com/fwojciec/qagent"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Ensure Normalizer implements qagent.Normalizer at compile time.
var _ qagent.Normalizer = (*Normalizer)(nil)

// Normalizer converts Markdown to plain text. Block elements are separated
// by blank lines, code blocks keep their content, raw HTML is dropped.
type Normalizer struct {
	md goldmark.Markdown
}

// NewNormalizer creates a new Normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{md: goldmark.New()}
}

// Normalize returns the plain text and first heading of a Markdown document.
func (n *Normalizer) Normalize(src string) (*qagent.NormalizeResult, error) {
	source := []byte(src)
	doc := n.md.Parser().Parse(text.NewReader(source))

	var sb strings.Builder
	var title string
	headingStart := -1

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		switch v := node.(type) {
		case *ast.Text:
			if entering {
				sb.Write(v.Segment.Value(source))
				if v.SoftLineBreak() || v.HardLineBreak() {
					sb.WriteByte('\n')
				}
			}
			return ast.WalkContinue, nil
		case *ast.String:
			if entering {
				sb.Write(v.Value)
			}
			return ast.WalkContinue, nil
		case *ast.AutoLink:
			if entering {
				sb.Write(v.Label(source))
			}
			return ast.WalkSkipChildren, nil
		case *ast.RawHTML, *ast.HTMLBlock:
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			if entering {
				lines := node.Lines()
				for i := 0; i < lines.Len(); i++ {
					seg := lines.At(i)
					sb.Write(seg.Value(source))
				}
				endBlock(&sb)
			}
			return ast.WalkSkipChildren, nil
		case *ast.Heading:
			if entering {
				headingStart = sb.Len()
			} else if title == "" && headingStart >= 0 {
				title = strings.TrimSpace(sb.String()[headingStart:])
			}
		}

		if !entering && node.Type() == ast.TypeBlock && node.Kind() != ast.KindDocument {
			endBlock(&sb)
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}

	return &qagent.NormalizeResult{
		Title: title,
		Text:  strings.TrimSpace(sb.String()),
	}, nil
}

// endBlock terminates the current block with a blank line.
func endBlock(sb *strings.Builder) {
	s := sb.String()
	switch {
	case s == "" || strings.HasSuffix(s, "\n\n"):
	case strings.HasSuffix(s, "\n"):
		sb.WriteByte('\n')
	default:
		sb.WriteString("\n\n")
	}
}
