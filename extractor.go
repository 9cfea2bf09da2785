package qagent

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	ContentHTML string
}

// Extractor extracts main content from HTML documents, removing
// navigation, footers and other boilerplate.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}
