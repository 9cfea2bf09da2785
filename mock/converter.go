package mock

import "github.com/fwojciec/qagent"

var _ qagent.Converter = (*Converter)(nil)

// Converter is a mock implementation of qagent.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
