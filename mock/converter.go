package mock

import "github.com/fwojciec/insight"

var _ insight.Converter = (*Converter)(nil)

// Converter is a mock implementation of insight.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
