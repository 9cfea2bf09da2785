package mock

import "github.com/fwojciec/qagent"

var _ qagent.Validator = (*Validator)(nil)

// Validator is a mock implementation of qagent.Validator.
type Validator struct {
	ValidateFn func(html, docs string) []qagent.Finding
}

func (v *Validator) Validate(html, docs string) []qagent.Finding {
	return v.ValidateFn(html, docs)
}
