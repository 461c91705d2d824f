package templating

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedTemplate is wrapped by a TemplateError when
	// the template syntax is invalid.
	ErrMalformedTemplate = errors.New("malformed template")

	// ErrUndefinedVariable is wrapped by a TemplateError when
	// a placeholder names a variable missing from the context.
	ErrUndefinedVariable = errors.New("undefined variable")
)

// TemplateError reports a render failure. Name holds the
// offending placeholder when one is known.
type TemplateError struct {
	Name string
	Err  error
}

func (te *TemplateError) Error() string {
	if te.Name == "" {
		return te.Err.Error()
	}

	return fmt.Sprintf("%s: %q", te.Err.Error(), te.Name)
}

func (te *TemplateError) Unwrap() error {
	return te.Err
}
