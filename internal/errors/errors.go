// Package errors is a thin shim over fmt and github.com/pkg/errors that
// keeps call sites uniform: plain construction without stacks by default,
// explicit WithStack variants when a trace is worth carrying.
package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Errorf is re-exported from fmt
var Errorf = fmt.Errorf

// New is an alias to Errorf
var New = Errorf

// ErrorfWithStack is Errorf re-exported from github.com/pkg/errors
var ErrorfWithStack = errors.Errorf

// WrapfOrNil annotates err with a formatted message, returning nil when err
// is nil
func WrapfOrNil(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return errors.WithMessage(err, fmt.Sprintf(format, args...))
}

// Wrapf is WrapfOrNil if err != nil, and Errorf otherwise: it never returns nil
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return Errorf(format, args...)
	}
	return WrapfOrNil(err, format, args...)
}

// WithStack is re-exported from github.com/pkg/errors
var WithStack = errors.WithStack

// Cause is re-exported from github.com/pkg/errors
var Cause = errors.Cause
