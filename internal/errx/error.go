// Package errx provides the coded error model shared by the generators.
// Errors compare by code under errors.Is, so callers can test the failure
// class without caring about the message or attached data.
package errx

import (
	"fmt"
	"sort"
	"strings"
)

// Code is the stable identifier of a failure class.
type Code string

const (
	// CodeConfiguration marks a parameter outside its documented domain.
	// The failing operation did not mutate anything.
	CodeConfiguration Code = "CONFIGURATION"
	// CodeStructural marks a broken data-model invariant.
	CodeStructural Code = "STRUCTURAL"
	// CodeExhausted marks a bounded stochastic search that hit its cap.
	CodeExhausted Code = "RESOURCE_EXHAUSTED"
	// CodeRange marks a seed outside the accepted range.
	CodeRange Code = "RANGE"
)

// Sentinels for errors.Is.
var (
	ErrConfiguration = &Error{code: CodeConfiguration}
	ErrStructural    = &Error{code: CodeStructural}
	ErrExhausted     = &Error{code: CodeExhausted}
	ErrRange         = &Error{code: CodeRange}
)

// Error is a coded error with optional context data and cause.
type Error struct {
	code  Code
	msg   string
	data  map[string]any
	cause error
}

// New builds an error with the given code. kv is an alternating list of
// keys and values attached as context.
func New(code Code, msg string, kv ...any) *Error {
	e := &Error{code: code, msg: msg}
	if len(kv) > 0 {
		e.data = make(map[string]any, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			e.data[fmt.Sprint(kv[i])] = kv[i+1]
		}
	}
	return e
}

// Configuration reports an invalid parameter.
func Configuration(msg string, kv ...any) *Error { return New(CodeConfiguration, msg, kv...) }

// Structural reports a broken invariant.
func Structural(msg string, kv ...any) *Error { return New(CodeStructural, msg, kv...) }

// Exhausted reports an iteration cap being reached.
func Exhausted(msg string, kv ...any) *Error { return New(CodeExhausted, msg, kv...) }

// Range reports an out-of-range seed.
func Range(msg string, kv ...any) *Error { return New(CodeRange, msg, kv...) }

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteString(string(e.code))
	if e.msg != "" {
		b.WriteString(": ")
		b.WriteString(e.msg)
	}
	if len(e.data) > 0 {
		keys := make([]string, 0, len(e.data))
		for k := range e.data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString(" (")
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s=%v", k, e.data[k])
		}
		b.WriteString(")")
	}
	if e.cause != nil {
		b.WriteString(": ")
		b.WriteString(e.cause.Error())
	}
	return b.String()
}

// Unwrap exposes the cause chain to errors.Is / errors.As.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Is matches on code only.
func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return false
	}
	t, ok := target.(*Error)
	if !ok || t == nil {
		return false
	}
	return e.code == t.code
}

// Code returns the failure class.
func (e *Error) Code() Code {
	if e == nil {
		return ""
	}
	return e.code
}

// Data returns a copy of the attached context.
func (e *Error) Data() map[string]any {
	if e == nil || e.data == nil {
		return nil
	}
	out := make(map[string]any, len(e.data))
	for k, v := range e.data {
		out[k] = v
	}
	return out
}

// WithCause returns a copy of e wrapping cause.
func (e *Error) WithCause(cause error) *Error {
	next := &Error{code: e.code, msg: e.msg, data: e.Data(), cause: cause}
	return next
}
