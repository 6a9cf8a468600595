// Package fault defines the closed set of failures a request can end with and
// the normalizer that turns any of them into a (status, message) pair.
//
// Handlers and data-access code return these values as ordinary errors:
//
//	return fault.NotFoundf("Product", id)
//	return fault.Validation("Product", violations)
//
// The normalizer recognises them with errors.As, so wrapping with
// fmt.Errorf("...: %w", err) is always safe.
package fault

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Messages surfaced to clients for the non-specific variants.
const (
	MsgMalformedID = "Product not Found"
	MsgUnexpected  = "Something went wrong"
)

// Fault is implemented only by the variants in this package.
type Fault interface {
	error
	fault()
}

// Violation is one field that failed schema validation.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationFailed reports every violated field of a candidate entity.
type ValidationFailed struct {
	Kind       string
	Violations []Violation
}

// Validation builds a ValidationFailed for kind.
func Validation(kind string, violations []Violation) *ValidationFailed {
	return &ValidationFailed{Kind: kind, Violations: violations}
}

func (e *ValidationFailed) Error() string {
	return fmt.Sprintf("%s validation failed: %s", strings.ToLower(e.Kind), e.Message())
}

// Message joins the per-field messages in field order.
func (e *ValidationFailed) Message() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return strings.Join(msgs, ", ")
}

// Fields returns the violated field names in order.
func (e *ValidationFailed) Fields() []string {
	out := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		out = append(out, v.Field)
	}
	return out
}

func (*ValidationFailed) fault() {}

// MalformedID means the identifier is not syntactically valid for the store.
type MalformedID struct {
	Kind string
	ID   string
	Err  error
}

func (e *MalformedID) Error() string {
	return fmt.Sprintf("malformed %s id %q", strings.ToLower(e.Kind), e.ID)
}

func (e *MalformedID) Unwrap() error { return e.Err }

func (*MalformedID) fault() {}

// NotFound means a well-formed identifier matched no entity.
type NotFound struct {
	Kind string
	ID   string
}

// NotFoundf builds a NotFound for kind and id.
func NotFoundf(kind, id string) *NotFound {
	return &NotFound{Kind: kind, ID: id}
}

func (e *NotFound) Error() string {
	return fmt.Sprintf("%s %s not found", strings.ToLower(e.Kind), e.ID)
}

func (e *NotFound) StatusCode() int { return http.StatusNotFound }

func (e *NotFound) PublicMessage() string { return e.Kind + " Not Found" }

func (*NotFound) fault() {}

// Status is a deliberately raised failure with an explicit status and message.
type Status struct {
	Code int
	Msg  string
}

// New builds a Status fault.
func New(code int, msg string) *Status {
	return &Status{Code: code, Msg: msg}
}

func (e *Status) Error() string { return fmt.Sprintf("%d %s", e.Code, e.Msg) }

func (e *Status) StatusCode() int { return e.Code }

func (e *Status) PublicMessage() string { return e.Msg }

func (*Status) fault() {}

// Unclassified wraps anything that is not one of the variants above.
type Unclassified struct {
	Err error
}

func (e *Unclassified) Error() string {
	if e.Err == nil {
		return "unclassified fault"
	}
	return e.Err.Error()
}

func (e *Unclassified) Unwrap() error { return e.Err }

func (*Unclassified) fault() {}

// Of returns the variant carried by err, checked in classification order.
func Of(err error) Fault {
	var vf *ValidationFailed
	if errors.As(err, &vf) {
		return vf
	}
	var mi *MalformedID
	if errors.As(err, &mi) {
		return mi
	}
	var nf *NotFound
	if errors.As(err, &nf) {
		return nf
	}
	var st *Status
	if errors.As(err, &st) {
		return st
	}
	var un *Unclassified
	if errors.As(err, &un) {
		return un
	}
	return &Unclassified{Err: err}
}
