package sporterr

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Kind classifies a failure so callers can react without string matching.
type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindInvalidRange Kind = "invalid_range"
	KindParse        Kind = "parse_error"
	KindUpstream     Kind = "upstream_error"
	KindRateLimited  Kind = "rate_limited"
	KindConfig       Kind = "config_error"
	KindAggregate    Kind = "aggregate_failure"
	KindCancelled    Kind = "cancelled"
)

// Error is the error type used at every boundary of the core. Op names the
// failing operation (e.g. "mlb: list games") and Err carries the cause.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

// Unwrap exposes the cause for errors.Is / errors.As chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// E wraps err with a kind and operation name.
func E(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Errorf is E with a formatted cause.
func Errorf(kind Kind, op, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// Is reports whether any error in err's chain carries the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// KindOf returns the kind of the outermost *Error in err's chain, or ""
// when err carries no kind.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}

// Aggregate combines the per-league failures of a combined query into a
// single KindAggregate error. It returns nil when errs contains no
// non-nil error.
func Aggregate(op string, errs ...error) error {
	var merr *multierror.Error
	for _, err := range errs {
		if err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	if merr == nil {
		return nil
	}
	return &Error{Kind: KindAggregate, Op: op, Err: merr.ErrorOrNil()}
}
