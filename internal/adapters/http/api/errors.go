package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/okian/lurespread/internal/adapters/catalog"
	"github.com/okian/lurespread/internal/adapters/repository"
	service "github.com/okian/lurespread/internal/app"
	"github.com/okian/lurespread/internal/domain/engine"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrBackpressure = errors.New("backpressure")
	ErrNotFound     = errors.New("not found")
	ErrUnavailable  = errors.New("service unavailable")
	ErrInternal     = errors.New("internal error")
)

// Error records the handler operation and the kind of failure around a cause.
type Error struct {
	Op   string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Err == nil:
		return e.Op + ": " + e.Kind.Error()
	case e.Kind == nil:
		return e.Op + ": " + e.Err.Error()
	default:
		return e.Op + ": " + e.Kind.Error() + ": " + e.Err.Error()
	}
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.Kind != nil {
		out = append(out, e.Kind)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

// NewKind returns an error of kind without a cause.
func NewKind(op string, kind error) error {
	return &Error{Op: op, Kind: kind}
}

// WrapKind attaches op and kind to err.
func WrapKind(op string, kind, err error) error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// Wrap attaches op to err, leaving the kind to be derived from the cause.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}

// StatusClientClosedRequest answers a request whose caller went away first.
const StatusClientClosedRequest = 499

// failure is the HTTP rendering of an error.
type failure struct {
	status int
	code   string
	hints  []string
}

// classify maps domain and service errors onto a status, a stable code and
// any hints the engine attached.
func classify(err error) failure {
	var engErr *engine.Error
	if errors.As(err, &engErr) {
		f := failure{status: http.StatusUnprocessableEntity, hints: engErr.Hints}
		switch {
		case errors.Is(engErr, engine.ErrInvalidConditions):
			f.status, f.code = http.StatusBadRequest, "invalid_conditions"
		case errors.Is(engErr, engine.ErrNoCompatibleLure):
			f.code = "no_compatible_lure"
		case errors.Is(engErr, engine.ErrNoLureAboveThreshold):
			f.code = "no_lure_above_threshold"
		default:
			f.code = "rejected"
		}
		return f
	}

	switch {
	case errors.Is(err, ErrBadRequest), errors.Is(err, service.ErrLineLimit):
		return failure{status: http.StatusBadRequest, code: "bad_request"}
	case errors.Is(err, ErrNotFound), errors.Is(err, repository.ErrNotFound):
		return failure{status: http.StatusNotFound, code: "not_found"}
	case errors.Is(err, ErrBackpressure), errors.Is(err, service.ErrBusy):
		return failure{status: http.StatusTooManyRequests, code: "backpressure"}
	case errors.Is(err, service.ErrCancelled), errors.Is(err, context.Canceled):
		return failure{status: StatusClientClosedRequest, code: "cancelled"}
	case errors.Is(err, service.ErrTimeout):
		return failure{status: http.StatusServiceUnavailable, code: "timeout"}
	case errors.Is(err, ErrUnavailable), errors.Is(err, service.ErrNotStarted):
		return failure{status: http.StatusServiceUnavailable, code: "unavailable"}
	case errors.Is(err, catalog.ErrDecode), errors.Is(err, catalog.ErrInvalidLure),
		errors.Is(err, catalog.ErrDuplicateID), errors.Is(err, repository.ErrDuplicateID),
		errors.Is(err, service.ErrNoCatalogPath):
		return failure{status: http.StatusInternalServerError, code: "catalog_error"}
	default:
		return failure{status: http.StatusInternalServerError, code: "internal_error"}
	}
}
