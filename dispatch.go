package endpoint

import (
	"context"
	"log/slog"
)

// Input carries the raw, unvalidated values for one dispatch. The HTTP
// adapter fills it from a request; programmatic callers fill it directly.
// A slot whose schema is not configured is never read.
type Input struct {
	Body   any
	Query  any
	Params any
}

// Args carries the validated inputs for one handler invocation. Slots the
// endpoint does not accept are typed None and stay zero-valued.
type Args[B, Q, P any] struct {
	Body   B
	Query  Q
	Params P
}

// HandlerFunc is the application logic behind an endpoint. It receives
// already-validated arguments and returns a result or an error. Returning an
// *Error gives full control over code, status, and UI message; any other
// error is normalized with the endpoint's ErrorOptions.
type HandlerFunc[B, Q, P, R any] func(ctx context.Context, args Args[B, Q, P]) (R, error)

// NoArgs adapts a handler that takes no input. Use it with a zero-value
// Config so the handler's signature matches what the endpoint accepts:
// nothing.
//
//	e := endpoint.New(endpoint.Config[endpoint.None, endpoint.None, endpoint.None]{},
//	    endpoint.NoArgs(func(ctx context.Context) (Health, error) {
//	        return Health{OK: true}, nil
//	    }))
func NoArgs[R any](fn func(ctx context.Context) (R, error)) HandlerFunc[None, None, None, R] {
	return func(ctx context.Context, _ Args[None, None, None]) (R, error) {
		return fn(ctx)
	}
}

// Config fixes an endpoint's validation and error behavior at construction
// time. A nil schema means the corresponding slot is not accepted: its raw
// input is never read and its Args field stays zero.
type Config[B, Q, P any] struct {
	// Body, Query, and Params are the optional schema gates, one per slot.
	Body   Schema[B]
	Query  Schema[Q]
	Params Schema[P]

	// Error overrides the defaults used when normalizing failures.
	Error ErrorOptions

	// Logger receives one record per failed dispatch, carrying the
	// structured error. Successful dispatches are not logged; wrap the
	// endpoint if you want happy-path logging. Defaults to a discard logger.
	Logger *slog.Logger
}

// Endpoint validates up to three independent inputs, invokes a handler with
// the validated arguments, and folds every failure into one *Error.
//
// An Endpoint holds no per-call state and is safe for concurrent use.
type Endpoint[B, Q, P, R any] struct {
	body    Schema[B]
	query   Schema[Q]
	params  Schema[P]
	errOpts ErrorOptions
	logger  *slog.Logger
	handler HandlerFunc[B, Q, P, R]
}

// New creates an Endpoint from a config and a handler.
//
// Example:
//
//	e := endpoint.New(endpoint.Config[CreateUser, endpoint.None, endpoint.None]{
//	    Body: endpoint.JSON[CreateUser](),
//	    Error: endpoint.ErrorOptions{
//	        DefaultUIMessage: "Please check your input and try again.",
//	    },
//	}, func(ctx context.Context, args endpoint.Args[CreateUser, endpoint.None, endpoint.None]) (User, error) {
//	    return svc.Create(ctx, args.Body)
//	})
func New[B, Q, P, R any](cfg Config[B, Q, P], h HandlerFunc[B, Q, P, R]) *Endpoint[B, Q, P, R] {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Endpoint[B, Q, P, R]{
		body:    cfg.Body,
		query:   cfg.Query,
		params:  cfg.Params,
		errOpts: cfg.Error,
		logger:  logger,
		handler: h,
	}
}

// Dispatch runs one call through the endpoint: each configured gate in the
// fixed order query, body, params; then the handler. The first failing gate
// wins and later gates never run, so when several inputs are invalid at once
// the reported error is deterministic.
//
// The returned values are mutually exclusive: a nil *Error means result is
// the handler's value; a non-nil *Error means the dispatch failed. Panics
// anywhere inside the dispatch are recovered and normalized like any other
// failure; non-error panic values never leak into the error message.
func (e *Endpoint[B, Q, P, R]) Dispatch(ctx context.Context, in Input) (result R, failure *Error) {
	defer func() {
		if r := recover(); r != nil {
			var zero R
			result = zero
			failure = e.failed(ctx, Normalize(r, e.errOpts))
		}
	}()

	var args Args[B, Q, P]

	if e.query != nil {
		c := Check(in.Query, e.query, e.errOpts)
		if !c.Valid {
			return result, e.failed(ctx, c.Err)
		}
		args.Query = c.Value
	}

	if e.body != nil {
		c := Check(in.Body, e.body, e.errOpts)
		if !c.Valid {
			return result, e.failed(ctx, c.Err)
		}
		args.Body = c.Value
	}

	if e.params != nil {
		c := Check(in.Params, e.params, e.errOpts)
		if !c.Valid {
			return result, e.failed(ctx, c.Err)
		}
		args.Params = c.Value
	}

	out, err := e.handler(ctx, args)
	if err != nil {
		return result, e.failed(ctx, Normalize(err, e.errOpts))
	}

	return out, nil
}

// failed logs the terminal failure exactly once and returns it.
func (e *Endpoint[B, Q, P, R]) failed(ctx context.Context, err *Error) *Error {
	attrs := []any{
		slog.String("code", err.Code),
		slog.Int("status", err.Status),
	}
	if err.UIMessage != "" {
		attrs = append(attrs, slog.String("ui_message", err.UIMessage))
	}
	if len(err.Meta) > 0 {
		attrs = append(attrs, slog.Any("meta", err.Meta))
	}
	e.logger.ErrorContext(ctx, err.Message, attrs...)
	return err
}
