package endpoint

import (
	"context"
	"encoding/json"
	"net/http"
)

// Outcome discriminates the two branches of a programmatic Envelope.
type Outcome string

const (
	// OutcomeSuccess marks an envelope carrying the handler's result.
	OutcomeSuccess Outcome = "success"

	// OutcomeError marks an envelope carrying a structured error.
	OutcomeError Outcome = "error"
)

// Envelope is the programmatic result of a dispatch. Exactly one of Data and
// Err is meaningful; branch on Outcome. The boundary is exception-free by
// contract: Invoke never panics and never returns a Go error, so callers
// never need recover or error plumbing.
type Envelope[R any] struct {
	Outcome Outcome
	Data    R
	Err     *Error
}

// envelope wire shapes; exactly one branch appears per envelope.
type successWire struct {
	Outcome Outcome `json:"outcome"`
	Data    any     `json:"data"`
}

type errorWireEnvelope struct {
	Outcome Outcome `json:"outcome"`
	Err     *Error  `json:"error"`
}

// MarshalJSON serializes the populated branch only:
// {"outcome":"success","data":...} or {"outcome":"error","error":...}.
func (env Envelope[R]) MarshalJSON() ([]byte, error) {
	if env.Outcome == OutcomeError {
		return json.Marshal(errorWireEnvelope{Outcome: OutcomeError, Err: env.Err})
	}
	return json.Marshal(successWire{Outcome: OutcomeSuccess, Data: env.Data})
}

// Invoke dispatches and wraps the terminal state in an Envelope. Use this
// from non-HTTP callers (jobs, RPC bridges, UI data loaders) that want to
// branch on Outcome instead of handling errors.
func (e *Endpoint[B, Q, P, R]) Invoke(ctx context.Context, in Input) Envelope[R] {
	out, failure := e.Dispatch(ctx, in)
	if failure != nil {
		return Envelope[R]{Outcome: OutcomeError, Err: failure}
	}
	return Envelope[R]{Outcome: OutcomeSuccess, Data: out}
}

// Result lets a handler's return value override the transport defaults.
// Results carry a status code and the body to serialize; a nil body means
// the response has no content at all.
type Result interface {
	ResultMeta() (status int, body any)
}

// Reply wraps a handler result with an explicit status code.
type Reply[T any] struct {
	Data   T
	Status int
}

// ResultMeta implements the Result interface.
func (r Reply[T]) ResultMeta() (int, any) {
	status := r.Status
	if status == 0 {
		status = http.StatusOK
	}
	if status == http.StatusNoContent {
		return status, nil
	}
	return status, r.Data
}

// Created wraps data in a 201 reply.
func Created[T any](data T) Reply[T] {
	return Reply[T]{Data: data, Status: http.StatusCreated}
}

// Accepted wraps data in a 202 reply.
func Accepted[T any](data T) Reply[T] {
	return Reply[T]{Data: data, Status: http.StatusAccepted}
}

// NoContentReply is a 204 response with no body.
type NoContentReply struct{}

// ResultMeta implements the Result interface.
func (NoContentReply) ResultMeta() (int, any) {
	return http.StatusNoContent, nil
}

// NoContent returns a 204 reply without a body.
func NoContent() NoContentReply { return NoContentReply{} }

// Response is the transport-facing result of a dispatch: a status code and
// the body to serialize. A nil Body means no content is written.
type Response struct {
	Status int
	Body   any
}

// Respond dispatches and packages the terminal state for a transport:
// success becomes the handler's result with its declared status (default
// 200), failure becomes the error's wire shape with the error's status.
func (e *Endpoint[B, Q, P, R]) Respond(ctx context.Context, in Input) Response {
	out, failure := e.Dispatch(ctx, in)
	if failure != nil {
		return Response{Status: failure.Status, Body: failure}
	}
	return successResponse(out)
}

func successResponse(out any) Response {
	if r, ok := out.(Result); ok {
		status, body := r.ResultMeta()
		if status == 0 {
			status = http.StatusOK
		}
		return Response{Status: status, Body: body}
	}
	return Response{Status: http.StatusOK, Body: out}
}
