package endpoint

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/tidwall/gjson"
)

// defaultMaxBody caps request bodies at 1 MiB unless overridden.
const defaultMaxBody = 1 << 20

// ParamsFunc extracts route parameters from a request. The map must come
// from the surrounding router's own parameter matching, never from the URL
// query string.
type ParamsFunc func(r *http.Request) map[string]string

// HandlerOption configures the HTTP adapter produced by Handler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	params  ParamsFunc
	maxBody int64
}

// WithParams sets the route-parameter extractor. Without it the params slot
// receives no input.
//
// With the standard library's 1.22+ ServeMux:
//
//	mux.Handle("GET /users/{id}", e.Handler(endpoint.WithParams(func(r *http.Request) map[string]string {
//	    return map[string]string{"id": r.PathValue("id")}
//	})))
func WithParams(fn ParamsFunc) HandlerOption {
	return func(c *handlerConfig) {
		c.params = fn
	}
}

// WithMaxBody overrides the 1 MiB request body cap.
func WithMaxBody(n int64) HandlerOption {
	return func(c *handlerConfig) {
		c.maxBody = n
	}
}

// Handler exposes the endpoint as an http.HandlerFunc.
//
// The adapter extracts the three raw inputs and nothing else: the body as
// bytes (rejected with a 400 validation error when present but not valid
// JSON), the query string as url.Values with repeated keys preserved, and
// route parameters from the WithParams extractor. Validation, invocation,
// and error shaping all happen in Dispatch; the adapter only moves bytes.
//
// Responses are written as application/json with the status from Respond; a
// response without a body (204) writes no content at all.
func (e *Endpoint[B, Q, P, R]) Handler(opts ...HandlerOption) http.HandlerFunc {
	cfg := handlerConfig{maxBody: defaultMaxBody}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		in, err := extract(r, cfg)
		if err != nil {
			bad := e.failed(r.Context(), Normalize(err, e.errOpts))
			writeResponse(w, Response{Status: bad.Status, Body: bad})
			return
		}

		writeResponse(w, e.Respond(r.Context(), in))
	}
}

// extract pulls the raw inputs out of the request. Body shape problems are
// reported as validation errors so they map to 400, not 500.
func extract(r *http.Request, cfg handlerConfig) (Input, error) {
	var in Input

	in.Query = r.URL.Query()

	if cfg.params != nil {
		in.Params = cfg.params(r)
	}

	if r.Body != nil {
		body, err := io.ReadAll(io.LimitReader(r.Body, cfg.maxBody+1))
		if err != nil {
			return in, &ValidationError{Issues: []Issue{{Path: "body", Message: "could not be read"}}}
		}
		if int64(len(body)) > cfg.maxBody {
			return in, &ValidationError{Issues: []Issue{{Path: "body", Message: "exceeds the size limit"}}}
		}
		body = bytes.TrimSpace(body)
		if len(body) > 0 {
			if !gjson.ValidBytes(body) {
				return in, &ValidationError{Issues: []Issue{{Path: "body", Message: "must be valid JSON"}}}
			}
			in.Body = json.RawMessage(body)
		}
	}

	return in, nil
}

func writeResponse(w http.ResponseWriter, resp Response) {
	if resp.Body == nil {
		w.WriteHeader(resp.Status)
		return
	}

	data, err := json.Marshal(resp.Body)
	if err != nil {
		fallback := NewError("response serialization failed")
		data, _ = json.Marshal(fallback)
		resp.Status = fallback.Status
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	_, _ = w.Write(data)
}
