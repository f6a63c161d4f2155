// Package endpoint validates request inputs against per-slot schemas and
// dispatches to typed handlers with a uniform error shape.
//
// An endpoint sits between a transport (HTTP or an in-process call) and a
// handler. It owns three things: deciding which of the body, query, and
// params inputs to validate (each slot has an independently optional
// schema), invoking the handler with already-validated typed arguments, and
// turning every failure — schema rejection, domain error, or panic — into
// one structured Error with a status code.
//
// # Quick Start
//
// Define the input types with validation tags and build an endpoint:
//
//	type CreateUser struct {
//	    Name  string `json:"name" validate:"required,min=3"`
//	    Email string `json:"email" validate:"required,email"`
//	}
//
//	e := endpoint.New(endpoint.Config[CreateUser, endpoint.None, endpoint.None]{
//	    Body: endpoint.JSON[CreateUser](),
//	}, func(ctx context.Context, args endpoint.Args[CreateUser, endpoint.None, endpoint.None]) (User, error) {
//	    return users.Create(ctx, args.Body.Name, args.Body.Email)
//	})
//
//	mux.Handle("POST /users", e.Handler())
//
// Or call it programmatically and branch on the outcome instead of handling
// errors:
//
//	env := e.Invoke(ctx, endpoint.Input{Body: payload})
//	if env.Outcome == endpoint.OutcomeError {
//	    // env.Err carries code, status, and messages
//	}
//
// # Design
//
// The package separates concerns into small pieces:
//
//   - Schemas: parse-or-reject engines, one per input slot (JSON for bodies,
//     Bind for query strings and route params, SchemaFunc for anything else)
//   - Endpoint: runs the configured gates in a fixed order, short-circuits
//     on the first failure, and invokes the handler
//   - Envelopes: Respond packages the result for a transport with a status
//     code; Invoke packages it for programmatic callers and never fails
//
// Gates run in the fixed order query, body, params. When several inputs are
// invalid at once, the first configured-and-failing slot wins, so error
// output is reproducible. A slot with no schema is never read.
//
// # Slots and Arity
//
// The three slot types are fixed at construction via Config's type
// parameters; slots the endpoint does not accept are typed None. There are
// eight combinations, from Config[None, None, None] (no inputs; pair it with
// NoArgs so the handler takes nothing) to a fully typed body+query+params
// endpoint. Args fields for None slots stay zero-valued.
//
// # Errors
//
// Every failure normalizes to *Error: message (developer-facing), code,
// status, and an optional user-facing UIMessage. Handlers signal expected
// failures by returning an *Error directly; its fields pass through
// untouched:
//
//	return User{}, endpoint.NewError("user not found").
//	    WithCode("NOT_FOUND").
//	    WithStatus(404)
//
// Schema rejections become VALIDATION_ERROR with status 400. Other errors
// keep their message with defaults from ErrorOptions. Recovered panic values
// that are not errors never reach the message field; the configured
// DefaultMessage is used instead, so arbitrary content cannot leak into
// responses. Custom classification runs first via ErrorOptions.Classifier;
// build one from typed predicates with FirstOf, When, and AsError.
//
// The wire shape of an error is stable:
//
//	{"message": "...", "code": "...", "status": 400, "uiMessage": null}
//
// Meta is for logs only and never serializes.
//
// # Validation
//
// JSON and Bind schemas validate in two layers. Struct tags run first via
// go-playground/validator, reporting issues against json field names with
// readable messages. Then, if the decoded value implements Validate() error
// (as ozzo-validation types do), that runs for cross-field rules:
//
//	func (r ReportRange) Validate() error {
//	    return validation.ValidateStruct(&r,
//	        validation.Field(&r.From, validation.Required),
//	        validation.Field(&r.To, validation.Min(r.From)),
//	    )
//	}
//
// Bind coerces query and route-param strings to the field's type, so
// ?limit=5 arrives as int 5, not "5".
//
// # Status Codes
//
// Success defaults to 200. Handlers override it by returning a Reply:
//
//	return endpoint.Created(user), nil
//	return endpoint.NoContent(), nil
//
// A 204 reply writes no body at all rather than serializing null.
//
// # Observability
//
// Config.Logger receives exactly one record per failed dispatch with the
// structured error fields. Nothing is logged on success; the endpoint stays
// silent on the happy path and leaves success logging to whatever wraps it.
// The default logger discards.
//
// # Thread Safety
//
// Configuration is fixed at construction and read-only afterwards; a
// dispatch touches only call-scoped data. Endpoints are safe for concurrent
// use.
package endpoint
