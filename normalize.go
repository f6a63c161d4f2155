package endpoint

import "errors"

// ErrorOptions override the defaults used when normalizing a failure into an
// Error. All fields are optional; zero values fall back to the package
// defaults (CodeInternal, status 500, a generic message).
type ErrorOptions struct {
	// DefaultMessage replaces the developer-facing message when the failure
	// carries no usable message of its own (e.g. a recovered panic value).
	DefaultMessage string

	// DefaultCode replaces CodeInternal for non-validation failures.
	DefaultCode string

	// DefaultStatus replaces 500 for non-validation failures.
	DefaultStatus int

	// DefaultUIMessage is attached to synthesized errors that have no
	// user-facing message of their own. Errors built explicitly by handler
	// code are never touched.
	DefaultUIMessage string

	// Classifier, when set, is consulted first. A non-nil result is used
	// unchanged, bypassing the built-in classification chain.
	Classifier Classifier
}

// Normalize turns any failure value into exactly one *Error.
//
// The classification chain is ordered; the first match wins:
//
//  1. opts.Classifier, if set and it returns non-nil.
//  2. An *Error passes through unchanged. Handler-supplied code, status, and
//     UI message are never overridden.
//  3. A *ValidationError becomes CodeValidation with status 400; the
//     developer message is the validation summary.
//  4. Any other error keeps its message, with code/status/UI message taken
//     from opts (or the package defaults).
//  5. Anything else (recovered panic values: strings, numbers, arbitrary
//     objects) becomes opts.DefaultMessage. The value itself never reaches
//     the message field, so untrusted content cannot leak into responses.
//
// Normalize never returns nil for a non-nil input and has no side effects;
// logging is the caller's concern.
func Normalize(v any, opts ErrorOptions) *Error {
	if opts.Classifier != nil {
		if e := opts.Classifier(v); e != nil {
			return e.defaulted()
		}
	}

	if err, ok := v.(error); ok {
		var se *Error
		if errors.As(err, &se) {
			return se.defaulted()
		}

		var ve *ValidationError
		if errors.As(err, &ve) {
			return &Error{
				Message:   ve.Error(),
				Code:      CodeValidation,
				Status:    400,
				UIMessage: opts.DefaultUIMessage,
			}
		}

		return &Error{
			Message:   messageOr(err.Error(), opts),
			Code:      codeOr(opts),
			Status:    statusOr(opts),
			UIMessage: opts.DefaultUIMessage,
		}
	}

	// Non-error value: use the configured default, never the value itself.
	return &Error{
		Message:   messageOr("", opts),
		Code:      codeOr(opts),
		Status:    statusOr(opts),
		UIMessage: opts.DefaultUIMessage,
	}
}

func messageOr(msg string, opts ErrorOptions) string {
	if msg != "" {
		return msg
	}
	if opts.DefaultMessage != "" {
		return opts.DefaultMessage
	}
	return defaultMessage
}

func codeOr(opts ErrorOptions) string {
	if opts.DefaultCode != "" {
		return opts.DefaultCode
	}
	return CodeInternal
}

func statusOr(opts ErrorOptions) int {
	if opts.DefaultStatus != 0 {
		return opts.DefaultStatus
	}
	return defaultStatus
}
