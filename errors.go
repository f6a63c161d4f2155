package endpoint

import "encoding/json"

// Error codes produced by this package. Handlers are free to use their own
// codes; these are the defaults applied when nothing more specific is known.
const (
	// CodeInternal is the generic code for unexpected failures.
	CodeInternal = "INTERNAL_ERROR"

	// CodeValidation is the code for schema rejections.
	CodeValidation = "VALIDATION_ERROR"
)

// Default values applied when an Error is constructed without them.
const (
	defaultStatus  = 500
	defaultMessage = "something went wrong"
)

// Error is the uniform error shape for everything that goes wrong during a
// dispatch: schema rejections, domain errors raised by handlers, and
// unexpected failures.
//
// Message is developer-facing and always non-empty. UIMessage, when set, is
// safe to show to an end user. Meta carries arbitrary extra context for
// logging; it is deliberately excluded from the wire serialization.
//
// Error values are immutable after construction. The With* methods are
// copy-on-write: each returns a new value and leaves the receiver untouched,
// so shared errors are safe without synchronization.
type Error struct {
	Message   string
	Code      string
	Status    int
	UIMessage string
	Meta      map[string]any
}

// NewError creates an Error with the given developer-facing message.
// Code defaults to CodeInternal and Status to 500.
func NewError(message string) *Error {
	if message == "" {
		message = defaultMessage
	}
	return &Error{
		Message: message,
		Code:    CodeInternal,
		Status:  defaultStatus,
	}
}

// Error implements the error interface.
func (e *Error) Error() string { return e.Message }

// WithCode returns a copy of e with the given code.
func (e *Error) WithCode(code string) *Error {
	c := e.clone()
	c.Code = code
	return c
}

// WithStatus returns a copy of e with the given HTTP-style status.
func (e *Error) WithStatus(status int) *Error {
	c := e.clone()
	c.Status = status
	return c
}

// WithUIMessage returns a copy of e with the given user-facing message.
func (e *Error) WithUIMessage(msg string) *Error {
	c := e.clone()
	c.UIMessage = msg
	return c
}

// WithMeta returns a copy of e with the key set in its metadata.
func (e *Error) WithMeta(key string, value any) *Error {
	c := e.clone()
	c.Meta = make(map[string]any, len(e.Meta)+1)
	for k, v := range e.Meta {
		c.Meta[k] = v
	}
	c.Meta[key] = value
	return c
}

func (e *Error) clone() *Error {
	c := *e
	return &c
}

// defaulted returns e with empty code/status/message fields filled in.
// Returns e itself when nothing is missing.
func (e *Error) defaulted() *Error {
	if e.Code != "" && e.Status != 0 && e.Message != "" {
		return e
	}
	c := e.clone()
	if c.Code == "" {
		c.Code = CodeInternal
	}
	if c.Status == 0 {
		c.Status = defaultStatus
	}
	if c.Message == "" {
		c.Message = defaultMessage
	}
	return c
}

// errorWire is the stable wire shape for Error. Field order matters for
// cross-implementation compatibility testing; Meta never appears.
type errorWire struct {
	Message   string  `json:"message"`
	Code      string  `json:"code"`
	Status    int     `json:"status"`
	UIMessage *string `json:"uiMessage"`
}

// MarshalJSON serializes the error to its wire shape:
// {"message","code","status","uiMessage"}. uiMessage is null when unset.
func (e *Error) MarshalJSON() ([]byte, error) {
	d := e.defaulted()
	w := errorWire{
		Message: d.Message,
		Code:    d.Code,
		Status:  d.Status,
	}
	if d.UIMessage != "" {
		w.UIMessage = &d.UIMessage
	}
	return json.Marshal(w)
}

// UnmarshalJSON restores an error from its wire shape.
func (e *Error) UnmarshalJSON(data []byte) error {
	var w errorWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	e.Message = w.Message
	e.Code = w.Code
	e.Status = w.Status
	if w.UIMessage != nil {
		e.UIMessage = *w.UIMessage
	} else {
		e.UIMessage = ""
	}
	e.Meta = nil
	return nil
}
