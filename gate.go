package endpoint

// Checked is the outcome of running one input through a schema gate.
// Exactly one branch is populated: Valid with Value, or !Valid with Err.
type Checked[T any] struct {
	Valid bool
	Value T
	Err   *Error
}

// Check runs raw through a schema gate.
//
// With no schema the gate is a pass-through: raw is forwarded unchanged when
// it already has type T, otherwise the zero value is used; the input is
// never validated or coerced. With a schema, the schema's Parse does all
// coercion and validation, and a rejection is normalized into a
// CodeValidation Error using opts for the UI message.
func Check[T any](raw any, s Schema[T], opts ErrorOptions) Checked[T] {
	if s == nil {
		value, _ := raw.(T)
		return Checked[T]{Valid: true, Value: value}
	}

	value, err := s.Parse(raw)
	if err != nil {
		return Checked[T]{Err: Normalize(err, opts)}
	}
	return Checked[T]{Valid: true, Value: value}
}
