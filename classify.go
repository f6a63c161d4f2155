package endpoint

import "errors"

// Classifier inspects a failure value and either claims it by returning the
// Error it should become, or returns nil to pass it along the chain.
// Classifiers run before the built-in classification in Normalize.
type Classifier func(v any) *Error

// FirstOf returns a Classifier that tries each classifier in order and
// returns the first non-nil result. The chain order is the precedence order.
func FirstOf(cs ...Classifier) Classifier {
	return func(v any) *Error {
		for _, c := range cs {
			if e := c(v); e != nil {
				return e
			}
		}
		return nil
	}
}

// When returns a Classifier that applies build only when pred matches.
// Use it to lift a plain predicate into the classification chain.
func When(pred func(v any) bool, build func(v any) *Error) Classifier {
	return func(v any) *Error {
		if !pred(v) {
			return nil
		}
		return build(v)
	}
}

// AsError returns a Classifier that matches errors of type E, unwrapping
// through error chains, and builds the Error from the typed value.
// Non-matching values pass through.
func AsError[E error](build func(err E) *Error) Classifier {
	return func(v any) *Error {
		err, ok := v.(error)
		if !ok {
			return nil
		}
		var target E
		if !errors.As(err, &target) {
			return nil
		}
		return build(target)
	}
}
