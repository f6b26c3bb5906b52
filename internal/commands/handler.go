package commands

import (
	"context"
	"encoding/json"
	"fmt"
)

// Typed adapts a function taking a decoded argument struct. Empty args
// decode into the zero value of A.
func Typed[A, R any](fn func(ctx context.Context, args A) (R, error)) HandlerFunc {
	return func(ctx context.Context, raw json.RawMessage) (any, error) {
		var args A
		if len(raw) > 0 && string(raw) != "null" {
			if err := json.Unmarshal(raw, &args); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidArgs, err)
			}
		}
		return fn(ctx, args)
	}
}

// Func adapts a parameterless, infallible function.
func Func[R any](fn func() R) HandlerFunc {
	return func(context.Context, json.RawMessage) (any, error) {
		return fn(), nil
	}
}
