package clock

import (
	"context"
	"time"
)

// Func returns the current time
type Func func() time.Time

type ctxClockKey struct{}

// With returns a context whose Now is driven by f
func With(ctx context.Context, f Func) context.Context {
	return context.WithValue(ctx, ctxClockKey{}, f)
}

// Now returns the current time of ctx, falling back to time.Now
func Now(ctx context.Context) time.Time {
	if f, ok := ctx.Value(ctxClockKey{}).(Func); ok && f != nil {
		return f()
	}
	return time.Now()
}

// Fixed returns a Func always reporting t
func Fixed(t time.Time) Func {
	return func() time.Time { return t }
}
