package github

import "context"

// Outcome is the terminal result of an asynchronous call: a value or a
// classified error, never both.
type Outcome[T any] struct {
	Value T
	Err   error
}

// Kind classifies the outcome.
func (o Outcome[T]) Kind() Kind {
	return Classify(o.Err)
}

// OK reports whether the call succeeded.
func (o Outcome[T]) OK() bool {
	return o.Err == nil
}

// Async runs fn on its own goroutine. The returned channel yields exactly one
// Outcome and is then closed. Cancel ctx to abort the in-flight exchange.
func Async[T any](ctx context.Context, fn func(context.Context) (T, error)) <-chan Outcome[T] {
	ch := make(chan Outcome[T], 1)
	go func() {
		defer close(ch)
		v, err := fn(ctx)
		ch <- Outcome[T]{Value: v, Err: err}
	}()
	return ch
}

// Done adapts an error-only call such as DeleteRepository for Async.
func Done(fn func(context.Context) error) func(context.Context) (struct{}, error) {
	return func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	}
}
