// Package fallback fetches a collection from an ordered list of providers,
// trying each in turn until one succeeds. Providers are never run
// concurrently.
package fallback

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/worldcovers/internal/logging"
)

var (
	// ErrNotConfigured means the provider has nothing to call (for example no
	// URL is set). The chain moves on without recording a failure.
	ErrNotConfigured = errors.New("provider not configured")

	// ErrNotApplicable means the provider has no data of this kind. The chain
	// stops and reports success with an empty collection.
	ErrNotApplicable = errors.New("provider not applicable")
)

// State is the progress of a single Fetch call.
type State int

const (
	NotStarted State = iota
	Loading
	FallingBack
	Success
	Failed
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case Loading:
		return "loading"
	case FallingBack:
		return "falling_back"
	case Success:
		return "success"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether s is Success or Failed.
func (s State) Terminal() bool { return s == Success || s == Failed }

// Provider is one data source in a chain.
type Provider[T any] interface {
	Name() string
	Fetch(ctx context.Context) ([]T, error)
}

type funcProvider[T any] struct {
	name string
	fn   func(ctx context.Context) ([]T, error)
}

func (p funcProvider[T]) Name() string { return p.name }

func (p funcProvider[T]) Fetch(ctx context.Context) ([]T, error) { return p.fn(ctx) }

// Func adapts a function to a Provider.
func Func[T any](name string, fn func(ctx context.Context) ([]T, error)) Provider[T] {
	return funcProvider[T]{name: name, fn: fn}
}

// Map adapts p so its items are converted with fn.
func Map[S, T any](p Provider[S], fn func(S) T) Provider[T] {
	return Func(p.Name(), func(ctx context.Context) ([]T, error) {
		items, err := p.Fetch(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]T, len(items))
		for i, it := range items {
			out[i] = fn(it)
		}
		return out, nil
	})
}

// Result is the outcome of Fetch. Items is never nil; it is empty when
// State is Failed. Source names the provider that produced Items.
type Result[T any] struct {
	State  State
	Items  []T
	Source string
	Err    error
}

// Transition is reported to observers on every state change.
type Transition struct {
	From     State
	To       State
	Provider string
	Err      error
}

// Chain tries its providers strictly in order.
type Chain[T any] struct {
	name      string
	providers []Provider[T]
	log       logging.Logger
	observers []func(Transition)
}

// NewChain builds a chain; name is used in log records.
func NewChain[T any](name string, log logging.Logger, providers ...Provider[T]) *Chain[T] {
	if log == nil {
		log = logging.Discard()
	}
	return &Chain[T]{name: name, providers: providers, log: log.With("chain", name)}
}

// Observe registers fn to receive every state transition.
func (c *Chain[T]) Observe(fn func(Transition)) *Chain[T] {
	c.observers = append(c.observers, fn)
	return c
}

// Fetch runs the providers in order and returns the first success.
// A provider returning ErrNotConfigured is skipped. One returning
// ErrNotApplicable ends the chain with an empty success. Any other error
// moves to the next provider. When no provider succeeds and at least one
// failed, the result is Failed and Err joins every failure.
func (c *Chain[T]) Fetch(ctx context.Context) Result[T] {
	state := NotStarted
	move := func(to State, provider string, err error) {
		t := Transition{From: state, To: to, Provider: provider, Err: err}
		state = to
		if to.Terminal() {
			c.log.Info(ctx, "fallback finished", "state", to.String(), "provider", provider)
		} else {
			c.log.Debug(ctx, "fallback transition", "from", t.From.String(), "to", t.To.String(), "provider", provider)
		}
		for _, fn := range c.observers {
			fn(t)
		}
	}

	move(Loading, "", nil)

	var errs []error
	for i, p := range c.providers {
		if i > 0 && state != FallingBack {
			move(FallingBack, p.Name(), nil)
		}

		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		items, err := p.Fetch(ctx)
		switch {
		case err == nil:
			if items == nil {
				items = make([]T, 0)
			}
			move(Success, p.Name(), nil)
			return Result[T]{State: Success, Items: items, Source: p.Name()}

		case errors.Is(err, ErrNotConfigured):
			c.log.Debug(ctx, "provider not configured", "provider", p.Name())

		case errors.Is(err, ErrNotApplicable):
			if len(errs) > 0 {
				c.log.Warn(ctx, "no applicable fallback, returning empty result", "provider", p.Name(), "error", errors.Join(errs...))
			}
			move(Success, p.Name(), nil)
			return Result[T]{State: Success, Items: make([]T, 0), Source: p.Name()}

		default:
			c.log.Warn(ctx, "provider failed", "provider", p.Name(), "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
		}
	}

	if len(errs) > 0 {
		err := errors.Join(errs...)
		move(Failed, "", err)
		return Result[T]{State: Failed, Items: make([]T, 0), Err: err}
	}

	move(Success, "", nil)
	return Result[T]{State: Success, Items: make([]T, 0)}
}
