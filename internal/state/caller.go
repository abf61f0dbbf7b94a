package state

import (
	"fmt"
	"sync"

	"sisexpo/internal/api"
	"sisexpo/pkg/models"
)

// Caller manages the state of one remote operation: idle until the first
// call, loading while a call is in flight, then settled with either data or
// an error. Overlapping calls are permitted; each call takes a sequence
// number when dispatched, and a settlement older than the latest dispatched
// call is discarded, so the visible state always belongs to the newest call
// regardless of settlement order.
type Caller[T any] struct {
	mu       sync.Mutex
	seq      uint64 // latest dispatched call
	inflight int
	data     *T
	errMsg   string
	errCode  string
	notifier Notifier
}

// CallOptions tunes one invocation.
type CallOptions[T any] struct {
	OnSuccess func(*T)
	OnError   func(msg, code string)
	Quiet     bool // suppress toasts for this call
}

// NewCaller creates a caller in the idle state. notifier may be nil.
func NewCaller[T any](notifier Notifier) *Caller[T] {
	return &Caller[T]{notifier: notifier}
}

// Call invokes fn and settles the caller with its result. A panic inside fn
// is folded into a failure result, the same shape every other failure takes.
// The result is returned to the direct caller even when it arrives too late
// to update state; callbacks and toasts fire only for current settlements.
func (c *Caller[T]) Call(fn func() api.Result[T], opts CallOptions[T]) api.Result[T] {
	c.mu.Lock()
	c.seq++
	mySeq := c.seq
	c.inflight++
	c.mu.Unlock()

	res := invoke(fn)

	c.mu.Lock()
	c.inflight--
	if mySeq != c.seq {
		// A newer call was dispatched while this one was in flight;
		// its settlement owns the state.
		c.mu.Unlock()
		return res
	}
	if res.Success {
		c.data = res.Data
		c.errMsg = ""
		c.errCode = ""
	} else {
		// Exactly one of data/error is populated once settled; feeds that
		// want to keep rendering the last collection hold their own copy.
		c.data = nil
		c.errMsg = res.Error
		c.errCode = res.Code
	}
	c.mu.Unlock()

	c.emit(res, opts)
	return res
}

func invoke[T any](fn func() api.Result[T]) (res api.Result[T]) {
	defer func() {
		if r := recover(); r != nil {
			res = api.Result[T]{
				Success: false,
				Error:   fmt.Sprintf("%v", r),
				Code:    models.ErrCodeInternal,
			}
		}
	}()
	return fn()
}

func (c *Caller[T]) emit(res api.Result[T], opts CallOptions[T]) {
	if res.Success {
		if opts.OnSuccess != nil {
			opts.OnSuccess(res.Data)
		}
		if c.notifier != nil && !opts.Quiet && res.Message != "" {
			c.notifier.Success(res.Message)
		}
		return
	}

	if opts.OnError != nil {
		opts.OnError(res.Error, res.Code)
	}
	if c.notifier == nil || opts.Quiet {
		return
	}
	// Validation failures surface one toast per invalid field so the user
	// can correct the whole form from a single submission.
	if res.Code == models.ErrCodeValidation && len(res.Details) > 0 {
		for _, d := range res.Details {
			c.notifier.Error(fmt.Sprintf("%s: %s", d.Field, d.Message))
		}
		return
	}
	c.notifier.Error(res.Error)
}

// Reset returns the caller to the idle tri-state and invalidates every call
// still in flight, so a late settlement cannot resurrect stale state.
func (c *Caller[T]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.data = nil
	c.errMsg = ""
	c.errCode = ""
}

// Loading reports whether any dispatched call has not settled yet.
func (c *Caller[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inflight > 0
}

// Data returns the settled data, nil before the first success or after Reset.
func (c *Caller[T]) Data() *T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data
}

// Err returns the settled error message and code, empty on success or idle.
func (c *Caller[T]) Err() (msg, code string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg, c.errCode
}
