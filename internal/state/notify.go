// Package state holds UI-facing call state: a generic caller that manages
// loading/error/data for one remote operation, and per-resource feeds that
// layer pagination, filtering, optimistic patching and polling on top of it.
package state

import (
	"sync"

	"sisexpo/pkg/logger"
)

// Notifier receives the transient user-facing feedback (toasts) emitted when
// calls settle. Implementations must be safe for concurrent use.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// LogNotifier routes feedback to the logger; the CLI default.
type LogNotifier struct{}

func (LogNotifier) Success(msg string) { logger.Info(msg) }
func (LogNotifier) Error(msg string)   { logger.Error(msg) }

// Toast is one transient feedback entry.
type Toast struct {
	Level   string // "success" or "error"
	Message string
}

// MemoryNotifier keeps the most recent toasts in a bounded ring; the TUI
// renders from it and tests assert against it.
type MemoryNotifier struct {
	mu     sync.Mutex
	max    int
	toasts []Toast
}

// NewMemoryNotifier returns a notifier retaining the last max toasts.
func NewMemoryNotifier(max int) *MemoryNotifier {
	if max <= 0 {
		max = 5
	}
	return &MemoryNotifier{max: max}
}

func (n *MemoryNotifier) push(level, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.toasts = append(n.toasts, Toast{Level: level, Message: msg})
	if len(n.toasts) > n.max {
		n.toasts = n.toasts[len(n.toasts)-n.max:]
	}
}

func (n *MemoryNotifier) Success(msg string) { n.push("success", msg) }
func (n *MemoryNotifier) Error(msg string)   { n.push("error", msg) }

// Toasts returns a copy of the retained toasts, oldest first.
func (n *MemoryNotifier) Toasts() []Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Toast, len(n.toasts))
	copy(out, n.toasts)
	return out
}

// Latest returns the most recent toast, if any.
func (n *MemoryNotifier) Latest() (Toast, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.toasts) == 0 {
		return Toast{}, false
	}
	return n.toasts[len(n.toasts)-1], true
}

// Clear drops all retained toasts.
func (n *MemoryNotifier) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.toasts = nil
}
