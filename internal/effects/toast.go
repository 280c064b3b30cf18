package effects

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Level selects a toast's styling.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

const (
	ToastVisible = 3 * time.Second
	ToastExit    = 300 * time.Millisecond
	ToastEnter   = 300 * time.Millisecond
)

// Phase is where a toast is in its enter/shown/exit cycle.
type Phase int

const (
	PhaseEnter Phase = iota
	PhaseShown
	PhaseExit
	PhaseGone
)

type Toast struct {
	ID      string
	Message string
	Level   Level
	Created time.Time
}

// Phase reports the toast's animation phase at now.
func (t Toast) Phase(now time.Time) Phase {
	age := now.Sub(t.Created)
	switch {
	case age < ToastEnter:
		return PhaseEnter
	case age < ToastVisible:
		return PhaseShown
	case age < ToastVisible+ToastExit:
		return PhaseExit
	default:
		return PhaseGone
	}
}

// Toasts is the stack of live notifications. A new toast never replaces
// an older one; each expires on its own schedule.
type Toasts struct {
	mu    sync.Mutex
	items []Toast
	now   func() time.Time
}

// NewToasts returns an empty stack. A nil clock uses time.Now.
func NewToasts(now func() time.Time) *Toasts {
	if now == nil {
		now = time.Now
	}
	return &Toasts{now: now}
}

// Push adds a toast and returns it.
func (t *Toasts) Push(level Level, message string) Toast {
	t.mu.Lock()
	defer t.mu.Unlock()
	toast := Toast{
		ID:      uuid.NewString(),
		Message: message,
		Level:   level,
		Created: t.now(),
	}
	t.items = append(t.items, toast)
	return toast
}

// Active drops expired toasts and returns the remaining ones, oldest first.
func (t *Toasts) Active() []Toast {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	live := t.items[:0]
	for _, toast := range t.items {
		if toast.Phase(now) != PhaseGone {
			live = append(live, toast)
		}
	}
	t.items = live
	out := make([]Toast, len(live))
	copy(out, live)
	return out
}
