package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventCommand  EventType = "command"
	EventBootStep EventType = "boot_step"
	EventExit     EventType = "exit"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id"`
}

// CommandEvent is emitted after every dispatch that changed the session.
type CommandEvent struct {
	EventBase
	Input   string  `json:"input"`
	Command string  `json:"command"`
	Outcome Outcome `json:"outcome"`
	// Typed is true when the command came from the boot animation.
	Typed bool `json:"typed,omitempty"`
}

// BootEvent marks progress through the boot script.
type BootEvent struct {
	EventBase
	Step string `json:"step"`
}

// LifecycleHooks defines callbacks for observability.
// Every field is optional.
type LifecycleHooks struct {
	OnCommand  func(context.Context, *CommandEvent)
	OnBootStep func(context.Context, *BootEvent)
	OnExit     func(context.Context, *CommandEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnCommand:  chainCommand(h.OnCommand, other.OnCommand),
		OnBootStep: chainBoot(h.OnBootStep, other.OnBootStep),
		OnExit:     chainCommand(h.OnExit, other.OnExit),
	}
}

func chainCommand(a, b func(context.Context, *CommandEvent)) func(context.Context, *CommandEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *CommandEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}

func chainBoot(a, b func(context.Context, *BootEvent)) func(context.Context, *BootEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *BootEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}
