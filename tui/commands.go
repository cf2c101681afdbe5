package tui

import (
	"context"
	"time"
)

// Command is an intent returned by the view for the app to carry out.
type Command interface {
	Command()
}

// PostFunc sends a message into the app.
// It returns false when the message queue is full.
type PostFunc func(Message) bool

// Quit signals the application should exit.
type Quit struct{}

func (Quit) Command() {}

// SendMsg posts a message into the app loop.
type SendMsg struct {
	Message Message
}

func (SendMsg) Command() {}

// Send wraps a message in a SendMsg command.
func Send(msg Message) Command {
	return SendMsg{Message: msg}
}

// Effect runs work in a background goroutine.
// Use the provided context for cancellation and PostFunc to emit messages.
type Effect struct {
	Run func(ctx context.Context, post PostFunc)
}

func (Effect) Command() {}

// After posts a message after a delay.
func After(delay time.Duration, msg Message) Effect {
	return Effect{
		Run: func(ctx context.Context, post PostFunc) {
			if msg == nil || post == nil {
				return
			}
			if delay <= 0 {
				post(msg)
				return
			}
			timer := time.NewTimer(delay)
			defer timer.Stop()
			select {
			case <-ctx.Done():
			case <-timer.C:
				post(msg)
			}
		},
	}
}

// Every posts messages on a fixed interval.
// Returning nil from fn skips posting.
func Every(interval time.Duration, fn func(time.Time) Message) Effect {
	return Effect{
		Run: func(ctx context.Context, post PostFunc) {
			if interval <= 0 || fn == nil || post == nil {
				return
			}
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case now := <-ticker.C:
					if msg := fn(now); msg != nil {
						post(msg)
					}
				}
			}
		},
	}
}
