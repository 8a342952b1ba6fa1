package tracking

import (
	"context"
	"errors"
	"sync"
)

// Canvas is the drawing surface the bridge renders. Bootstrap supplies the
// grid surface from the tracking module.
type Canvas interface {
	Size() (width, height float64)
	Clear()
	DrawMarker(x, y, radius float64)
	Lines() []string
	Markers() int
}

type CountdownMsg struct{ Text string }

type PanelMsg struct{ Visible bool }

type TriggerMsg struct{ Enabled bool }

type AlertMsg struct{ Message string }

type MarkerMsg struct{ Count int }

type ClearedMsg struct{}

// NavigatedMsg reports that a session's summary was accepted and the user
// should be taken to the results location.
type NavigatedMsg struct{ Location string }

const eventBuffer = 256

var ErrBridgeClosed = errors.New("tracking view closed")

// Bridge turns simulator page calls, which arrive on the session goroutine,
// into Bubble Tea messages. A full buffer drops marker and countdown
// updates, which the next render recovers from the canvas; alerts and
// navigation wait for space.
type Bridge struct {
	canvas    Canvas
	events    chan any
	done      chan struct{}
	closeOnce sync.Once
}

func NewBridge(canvas Canvas) *Bridge {
	return &Bridge{canvas: canvas, events: make(chan any, eventBuffer), done: make(chan struct{})}
}

// Close releases any session goroutine blocked on Alert or Navigate once
// the program has stopped reading events.
func (b *Bridge) Close() {
	b.closeOnce.Do(func() { close(b.done) })
}

func (b *Bridge) Size() (float64, float64) {
	if b.canvas == nil {
		return 0, 0
	}
	return b.canvas.Size()
}

func (b *Bridge) Clear() {
	b.canvas.Clear()
	b.emit(ClearedMsg{})
}

func (b *Bridge) DrawMarker(x, y, radius float64) {
	b.canvas.DrawMarker(x, y, radius)
	b.emit(MarkerMsg{Count: b.canvas.Markers()})
}

func (b *Bridge) ShowCountdown(text string) { b.emit(CountdownMsg{Text: text}) }

func (b *Bridge) Hide() { b.emit(PanelMsg{Visible: false}) }

func (b *Bridge) Reveal() { b.emit(PanelMsg{Visible: true}) }

func (b *Bridge) SetEnabled(enabled bool) { b.emit(TriggerMsg{Enabled: enabled}) }

// Alert waits for buffer space instead of dropping, until the bridge closes.
func (b *Bridge) Alert(message string) {
	select {
	case b.events <- AlertMsg{Message: message}:
	case <-b.done:
	}
}

func (b *Bridge) Navigate(ctx context.Context, location string) error {
	select {
	case b.events <- NavigatedMsg{Location: location}:
		return nil
	case <-b.done:
		return ErrBridgeClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *Bridge) Lines() []string {
	if b.canvas == nil {
		return nil
	}
	return b.canvas.Lines()
}

func (b *Bridge) emit(msg any) {
	select {
	case b.events <- msg:
	default:
	}
}

// Events exposes the raw stream, mainly for tests.
func (b *Bridge) Events() <-chan any { return b.events }
