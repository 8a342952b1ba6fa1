package out

import (
	"context"

	"gazesim/internal/modules/tracking/domain"
)

// Surface is the drawing area markers accumulate on.
type Surface interface {
	Size() (width, height float64)
	Clear()
	DrawMarker(x, y, radius float64)
}

// CountdownDisplay shows the MM:SS text.
type CountdownDisplay interface {
	ShowCountdown(text string)
}

// ResultsPanel is only toggled; its content belongs to the results location.
type ResultsPanel interface {
	Hide()
	Reveal()
}

// Trigger is the start control. It is disabled while a session runs.
type Trigger interface {
	SetEnabled(enabled bool)
}

// Notifier raises a blocking user-facing notice.
type Notifier interface {
	Alert(message string)
}

type Submitter interface {
	Submit(ctx context.Context, summary domain.AttentionSummary) error
}

type Navigator interface {
	Navigate(ctx context.Context, location string) error
}

// Page groups the elements the simulator binds to. Surface may be nil, in
// which case the simulator declines to attach.
type Page struct {
	Surface  Surface
	Display  CountdownDisplay
	Panel    ResultsPanel
	Trigger  Trigger
	Notifier Notifier
}
