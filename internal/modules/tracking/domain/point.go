package domain

import "time"

// SamplePoint is one synthetic gaze sample in canvas coordinates.
type SamplePoint struct {
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Timestamp time.Time `json:"timestamp"`
}

// Canvas is the size of the drawing surface when the simulator was attached.
type Canvas struct {
	Width  float64
	Height float64
}

func (c Canvas) Usable() bool {
	return c.Width > 0 && c.Height > 0
}

// RandomPoint draws a point uniformly from [0, width) x [0, height).
func (c Canvas) RandomPoint(rng interface{ Float64() float64 }, at time.Time) SamplePoint {
	return SamplePoint{
		X:         rng.Float64() * c.Width,
		Y:         rng.Float64() * c.Height,
		Timestamp: at,
	}
}
