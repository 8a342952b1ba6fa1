package domain

import (
	"math"
	"strconv"
)

type Area string

const (
	AreaEyes    Area = "eyes"
	AreaMouth   Area = "mouth"
	AreaObjects Area = "objects"
)

// areaOrder fixes both classification priority and rounding tie-breaks.
var areaOrder = [3]Area{AreaEyes, AreaMouth, AreaObjects}

type AttentionAreas struct {
	Eyes    int `json:"eyes"`
	Mouth   int `json:"mouth"`
	Objects int `json:"objects"`
}

func (a AttentionAreas) Total() int {
	return a.Eyes + a.Mouth + a.Objects
}

type AttentionSummary struct {
	Fixations      int
	Saccades       int
	PupilDilation  float64
	AttentionAreas AttentionAreas
}

// DilationText is the one-decimal wire form of PupilDilation.
func (s AttentionSummary) DilationText() string {
	return strconv.FormatFloat(s.PupilDilation, 'f', 1, 64)
}

// Classify buckets a point. The eyes quadrant and the centre band overlap;
// eyes wins because it is checked first.
func Classify(p SamplePoint, c Canvas) Area {
	if p.X < c.Width/2 && p.Y < c.Height/2 {
		return AreaEyes
	}
	if p.X > c.Width/3 && p.X < 2*c.Width/3 && p.Y > c.Height/3 && p.Y < 2*c.Height/3 {
		return AreaMouth
	}
	return AreaObjects
}

// ComputeSummary derives the attention summary from a finished session.
// Everything except PupilDilation is a deterministic function of points.
func ComputeSummary(points []SamplePoint, c Canvas, rng interface{ Float64() float64 }) AttentionSummary {
	n := len(points)
	counts := [3]int{}
	for _, p := range points {
		switch Classify(p, c) {
		case AreaEyes:
			counts[0]++
		case AreaMouth:
			counts[1]++
		default:
			counts[2]++
		}
	}
	pct := Percentages(counts)
	return AttentionSummary{
		Fixations:     n / 10,
		Saccades:      n / 5,
		PupilDilation: PupilDilation(rng.Float64()),
		AttentionAreas: AttentionAreas{
			Eyes:    pct[0],
			Mouth:   pct[1],
			Objects: pct[2],
		},
	}
}

// PupilDilation maps u in [0, 1) onto [3.5, 4.5) in tenths. Truncating instead
// of rounding keeps 4.5 itself out of range.
func PupilDilation(u float64) float64 {
	if u < 0 {
		u = 0
	}
	tenths := 35 + int(math.Floor(u*10))
	if tenths > 44 {
		tenths = 44
	}
	return float64(tenths) / 10
}

// Percentages converts counts to integer percentages with largest-remainder
// rounding, so a non-empty input always sums to 100. Equal remainders are
// resolved in eyes, mouth, objects order. An empty input yields all zeros.
func Percentages(counts [3]int) [3]int {
	total := counts[0] + counts[1] + counts[2]
	out := [3]int{}
	if total == 0 {
		return out
	}
	remainders := [3]int{}
	assigned := 0
	for i, c := range counts {
		out[i] = c * 100 / total
		remainders[i] = c * 100 % total
		assigned += out[i]
	}
	for left := 100 - assigned; left > 0; left-- {
		best := -1
		for i := range areaOrder {
			if remainders[i] < 0 {
				continue
			}
			if best < 0 || remainders[i] > remainders[best] {
				best = i
			}
		}
		out[best]++
		remainders[best] = -1
	}
	return out
}
