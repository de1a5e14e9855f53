package simulator

import (
	"math/rand"
	"time"

	"github.com/gassdlindo/rastreioveicular/internal/shared/geo"
)

const (
	maxStepKm    = 0.5
	maxSpeedKmh  = 110.0
	maxDriftDeg  = 45.0
	stepInterval = 10 * time.Second
)

// Sample is one fabricated GPS reading.
type Sample struct {
	Lat        float64
	Lng        float64
	SpeedKmh   float64
	RecordedAt time.Time
}

// Simulator fabricates plausible vehicle tracks. The random source is
// injected so runs are reproducible with a fixed seed.
type Simulator struct {
	rng *rand.Rand
}

func New(rng *rand.Rand) *Simulator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Simulator{rng: rng}
}

// Walk fabricates n samples starting at (lat, lng). The track is a random
// walk: the bearing drifts a bounded amount each step, the step distance is
// bounded, and timestamps increase monotonically from start. A zero start
// backdates the walk so the final sample lands at the current time and the
// whole track falls inside default history windows.
func (s *Simulator) Walk(lat, lng float64, n int, start time.Time) []Sample {
	if n <= 0 {
		return nil
	}
	if start.IsZero() {
		start = time.Now().UTC().Add(-time.Duration(n-1) * stepInterval)
	}

	bearing := s.rng.Float64() * 360
	samples := make([]Sample, 0, n)
	at := start

	for i := 0; i < n; i++ {
		stepKm := s.rng.Float64() * maxStepKm
		speed := stepKm / stepInterval.Hours()
		if speed > maxSpeedKmh {
			speed = maxSpeedKmh
		}

		samples = append(samples, Sample{
			Lat:        lat,
			Lng:        lng,
			SpeedKmh:   speed,
			RecordedAt: at,
		})

		lat, lng = geo.DestinationPoint(lat, lng, bearing, stepKm)
		bearing += (s.rng.Float64()*2 - 1) * maxDriftDeg
		if bearing < 0 {
			bearing += 360
		}
		if bearing >= 360 {
			bearing -= 360
		}
		at = at.Add(stepInterval)
	}
	return samples
}
