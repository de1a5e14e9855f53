package analytics

import (
	"sort"
	"time"

	"github.com/gassdlindo/rastreioveicular/internal/shared/geo"
)

// Sample is one GPS reading for a vehicle.
type Sample struct {
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	SpeedKmh   float64   `json:"speed_kmh"`
	RecordedAt time.Time `json:"recorded_at"`
}

// TripStatistics summarizes a sequence of samples. All fields are zero when
// the sequence is empty.
type TripStatistics struct {
	RecordCount     int     `json:"record_count"`
	AverageSpeedKmh float64 `json:"average_speed_kmh"`
	MaxSpeedKmh     float64 `json:"max_speed_kmh"`
	TotalDistanceKm float64 `json:"total_distance_km"`
}

// ComputeStatistics reduces a sample sequence to trip statistics: record
// count, average and maximum speed, and total haversine path distance over
// temporally adjacent samples. The input is left untouched; pairing happens
// in chronological order regardless of how the samples were fetched.
func ComputeStatistics(samples []Sample) TripStatistics {
	if len(samples) == 0 {
		return TripStatistics{}
	}

	ordered := make([]Sample, len(samples))
	copy(ordered, samples)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].RecordedAt.Before(ordered[j].RecordedAt)
	})

	stats := TripStatistics{RecordCount: len(ordered)}

	var speedSum float64
	for _, s := range ordered {
		speedSum += s.SpeedKmh
		if s.SpeedKmh > stats.MaxSpeedKmh {
			stats.MaxSpeedKmh = s.SpeedKmh
		}
	}
	stats.AverageSpeedKmh = speedSum / float64(len(ordered))

	for i := 1; i < len(ordered); i++ {
		prev, cur := ordered[i-1], ordered[i]
		stats.TotalDistanceKm += geo.HaversineKm(prev.Lat, prev.Lng, cur.Lat, cur.Lng)
	}
	return stats
}
