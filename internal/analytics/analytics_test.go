package analytics

import (
	"math"
	"testing"
	"time"
)

func sampleAt(lat, lng, speed float64, offset time.Duration) Sample {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return Sample{Lat: lat, Lng: lng, SpeedKmh: speed, RecordedAt: base.Add(offset)}
}

func TestComputeStatisticsEmpty(t *testing.T) {
	stats := ComputeStatistics(nil)
	if stats.RecordCount != 0 || stats.AverageSpeedKmh != 0 || stats.MaxSpeedKmh != 0 || stats.TotalDistanceKm != 0 {
		t.Fatalf("expected all-zero statistics, got %+v", stats)
	}
	stats = ComputeStatistics([]Sample{})
	if stats != (TripStatistics{}) {
		t.Fatalf("expected zero value, got %+v", stats)
	}
}

func TestComputeStatisticsSingleSample(t *testing.T) {
	stats := ComputeStatistics([]Sample{sampleAt(-23.5505, -46.6333, 42.5, 0)})
	if stats.RecordCount != 1 {
		t.Fatalf("expected count 1, got %d", stats.RecordCount)
	}
	if stats.AverageSpeedKmh != 42.5 || stats.MaxSpeedKmh != 42.5 {
		t.Fatalf("expected avg=max=42.5, got %+v", stats)
	}
	if stats.TotalDistanceKm != 0 {
		t.Fatalf("expected zero distance, got %v", stats.TotalDistanceKm)
	}
}

func TestComputeStatisticsDuplicateCoordinates(t *testing.T) {
	stats := ComputeStatistics([]Sample{
		sampleAt(-23.5505, -46.6333, 50, 0),
		sampleAt(-23.5505, -46.6333, 60, time.Minute),
	})
	if stats.RecordCount != 2 {
		t.Fatalf("expected count 2, got %d", stats.RecordCount)
	}
	if stats.TotalDistanceKm != 0 {
		t.Fatalf("expected zero distance for identical coordinates, got %v", stats.TotalDistanceKm)
	}
	if stats.AverageSpeedKmh != 55 {
		t.Fatalf("expected average 55, got %v", stats.AverageSpeedKmh)
	}
	if stats.MaxSpeedKmh != 60 {
		t.Fatalf("expected max 60, got %v", stats.MaxSpeedKmh)
	}
}

func TestComputeStatisticsEquatorDegree(t *testing.T) {
	stats := ComputeStatistics([]Sample{
		sampleAt(0, 0, 30, 0),
		sampleAt(0, 1, 30, time.Hour),
	})
	if math.Abs(stats.TotalDistanceKm-111.19) > 0.1 {
		t.Fatalf("expected ~111.19 km, got %v", stats.TotalDistanceKm)
	}
}

func TestComputeStatisticsSpeedAggregation(t *testing.T) {
	stats := ComputeStatistics([]Sample{
		sampleAt(0, 0, 10, 0),
		sampleAt(0, 0.01, 20, time.Minute),
		sampleAt(0, 0.02, 30, 2*time.Minute),
	})
	if stats.AverageSpeedKmh != 20 {
		t.Fatalf("expected average 20, got %v", stats.AverageSpeedKmh)
	}
	if stats.MaxSpeedKmh != 30 {
		t.Fatalf("expected max 30, got %v", stats.MaxSpeedKmh)
	}
	if stats.MaxSpeedKmh < stats.AverageSpeedKmh {
		t.Fatalf("max below average: %+v", stats)
	}
}

func TestComputeStatisticsOrderIndependentDistance(t *testing.T) {
	track := []Sample{
		sampleAt(-23.5505, -46.6333, 40, 0),
		sampleAt(-23.5000, -46.6000, 55, 5*time.Minute),
		sampleAt(-23.4500, -46.5500, 70, 10*time.Minute),
		sampleAt(-23.4000, -46.5000, 65, 15*time.Minute),
	}

	reversed := make([]Sample, len(track))
	for i, s := range track {
		reversed[len(track)-1-i] = s
	}

	a := ComputeStatistics(track)
	b := ComputeStatistics(reversed)
	if a != b {
		t.Fatalf("statistics differ under sequence reversal: %+v vs %+v", a, b)
	}
	if a.TotalDistanceKm <= 0 {
		t.Fatalf("expected positive distance, got %v", a.TotalDistanceKm)
	}
}

func TestComputeStatisticsDoesNotMutateInput(t *testing.T) {
	// newest-first, as the history query returns them
	track := []Sample{
		sampleAt(-23.4000, -46.5000, 65, 15*time.Minute),
		sampleAt(-23.5505, -46.6333, 40, 0),
	}
	first := track[0]

	_ = ComputeStatistics(track)
	if track[0] != first {
		t.Fatalf("input slice was reordered")
	}
}

func TestComputeStatisticsIdempotent(t *testing.T) {
	track := []Sample{
		sampleAt(-23.5505, -46.6333, 40, 0),
		sampleAt(-23.5000, -46.6000, 55, 5*time.Minute),
	}
	if ComputeStatistics(track) != ComputeStatistics(track) {
		t.Fatalf("expected identical results for identical input")
	}
}
