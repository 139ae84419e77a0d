package statistics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestContainmentStatisticsUpdate(t *testing.T) {
	cs := NewContainmentStatistics()
	first := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	cs.Update(2, 4, first)
	stats := cs.GetStats()
	assert.Equal(t, int64(1), stats.Checks)
	assert.Equal(t, int64(1), stats.NonEmptyChecks)
	assert.Equal(t, int64(4), stats.PointsChecked)
	assert.Equal(t, int64(2), stats.PointsInside)
	assert.Equal(t, 0.5, stats.InsideRatio)
	assert.Equal(t, first, stats.LastCheck)

	second := first.Add(time.Second)
	cs.Update(4, 4, second)
	stats = cs.GetStats()
	assert.Equal(t, int64(2), stats.Checks)
	assert.Equal(t, int64(8), stats.PointsChecked)
	assert.Equal(t, int64(6), stats.PointsInside)
	assert.InDelta(t, (0.5*15+1)/16, stats.InsideRatio, 1e-12)
	assert.Equal(t, second, stats.LastCheck)
}

func TestContainmentStatisticsEmptyCheck(t *testing.T) {
	cs := NewContainmentStatistics()
	cs.Update(0, 0, time.Now())

	stats := cs.GetStats()
	assert.Equal(t, int64(1), stats.Checks)
	assert.Equal(t, int64(0), stats.NonEmptyChecks)
	assert.Equal(t, 0.0, stats.InsideRatio)

	// The first check with points seeds the average
	cs.Update(4, 4, time.Now())
	stats = cs.GetStats()
	assert.Equal(t, int64(2), stats.Checks)
	assert.Equal(t, int64(1), stats.NonEmptyChecks)
	assert.Equal(t, 1.0, stats.InsideRatio)

	// Later empty checks leave the average alone
	cs.Update(0, 0, time.Now())
	assert.Equal(t, 1.0, cs.GetStats().InsideRatio)
}

func TestContainmentStatsToJSON(t *testing.T) {
	assert.Equal(t, "", ContainmentStats{}.ToJSON().LastCheck)

	stats := ContainmentStats{
		Checks:        3,
		PointsChecked: 30,
		PointsInside:  10,
		InsideRatio:   0.25,
		LastCheck:     time.Date(2024, 5, 1, 12, 0, 0, 500_000_000, time.UTC),
	}
	statsJSON := stats.ToJSON()
	assert.Equal(t, int64(3), statsJSON.Checks)
	assert.Equal(t, int64(30), statsJSON.PointsChecked)
	assert.Equal(t, int64(10), statsJSON.PointsInside)
	assert.Equal(t, 0.25, statsJSON.InsideRatio)
	assert.Equal(t, "2024-05-01T12:00:00.5Z", statsJSON.LastCheck)
}
