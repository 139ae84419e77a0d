package statistics

import (
	"time"

	"obstacle-detection/models"
)

type ContainmentStats struct {
	Checks int64
	// Checks with at least one point, only these contribute to InsideRatio
	NonEmptyChecks int64
	PointsChecked  int64
	PointsInside   int64
	// Exponential moving average of the per check inside ratio
	InsideRatio float64
	LastCheck   time.Time
}

type ContainmentStatistics struct {
	Stats ContainmentStats
}

func NewContainmentStatistics() *ContainmentStatistics {
	return &ContainmentStatistics{
		Stats: ContainmentStats{},
	}
}

func (cs *ContainmentStatistics) GetStats() ContainmentStats {
	return cs.Stats
}

// Update records one check of total points of which inside were inside the boundary.
func (cs *ContainmentStatistics) Update(inside, total int, checkedAt time.Time) {
	cs.Stats.Checks++
	cs.Stats.PointsChecked += int64(total)
	cs.Stats.PointsInside += int64(inside)
	cs.Stats.LastCheck = checkedAt

	if total == 0 {
		return
	}
	cs.Stats.NonEmptyChecks++
	ratio := float64(inside) / float64(total)
	if cs.Stats.NonEmptyChecks == 1 {
		cs.Stats.InsideRatio = ratio
		return
	}
	// Exponential moving average to smooth out single scans
	cs.Stats.InsideRatio = (cs.Stats.InsideRatio*15 + ratio) / 16
}

func (stats ContainmentStats) ToJSON() models.ContainmentStatisticsJSON {
	var lastCheck string
	if !stats.LastCheck.IsZero() {
		lastCheck = stats.LastCheck.UTC().Format(models.TimestampFormat)
	}
	return models.ContainmentStatisticsJSON{
		Checks:        stats.Checks,
		PointsChecked: stats.PointsChecked,
		PointsInside:  stats.PointsInside,
		InsideRatio:   stats.InsideRatio,
		LastCheck:     lastCheck,
	}
}
