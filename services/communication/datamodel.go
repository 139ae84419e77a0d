package communication

import (
	"context"
	"errors"
	"sync"
	"time"

	"obstacle-detection/geometry"
	"obstacle-detection/services/statistics"
)

// BoundaryStore persists named boundaries, implemented by the database and redis services.
type BoundaryStore interface {
	SaveBoundary(ctx context.Context, name string, bound geometry.RectangleBoundary) error
	LoadBoundary(ctx context.Context, name string) (geometry.RectangleBoundary, error)
}

type StatisticsStore interface {
	SaveContainmentStats(ctx context.Context, name string, stats statistics.ContainmentStats) error
}

type BoundaryModel struct {
	sync.Mutex
	Name            string
	Boundary        geometry.RectangleBoundary
	Statistics      *statistics.ContainmentStatistics
	Stores          []BoundaryStore // Tried in order when restoring
	StatisticsStore StatisticsStore

	changed chan struct{} // Closed and replaced on every reset
}

func NewBoundaryModel(name string, bound geometry.RectangleBoundary, stores ...BoundaryStore) *BoundaryModel {
	return &BoundaryModel{
		Name:       name,
		Boundary:   bound,
		Statistics: statistics.NewContainmentStatistics(),
		Stores:     stores,
		changed:    make(chan struct{}),
	}
}

func (model *BoundaryModel) GetBoundary(safe bool) geometry.RectangleBoundary {
	if safe {
		model.Lock()
		defer model.Unlock()
	}
	return model.Boundary
}

// Watch returns the current boundary together with a channel that is closed on the next reset.
func (model *BoundaryModel) Watch(safe bool) (geometry.RectangleBoundary, <-chan struct{}) {
	if safe {
		model.Lock()
		defer model.Unlock()
	}
	return model.Boundary, model.changed
}

func (model *BoundaryModel) setBoundary(bound geometry.RectangleBoundary) {
	model.Boundary.Reset(bound.XDim(), bound.YDim(), bound.Position())
	close(model.changed)
	model.changed = make(chan struct{})
}

// ResetBoundary replaces the boundary and saves it to every store. The in memory
// boundary is replaced even when some of the stores fail.
func (model *BoundaryModel) ResetBoundary(ctx context.Context, bound geometry.RectangleBoundary) error {
	model.Lock()
	model.setBoundary(bound)
	name := model.Name
	stores := model.Stores
	model.Unlock()

	var errs []error
	for _, store := range stores {
		if err := store.SaveBoundary(ctx, name, bound); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Restore loads the boundary from the first store that has it. The current
// boundary is kept when no store does.
func (model *BoundaryModel) Restore(ctx context.Context) (bool, error) {
	model.Lock()
	name := model.Name
	stores := model.Stores
	model.Unlock()

	var errs []error
	for _, store := range stores {
		bound, err := store.LoadBoundary(ctx, name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		model.Lock()
		model.setBoundary(bound)
		model.Unlock()
		return true, nil
	}
	return false, errors.Join(errs...)
}

// CheckResult is the outcome of CheckPoints against the boundary in use at that time.
type CheckResult struct {
	Boundary geometry.RectangleBoundary
	Inside   []bool
}

// CheckPoints tests every point against the current boundary and records the result in the statistics.
func (model *BoundaryModel) CheckPoints(points []geometry.Point2D, safe bool) CheckResult {
	if safe {
		model.Lock()
		defer model.Unlock()
	}

	inside := make([]bool, len(points))
	for i, point := range points {
		inside[i] = geometry.IsInside(point, model.Boundary)
	}
	model.Statistics.Update(geometry.CountInside(points, model.Boundary), len(points), time.Now())
	return CheckResult{Boundary: model.Boundary, Inside: inside}
}

func (model *BoundaryModel) GetStatistics(safe bool) statistics.ContainmentStats {
	if safe {
		model.Lock()
		defer model.Unlock()
	}
	return model.Statistics.GetStats()
}

func (model *BoundaryModel) PersistStatistics(ctx context.Context) error {
	model.Lock()
	store := model.StatisticsStore
	name := model.Name
	stats := model.Statistics.GetStats()
	model.Unlock()

	if store == nil {
		return nil
	}
	return store.SaveContainmentStats(ctx, name, stats)
}
