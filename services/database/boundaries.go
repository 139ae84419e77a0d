package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"obstacle-detection/geometry"
)

var ErrBoundaryNotFound = errors.New("boundary not found")

// BoundaryRecord is the persisted form of a named RectangleBoundary.
type BoundaryRecord struct {
	Name      string `gorm:"primaryKey"`
	PositionX float64
	PositionY float64
	XDim      float64
	YDim      float64
	UpdatedAt time.Time
}

func (BoundaryRecord) TableName() string {
	return "boundaries"
}

func NewBoundaryRecord(name string, bound geometry.RectangleBoundary) BoundaryRecord {
	position := bound.Position()
	return BoundaryRecord{
		Name:      name,
		PositionX: position.X,
		PositionY: position.Y,
		XDim:      bound.XDim(),
		YDim:      bound.YDim(),
	}
}

func (record BoundaryRecord) ToBoundary() geometry.RectangleBoundary {
	return geometry.NewRectangleBoundary(record.XDim, record.YDim, geometry.Point2D{X: record.PositionX, Y: record.PositionY})
}

type BoundaryRepository struct {
	DB *gorm.DB
}

func NewBoundaryRepository(db *gorm.DB) *BoundaryRepository {
	return &BoundaryRepository{DB: db}
}

// SaveBoundary inserts the boundary or overwrites the one stored under the same name.
func (repository *BoundaryRepository) SaveBoundary(ctx context.Context, name string, bound geometry.RectangleBoundary) error {
	record := NewBoundaryRecord(name, bound)
	err := repository.DB.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&record).Error
	if err != nil {
		return fmt.Errorf("saving boundary %s: %w", name, err)
	}
	return nil
}

func (repository *BoundaryRepository) LoadBoundary(ctx context.Context, name string) (geometry.RectangleBoundary, error) {
	var record BoundaryRecord
	err := repository.DB.WithContext(ctx).Where("name = ?", name).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return geometry.RectangleBoundary{}, fmt.Errorf("%s: %w", name, ErrBoundaryNotFound)
	}
	if err != nil {
		return geometry.RectangleBoundary{}, fmt.Errorf("loading boundary %s: %w", name, err)
	}
	return record.ToBoundary(), nil
}
