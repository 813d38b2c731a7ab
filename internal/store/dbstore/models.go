package dbstore

import (
	"time"

	"github.com/yiblet/eqplot/internal/store"
)

// SchemaVersion is recorded in the meta table of every database this
// package creates.
const SchemaVersion = "1"

// PlotRecordModel represents one history row in the database.
// Position keeps the history order; records are never updated in place.
type PlotRecordModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Position  int       `gorm:"not null;uniqueIndex"`
	Equation  string    `gorm:"type:text;not null"`
	MinX      float64   `gorm:"not null"`
	MaxX      float64   `gorm:"not null"`
	Color     string    `gorm:"size:16;not null"`
	ColorName string    `gorm:"size:32"`
	Timestamp string    `gorm:"size:19;not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName returns the table name for PlotRecordModel
func (PlotRecordModel) TableName() string {
	return "plot_records"
}

// ToRecord converts the GORM model to a store.Record
func (m *PlotRecordModel) ToRecord() store.Record {
	return store.Record{
		Equation:  m.Equation,
		MinX:      m.MinX,
		MaxX:      m.MaxX,
		Color:     m.Color,
		ColorName: m.ColorName,
		Timestamp: m.Timestamp,
	}
}

func fromRecord(position int, r store.Record) *PlotRecordModel {
	return &PlotRecordModel{
		Position:  position,
		Equation:  r.Equation,
		MinX:      r.MinX,
		MaxX:      r.MaxX,
		Color:     r.Color,
		ColorName: r.ColorName,
		Timestamp: r.Timestamp,
	}
}

// MetaModel represents a key-value pair describing the database itself
type MetaModel struct {
	Key       string    `gorm:"primaryKey;size:100"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for MetaModel
func (MetaModel) TableName() string {
	return "meta"
}
