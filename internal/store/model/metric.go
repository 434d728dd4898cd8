package model

import (
	"time"

	"github.com/google/uuid"
)

// MetricHeader is a named aggregate with the range its values are drawn against.
type MetricHeader struct {
	ID          uuid.UUID  `gorm:"primaryKey;type:TEXT;"`
	DomainID    uuid.UUID  `gorm:"not null;type:TEXT;"`
	JobID       *uuid.UUID `gorm:"type:TEXT;"`
	Title       string     `gorm:"not null"`
	Description string
	ValueMin    float64
	ValueMax    float64
	ValueStep   float64
	ValueUnit   string
	CreatedAt   time.Time
	Values      []MetricValue `gorm:"foreignKey:HeaderID;references:ID;constraint:OnDelete:CASCADE;"`
}

// MetricValue is one data point of a header. Min, Max, Step and Unit override the
// header range when set.
type MetricValue struct {
	ID       uuid.UUID `gorm:"primaryKey;type:TEXT;"`
	HeaderID uuid.UUID `gorm:"not null;type:TEXT;"`
	Value    float64
	Min      *float64
	Max      *float64
	Step     *float64
	Unit     *string
	Label    string
	Color    string
	Position int
}

type MetricHeaderList []MetricHeader
