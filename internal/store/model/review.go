package model

import (
	"time"

	"github.com/google/uuid"
)

const DefaultConfidence = 3

type Review struct {
	DomainID         uuid.UUID `gorm:"primaryKey;type:TEXT;" validate:"nonnil_uuid"`
	ID               int       `gorm:"primaryKey;autoIncrement:false" validate:"gte=0"`
	Submitted        *time.Time
	MemberID         int `gorm:"not null" validate:"gte=0"`
	SubmissionID     int `gorm:"not null" validate:"gte=0"`
	Content          string
	ReviewScoreValue *int
	Confidence       int `gorm:"not null" validate:"gte=0"`
}

type ReviewScore struct {
	Value       int `gorm:"primaryKey;autoIncrement:false"`
	Explanation string
}

type Confidence struct {
	Value       int `gorm:"primaryKey;autoIncrement:false"`
	Explanation string
}

type Comment struct {
	DomainID     uuid.UUID `gorm:"primaryKey;type:TEXT;" validate:"nonnil_uuid"`
	ID           int       `gorm:"primaryKey;autoIncrement:false" validate:"gte=0"`
	Submitted    *time.Time
	MemberID     int `gorm:"not null" validate:"gte=0"`
	SubmissionID int `gorm:"not null" validate:"gte=0"`
	Content      string
}
