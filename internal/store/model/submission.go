package model

import (
	"time"

	"github.com/google/uuid"
)

type Submission struct {
	DomainID    uuid.UUID `gorm:"primaryKey;type:TEXT;" validate:"nonnil_uuid"`
	ID          int       `gorm:"primaryKey;autoIncrement:false" validate:"gte=0"`
	Title       string
	Submitted   *time.Time
	LastUpdated *time.Time
}

type SubmissionAuthorship struct {
	ID           uuid.UUID `gorm:"primaryKey;type:TEXT;"`
	DomainID     uuid.UUID `gorm:"not null;type:TEXT;" validate:"nonnil_uuid"`
	AuthorID     int       `gorm:"not null" validate:"gte=0"`
	SubmissionID int       `gorm:"not null" validate:"gte=0"`
}

// Assignment is a review duty of a committee member on a submission.
type Assignment struct {
	ID           uuid.UUID `gorm:"primaryKey;type:TEXT;"`
	DomainID     uuid.UUID `gorm:"not null;type:TEXT;" validate:"nonnil_uuid"`
	MemberID     int       `gorm:"not null" validate:"gte=0"`
	SubmissionID int       `gorm:"not null" validate:"gte=0"`
}
