package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Domain is a single conference. Every other record is scoped to one.
type Domain struct {
	ID        uuid.UUID `gorm:"primaryKey;column:id;type:TEXT;"`
	Name      string    `gorm:"not null"`
	EndDate   *time.Time
	CreatedAt time.Time
}

type DomainList []Domain

func (d Domain) String() string {
	val, _ := json.Marshal(d)
	return string(val)
}

// Statistics holds the global counters exported to prometheus.
type Statistics struct {
	Domains      int
	Submissions  int
	Reviews      int
	JobsByStatus map[string]int
}
