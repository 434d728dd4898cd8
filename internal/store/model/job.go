package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type JobType string

const (
	JobTypeFile   JobType = "FILE"
	JobTypeMetric JobType = "METRIC"
)

type JobSubtype string

const (
	JobSubtypeExcel                JobSubtype = "EXCEL"
	JobSubtypeReviewsDone          JobSubtype = "REVIEWS_DONE"
	JobSubtypeSubmissionAcceptance JobSubtype = "SUBMISSION_ACCEPTANCE"
	JobSubtypeParticipation        JobSubtype = "PARTICIPATION"
)

type JobStatus string

const (
	JobStatusRunning   JobStatus = "RUNNING"
	JobStatusCompleted JobStatus = "COMPLETED"
	JobStatusFailed    JobStatus = "FAILED"
)

var jobSubtypes = map[JobType][]JobSubtype{
	JobTypeFile:   {JobSubtypeExcel},
	JobTypeMetric: {JobSubtypeReviewsDone, JobSubtypeSubmissionAcceptance, JobSubtypeParticipation},
}

// AllowsSubtype reports whether subtype belongs to the job type.
func (t JobType) AllowsSubtype(subtype JobSubtype) bool {
	for _, s := range jobSubtypes[t] {
		if s == subtype {
			return true
		}
	}
	return false
}

func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// ProcessingJob tracks one asynchronous ingestion or metric computation.
// Subject is the stored file name for FILE jobs and a human label for METRIC jobs.
type ProcessingJob struct {
	ID        uuid.UUID  `gorm:"primaryKey;column:id;type:TEXT;"`
	DomainID  uuid.UUID  `gorm:"not null;type:TEXT;index:processing_jobs_domain_id_idx"`
	Type      JobType    `gorm:"not null"`
	Subtype   JobSubtype `gorm:"not null"`
	Subject   string     `gorm:"not null"`
	Status    JobStatus  `gorm:"not null"`
	Message   string
	CreatedAt time.Time
	EndedAt   *time.Time
}

type ProcessingJobList []ProcessingJob

func (j ProcessingJob) String() string {
	val, _ := json.Marshal(j)
	return string(val)
}
