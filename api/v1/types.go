// Package v1 holds the JSON models of the /api/v1 endpoints.
package v1

import (
	"time"

	"github.com/google/uuid"
)

type DomainCreate struct {
	Name    string     `json:"name" validate:"required,domain_name,max=256"`
	EndDate *time.Time `json:"endDate,omitempty"`
}

type Domain struct {
	Id        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

type DomainList []Domain

// FileUpload is the stored name of an uploaded workbook.
type FileUpload struct {
	Id string `json:"id"`
}

type JobCreate struct {
	FileName string `json:"fileName" validate:"required,upload_name"`
}

type JobStatus string

const (
	JobStatusRunning   JobStatus = "RUNNING"
	JobStatusCompleted JobStatus = "COMPLETED"
	JobStatusFailed    JobStatus = "FAILED"
)

type Job struct {
	Id        uuid.UUID  `json:"id"`
	DomainId  uuid.UUID  `json:"domainId"`
	Type      string     `json:"type"`
	Subtype   string     `json:"subtype"`
	Subject   string     `json:"subject"`
	Status    JobStatus  `json:"status"`
	Message   string     `json:"message,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	EndedAt   *time.Time `json:"endedAt,omitempty"`
}

type JobList []Job

type MetricValue struct {
	Value float64  `json:"value"`
	Min   *float64 `json:"min,omitempty"`
	Max   *float64 `json:"max,omitempty"`
	Step  *float64 `json:"step,omitempty"`
	Unit  *string  `json:"unit,omitempty"`
	Label string   `json:"label"`
	Color string   `json:"color"`
}

type MetricHeader struct {
	Id          uuid.UUID     `json:"id"`
	JobId       *uuid.UUID    `json:"jobId,omitempty"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Min         float64       `json:"min"`
	Max         float64       `json:"max"`
	Step        float64       `json:"step"`
	Unit        string        `json:"unit"`
	Values      []MetricValue `json:"values"`
}

type MetricHeaderList []MetricHeader

type ReviewScore struct {
	Value       int    `json:"value"`
	Explanation string `json:"explanation"`
}

type ReviewScoreList []ReviewScore

type Error struct {
	Message   string  `json:"message"`
	RequestId *string `json:"requestId,omitempty"`
}

type Health struct {
	Status string `json:"status"`
}
