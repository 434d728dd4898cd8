package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/watchair/watchair/internal/store/model"
	"gorm.io/gorm"
)

type Job interface {
	Create(ctx context.Context, job model.ProcessingJob) (*model.ProcessingJob, error)
	Get(ctx context.Context, id uuid.UUID) (*model.ProcessingJob, error)
	List(ctx context.Context, filter *JobQueryFilter) (model.ProcessingJobList, error)
	End(ctx context.Context, id uuid.UUID, status model.JobStatus, message string) (*model.ProcessingJob, error)
}

type JobStore struct {
	db *gorm.DB
}

// Make sure we conform to Job interface
var _ Job = (*JobStore)(nil)

func NewJobStore(db *gorm.DB) Job {
	return &JobStore{db: db}
}

func (s *JobStore) Create(ctx context.Context, job model.ProcessingJob) (*model.ProcessingJob, error) {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	if err := getDB(ctx, s.db).WithContext(ctx).Create(&job).Error; err != nil {
		return nil, translateError(err)
	}
	return &job, nil
}

func (s *JobStore) Get(ctx context.Context, id uuid.UUID) (*model.ProcessingJob, error) {
	var job model.ProcessingJob
	if err := getDB(ctx, s.db).WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("querying job: %w", err)
	}
	return &job, nil
}

func (s *JobStore) List(ctx context.Context, filter *JobQueryFilter) (model.ProcessingJobList, error) {
	var jobs model.ProcessingJobList
	tx := getDB(ctx, s.db).WithContext(ctx).Model(&jobs).Order("created_at DESC")
	if filter != nil {
		tx = apply(tx, filter.QueryFn)
	}
	if err := tx.Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// End moves a RUNNING job to status. The update only matches rows that are still
// running, so a job that already ended yields ErrJobNotRunning.
func (s *JobStore) End(ctx context.Context, id uuid.UUID, status model.JobStatus, message string) (*model.ProcessingJob, error) {
	result := getDB(ctx, s.db).WithContext(ctx).
		Model(&model.ProcessingJob{}).
		Where("id = ? AND status = ?", id, model.JobStatusRunning).
		Updates(map[string]any{
			"status":   status,
			"message":  message,
			"ended_at": time.Now(),
		})
	if result.Error != nil {
		return nil, fmt.Errorf("updating job status: %w", result.Error)
	}

	job, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if result.RowsAffected == 0 {
		return job, ErrJobNotRunning
	}
	return job, nil
}
